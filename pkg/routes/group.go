package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/verdict/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		walk("", nil, group, func(path string, _ []string, route Route) {
			mux.HandleFunc(route.Method+" "+path, route.Handler)
		})
	}
}

// Document adds an operation to spec for every documented route in groups.
// basePath is prepended to each path, matching where the groups are mounted.
func Document(spec *openapi.Spec, basePath string, groups ...Group) {
	for _, group := range groups {
		walk(basePath, nil, group, func(path string, tags []string, route Route) {
			if route.OpenAPI == nil {
				return
			}

			op := *route.OpenAPI
			if len(op.Tags) == 0 {
				op.Tags = tags
			}

			key := specPath(path)
			item, ok := spec.Paths[key]
			if !ok {
				item = &openapi.PathItem{}
				spec.Paths[key] = item
			}
			item.Set(route.Method, &op)
		})
	}
}

func walk(parentPrefix string, parentTags []string, group Group, fn func(string, []string, Route)) {
	fullPrefix := parentPrefix + group.Prefix
	tags := parentTags
	if len(group.Tags) > 0 {
		tags = group.Tags
	}
	for _, route := range group.Routes {
		fn(fullPrefix+route.Pattern, tags, route)
	}
	for _, child := range group.Children {
		walk(fullPrefix, tags, child, fn)
	}
}

func specPath(pattern string) string {
	path := strings.TrimSuffix(pattern, "{$}")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}
