package middleware

import "net/http"

// Func wraps a handler with cross-cutting behaviour.
type Func func(http.Handler) http.Handler

// System manages an ordered stack of HTTP middleware. The first middleware
// added is the outermost, so it sees every request first.
type System interface {
	Use(fns ...Func)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	fns []Func
}

// New creates an empty middleware System.
func New() System {
	return &stack{}
}

func (s *stack) Use(fns ...Func) {
	for _, fn := range fns {
		if fn != nil {
			s.fns = append(s.fns, fn)
		}
	}
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.fns) - 1; i >= 0; i-- {
		handler = s.fns[i](handler)
	}
	return handler
}
