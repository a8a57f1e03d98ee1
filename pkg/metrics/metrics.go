// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the loaded model state.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JaimeStill/verdict/pkg/middleware"
)

const namespace = "verdict"

// System records request and prediction metrics into a private registry.
type System interface {
	Middleware() func(http.Handler) http.Handler
	Handler() http.Handler
	ObservePrediction(tenant, label string)
	RegisterModelState(tenant string, model, vectorizer func() bool) error
}

type registry struct {
	reg         *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	predictions *prometheus.CounterVec
}

// New creates a System with Go runtime and process collectors registered.
func New() System {
	reg := prometheus.NewRegistry()

	r := &registry{
		reg: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route, and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Successful predictions, by tenant and label.",
		}, []string{"tenant", "label"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests,
		r.duration,
		r.predictions,
	)

	return r
}

// Middleware counts and times every request. Requests that match no route
// are labelled "unmatched" to keep label cardinality bounded.
func (r *registry) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			rec := middleware.NewStatusRecorder(w)
			next.ServeHTTP(rec, req)

			route := routeLabel(req, rec.Status)
			r.requests.WithLabelValues(req.Method, route, strconv.Itoa(rec.Status)).Inc()
			r.duration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

func (r *registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

func (r *registry) ObservePrediction(tenant, label string) {
	r.predictions.WithLabelValues(tenant, label).Inc()
}

// RegisterModelState exposes the loaded state of the model and vectorizer
// as 0/1 gauges sampled at scrape time.
func (r *registry) RegisterModelState(tenant string, model, vectorizer func() bool) error {
	labels := prometheus.Labels{"tenant": tenant}

	modelGauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "model_loaded",
		Help:        "Whether the classifier is loaded (1) or not (0).",
		ConstLabels: labels,
	}, boolGauge(model))

	vectorizerGauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "vectorizer_loaded",
		Help:        "Whether the vectorizer is loaded (1) or not (0).",
		ConstLabels: labels,
	}, boolGauge(vectorizer))

	if err := r.reg.Register(modelGauge); err != nil {
		return err
	}
	return r.reg.Register(vectorizerGauge)
}

func boolGauge(fn func() bool) func() float64 {
	return func() float64 {
		if fn() {
			return 1
		}
		return 0
	}
}

func routeLabel(req *http.Request, status int) string {
	if status == http.StatusNotFound {
		return "unmatched"
	}
	if req.Pattern != "" {
		return req.Pattern
	}
	return req.URL.Path
}
