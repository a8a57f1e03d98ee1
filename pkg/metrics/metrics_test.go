package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/verdict/pkg/metrics"
)

func scrape(t *testing.T, m metrics.System) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status: got %d, want %d", rec.Code, http.StatusOK)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestMiddlewareCountsRequests(t *testing.T) {
	m := metrics.New()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /predict", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := m.Middleware()(mux)

	for range 2 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/predict", nil))
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	out := scrape(t, m)

	want := []string{
		`verdict_http_requests_total{method="POST",route="POST /predict",status="200"} 2`,
		`verdict_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
		`verdict_http_request_duration_seconds_count{method="POST",route="POST /predict"} 2`,
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("scrape output missing %q", w)
		}
	}
}

func TestObservePrediction(t *testing.T) {
	m := metrics.New()
	m.ObservePrediction("acme", "positive")
	m.ObservePrediction("acme", "positive")
	m.ObservePrediction("acme", "negative")

	out := scrape(t, m)

	for _, w := range []string{
		`verdict_predictions_total{label="positive",tenant="acme"} 2`,
		`verdict_predictions_total{label="negative",tenant="acme"} 1`,
	} {
		if !strings.Contains(out, w) {
			t.Errorf("scrape output missing %q", w)
		}
	}
}

func TestRegisterModelState(t *testing.T) {
	m := metrics.New()

	loaded := false
	if err := m.RegisterModelState("acme", func() bool { return loaded }, func() bool { return true }); err != nil {
		t.Fatalf("RegisterModelState() error = %v", err)
	}

	out := scrape(t, m)
	if !strings.Contains(out, `verdict_model_loaded{tenant="acme"} 0`) {
		t.Error("model gauge should report 0 before load")
	}
	if !strings.Contains(out, `verdict_vectorizer_loaded{tenant="acme"} 1`) {
		t.Error("vectorizer gauge should report 1")
	}

	loaded = true
	out = scrape(t, m)
	if !strings.Contains(out, `verdict_model_loaded{tenant="acme"} 1`) {
		t.Error("model gauge should report 1 after load")
	}
}

func TestRegisterModelStateTwice(t *testing.T) {
	m := metrics.New()
	ready := func() bool { return true }

	if err := m.RegisterModelState("acme", ready, ready); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := m.RegisterModelState("acme", ready, ready); err == nil {
		t.Error("expected duplicate registration error, got nil")
	}
}

func TestRuntimeCollectors(t *testing.T) {
	out := scrape(t, metrics.New())
	if !strings.Contains(out, "go_goroutines") {
		t.Error("scrape output missing go runtime metrics")
	}
}
