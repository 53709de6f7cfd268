package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandler_nilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveFrame(time.Millisecond)
	m.IncSelection("x")
	m.IncCapture()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "metrics unavailable") {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestHandler_exposesRegisteredMetrics(t *testing.T) {
	m := New()
	m.ObserveFrame(5 * time.Millisecond)
	m.ObserveFrame(7 * time.Millisecond)
	m.IncSelection("Weather Dashboard")
	m.IncCapture()
	m.ObserveHTTPRequest(http.MethodGet, "/healthz", http.StatusOK)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"portfolio_frames_total 2",
		"portfolio_frame_duration_seconds_count 2",
		`portfolio_selections_total{item="Weather Dashboard"} 1`,
		"portfolio_pointer_captures_total 1",
		`portfolio_http_requests_total{method="GET",path="/healthz",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in exposition; body=%s", want, body)
		}
	}
}
