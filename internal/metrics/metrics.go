package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes viewer metrics that are safe to scrape via Prometheus.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	frames        prometheus.Counter
	frameDuration prometheus.Histogram
	selections    *prometheus.CounterVec
	captures      prometheus.Counter
	httpRequests  *prometheus.CounterVec
}

// New creates a fresh registry with frame, interaction and HTTP metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	frames := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "frames_total",
		Help:      "Frames rendered since start",
	})
	frameDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "portfolio",
		Name:      "frame_duration_seconds",
		Help:      "Wall time spent updating and drawing one frame",
		Buckets:   []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1, 0.25},
	})
	selections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "selections_total",
		Help:      "Portfolio items opened from the scene",
	}, []string{"item"})
	captures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "pointer_captures_total",
		Help:      "Times free-look pointer capture was requested",
	})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "http_requests_total",
		Help:      "Requests served by the debug HTTP server",
	}, []string{"method", "path", "status"})

	registry.MustRegister(frames, frameDuration, selections, captures, httpRequests)

	return &Metrics{
		registry:      registry,
		frames:        frames,
		frameDuration: frameDuration,
		selections:    selections,
		captures:      captures,
		httpRequests:  httpRequests,
	}
}

// ObserveFrame records one rendered frame.
func (m *Metrics) ObserveFrame(d time.Duration) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameDuration.Observe(d.Seconds())
}

// IncSelection counts an item being opened.
func (m *Metrics) IncSelection(title string) {
	if m == nil {
		return
	}
	m.selections.WithLabelValues(title).Inc()
}

// IncCapture counts a pointer capture request.
func (m *Metrics) IncCapture() {
	if m == nil {
		return
	}
	m.captures.Inc()
}

// ObserveHTTPRequest records a request served by the debug server.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// Handler exposes the registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
