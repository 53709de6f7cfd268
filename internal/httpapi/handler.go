package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"portfolio3d/internal/content"
	"portfolio3d/internal/metrics"
)

// Handler serves the debug endpoints: health, Prometheus metrics, the loaded portfolio and,
// when a hub is given, a websocket event feed.
// items is never modified after construction so handlers may read it from any goroutine.
type Handler struct {
	log     zerolog.Logger
	metrics *metrics.Metrics
	items   []content.Item
	hub     *Hub
}

// NewHandler builds the debug handler. hub may be nil.
func NewHandler(log zerolog.Logger, m *metrics.Metrics, items []content.Item, hub *Hub) *Handler {
	return &Handler{log: log, metrics: m, items: items, hub: hub}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.accessLog)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(5 * time.Second))

		r.Get("/healthz", h.handleHealthz)
		r.Handle("/metrics", h.metrics.Handler())

		r.Route("/api/v1/portfolio", func(r chi.Router) {
			r.Get("/", h.handleListItems)
			r.Get("/{index}", h.handleGetItem)
		})
	})

	// Long-lived; outside the request timeout.
	if h.hub != nil {
		r.Get("/api/v1/events", h.hub.ServeHTTP)
	}

	return r
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleListItems(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": h.items})
}

func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || i < 0 || i >= len(h.items) {
		writeError(w, http.StatusNotFound, "not_found", "no portfolio item at that index")
		return
	}
	writeJSON(w, http.StatusOK, h.items[i])
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			pattern = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.metrics.ObserveHTTPRequest(r.Method, pattern, status)
		h.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
