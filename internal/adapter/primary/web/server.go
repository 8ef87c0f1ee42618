package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/longhd1308/ClockApp/internal/domain"
	"github.com/longhd1308/ClockApp/internal/logging"
	"github.com/longhd1308/ClockApp/internal/metrics"
	"github.com/longhd1308/ClockApp/internal/picker"
	"github.com/longhd1308/ClockApp/internal/usecase"
)

// Server is a primary adapter that exposes HTTP API + UI.
// It depends on the use case (primary port).
type Server struct {
	usecase usecase.ClockUseCase
	server  *http.Server
}

// NewServer creates the HTTP server bound to addr. pm may be nil, in which
// case /metrics is not served. Command counts reach pm through
// usecase.WithCommandObserver.
func NewServer(uc usecase.ClockUseCase, addr string, pm *metrics.PrometheusMetrics) *Server {
	mux := http.NewServeMux()
	srv := &Server{usecase: uc}

	mux.HandleFunc("GET /api/state", srv.handleState)
	mux.HandleFunc("GET /api/events", srv.handleEvents)
	mux.HandleFunc("POST /api/{mode}/{command}", srv.handleCommand)
	mux.HandleFunc("PUT /api/picker", srv.handlePicker)
	mux.HandleFunc("GET /api/settings", srv.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", srv.handlePutSettings)
	mux.HandleFunc("POST /api/language/toggle", srv.handleToggleLanguage)
	mux.HandleFunc("GET /{$}", srv.handleRoot)

	if pm != nil {
		registry := prometheus.NewRegistry()
		registry.MustRegister(pm)
		mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	srv.server = &http.Server{
		Addr:              addr,
		Handler:           loggingMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start blocks and serves HTTP traffic.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, snapshotToView(s.usecase.Snapshot()))
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	mode, err := domain.ParseMode(r.PathValue("mode"))
	if err != nil {
		respondError(w, err)
		return
	}
	cmd, err := domain.ParseCommand(r.PathValue("command"))
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.usecase.Dispatch(mode, cmd); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshotToView(s.usecase.Snapshot()))
}

type pickerPayload struct {
	Field   string   `json:"field"`
	Index   *int     `json:"index"`
	Offset  *float64 `json:"offset"`
	Hours   *int     `json:"hours"`
	Minutes *int     `json:"minutes"`
	Seconds *int     `json:"seconds"`
}

func (s *Server) handlePicker(w http.ResponseWriter, r *http.Request) {
	var req pickerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var err error
	if req.Field != "" {
		err = s.editWheel(req)
	} else {
		sel := s.usecase.Snapshot().Selection
		if req.Hours != nil {
			sel.Hours = *req.Hours
		}
		if req.Minutes != nil {
			sel.Minutes = *req.Minutes
		}
		if req.Seconds != nil {
			sel.Seconds = *req.Seconds
		}
		err = s.usecase.SetSelection(sel)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshotToView(s.usecase.Snapshot()))
}

func (s *Server) editWheel(req pickerPayload) error {
	field, err := picker.ParseField(req.Field)
	if err != nil {
		return err
	}
	switch {
	case req.Offset != nil:
		_, err = s.usecase.ScrollPicker(field, *req.Offset)
	case req.Index != nil:
		_, err = s.usecase.SetPickerIndex(field, *req.Index)
	default:
		err = fmt.Errorf("%w: offset or index is required", errBadRequest)
	}
	return err
}

type settingsPayload struct {
	Language         *string                   `json:"language"`
	TickInterval     *string                   `json:"tickInterval"`
	DefaultSelection *domain.DurationSelection `json:"defaultSelection"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, settingsToView(s.usecase.Snapshot().Settings))
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	settings := s.usecase.Snapshot().Settings
	if req.Language != nil {
		lang, err := domain.ParseLanguage(*req.Language)
		if err != nil {
			respondError(w, err)
			return
		}
		settings.Language = lang
	}
	if req.TickInterval != nil {
		d, err := time.ParseDuration(*req.TickInterval)
		if err != nil {
			respondError(w, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		settings.TickInterval = d
	}
	if req.DefaultSelection != nil {
		settings.DefaultSelection = *req.DefaultSelection
	}

	if err := s.usecase.UpdateSettings(settings); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settingsToView(s.usecase.Snapshot().Settings))
}

func (s *Server) handleToggleLanguage(w http.ResponseWriter, r *http.Request) {
	if _, err := s.usecase.ToggleLanguage(); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshotToView(s.usecase.Snapshot()))
}

// handleEvents streams a snapshot as a server-sent event after every change.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	updates := make(chan domain.Snapshot, 16)
	unsubscribe := s.usecase.Subscribe(func(snap domain.Snapshot) {
		select {
		case updates <- snap:
		default:
			// Slow reader; it will catch up on the next change
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	send := func(snap domain.Snapshot) bool {
		data, err := json.Marshal(snapshotToView(snap))
		if err != nil {
			logging.Errorf("encode event: %v", err)
			return false
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send(s.usecase.Snapshot()) {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-updates:
			if !send(snap) {
				return
			}
		}
	}
}

var errBadRequest = errors.New("bad request")

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrIllegalCommand), errors.Is(err, domain.ErrPickerLocked):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownCommand),
		errors.Is(err, domain.ErrUnknownMode),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrUnknownLanguage),
		errors.Is(err, domain.ErrInvalidTickInterval),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Errorf("request failed: %v", err)
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("encode JSON: %v", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.Debugf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
