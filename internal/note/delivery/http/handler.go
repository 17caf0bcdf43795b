package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/warehouse-inbound/internal/note/domain"
	"github.com/tair/warehouse-inbound/internal/note/export"
	"github.com/tair/warehouse-inbound/internal/note/ledger"
	"github.com/tair/warehouse-inbound/internal/note/usecase/command"
	"github.com/tair/warehouse-inbound/internal/note/usecase/query"
	"github.com/tair/warehouse-inbound/internal/note/validation"
	"github.com/tair/warehouse-inbound/pkg/logger"
)

// NoteHandler handles HTTP requests for inbound notes using CQRS pattern
type NoteHandler struct {
	createHandler *command.CreateNoteHandler
	updateHandler *command.UpdateNoteHandler
	deleteHandler *command.DeleteNoteHandler

	getHandler  *query.GetNoteHandler
	listHandler *query.ListNotesHandler

	repo     domain.NoteRepository
	exporter *export.Exporter

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalNotes     prometheus.Gauge
}

// NewNoteHandlerWithDI creates a new note handler using dependency injection.
// This is the constructor Wire builds. The exporter may be nil, in which case
// the export endpoint answers 503.
func NewNoteHandlerWithDI(
	createHandler *command.CreateNoteHandler,
	updateHandler *command.UpdateNoteHandler,
	deleteHandler *command.DeleteNoteHandler,
	getHandler *query.GetNoteHandler,
	listHandler *query.ListNotesHandler,
	repo domain.NoteRepository,
	exporter *export.Exporter,
) *NoteHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "note_service_requests_total",
			Help: "Total number of requests to note service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "note_service_request_duration_seconds",
			Help:    "Duration of note service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalNotes := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "note_service_total_notes",
			Help: "Total number of inbound notes in the system",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalNotes)

	return &NoteHandler{
		createHandler:  createHandler,
		updateHandler:  updateHandler,
		deleteHandler:  deleteHandler,
		getHandler:     getHandler,
		listHandler:    listHandler,
		repo:           repo,
		exporter:       exporter,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		totalNotes:     totalNotes,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *NoteHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers all note routes
func (h *NoteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/notes", h.metricsMiddleware("/api/notes", h.ListNotes)).Methods("GET")
	router.HandleFunc("/api/notes", h.metricsMiddleware("/api/notes", h.CreateNote)).Methods("POST")
	router.HandleFunc("/api/notes/{id}", h.metricsMiddleware("/api/notes/{id}", h.GetNote)).Methods("GET")
	router.HandleFunc("/api/notes/{id}", h.metricsMiddleware("/api/notes/{id}", h.UpdateNote)).Methods("PUT")
	router.HandleFunc("/api/notes/{id}", h.metricsMiddleware("/api/notes/{id}", h.DeleteNote)).Methods("DELETE")
	router.HandleFunc("/api/notes/{id}/export", h.metricsMiddleware("/api/notes/{id}/export", h.ExportNote)).Methods("GET")
}

// CreateNote handles POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date     *string               `json:"Date"`
		Products []validation.LineItem `json:"Products"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	note, err := h.createHandler.Handle(r.Context(), command.CreateNoteCommand{
		Date:     req.Date,
		Products: req.Products,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create note")
		respondError(w, err)
		return
	}

	h.updateNotesMetric(r)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Note created successfully",
		Data:    note,
	})
}

// ListNotes handles GET /api/notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.listHandler.Handle(r.Context(), query.ListNotesQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list notes")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list notes",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"notes": notes,
			"total": len(notes),
		},
	})
}

// GetNote handles GET /api/notes/{id}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	note, err := h.getHandler.Handle(r.Context(), query.GetNoteQuery{NoteID: vars["id"]})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    note,
	})
}

// UpdateNote handles PUT /api/notes/{id}. Products is a full replacement of
// the stored line items; the ledger is reconciled against the difference.
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Date     *string               `json:"Date"`
		Products []validation.LineItem `json:"Products"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	note, err := h.updateHandler.Handle(r.Context(), command.UpdateNoteCommand{
		NoteID:   vars["id"],
		Date:     req.Date,
		Products: req.Products,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("note_id", vars["id"]).Msg("Failed to update note")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Note updated successfully",
		Data:    note,
	})
}

// DeleteNote handles DELETE /api/notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteNoteCommand{NoteID: vars["id"]}); err != nil {
		logger.Error(r.Context()).Err(err).Str("note_id", vars["id"]).Msg("Failed to delete note")
		respondError(w, err)
		return
	}

	h.updateNotesMetric(r)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Note deleted successfully",
	})
}

// ExportNote handles GET /api/notes/{id}/export
func (h *NoteHandler) ExportNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if h.exporter == nil {
		respondJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Export storage is not configured",
		})
		return
	}

	note, err := h.getHandler.Handle(r.Context(), query.GetNoteQuery{NoteID: vars["id"]})
	if err != nil {
		respondError(w, err)
		return
	}

	url, err := h.exporter.Export(r.Context(), note)
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("note_id", vars["id"]).Msg("Failed to export note")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to export note",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]string{"url": url},
	})
}

// RegisterHealthCheck registers the health check endpoint
func (h *NoteHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.repo.FindAll(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Store unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Note service is healthy",
		})
	}).Methods("GET")
}

// updateNotesMetric updates the total notes gauge
func (h *NoteHandler) updateNotesMetric(r *http.Request) {
	notes, err := h.repo.FindAll(r.Context())
	if err == nil {
		h.totalNotes.Set(float64(len(notes)))
	}
}

// respondError maps domain errors onto HTTP status codes
func respondError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var aerr *ledger.AdjustmentError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   verr.Error(),
			Errors:  verr.Messages,
		})
	case errors.As(err, &aerr):
		// The product service rejected an adjustment, e.g. a reversal
		// that would drive a quantity negative
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   aerr.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Note not found",
		})
	default:
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   err.Error(),
		})
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
