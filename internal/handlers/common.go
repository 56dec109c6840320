// Package handlers serves the library over HTTP as a small JSON API.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/VictoriaMetrics/metrics"
	jsoniter "github.com/json-iterator/go"

	"github.com/mesh-intelligence/shelf/internal/library"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var requestsTotal = metrics.NewCounter("shelf_http_requests_total")

// Handler exposes one Library. Requests are serialized since the library
// reads and rewrites whole collections.
type Handler struct {
	mu     sync.Mutex
	lib    *library.Library
	logger *slog.Logger
}

// New returns a handler for lib. A nil logger uses slog.Default.
func New(lib *library.Library, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{lib: lib, logger: logger}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/books", h.locked(h.HandleListBooks))
	mux.HandleFunc("POST /api/books", h.locked(h.HandleAddBook))
	mux.HandleFunc("DELETE /api/books", h.locked(h.HandleDeleteAll))
	mux.HandleFunc("POST /api/books/{isbn}/borrow", h.locked(h.HandleBorrow))
	mux.HandleFunc("POST /api/books/{isbn}/return", h.locked(h.HandleReturn))
	mux.HandleFunc("GET /api/loans", h.locked(h.HandleLoans))
	mux.HandleFunc("POST /api/login", h.locked(h.HandleLogin))
	mux.HandleFunc("POST /api/logout", h.locked(h.HandleLogout))
	mux.HandleFunc("GET /api/session", h.locked(h.HandleSession))
	mux.HandleFunc("GET /api/stats", h.locked(h.HandleStats))
	mux.HandleFunc("POST /api/import", h.locked(h.HandleImport))
	mux.HandleFunc("GET /api/export.csv", h.locked(h.HandleExportCSV))
	mux.HandleFunc("GET /api/export.pdf", h.locked(h.HandleExportPDF))
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	mux.HandleFunc("GET /healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			h.logger.Error("Unable to write healthcheck", "err", err)
		}
	})
	return mux
}

func (h *Handler) locked(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestsTotal.Inc()
		h.mu.Lock()
		defer h.mu.Unlock()
		next(w, r)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed", "err", err)
	} else {
		h.logger.Debug("request refused", "err", err)
	}
	h.writeJSON(w, code, errorResponse{Error: err.Error()})
}

// statusFor maps library errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation), errors.Is(err, types.ErrEmptyCatalog):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNoUser):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrAlreadyBorrowed), errors.Is(err, types.ErrDuplicateISBN):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
