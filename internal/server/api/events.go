package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ayusman/mudra/internal/store"
)

// MaxEventLimit caps the limit query parameter of the event list.
const MaxEventLimit = 1000

// EventHandler serves the history of dispatched commands.
type EventHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewEventHandler creates a new EventHandler with the given store.
func NewEventHandler(s *store.Store, logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{store: s, logger: logger}
}

// Register mounts the event routes on r.
//
//	GET    /api/events?limit=N
//	GET    /api/events/summary
//	DELETE /api/events
func (h *EventHandler) Register(r chi.Router) {
	r.Get("/api/events", h.list)
	r.Get("/api/events/summary", h.summary)
	r.Delete("/api/events", h.clear)
}

func (h *EventHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultEventLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxEventLimit)
	}

	events, err := h.store.Events().List(limit)
	if err != nil {
		h.logger.Error("listing events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.Events().Summary()
	if err != nil {
		h.logger.Error("summarising events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to summarise events")
		return
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":    total,
		"commands": counts,
	})
}

func (h *EventHandler) clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Events().Clear()
	if err != nil {
		h.logger.Error("clearing events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear events")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
