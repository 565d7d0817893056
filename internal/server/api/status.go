package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/store"
)

// Controller is the part of a session the status endpoints need.
type Controller interface {
	Status() app.Status
	SetEnabled(enabled bool)
}

// StatusHandler reports and toggles the gesture session.
type StatusHandler struct {
	ctrl   Controller
	store  *store.Store
	logger *slog.Logger
}

// NewStatusHandler creates a StatusHandler. When s is non-nil the enabled
// flag is persisted so it survives restarts.
func NewStatusHandler(ctrl Controller, s *store.Store, logger *slog.Logger) *StatusHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusHandler{ctrl: ctrl, store: s, logger: logger}
}

// Register mounts GET and PUT /api/status on r.
func (h *StatusHandler) Register(r chi.Router) {
	r.Get("/api/status", h.get)
	r.Put("/api/status", h.update)
}

type updateStatusRequest struct {
	Enabled *bool `json:"enabled"`
}

func (h *StatusHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Status())
}

func (h *StatusHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Enabled == nil {
		writeError(w, http.StatusBadRequest, "enabled is required")
		return
	}

	h.ctrl.SetEnabled(*req.Enabled)

	if h.store != nil {
		if err := h.store.Settings().Set(store.SettingEnabled, strconv.FormatBool(*req.Enabled)); err != nil {
			h.logger.Warn("persisting enabled flag", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, h.ctrl.Status())
}
