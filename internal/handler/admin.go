package handler

import (
	"log/slog"
	"net/http"

	"github.com/mwestby/choreboard/internal/auth"
	"github.com/mwestby/choreboard/internal/service"
	"github.com/mwestby/choreboard/internal/websocket"
)

type AdminHandler struct {
	admin  *service.AdminService
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewAdminHandler(as *service.AdminService, hub *websocket.Hub, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: as, hub: hub, logger: logger}
}

// ResetCompletions wipes the completion log and every task's
// completed_by cache.
func (h *AdminHandler) ResetCompletions(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	if err := h.admin.ResetCompletions(ac.HouseholdID); err != nil {
		h.logger.Error("reset completions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reset completions")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("completions", "reset", "", nil))
	w.WriteHeader(http.StatusNoContent)
}

// ResetTasks deletes all tasks and the completion log; defaults are
// reseeded on the next household load.
func (h *AdminHandler) ResetTasks(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	if err := h.admin.ResetTasks(ac.HouseholdID); err != nil {
		h.logger.Error("reset tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reset tasks")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("tasks", "reset", "", nil))
	w.WriteHeader(http.StatusNoContent)
}
