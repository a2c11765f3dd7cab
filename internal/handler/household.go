package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mwestby/choreboard/internal/auth"
	"github.com/mwestby/choreboard/internal/service"
	"github.com/mwestby/choreboard/internal/websocket"
)

// defaultEventWindowDays bounds how much completion history the
// household snapshot carries.
const defaultEventWindowDays = 35

type HouseholdHandler struct {
	households *service.HouseholdService
	admin      *service.AdminService
	hub        *websocket.Hub
	logger     *slog.Logger
}

func NewHouseholdHandler(hs *service.HouseholdService, as *service.AdminService, hub *websocket.Hub, logger *slog.Logger) *HouseholdHandler {
	return &HouseholdHandler{households: hs, admin: as, hub: hub, logger: logger}
}

// Profile returns the authenticated user's own profile.
func (h *HouseholdHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	profile, err := h.households.Profile(ac.UserID, ac.HouseholdID)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		h.logger.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

// Load returns the full household snapshot, seeding defaults on first use.
func (h *HouseholdHandler) Load(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	days := defaultEventWindowDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	snap, err := h.households.Load(ac.HouseholdID, days)
	if err != nil {
		h.logger.Error("load household", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load household")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"household": snap})
}

// RemoveMember deletes a member and their history. Admin only.
func (h *HouseholdHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	id := idParam(r)

	err := h.admin.RemoveMember(id, ac.UserID, ac.HouseholdID)
	if errors.Is(err, service.ErrSelfRemoval) {
		writeError(w, http.StatusBadRequest, "cannot remove yourself")
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}
	if err != nil {
		h.logger.Error("remove member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove member")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("member", "removed", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
