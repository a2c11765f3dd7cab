package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mwestby/choreboard/internal/auth"
	"github.com/mwestby/choreboard/internal/model"
	"github.com/mwestby/choreboard/internal/service"
	"github.com/mwestby/choreboard/internal/websocket"
)

type CategoryHandler struct {
	categories *service.CategoryService
	hub        *websocket.Hub
	logger     *slog.Logger
}

func NewCategoryHandler(cs *service.CategoryService, hub *websocket.Hub, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: cs, hub: hub, logger: logger}
}

type categoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func (h *CategoryHandler) parse(r *http.Request, w http.ResponseWriter) (*categoryRequest, bool) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return nil, false
	}
	return &req, true
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	categories, err := h.categories.List(ac.HouseholdID)
	if err != nil {
		h.logger.Error("list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	req, ok := h.parse(r, w)
	if !ok {
		return
	}

	category, err := h.categories.Create(req.Name, req.Icon, req.Color, ac.HouseholdID)
	if err != nil {
		h.logger.Error("create category", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("category", "created", category.ID, nil))
	writeJSON(w, http.StatusCreated, map[string]any{"category": category})
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	id := idParam(r)
	req, ok := h.parse(r, w)
	if !ok {
		return
	}

	category, err := h.categories.Update(id, req.Name, req.Icon, req.Color, ac.HouseholdID)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		h.logger.Error("update category", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("category", "updated", category.ID, nil))
	writeJSON(w, http.StatusOK, map[string]any{"category": category})
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	id := idParam(r)

	err := h.categories.Delete(id, ac.HouseholdID)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		h.logger.Error("delete category", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("category", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
