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

type GroceryHandler struct {
	groceries *service.GroceryService
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewGroceryHandler(gs *service.GroceryService, hub *websocket.Hub, logger *slog.Logger) *GroceryHandler {
	return &GroceryHandler{groceries: gs, hub: hub, logger: logger}
}

type groceryRequest struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
	Completed bool   `json:"completed"`
}

func (h *GroceryHandler) parse(r *http.Request, w http.ResponseWriter) (*groceryRequest, bool) {
	var req groceryRequest
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

func (h *GroceryHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	items, err := h.groceries.List(ac.HouseholdID)
	if err != nil {
		h.logger.Error("list groceries", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list groceries")
		return
	}
	if items == nil {
		items = []model.GroceryItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *GroceryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	req, ok := h.parse(r, w)
	if !ok {
		return
	}

	item, err := h.groceries.Add(req.Name, req.Quantity, req.Note, ac.HouseholdID)
	if err != nil {
		h.logger.Error("create grocery item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("grocery_item", "created", item.ID, nil))
	writeJSON(w, http.StatusCreated, map[string]any{"item": item})
}

func (h *GroceryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	id := idParam(r)
	req, ok := h.parse(r, w)
	if !ok {
		return
	}

	item, err := h.groceries.Update(id, req.Name, req.Quantity, req.Note, req.Completed, ac.HouseholdID)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		h.logger.Error("update grocery item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("grocery_item", "updated", item.ID, nil))
	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (h *GroceryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	id := idParam(r)

	err := h.groceries.Delete(id, ac.HouseholdID)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		h.logger.Error("delete grocery item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("grocery_item", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Clear archives the current list and empties it.
func (h *GroceryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	if err := h.groceries.Clear(ac.HouseholdID); err != nil {
		h.logger.Error("clear groceries", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear list")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("grocery_list", "cleared", "", nil))
	w.WriteHeader(http.StatusNoContent)
}

// Recent returns deduped items from the newest archives for quick re-adding.
func (h *GroceryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	items, err := h.groceries.RecentItems(ac.HouseholdID)
	if err != nil {
		h.logger.Error("recent grocery items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load recent items")
		return
	}
	if items == nil {
		items = []model.GroceryArchiveItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type restoreRequest struct {
	Items []groceryRequest `json:"items"`
}

// Restore re-adds selected archived items, skipping names already on the list.
func (h *GroceryHandler) Restore(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req restoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items are required")
		return
	}

	selected := make([]model.GroceryItem, 0, len(req.Items))
	for _, item := range req.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		selected = append(selected, model.GroceryItem{Name: name, Quantity: item.Quantity, Note: item.Note})
	}

	created, err := h.groceries.Restore(selected, ac.HouseholdID)
	if err != nil {
		h.logger.Error("restore grocery items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to restore items")
		return
	}
	if created == nil {
		created = []model.GroceryItem{}
	}

	if len(created) > 0 {
		h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("grocery_list", "restored", "", map[string]any{
			"count": len(created),
		}))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": created})
}
