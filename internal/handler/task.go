package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mwestby/choreboard/internal/auth"
	"github.com/mwestby/choreboard/internal/completion"
	"github.com/mwestby/choreboard/internal/model"
	"github.com/mwestby/choreboard/internal/service"
	"github.com/mwestby/choreboard/internal/websocket"
)

type TaskHandler struct {
	tasks  *service.TaskService
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewTaskHandler(ts *service.TaskService, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: ts, hub: hub, logger: logger}
}

type taskRequest struct {
	Title      string `json:"title"`
	CategoryID string `json:"category_id"`
	Frequency  string `json:"frequency"`
	Rating     int    `json:"rating"`
}

func (h *TaskHandler) parse(r *http.Request, w http.ResponseWriter) (*taskRequest, bool) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return nil, false
	}
	if req.CategoryID == "" {
		writeError(w, http.StatusBadRequest, "category_id is required")
		return nil, false
	}
	if req.Frequency != model.FrequencyDaily && req.Frequency != model.FrequencyWeekly {
		writeError(w, http.StatusBadRequest, "frequency must be daily or weekly")
		return nil, false
	}
	return &req, true
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	tasks, err := h.tasks.List(ac.HouseholdID)
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	req, ok := h.parse(r, w)
	if !ok {
		return
	}

	task, err := h.tasks.Create(req.Title, req.CategoryID, req.Frequency, req.Rating, ac.HouseholdID)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "category not found")
		return
	}
	if err != nil {
		h.logger.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("task", "created", task.ID, nil))
	writeJSON(w, http.StatusCreated, map[string]any{"task": task})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	id := idParam(r)
	req, ok := h.parse(r, w)
	if !ok {
		return
	}

	task, err := h.tasks.Update(id, req.Title, req.CategoryID, req.Frequency, req.Rating, ac.HouseholdID)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		h.logger.Error("update task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("task", "updated", task.ID, nil))
	writeJSON(w, http.StatusOK, map[string]any{"task": task})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	id := idParam(r)

	err := h.tasks.Delete(id, ac.HouseholdID)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		h.logger.Error("delete task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("task", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Toggle flips the caller's completion state on a task.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	id := idParam(r)

	task, err := h.tasks.Toggle(id, ac.UserID, ac.HouseholdID)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		h.logger.Error("toggle task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to toggle task")
		return
	}

	h.hub.Broadcast(ac.HouseholdID, websocket.NewMessage("task", "toggled", task.ID, map[string]any{
		"user_id":      ac.UserID,
		"completed_by": task.CompletedBy,
	}))
	writeJSON(w, http.StatusOK, map[string]any{"task": task})
}

// Completions returns the household's raw event log for the last N days.
func (h *TaskHandler) Completions(w http.ResponseWriter, r *http.Request) {
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

	events, err := h.tasks.RecentEvents(ac.HouseholdID, days)
	if err != nil {
		h.logger.Error("list completions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list completions")
		return
	}
	if events == nil {
		events = []model.CompletionEvent{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// Summary returns the caller's completion counts and point totals.
func (h *TaskHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	now := time.Now()

	tasks, err := h.tasks.List(ac.HouseholdID)
	if err != nil {
		h.logger.Error("summary tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}
	events, err := h.tasks.RecentEvents(ac.HouseholdID, defaultEventWindowDays)
	if err != nil {
		h.logger.Error("summary events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	ratingByTask := make(map[string]int, len(tasks))
	for _, t := range tasks {
		ratingByTask[t.ID] = t.Rating
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"summary": map[string]any{
			"daily":   completion.DailyCompletion(tasks, ac.UserID, events, now),
			"weekly":  completion.WeeklyCompletion(tasks, ac.UserID, events, now),
			"days":    completion.DailySummaries(events, ratingByTask),
			"monthly": completion.MonthlyTotals(events, ratingByTask, now),
		},
	})
}
