package service

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/mwestby/choreboard/internal/completion"
	"github.com/mwestby/choreboard/internal/model"
	"github.com/mwestby/choreboard/internal/store"
)

// TaskService owns task CRUD and the completion toggle. The toggle
// maintains two records of the same fact: the completed_by cache on the
// task row (fast path for rendering) and the append-only event log
// (authoritative history).
type TaskService struct {
	tasks      *store.TaskStore
	categories *store.CategoryStore
	events     *store.CompletionEventStore
	logger     *slog.Logger
}

func NewTaskService(ts *store.TaskStore, cs *store.CategoryStore, es *store.CompletionEventStore, logger *slog.Logger) *TaskService {
	return &TaskService{
		tasks:      ts,
		categories: cs,
		events:     es,
		logger:     logger.With("component", "tasks"),
	}
}

func (s *TaskService) List(householdID string) ([]model.Task, error) {
	return s.tasks.List(householdID)
}

func (s *TaskService) Create(title, categoryID, frequency string, rating int, householdID string) (*model.Task, error) {
	cat, err := s.categories.GetByID(categoryID, householdID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}
	return s.tasks.Create(title, categoryID, frequency, rating, householdID)
}

func (s *TaskService) Update(id, title, categoryID, frequency string, rating int, householdID string) (*model.Task, error) {
	existing, err := s.tasks.GetByID(id, householdID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	cat, err := s.categories.GetByID(categoryID, householdID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}
	return s.tasks.Update(id, title, categoryID, frequency, rating, householdID)
}

func (s *TaskService) Delete(id, householdID string) error {
	existing, err := s.tasks.GetByID(id, householdID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.tasks.Delete(id, householdID)
}

// Toggle flips the user's membership in the task's completed_by set and
// appends exactly one event recording the new state. Two toggles in a
// row restore the flag but leave two events in the log.
func (s *TaskService) Toggle(taskID, userID, householdID string) (*model.Task, error) {
	task, err := s.tasks.GetByID(taskID, householdID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	completedBy := task.CompletedBy
	completed := !slices.Contains(completedBy, userID)
	if completed {
		completedBy = append(completedBy, userID)
	} else {
		completedBy = slices.DeleteFunc(completedBy, func(id string) bool { return id == userID })
	}

	updated, err := s.tasks.UpdateCompletedBy(taskID, completedBy, householdID)
	if err != nil {
		return nil, err
	}

	// Log append failure leaves the cache ahead of the log; no retry,
	// RebuildCompletedBy reconciles on demand.
	if _, err := s.events.Append(taskID, userID, completed, time.Now(), householdID); err != nil {
		s.logger.Error("append completion event", "task_id", taskID, "user_id", userID, "error", err)
		return nil, err
	}

	return updated, nil
}

// RebuildCompletedBy recomputes a task's completed_by cache from the
// full event log, discarding whatever the cache currently holds.
func (s *TaskService) RebuildCompletedBy(taskID, householdID string) (*model.Task, error) {
	task, err := s.tasks.GetByID(taskID, householdID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	events, err := s.events.ListByTask(taskID, householdID)
	if err != nil {
		return nil, err
	}
	completedBy := completion.ResolveCompletedBy(taskID, events)
	return s.tasks.UpdateCompletedBy(taskID, completedBy, householdID)
}

// RecentEvents returns the household's completion log for the last N days.
func (s *TaskService) RecentEvents(householdID string, days int) ([]model.CompletionEvent, error) {
	return s.events.ListRecent(householdID, days)
}
