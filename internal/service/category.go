package service

import (
	"log/slog"

	"github.com/mwestby/choreboard/internal/model"
	"github.com/mwestby/choreboard/internal/store"
)

type CategoryService struct {
	categories *store.CategoryStore
	tasks      *store.TaskStore
	logger     *slog.Logger
}

func NewCategoryService(cs *store.CategoryStore, ts *store.TaskStore, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		categories: cs,
		tasks:      ts,
		logger:     logger.With("component", "categories"),
	}
}

func (s *CategoryService) List(householdID string) ([]model.Category, error) {
	return s.categories.List(householdID)
}

func (s *CategoryService) Create(name, icon, color, householdID string) (*model.Category, error) {
	return s.categories.Create(name, icon, color, householdID)
}

func (s *CategoryService) Update(id, name, icon, color, householdID string) (*model.Category, error) {
	existing, err := s.categories.GetByID(id, householdID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	return s.categories.Update(id, name, icon, color, householdID)
}

// Delete removes a category and cascades to its tasks, so no task is
// left referencing a missing category.
func (s *CategoryService) Delete(id, householdID string) error {
	existing, err := s.categories.GetByID(id, householdID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.tasks.DeleteByCategory(id, householdID); err != nil {
		return err
	}
	return s.categories.Delete(id, householdID)
}
