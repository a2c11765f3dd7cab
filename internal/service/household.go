package service

import (
	"log/slog"
	"strings"

	"github.com/mwestby/choreboard/internal/defaults"
	"github.com/mwestby/choreboard/internal/model"
	"github.com/mwestby/choreboard/internal/store"
)

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Snapshot is the full household state a client needs on load.
type Snapshot struct {
	Profiles   []model.UserProfile     `json:"profiles"`
	Categories []model.Category        `json:"categories"`
	Tasks      []model.Task            `json:"tasks"`
	Groceries  []model.GroceryItem     `json:"groceries"`
	Events     []model.CompletionEvent `json:"events"`
}

type HouseholdService struct {
	profiles   *store.ProfileStore
	categories *store.CategoryStore
	tasks      *store.TaskStore
	events     *store.CompletionEventStore
	groceries  *store.GroceryStore
	logger     *slog.Logger
}

func NewHouseholdService(
	ps *store.ProfileStore,
	cs *store.CategoryStore,
	ts *store.TaskStore,
	es *store.CompletionEventStore,
	gs *store.GroceryStore,
	logger *slog.Logger,
) *HouseholdService {
	return &HouseholdService{
		profiles:   ps,
		categories: cs,
		tasks:      ts,
		events:     es,
		groceries:  gs,
		logger:     logger.With("component", "household"),
	}
}

// Load seeds defaults where needed and returns the household snapshot.
// The event window is the last `days` days. A failed event load is
// logged and the snapshot returned without history, so one bad query
// does not blank the whole dashboard.
func (s *HouseholdService) Load(householdID string, days int) (*Snapshot, error) {
	categories, err := s.ensureCategories(householdID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.ensureTasks(categories, householdID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profiles.ListByHousehold(householdID)
	if err != nil {
		return nil, err
	}
	groceries, err := s.groceries.List(householdID)
	if err != nil {
		return nil, err
	}

	events, err := s.events.ListRecent(householdID, days)
	if err != nil {
		s.logger.Error("load completion events", "household_id", householdID, "error", err)
		events = nil
	}

	return &Snapshot{
		Profiles:   profiles,
		Categories: categories,
		Tasks:      tasks,
		Groceries:  groceries,
		Events:     events,
	}, nil
}

// ensureCategories seeds the default categories for a household that
// has none yet.
func (s *HouseholdService) ensureCategories(householdID string) ([]model.Category, error) {
	categories, err := s.categories.List(householdID)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}

	for _, seed := range defaults.Categories() {
		if _, err := s.categories.Create(seed.Name, seed.Icon, seed.Color, householdID); err != nil {
			return nil, err
		}
	}
	return s.categories.List(householdID)
}

// ensureTasks seeds the default tasks into an empty household, and
// re-inserts any default whose title has gone missing. Reconciliation
// is additive: user-created tasks and edits are never touched.
func (s *HouseholdService) ensureTasks(categories []model.Category, householdID string) ([]model.Task, error) {
	tasks, err := s.tasks.List(householdID)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		existing[normalizeTitle(t.Title)] = struct{}{}
	}

	seeded := false
	for _, seed := range defaults.Tasks() {
		if _, ok := existing[normalizeTitle(seed.Title)]; ok {
			continue
		}
		categoryID := defaults.CategoryID(categories, seed.CategoryName)
		if _, err := s.tasks.Create(seed.Title, categoryID, seed.Frequency, seed.Rating, householdID); err != nil {
			return nil, err
		}
		seeded = true
	}
	if !seeded {
		return tasks, nil
	}
	return s.tasks.List(householdID)
}

// Members returns the household's profiles.
func (s *HouseholdService) Members(householdID string) ([]model.UserProfile, error) {
	return s.profiles.ListByHousehold(householdID)
}

// Profile returns a single member's profile.
func (s *HouseholdService) Profile(userID, householdID string) (*model.UserProfile, error) {
	p, err := s.profiles.GetByID(userID, householdID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}
