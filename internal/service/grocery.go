package service

import (
	"log/slog"

	"github.com/mwestby/choreboard/internal/grocery"
	"github.com/mwestby/choreboard/internal/model"
	"github.com/mwestby/choreboard/internal/store"
)

// recentArchiveCount is how many of the newest archives feed the
// quick re-add suggestions.
const recentArchiveCount = 3

type GroceryService struct {
	groceries *store.GroceryStore
	logger    *slog.Logger
}

func NewGroceryService(gs *store.GroceryStore, logger *slog.Logger) *GroceryService {
	return &GroceryService{
		groceries: gs,
		logger:    logger.With("component", "groceries"),
	}
}

func (s *GroceryService) List(householdID string) ([]model.GroceryItem, error) {
	return s.groceries.List(householdID)
}

func (s *GroceryService) Add(name string, quantity int, note, householdID string) (*model.GroceryItem, error) {
	return s.groceries.Create(name, quantity, note, householdID)
}

func (s *GroceryService) Update(id, name string, quantity int, note string, completed bool, householdID string) (*model.GroceryItem, error) {
	existing, err := s.groceries.GetByID(id, householdID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	return s.groceries.Update(id, name, quantity, note, completed, householdID)
}

func (s *GroceryService) Delete(id, householdID string) error {
	existing, err := s.groceries.GetByID(id, householdID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.groceries.Delete(id, householdID)
}

// Clear archives the current list, then empties it. An empty list is
// cleared without creating an empty archive. If the delete fails after
// the archive was written, the archive stays; the next clear simply
// records the same items again.
func (s *GroceryService) Clear(householdID string) error {
	items, err := s.groceries.List(householdID)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		archive, err := s.groceries.CreateArchive(householdID)
		if err != nil {
			return err
		}
		if err := s.groceries.AddArchiveItems(archive.ID, items); err != nil {
			return err
		}
	}
	if err := s.groceries.DeleteAll(householdID); err != nil {
		s.logger.Error("clear groceries after archive", "error", err)
		return err
	}
	return nil
}

// RecentItems returns the items of the newest archives, deduped by
// normalized name, first occurrence kept. Newest archive's items come
// first, so a name that appears in several archives keeps its most
// recent quantity and note.
func (s *GroceryService) RecentItems(householdID string) ([]model.GroceryArchiveItem, error) {
	archives, err := s.groceries.ListArchives(householdID, recentArchiveCount)
	if err != nil {
		return nil, err
	}
	if len(archives) == 0 {
		return nil, nil
	}

	ids := make([]string, len(archives))
	for i, a := range archives {
		ids[i] = a.ID
	}
	items, err := s.groceries.ListArchiveItems(ids)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(items))
	var deduped []model.GroceryArchiveItem
	for _, item := range items {
		key := grocery.NormalizeName(item.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, item)
	}
	return deduped, nil
}

// Restore adds the selected archive items back to the active list,
// skipping any whose normalized name is already present. It returns the
// items actually created.
func (s *GroceryService) Restore(selected []model.GroceryItem, householdID string) ([]model.GroceryItem, error) {
	active, err := s.groceries.List(householdID)
	if err != nil {
		return nil, err
	}
	existing := grocery.NameSet(active)

	var toCreate []model.GroceryItem
	for _, item := range grocery.DedupeByName(selected) {
		if _, ok := existing[grocery.NormalizeName(item.Name)]; ok {
			continue
		}
		toCreate = append(toCreate, item)
	}
	if len(toCreate) == 0 {
		return nil, nil
	}
	return s.groceries.CreateMany(toCreate, householdID)
}
