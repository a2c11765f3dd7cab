package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwestby/choreboard/internal/model"
)

type GroceryStore struct {
	db *sql.DB
}

func NewGroceryStore(db *sql.DB) *GroceryStore {
	return &GroceryStore{db: db}
}

// --- Active list ---

func scanGroceryItem(scanner interface{ Scan(...any) error }) (*model.GroceryItem, error) {
	var item model.GroceryItem
	var completed int
	err := scanner.Scan(&item.ID, &item.Name, &item.Quantity, &item.Note, &completed, &item.HouseholdID, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	item.Completed = completed != 0
	return &item, nil
}

const groceryCols = `id, name, quantity, note, completed, household_id, created_at`

func (s *GroceryStore) List(householdID string) ([]model.GroceryItem, error) {
	rows, err := s.db.Query(
		`SELECT `+groceryCols+` FROM groceries WHERE household_id = ? ORDER BY created_at ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list groceries: %w", err)
	}
	defer rows.Close()

	var items []model.GroceryItem
	for rows.Next() {
		item, err := scanGroceryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan grocery item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *GroceryStore) GetByID(id, householdID string) (*model.GroceryItem, error) {
	row := s.db.QueryRow(
		`SELECT `+groceryCols+` FROM groceries WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	item, err := scanGroceryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get grocery item: %w", err)
	}
	return item, nil
}

func (s *GroceryStore) Create(name string, quantity int, note, householdID string) (*model.GroceryItem, error) {
	if quantity <= 0 {
		quantity = 1
	}
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO groceries (id, name, quantity, note, household_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, quantity, note, householdID, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert grocery item: %w", err)
	}
	return s.GetByID(id, householdID)
}

// CreateMany inserts items in one transaction, returning them in input
// order. Used by the archive restore.
func (s *GroceryStore) CreateMany(items []model.GroceryItem, householdID string) ([]model.GroceryItem, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	ids := make([]string, 0, len(items))
	for _, item := range items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		id := uuid.NewString()
		if _, err := tx.Exec(
			`INSERT INTO groceries (id, name, quantity, note, household_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			id, item.Name, quantity, item.Note, householdID, now,
		); err != nil {
			return nil, fmt.Errorf("insert grocery item %q: %w", item.Name, err)
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	created := make([]model.GroceryItem, 0, len(ids))
	for _, id := range ids {
		item, err := s.GetByID(id, householdID)
		if err != nil {
			return nil, err
		}
		created = append(created, *item)
	}
	return created, nil
}

func (s *GroceryStore) Update(id, name string, quantity int, note string, completed bool, householdID string) (*model.GroceryItem, error) {
	if quantity <= 0 {
		quantity = 1
	}
	completedInt := 0
	if completed {
		completedInt = 1
	}
	_, err := s.db.Exec(
		`UPDATE groceries SET name = ?, quantity = ?, note = ?, completed = ? WHERE id = ? AND household_id = ?`,
		name, quantity, note, completedInt, id, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("update grocery item: %w", err)
	}
	return s.GetByID(id, householdID)
}

func (s *GroceryStore) Delete(id, householdID string) error {
	_, err := s.db.Exec(`DELETE FROM groceries WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete grocery item: %w", err)
	}
	return nil
}

func (s *GroceryStore) DeleteAll(householdID string) error {
	_, err := s.db.Exec(`DELETE FROM groceries WHERE household_id = ?`, householdID)
	if err != nil {
		return fmt.Errorf("delete all groceries: %w", err)
	}
	return nil
}

// --- Archives ---

func scanArchive(scanner interface{ Scan(...any) error }) (*model.GroceryArchive, error) {
	var a model.GroceryArchive
	err := scanner.Scan(&a.ID, &a.HouseholdID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const archiveCols = `id, household_id, created_at`

func (s *GroceryStore) CreateArchive(householdID string) (*model.GroceryArchive, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO groceries_archives (id, household_id, created_at) VALUES (?, ?, ?)`,
		id, householdID, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert archive: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+archiveCols+` FROM groceries_archives WHERE id = ?`, id)
	return scanArchive(row)
}

func (s *GroceryStore) ListArchives(householdID string, limit int) ([]model.GroceryArchive, error) {
	rows, err := s.db.Query(
		`SELECT `+archiveCols+` FROM groceries_archives WHERE household_id = ? ORDER BY created_at DESC LIMIT ?`,
		householdID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}
	defer rows.Close()

	var archives []model.GroceryArchive
	for rows.Next() {
		a, err := scanArchive(rows)
		if err != nil {
			return nil, fmt.Errorf("scan archive: %w", err)
		}
		archives = append(archives, *a)
	}
	return archives, rows.Err()
}

func (s *GroceryStore) AddArchiveItems(archiveID string, items []model.GroceryItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if _, err := tx.Exec(
			`INSERT INTO groceries_archive_items (id, archive_id, name, quantity, note) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), archiveID, item.Name, item.Quantity, item.Note,
		); err != nil {
			return fmt.Errorf("insert archive item %q: %w", item.Name, err)
		}
	}
	return tx.Commit()
}

// ListArchiveItems returns the items of the given archives, newest
// archive first, preserving insertion order within an archive.
func (s *GroceryStore) ListArchiveItems(archiveIDs []string) ([]model.GroceryArchiveItem, error) {
	if len(archiveIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(archiveIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(archiveIDs))
	for i, id := range archiveIDs {
		args[i] = id
	}

	rows, err := s.db.Query(
		`SELECT i.id, i.archive_id, i.name, i.quantity, i.note
		 FROM groceries_archive_items i
		 JOIN groceries_archives a ON a.id = i.archive_id
		 WHERE i.archive_id IN (`+placeholders+`)
		 ORDER BY a.created_at DESC, i.rowid ASC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list archive items: %w", err)
	}
	defer rows.Close()

	var items []model.GroceryArchiveItem
	for rows.Next() {
		var item model.GroceryArchiveItem
		if err := rows.Scan(&item.ID, &item.ArchiveID, &item.Name, &item.Quantity, &item.Note); err != nil {
			return nil, fmt.Errorf("scan archive item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
