package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mwestby/choreboard/internal/model"
)

type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func scanCategory(scanner interface{ Scan(...any) error }) (*model.Category, error) {
	var c model.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.HouseholdID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const categoryCols = `id, name, icon, color, household_id`

func (s *CategoryStore) List(householdID string) ([]model.Category, error) {
	rows, err := s.db.Query(
		`SELECT `+categoryCols+` FROM categories WHERE household_id = ? ORDER BY created_at ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (s *CategoryStore) GetByID(id, householdID string) (*model.Category, error) {
	row := s.db.QueryRow(
		`SELECT `+categoryCols+` FROM categories WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *CategoryStore) Create(name, icon, color, householdID string) (*model.Category, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO categories (id, name, icon, color, household_id) VALUES (?, ?, ?, ?, ?)`,
		id, name, icon, color, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return s.GetByID(id, householdID)
}

func (s *CategoryStore) Update(id, name, icon, color, householdID string) (*model.Category, error) {
	_, err := s.db.Exec(
		`UPDATE categories SET name = ?, icon = ?, color = ? WHERE id = ? AND household_id = ?`,
		name, icon, color, id, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return s.GetByID(id, householdID)
}

func (s *CategoryStore) Delete(id, householdID string) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
