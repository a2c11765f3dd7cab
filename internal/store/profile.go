package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mwestby/choreboard/internal/model"
)

type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

func scanProfile(scanner interface{ Scan(...any) error }) (*model.UserProfile, error) {
	var p model.UserProfile
	err := scanner.Scan(&p.ID, &p.Name, &p.Email, &p.Avatar, &p.Color, &p.Role, &p.HouseholdID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const profileCols = `id, name, email, avatar, color, role, household_id`

func (s *ProfileStore) Create(name, email, avatar, color, role, passwordHash, householdID string) (*model.UserProfile, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO profiles (id, name, email, avatar, color, role, password_hash, household_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, email, avatar, color, role, passwordHash, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return s.GetByID(id, householdID)
}

func (s *ProfileStore) GetByID(id, householdID string) (*model.UserProfile, error) {
	row := s.db.QueryRow(
		`SELECT `+profileCols+` FROM profiles WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) GetByEmail(email string) (*model.UserProfile, error) {
	row := s.db.QueryRow(`SELECT `+profileCols+` FROM profiles WHERE email = ?`, email)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by email: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) ListByHousehold(householdID string) ([]model.UserProfile, error) {
	rows, err := s.db.Query(
		`SELECT `+profileCols+` FROM profiles WHERE household_id = ? ORDER BY created_at ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// PasswordHash returns the stored bcrypt hash for an email, or empty
// string when the profile does not exist.
func (s *ProfileStore) PasswordHash(email string) (string, error) {
	var hash string
	err := s.db.QueryRow(`SELECT password_hash FROM profiles WHERE email = ?`, email).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get password hash: %w", err)
	}
	return hash, nil
}

func (s *ProfileStore) UpdatePasswordHash(email, passwordHash string) error {
	_, err := s.db.Exec(`UPDATE profiles SET password_hash = ? WHERE email = ?`, passwordHash, email)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

func (s *ProfileStore) Delete(id, householdID string) error {
	_, err := s.db.Exec(`DELETE FROM profiles WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
