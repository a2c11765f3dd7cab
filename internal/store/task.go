package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwestby/choreboard/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

// completed_by is persisted as a JSON array of user ids. It is a derived
// cache of the completion log, kept in step by the task service.
func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var completedBy string
	err := scanner.Scan(&t.ID, &t.Title, &t.CategoryID, &t.Frequency, &t.Rating, &completedBy, &t.HouseholdID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(completedBy), &t.CompletedBy); err != nil {
		return nil, fmt.Errorf("decode completed_by: %w", err)
	}
	if t.CompletedBy == nil {
		t.CompletedBy = []string{}
	}
	return &t, nil
}

func encodeCompletedBy(userIDs []string) (string, error) {
	if userIDs == nil {
		userIDs = []string{}
	}
	data, err := json.Marshal(userIDs)
	if err != nil {
		return "", fmt.Errorf("encode completed_by: %w", err)
	}
	return string(data), nil
}

const taskCols = `id, title, category_id, frequency, rating, completed_by, household_id, created_at`

func (s *TaskStore) List(householdID string) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks WHERE household_id = ? ORDER BY created_at ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) GetByID(id, householdID string) (*model.Task, error) {
	row := s.db.QueryRow(
		`SELECT `+taskCols+` FROM tasks WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) Create(title, categoryID, frequency string, rating int, householdID string) (*model.Task, error) {
	if rating <= 0 {
		rating = 1
	}
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO tasks (id, title, category_id, frequency, rating, completed_by, household_id, created_at) VALUES (?, ?, ?, ?, ?, '[]', ?, ?)`,
		id, title, categoryID, frequency, rating, householdID, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return s.GetByID(id, householdID)
}

func (s *TaskStore) Update(id, title, categoryID, frequency string, rating int, householdID string) (*model.Task, error) {
	if rating <= 0 {
		rating = 1
	}
	_, err := s.db.Exec(
		`UPDATE tasks SET title = ?, category_id = ?, frequency = ?, rating = ? WHERE id = ? AND household_id = ?`,
		title, categoryID, frequency, rating, id, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.GetByID(id, householdID)
}

func (s *TaskStore) UpdateCompletedBy(id string, completedBy []string, householdID string) (*model.Task, error) {
	encoded, err := encodeCompletedBy(completedBy)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`UPDATE tasks SET completed_by = ? WHERE id = ? AND household_id = ?`,
		encoded, id, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("update completed_by: %w", err)
	}
	return s.GetByID(id, householdID)
}

// ClearCompletedBy empties the cached completion set on every task in
// the household, used by the admin completions reset.
func (s *TaskStore) ClearCompletedBy(householdID string) error {
	_, err := s.db.Exec(`UPDATE tasks SET completed_by = '[]' WHERE household_id = ?`, householdID)
	if err != nil {
		return fmt.Errorf("clear completed_by: %w", err)
	}
	return nil
}

func (s *TaskStore) Delete(id, householdID string) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *TaskStore) DeleteByCategory(categoryID, householdID string) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE category_id = ? AND household_id = ?`, categoryID, householdID)
	if err != nil {
		return fmt.Errorf("delete tasks by category: %w", err)
	}
	return nil
}

func (s *TaskStore) DeleteAll(householdID string) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE household_id = ?`, householdID)
	if err != nil {
		return fmt.Errorf("delete all tasks: %w", err)
	}
	return nil
}
