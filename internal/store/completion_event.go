package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwestby/choreboard/internal/model"
)

// CompletionEventStore persists the append-only completion log. Events
// are never updated; they are deleted only by the admin resets and by
// member removal.
type CompletionEventStore struct {
	db *sql.DB
}

func NewCompletionEventStore(db *sql.DB) *CompletionEventStore {
	return &CompletionEventStore{db: db}
}

func scanCompletionEvent(scanner interface{ Scan(...any) error }) (*model.CompletionEvent, error) {
	var ev model.CompletionEvent
	var completed int
	err := scanner.Scan(&ev.ID, &ev.TaskID, &ev.UserID, &completed, &ev.OccurredAt, &ev.HouseholdID)
	if err != nil {
		return nil, err
	}
	ev.Completed = completed != 0
	return &ev, nil
}

const completionEventCols = `id, task_id, user_id, completed, occurred_at, household_id`

func (s *CompletionEventStore) Append(taskID, userID string, completed bool, occurredAt time.Time, householdID string) (*model.CompletionEvent, error) {
	id := uuid.NewString()
	completedInt := 0
	if completed {
		completedInt = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO completion_events (id, task_id, user_id, completed, occurred_at, household_id) VALUES (?, ?, ?, ?, ?, ?)`,
		id, taskID, userID, completedInt, occurredAt.UTC(), householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert completion event: %w", err)
	}
	row := s.db.QueryRow(
		`SELECT `+completionEventCols+` FROM completion_events WHERE id = ?`, id,
	)
	return scanCompletionEvent(row)
}

// ListRecent returns the household's events from the last N days,
// oldest first. Ties on occurred_at fall back to insertion order via
// rowid, so the later append wins latest-event resolution.
func (s *CompletionEventStore) ListRecent(householdID string, days int) ([]model.CompletionEvent, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.Query(
		`SELECT `+completionEventCols+` FROM completion_events WHERE household_id = ? AND occurred_at >= ? ORDER BY occurred_at ASC, rowid ASC`,
		householdID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent completion events: %w", err)
	}
	defer rows.Close()

	var events []model.CompletionEvent
	for rows.Next() {
		ev, err := scanCompletionEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

func (s *CompletionEventStore) ListByTask(taskID, householdID string) ([]model.CompletionEvent, error) {
	rows, err := s.db.Query(
		`SELECT `+completionEventCols+` FROM completion_events WHERE task_id = ? AND household_id = ? ORDER BY occurred_at ASC, rowid ASC`,
		taskID, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list completion events by task: %w", err)
	}
	defer rows.Close()

	var events []model.CompletionEvent
	for rows.Next() {
		ev, err := scanCompletionEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

func (s *CompletionEventStore) DeleteAll(householdID string) error {
	_, err := s.db.Exec(`DELETE FROM completion_events WHERE household_id = ?`, householdID)
	if err != nil {
		return fmt.Errorf("delete all completion events: %w", err)
	}
	return nil
}

func (s *CompletionEventStore) DeleteByUser(userID, householdID string) error {
	_, err := s.db.Exec(
		`DELETE FROM completion_events WHERE user_id = ? AND household_id = ?`,
		userID, householdID,
	)
	if err != nil {
		return fmt.Errorf("delete completion events by user: %w", err)
	}
	return nil
}
