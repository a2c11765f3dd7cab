package model

import "time"

const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	HouseholdID string `json:"household_id"`
}

// Task is a recurring chore. CompletedBy is a derived cache of the user
// ids whose latest completion event is completed; the event log is the
// source of truth.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CategoryID  string    `json:"category_id"`
	Frequency   string    `json:"frequency"`
	Rating      int       `json:"rating"`
	CompletedBy []string  `json:"completed_by"`
	CreatedAt   time.Time `json:"created_at"`
	HouseholdID string    `json:"household_id"`
}

// CompletionEvent is an immutable log entry recording a completion-state
// change for a (task, user) pair. The log is append-only; history is
// deleted only by an explicit admin reset.
type CompletionEvent struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"task_id"`
	UserID      string    `json:"user_id"`
	Completed   bool      `json:"completed"`
	OccurredAt  time.Time `json:"occurred_at"`
	HouseholdID string    `json:"household_id"`
}
