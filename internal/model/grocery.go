package model

import "time"

// GroceryItem lives in the single shared per-household list.
type GroceryItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Note        string    `json:"note"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	HouseholdID string    `json:"household_id"`
}

// GroceryArchive is a snapshot taken when the active list is cleared.
// Archives are never deleted by the application.
type GroceryArchive struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	HouseholdID string    `json:"household_id"`
}

type GroceryArchiveItem struct {
	ID        string `json:"id"`
	ArchiveID string `json:"archive_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}
