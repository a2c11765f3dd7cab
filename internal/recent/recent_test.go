package recent

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildPrependsNewUser(t *testing.T) {
	current := []User{
		{Email: "a@example.com", Name: "Alice"},
		{Email: "b@example.com", Name: "Bob"},
	}

	result := Build(current, User{Email: "c@example.com", Name: "Cara"})

	if len(result) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(result))
	}
	if result[0].Email != "c@example.com" {
		t.Errorf("expected new user first, got %s", result[0].Email)
	}
	if result[1].Email != "a@example.com" || result[2].Email != "b@example.com" {
		t.Errorf("expected existing order preserved, got %v", result)
	}
}

func TestBuildDedupesByEmail(t *testing.T) {
	current := []User{
		{Email: "a@example.com", Name: "Alice"},
		{Email: "b@example.com", Name: "Bob"},
	}

	result := Build(current, User{Email: "B@Example.com", Name: "Bobby"})

	if len(result) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result))
	}
	if result[0].Name != "Bobby" {
		t.Errorf("expected refreshed entry first, got %s", result[0].Name)
	}
	if result[1].Email != "a@example.com" {
		t.Errorf("expected other entry kept, got %s", result[1].Email)
	}
}

func TestBuildCapsAtFive(t *testing.T) {
	var current []User
	for _, e := range []string{"a", "b", "c", "d", "e"} {
		current = append(current, User{Email: e + "@example.com"})
	}

	result := Build(current, User{Email: "f@example.com"})

	if len(result) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(result))
	}
	if result[0].Email != "f@example.com" {
		t.Errorf("expected newest first, got %s", result[0].Email)
	}
	if result[4].Email != "d@example.com" {
		t.Errorf("expected oldest entry dropped, got %s last", result[4].Email)
	}
}

func TestLoadMissingFile(t *testing.T) {
	users, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if users != nil {
		t.Errorf("expected nil for missing file, got %v", users)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.json")
	users := []User{
		{Email: "a@example.com", Name: "Alice", Avatar: "🦊", Color: "#ff0000"},
		{Email: "b@example.com", Name: "Bob", Avatar: "🐻", Color: "#00ff00"},
	}

	if err := Save(path, users); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(loaded))
	}
	if loaded[0] != users[0] || loaded[1] != users[1] {
		t.Errorf("round trip mismatch: %v", loaded)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestSaveTruncatesToFive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.json")
	var users []User
	for _, e := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		users = append(users, User{Email: e + "@example.com"})
	}

	if err := Save(path, users); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded) != 5 {
		t.Errorf("expected 5 entries after save, got %d", len(loaded))
	}
}
