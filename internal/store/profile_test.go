package store

import (
	"testing"

	"github.com/mwestby/choreboard/internal/database"
	"github.com/mwestby/choreboard/internal/model"
)

func setupProfileTestDB(t *testing.T) *ProfileStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewProfileStore(db)
}

func TestProfileCreateAndGet(t *testing.T) {
	ps := setupProfileTestDB(t)

	p, err := ps.Create("Alice", "alice@example.com", "cat", "#FF0000", model.RoleAdmin, "hash", testHousehold)
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if p.Name != "Alice" {
		t.Errorf("name = %q, want %q", p.Name, "Alice")
	}
	if p.Role != model.RoleAdmin {
		t.Errorf("role = %q, want %q", p.Role, model.RoleAdmin)
	}

	byEmail, err := ps.GetByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail == nil || byEmail.ID != p.ID {
		t.Errorf("get by email returned %v, want id %q", byEmail, p.ID)
	}
}

func TestProfileGetByEmailNotFound(t *testing.T) {
	ps := setupProfileTestDB(t)

	p, err := ps.GetByEmail("ghost@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if p != nil {
		t.Error("expected nil for unknown email")
	}
}

func TestProfileDuplicateEmailRejected(t *testing.T) {
	ps := setupProfileTestDB(t)

	if _, err := ps.Create("Alice", "alice@example.com", "cat", "#FF0000", model.RoleMember, "hash", testHousehold); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := ps.Create("Alicia", "alice@example.com", "dog", "#00FF00", model.RoleMember, "hash2", testHousehold); err == nil {
		t.Error("expected unique email violation")
	}
}

func TestProfilePasswordHash(t *testing.T) {
	ps := setupProfileTestDB(t)

	ps.Create("Alice", "alice@example.com", "cat", "#FF0000", model.RoleMember, "original-hash", testHousehold)

	hash, err := ps.PasswordHash("alice@example.com")
	if err != nil {
		t.Fatalf("password hash: %v", err)
	}
	if hash != "original-hash" {
		t.Errorf("hash = %q, want %q", hash, "original-hash")
	}

	if err := ps.UpdatePasswordHash("alice@example.com", "new-hash"); err != nil {
		t.Fatalf("update hash: %v", err)
	}
	hash, _ = ps.PasswordHash("alice@example.com")
	if hash != "new-hash" {
		t.Errorf("hash after update = %q, want %q", hash, "new-hash")
	}

	// Unknown email yields empty string, not an error
	hash, err = ps.PasswordHash("ghost@example.com")
	if err != nil {
		t.Fatalf("password hash for unknown: %v", err)
	}
	if hash != "" {
		t.Errorf("hash = %q, want empty", hash)
	}
}

func TestProfileListByHousehold(t *testing.T) {
	ps := setupProfileTestDB(t)

	ps.Create("Alice", "alice@example.com", "cat", "#FF0000", model.RoleAdmin, "h1", testHousehold)
	ps.Create("Bob", "bob@example.com", "dog", "#00FF00", model.RoleMember, "h2", testHousehold)
	ps.Create("Carol", "carol@example.com", "bird", "#0000FF", model.RoleMember, "h3", "other-household")

	profiles, err := ps.ListByHousehold(testHousehold)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].Name != "Alice" || profiles[1].Name != "Bob" {
		t.Errorf("order = [%q %q], want [Alice Bob]", profiles[0].Name, profiles[1].Name)
	}
}

func TestProfileDelete(t *testing.T) {
	ps := setupProfileTestDB(t)

	p, _ := ps.Create("Alice", "alice@example.com", "cat", "#FF0000", model.RoleMember, "hash", testHousehold)
	if err := ps.Delete(p.ID, testHousehold); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := ps.GetByID(p.ID, testHousehold)
	if got != nil {
		t.Error("expected nil after delete")
	}
}
