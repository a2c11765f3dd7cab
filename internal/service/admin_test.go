package service

import (
	"log/slog"
	"testing"
	"time"

	"github.com/mwestby/choreboard/internal/model"
	"github.com/mwestby/choreboard/internal/store"
)

func setupAdminService(t *testing.T) (*AdminService, *store.ProfileStore, *store.TaskStore, *store.CompletionEventStore, *store.SessionStore, *store.CategoryStore) {
	t.Helper()
	db := setupServiceDB(t)
	ps := store.NewProfileStore(db)
	ts := store.NewTaskStore(db)
	es := store.NewCompletionEventStore(db)
	ss := store.NewSessionStore(db)
	cs := store.NewCategoryStore(db)
	return NewAdminService(ps, ts, es, ss, slog.Default()), ps, ts, es, ss, cs
}

func TestResetCompletions(t *testing.T) {
	svc, _, ts, es, _, cs := setupAdminService(t)

	cat, _ := cs.Create("Kitchen", "utensils", "#FF9800", testHousehold)
	task, _ := ts.Create("Wash dishes", cat.ID, "daily", 1, testHousehold)
	ts.UpdateCompletedBy(task.ID, []string{"user-1"}, testHousehold)
	es.Append(task.ID, "user-1", true, time.Now(), testHousehold)

	if err := svc.ResetCompletions(testHousehold); err != nil {
		t.Fatalf("reset completions: %v", err)
	}

	events, _ := es.ListRecent(testHousehold, 30)
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
	got, _ := ts.GetByID(task.ID, testHousehold)
	if len(got.CompletedBy) != 0 {
		t.Errorf("completed_by = %v, want empty", got.CompletedBy)
	}
	// Tasks survive the reset
	tasks, _ := ts.List(testHousehold)
	if len(tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(tasks))
	}
}

func TestResetTasks(t *testing.T) {
	svc, _, ts, es, _, cs := setupAdminService(t)

	cat, _ := cs.Create("Kitchen", "utensils", "#FF9800", testHousehold)
	task, _ := ts.Create("Wash dishes", cat.ID, "daily", 1, testHousehold)
	es.Append(task.ID, "user-1", true, time.Now(), testHousehold)

	if err := svc.ResetTasks(testHousehold); err != nil {
		t.Fatalf("reset tasks: %v", err)
	}

	tasks, _ := ts.List(testHousehold)
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}
	events, _ := es.ListRecent(testHousehold, 30)
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
	// Categories survive
	categories, _ := cs.List(testHousehold)
	if len(categories) != 1 {
		t.Errorf("expected 1 category, got %d", len(categories))
	}
}

func TestRemoveMember(t *testing.T) {
	svc, ps, _, es, ss, _ := setupAdminService(t)

	admin, _ := ps.Create("Alice", "alice@example.com", "cat", "#FF0000", model.RoleAdmin, "hash", testHousehold)
	member, _ := ps.Create("Bob", "bob@example.com", "dog", "#00FF00", model.RoleMember, "hash", testHousehold)
	es.Append("task-1", member.ID, true, time.Now(), testHousehold)
	ss.Create(member.ID, testHousehold)

	if err := svc.RemoveMember(member.ID, admin.ID, testHousehold); err != nil {
		t.Fatalf("remove member: %v", err)
	}

	gone, _ := ps.GetByID(member.ID, testHousehold)
	if gone != nil {
		t.Error("expected profile deleted")
	}
	events, _ := es.ListRecent(testHousehold, 30)
	if len(events) != 0 {
		t.Errorf("expected member's events deleted, got %d", len(events))
	}
}

func TestRemoveMemberSelf(t *testing.T) {
	svc, ps, _, _, _, _ := setupAdminService(t)

	admin, _ := ps.Create("Alice", "alice@example.com", "cat", "#FF0000", model.RoleAdmin, "hash", testHousehold)

	err := svc.RemoveMember(admin.ID, admin.ID, testHousehold)
	if err != ErrSelfRemoval {
		t.Errorf("err = %v, want ErrSelfRemoval", err)
	}
}

func TestRemoveMemberUnknown(t *testing.T) {
	svc, ps, _, _, _, _ := setupAdminService(t)

	admin, _ := ps.Create("Alice", "alice@example.com", "cat", "#FF0000", model.RoleAdmin, "hash", testHousehold)

	err := svc.RemoveMember("missing", admin.ID, testHousehold)
	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
