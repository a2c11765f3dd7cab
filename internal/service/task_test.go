package service

import (
	"database/sql"
	"log/slog"
	"slices"
	"testing"

	"github.com/mwestby/choreboard/internal/database"
	"github.com/mwestby/choreboard/internal/store"
)

const testHousehold = "hh-test"

func setupServiceDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTaskService(t *testing.T) (*TaskService, *store.CategoryStore, *store.CompletionEventStore) {
	t.Helper()
	db := setupServiceDB(t)
	ts := store.NewTaskStore(db)
	cs := store.NewCategoryStore(db)
	es := store.NewCompletionEventStore(db)
	return NewTaskService(ts, cs, es, slog.Default()), cs, es
}

func TestToggleMarksCompleteAndLogs(t *testing.T) {
	svc, cs, es := setupTaskService(t)

	cat, _ := cs.Create("Kitchen", "utensils", "#FF9800", testHousehold)
	task, err := svc.Create("Wash dishes", cat.ID, "daily", 1, testHousehold)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	toggled, err := svc.Toggle(task.ID, "user-1", testHousehold)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !slices.Contains(toggled.CompletedBy, "user-1") {
		t.Errorf("completed_by = %v, want to contain user-1", toggled.CompletedBy)
	}

	events, err := es.ListByTask(task.ID, testHousehold)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if !events[0].Completed {
		t.Error("expected completed event")
	}
	if events[0].UserID != "user-1" {
		t.Errorf("event user = %q, want user-1", events[0].UserID)
	}
}

func TestToggleTwiceRestoresFlagButKeepsBothEvents(t *testing.T) {
	svc, cs, es := setupTaskService(t)

	cat, _ := cs.Create("Kitchen", "utensils", "#FF9800", testHousehold)
	task, _ := svc.Create("Wash dishes", cat.ID, "daily", 1, testHousehold)

	svc.Toggle(task.ID, "user-1", testHousehold)
	toggled, err := svc.Toggle(task.ID, "user-1", testHousehold)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if slices.Contains(toggled.CompletedBy, "user-1") {
		t.Errorf("completed_by = %v, want user-1 removed", toggled.CompletedBy)
	}

	events, _ := es.ListByTask(task.ID, testHousehold)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !events[0].Completed || events[1].Completed {
		t.Errorf("event sequence = [%v %v], want [true false]", events[0].Completed, events[1].Completed)
	}
}

func TestToggleTwoUsersIndependent(t *testing.T) {
	svc, cs, _ := setupTaskService(t)

	cat, _ := cs.Create("Kitchen", "utensils", "#FF9800", testHousehold)
	task, _ := svc.Create("Wash dishes", cat.ID, "daily", 1, testHousehold)

	svc.Toggle(task.ID, "user-1", testHousehold)
	toggled, _ := svc.Toggle(task.ID, "user-2", testHousehold)

	if len(toggled.CompletedBy) != 2 {
		t.Fatalf("completed_by = %v, want both users", toggled.CompletedBy)
	}

	// user-1 untoggles; user-2 stays
	toggled, _ = svc.Toggle(task.ID, "user-1", testHousehold)
	if slices.Contains(toggled.CompletedBy, "user-1") {
		t.Error("user-1 should be removed")
	}
	if !slices.Contains(toggled.CompletedBy, "user-2") {
		t.Error("user-2 should remain")
	}
}

func TestToggleUnknownTask(t *testing.T) {
	svc, _, _ := setupTaskService(t)

	_, err := svc.Toggle("missing", "user-1", testHousehold)
	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateRequiresExistingCategory(t *testing.T) {
	svc, _, _ := setupTaskService(t)

	_, err := svc.Create("Orphan task", "missing-category", "daily", 1, testHousehold)
	if err == nil {
		t.Fatal("expected error for missing category")
	}
}

func TestRebuildCompletedBy(t *testing.T) {
	svc, cs, _ := setupTaskService(t)

	cat, _ := cs.Create("Kitchen", "utensils", "#FF9800", testHousehold)
	task, _ := svc.Create("Wash dishes", cat.ID, "daily", 1, testHousehold)

	svc.Toggle(task.ID, "user-1", testHousehold)
	svc.Toggle(task.ID, "user-2", testHousehold)
	svc.Toggle(task.ID, "user-2", testHousehold)

	// Corrupt the cache, then rebuild from the log
	if _, err := svc.tasks.UpdateCompletedBy(task.ID, []string{"ghost"}, testHousehold); err != nil {
		t.Fatalf("corrupt cache: %v", err)
	}

	rebuilt, err := svc.RebuildCompletedBy(task.ID, testHousehold)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(rebuilt.CompletedBy) != 1 || rebuilt.CompletedBy[0] != "user-1" {
		t.Errorf("completed_by = %v, want [user-1]", rebuilt.CompletedBy)
	}
}

func TestCategoryDeleteCascadesTasks(t *testing.T) {
	db := setupServiceDB(t)
	ts := store.NewTaskStore(db)
	cs := store.NewCategoryStore(db)
	es := store.NewCompletionEventStore(db)
	tasks := NewTaskService(ts, cs, es, slog.Default())
	categories := NewCategoryService(cs, ts, slog.Default())

	cat, _ := cs.Create("Kitchen", "utensils", "#FF9800", testHousehold)
	other, _ := cs.Create("Bathroom", "droplet", "#03A9F4", testHousehold)
	tasks.Create("Wash dishes", cat.ID, "daily", 1, testHousehold)
	tasks.Create("Clean toilet", other.ID, "weekly", 3, testHousehold)

	if err := categories.Delete(cat.ID, testHousehold); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	remaining, _ := ts.List(testHousehold)
	if len(remaining) != 1 {
		t.Fatalf("expected 1 task left, got %d", len(remaining))
	}
	if remaining[0].Title != "Clean toilet" {
		t.Errorf("remaining = %q, want Clean toilet", remaining[0].Title)
	}
}
