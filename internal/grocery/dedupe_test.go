package grocery

import (
	"testing"

	"github.com/mwestby/choreboard/internal/model"
)

func TestDedupeByNameKeepsFirstOccurrence(t *testing.T) {
	items := []model.GroceryItem{
		{ID: "1", Name: "Milk"},
		{ID: "2", Name: "milk"},
		{ID: "3", Name: "Bread"},
	}

	got := DedupeByName(items)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "1" {
		t.Errorf("got[0].ID = %q, want %q (first Milk kept)", got[0].ID, "1")
	}
	if got[1].ID != "3" {
		t.Errorf("got[1].ID = %q, want %q", got[1].ID, "3")
	}
}

func TestDedupeByNameTrims(t *testing.T) {
	items := []model.GroceryItem{
		{ID: "1", Name: "  Eggs "},
		{ID: "2", Name: "eggs"},
	}

	got := DedupeByName(items)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestDedupeByNameEmpty(t *testing.T) {
	got := DedupeByName(nil)
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestNameSet(t *testing.T) {
	items := []model.GroceryItem{
		{Name: "Milk"},
		{Name: " Bread "},
	}

	set := NameSet(items)
	if _, ok := set["milk"]; !ok {
		t.Error("expected milk in set")
	}
	if _, ok := set["bread"]; !ok {
		t.Error("expected bread in set")
	}
	if len(set) != 2 {
		t.Errorf("len = %d, want 2", len(set))
	}
}
