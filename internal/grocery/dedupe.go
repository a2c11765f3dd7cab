package grocery

import (
	"strings"

	"github.com/mwestby/choreboard/internal/model"
)

// NormalizeName is the comparison key for grocery names: trimmed and
// lowercased. Names are not required to be unique in the active list,
// but "add again" suggestions and restores dedupe on this key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DedupeByName keeps only the first item per normalized name, preserving
// the original relative order.
func DedupeByName(items []model.GroceryItem) []model.GroceryItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]model.GroceryItem, 0, len(items))
	for _, item := range items {
		key := NormalizeName(item.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// NameSet builds the normalized-name lookup for an item list.
func NameSet(items []model.GroceryItem) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[NormalizeName(item.Name)] = struct{}{}
	}
	return set
}
