// Package recent keeps a small on-disk cache of accounts that recently
// signed in on this device, used to prefill the login screen. It is not
// authoritative; losing the file only costs convenience.
package recent

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const maxEntries = 5

type User struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Color  string `json:"color"`
}

// Load reads the cache file. A missing file is an empty cache, not an error.
func Load(path string) ([]User, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read recent users: %w", err)
	}

	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse recent users: %w", err)
	}
	if len(users) > maxEntries {
		users = users[:maxEntries]
	}
	return users, nil
}

// Save rewrites the cache file with the given entries.
func Save(path string, users []User) error {
	if len(users) > maxEntries {
		users = users[:maxEntries]
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal recent users: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write recent users: %w", err)
	}
	return nil
}

// Build prepends user to current, dropping any existing entry with the
// same email and capping the result at five entries.
func Build(current []User, user User) []User {
	result := make([]User, 0, maxEntries)
	result = append(result, user)
	for _, u := range current {
		if strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(user.Email)) {
			continue
		}
		result = append(result, u)
		if len(result) == maxEntries {
			break
		}
	}
	return result
}
