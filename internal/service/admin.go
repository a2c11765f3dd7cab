package service

import (
	"log/slog"

	"github.com/mwestby/choreboard/internal/store"
)

// AdminService implements the destructive household resets. All
// callers are gated by the admin middleware.
type AdminService struct {
	profiles *store.ProfileStore
	tasks    *store.TaskStore
	events   *store.CompletionEventStore
	sessions *store.SessionStore
	logger   *slog.Logger
}

func NewAdminService(ps *store.ProfileStore, ts *store.TaskStore, es *store.CompletionEventStore, ss *store.SessionStore, logger *slog.Logger) *AdminService {
	return &AdminService{
		profiles: ps,
		tasks:    ts,
		events:   es,
		sessions: ss,
		logger:   logger.With("component", "admin"),
	}
}

// ResetCompletions wipes the completion log and empties every task's
// completed_by cache. Tasks and categories survive.
func (s *AdminService) ResetCompletions(householdID string) error {
	if err := s.events.DeleteAll(householdID); err != nil {
		return err
	}
	if err := s.tasks.ClearCompletedBy(householdID); err != nil {
		s.logger.Error("clear completed_by after event wipe", "household_id", householdID, "error", err)
		return err
	}
	return nil
}

// ResetTasks deletes every task along with the completion log. The
// defaults are reseeded on the next household load.
func (s *AdminService) ResetTasks(householdID string) error {
	if err := s.events.DeleteAll(householdID); err != nil {
		return err
	}
	if err := s.tasks.DeleteAll(householdID); err != nil {
		s.logger.Error("delete tasks after event wipe", "household_id", householdID, "error", err)
		return err
	}
	return nil
}

// RemoveMember deletes a member's profile, their completion history,
// and any live sessions. The acting admin cannot remove themselves.
func (s *AdminService) RemoveMember(userID, actingUserID, householdID string) error {
	if userID == actingUserID {
		return ErrSelfRemoval
	}
	profile, err := s.profiles.GetByID(userID, householdID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}

	if err := s.events.DeleteByUser(userID, householdID); err != nil {
		return err
	}
	if err := s.sessions.DeleteByUser(userID); err != nil {
		return err
	}
	return s.profiles.Delete(userID, householdID)
}
