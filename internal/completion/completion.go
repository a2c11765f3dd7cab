package completion

import (
	"sort"
	"time"

	"github.com/mwestby/choreboard/internal/model"
)

// relevant returns the events for (taskID, userID) that pass keep,
// sorted ascending by occurrence time. The sort is stable, so two events
// with identical timestamps keep their log insertion order and the later
// log entry wins latest-first resolution.
func relevant(taskID, userID string, events []model.CompletionEvent, keep func(model.CompletionEvent) bool) []model.CompletionEvent {
	var out []model.CompletionEvent
	for _, ev := range events {
		if ev.TaskID != taskID || ev.UserID != userID {
			continue
		}
		if keep(ev) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out
}

// IsCompletedInPeriod reports whether the latest completion event for
// (taskID, userID) within the task's current recurrence window is
// completed. No events in the window means not completed. Only the log
// is consulted; the task's cached completed_by set is never used here.
func IsCompletedInPeriod(taskID, userID, frequency string, events []model.CompletionEvent, now time.Time) bool {
	start := PeriodStart(frequency, now)
	evs := relevant(taskID, userID, events, func(ev model.CompletionEvent) bool {
		return !ev.OccurredAt.Before(start)
	})
	if len(evs) == 0 {
		return false
	}
	return evs[len(evs)-1].Completed
}

// IsCompletedToday is the day-keyed variant used by daily aggregate
// displays: the window is the calendar day of now regardless of the
// task's frequency, tested by day-key equality.
func IsCompletedToday(taskID, userID string, events []model.CompletionEvent, now time.Time) bool {
	today := DayKey(now)
	evs := relevant(taskID, userID, events, func(ev model.CompletionEvent) bool {
		return DayKey(ev.OccurredAt) == today
	})
	if len(evs) == 0 {
		return false
	}
	return evs[len(evs)-1].Completed
}

// Stats pairs the number of completed tasks with the total task count of
// a frequency class, for progress indicators.
type Stats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// WeeklyCompletion counts the user's completed weekly tasks in the
// current week.
func WeeklyCompletion(tasks []model.Task, userID string, events []model.CompletionEvent, now time.Time) Stats {
	byTask := indexByTask(events, userID)
	var s Stats
	for _, task := range tasks {
		if task.Frequency != model.FrequencyWeekly {
			continue
		}
		s.Total++
		if IsCompletedInPeriod(task.ID, userID, model.FrequencyWeekly, byTask[task.ID], now) {
			s.Completed++
		}
	}
	return s
}

// DailyCompletion counts the user's daily tasks completed today.
func DailyCompletion(tasks []model.Task, userID string, events []model.CompletionEvent, now time.Time) Stats {
	byTask := indexByTask(events, userID)
	var s Stats
	for _, task := range tasks {
		if task.Frequency != model.FrequencyDaily {
			continue
		}
		s.Total++
		if IsCompletedToday(task.ID, userID, byTask[task.ID], now) {
			s.Completed++
		}
	}
	return s
}

// indexByTask buckets the user's events by task id so that per-task
// resolution does not rescan the full log.
func indexByTask(events []model.CompletionEvent, userID string) map[string][]model.CompletionEvent {
	byTask := make(map[string][]model.CompletionEvent)
	for _, ev := range events {
		if ev.UserID == userID {
			byTask[ev.TaskID] = append(byTask[ev.TaskID], ev)
		}
	}
	return byTask
}

// ResolveCompletedBy rebuilds a task's completed_by set from the event
// log: the user ids whose latest event for the task is completed. Used
// to reconcile the cached set after a partial failure.
func ResolveCompletedBy(taskID string, events []model.CompletionEvent) []string {
	latest := make(map[string]model.CompletionEvent)
	order := make([]string, 0)
	for _, ev := range events {
		if ev.TaskID != taskID {
			continue
		}
		prev, ok := latest[ev.UserID]
		if !ok {
			order = append(order, ev.UserID)
			latest[ev.UserID] = ev
			continue
		}
		if !ev.OccurredAt.Before(prev.OccurredAt) {
			latest[ev.UserID] = ev
		}
	}
	completedBy := make([]string, 0)
	for _, userID := range order {
		if latest[userID].Completed {
			completedBy = append(completedBy, userID)
		}
	}
	return completedBy
}
