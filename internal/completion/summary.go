package completion

import (
	"sort"
	"time"

	"github.com/mwestby/choreboard/internal/model"
)

// DayStat aggregates one user's completed tasks for one calendar day.
type DayStat struct {
	Count   int      `json:"count"`
	Points  int      `json:"points"`
	TaskIDs []string `json:"task_ids"`
}

// MonthStat aggregates one user's completed tasks for a calendar month.
type MonthStat struct {
	Count  int `json:"count"`
	Points int `json:"points"`
}

type userTaskKey struct {
	userID string
	taskID string
}

// latestPerDay reduces events to the latest event per (user, task, day).
// "Latest wins" is applied per calendar day, not across the whole log,
// so a task toggled off on Tuesday still counts for Monday.
func latestPerDay(events []model.CompletionEvent) map[string]map[userTaskKey]model.CompletionEvent {
	byDay := make(map[string]map[userTaskKey]model.CompletionEvent)
	for _, ev := range events {
		day := DayKey(ev.OccurredAt)
		key := userTaskKey{userID: ev.UserID, taskID: ev.TaskID}
		dayMap, ok := byDay[day]
		if !ok {
			dayMap = make(map[userTaskKey]model.CompletionEvent)
			byDay[day] = dayMap
		}
		prev, ok := dayMap[key]
		if !ok || !ev.OccurredAt.Before(prev.OccurredAt) {
			dayMap[key] = ev
		}
	}
	return byDay
}

// DailySummaries groups the latest event per (user, task, day) and sums
// points over the events resolving to completed. The result maps day key
// to user id to that user's stats; days with no completed tasks are
// omitted. TaskIDs are sorted for deterministic output.
func DailySummaries(events []model.CompletionEvent, ratingByTask map[string]int) map[string]map[string]DayStat {
	stats := make(map[string]map[string]DayStat)
	for day, dayMap := range latestPerDay(events) {
		userStats := make(map[string]DayStat)
		for key, ev := range dayMap {
			if !ev.Completed {
				continue
			}
			cur := userStats[ev.UserID]
			cur.Count++
			cur.Points += TaskPoints(key.taskID, ratingByTask)
			cur.TaskIDs = append(cur.TaskIDs, key.taskID)
			userStats[ev.UserID] = cur
		}
		if len(userStats) == 0 {
			continue
		}
		for userID, s := range userStats {
			sort.Strings(s.TaskIDs)
			userStats[userID] = s
		}
		stats[day] = userStats
	}
	return stats
}

// MonthlyTotals aggregates completed tasks for the calendar month of now,
// keyed by user id. Grouping is still per (user, task, day) so that a
// task completed on five days counts five times, but repeated toggles
// within one day count once.
func MonthlyTotals(events []model.CompletionEvent, ratingByTask map[string]int, now time.Time) map[string]MonthStat {
	month := MonthKey(now)
	var inMonth []model.CompletionEvent
	for _, ev := range events {
		if MonthKey(ev.OccurredAt) == month {
			inMonth = append(inMonth, ev)
		}
	}

	totals := make(map[string]MonthStat)
	for _, dayMap := range latestPerDay(inMonth) {
		for key, ev := range dayMap {
			if !ev.Completed {
				continue
			}
			cur := totals[ev.UserID]
			cur.Count++
			cur.Points += TaskPoints(key.taskID, ratingByTask)
			totals[ev.UserID] = cur
		}
	}
	return totals
}
