package completion

// TaskPoints returns the points value for a task, defaulting to 1 when
// the task has no rating in the lookup.
func TaskPoints(taskID string, ratingByTask map[string]int) int {
	if rating, ok := ratingByTask[taskID]; ok && rating > 0 {
		return rating
	}
	return 1
}

// SumPoints sums TaskPoints over the given ids, including duplicates.
func SumPoints(taskIDs []string, ratingByTask map[string]int) int {
	total := 0
	for _, id := range taskIDs {
		total += TaskPoints(id, ratingByTask)
	}
	return total
}
