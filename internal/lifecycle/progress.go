package lifecycle

import (
	"fmt"

	"callcenter/internal/models"
)

// DisplayProgress is the progress a view shows. Tasks without a stored value,
// or with a stored 0, fall back to a per-status default; the fallback is never
// persisted.
func DisplayProgress(t models.Task) int {
	if t.Progress != nil && *t.Progress != 0 {
		return *t.Progress
	}
	switch t.Status {
	case models.StatusPending:
		return 0
	case models.StatusInProgress:
		return 30
	case models.StatusCompleted:
		return CompletedProgress
	}
	panic(fmt.Sprintf("lifecycle: task %d has unknown status %q", t.ID, t.Status))
}

type Summary struct {
	Total           int `json:"total"`
	Pending         int `json:"pending"`
	InProgress      int `json:"in_progress"`
	Completed       int `json:"completed"`
	AverageProgress int `json:"average_progress"`
}

// Summarize counts tasks per status for the dashboard overview cards.
func Summarize(tasks []models.Task) Summary {
	var s Summary
	sum := 0
	for _, t := range tasks {
		switch t.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusCompleted:
			s.Completed++
		default:
			panic(fmt.Sprintf("lifecycle: task %d has unknown status %q", t.ID, t.Status))
		}
		sum += DisplayProgress(t)
	}
	s.Total = len(tasks)
	if s.Total > 0 {
		s.AverageProgress = sum / s.Total
	}
	return s
}

// Partition splits tasks into open and completed, keeping order.
func Partition(tasks []models.Task) (open, completed []models.Task) {
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			completed = append(completed, t)
			continue
		}
		open = append(open, t)
	}
	return open, completed
}
