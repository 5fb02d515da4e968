package lifecycle

import (
	"fmt"
	"slices"
	"strings"

	"callcenter/internal/models"
)

const (
	FirstCallProgress = 50
	CallProgressStep  = 25
	CallProgressCap   = 90
	CompletedProgress = 100
)

// IndexOf returns the position of the task with the given id, or -1.
func IndexOf(tasks []models.Task, taskID int64) int {
	return slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == taskID })
}

// MarkAsCalled records a call attempt. The task moves to In Progress and its
// progress advances, never past CallProgressCap. Completed tasks are left alone.
func MarkAsCalled(tasks []models.Task, taskID int64) []models.Task {
	out := slices.Clone(tasks)
	i := IndexOf(out, taskID)
	if i < 0 {
		return out
	}
	t := &out[i]
	switch t.Status {
	case models.StatusCompleted:
		return out
	case models.StatusPending, models.StatusInProgress:
	default:
		panic(fmt.Sprintf("lifecycle: task %d has unknown status %q", t.ID, t.Status))
	}

	next := nextCallProgress(t.Progress)
	t.Progress = &next
	t.Status = models.StatusInProgress
	return out
}

// Complete closes the task with an outcome. It applies from any status.
// A blank comment is stored as no comment.
func Complete(tasks []models.Task, taskID int64, outcome models.Outcome, comment string) []models.Task {
	if !outcome.Valid() {
		panic(fmt.Sprintf("lifecycle: invalid outcome %q", outcome))
	}
	out := slices.Clone(tasks)
	i := IndexOf(out, taskID)
	if i < 0 {
		return out
	}
	t := &out[i]

	o := outcome
	done := CompletedProgress
	t.Status = models.StatusCompleted
	t.Outcome = &o
	t.Comment = trimmedComment(comment)
	t.Progress = &done
	return out
}

// first call on a fresh task jumps to 50; later calls add 25 up to the cap
func nextCallProgress(cur *int) int {
	if cur == nil || *cur == 0 {
		return FirstCallProgress
	}
	if *cur >= CallProgressCap {
		return *cur
	}
	return min(*cur+CallProgressStep, CallProgressCap)
}

func trimmedComment(comment string) *string {
	c := strings.TrimSpace(comment)
	if c == "" {
		return nil
	}
	return &c
}
