// internal/models/task.go
package models

import (
	"errors"
	"strings"
	"time"
)

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// Outcome classifies a finished contact attempt.
type Outcome string

const (
	OutcomeReachable     Outcome = "Reachable"
	OutcomeUnreachable   Outcome = "Unreachable"
	OutcomeNotInterested Outcome = "Not Interested"
)

var (
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidOutcome  = errors.New("invalid outcome")
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func (o Outcome) Valid() bool {
	switch o {
	case OutcomeReachable, OutcomeUnreachable, OutcomeNotInterested:
		return true
	}
	return false
}

// ParseStatus accepts the display form ("In Progress") and the snake form ("in_progress").
func ParseStatus(s string) (TaskStatus, error) {
	switch normalizeEnum(s) {
	case "pending":
		return StatusPending, nil
	case "in progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	}
	return "", ErrInvalidStatus
}

func ParsePriority(s string) (TaskPriority, error) {
	switch normalizeEnum(s) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return "", ErrInvalidPriority
}

func ParseOutcome(s string) (Outcome, error) {
	switch normalizeEnum(s) {
	case "reachable":
		return OutcomeReachable, nil
	case "unreachable":
		return OutcomeUnreachable, nil
	case "not interested":
		return OutcomeNotInterested, nil
	}
	return "", ErrInvalidOutcome
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "_", " ")
}

// Task is one unit of outreach work assigned to an agent against a retailer.
type Task struct {
	ID           int64        `json:"id"`
	AssigneeID   int64        `json:"assignee_id"`
	CreatorID    int64        `json:"creator_id"`
	RetailerID   string       `json:"retailer_id"`
	RetailerName string       `json:"retailer_name"`
	Priority     TaskPriority `json:"priority"`
	DueDate      string       `json:"due_date"` // YYYY-MM-DD
	Status       TaskStatus   `json:"status"`
	TaskType     string       `json:"task_type"`
	Description  string       `json:"description"`
	Outcome      *Outcome     `json:"outcome,omitempty"`
	Comment      *string      `json:"comment,omitempty"`
	Progress     *int         `json:"progress,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	AssigneeID *int64
	RetailerID *string
	Status     *TaskStatus
	Priority   *TaskPriority
}
