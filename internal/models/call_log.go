package models

import "time"

type CallKind string

const (
	CallAttempt   CallKind = "called"
	CallCompleted CallKind = "completed"
)

// CallLog records one call event against a task.
type CallLog struct {
	ID         int64     `json:"id"`
	TaskID     int64     `json:"task_id"`
	AgentID    int64     `json:"agent_id"`
	RetailerID string    `json:"retailer_id"`
	Kind       CallKind  `json:"kind"`
	Outcome    *Outcome  `json:"outcome,omitempty"`
	Comment    *string   `json:"comment,omitempty"`
	Progress   int       `json:"progress"`
	CreatedAt  time.Time `json:"created_at"`
}
