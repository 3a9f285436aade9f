package events

import "time"

const LeaveDecisionTopic = "hr.leave.decision.v1"

type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	UserID     string    `json:"user_id"`
	DecidedBy  string    `json:"decided_by"`
	LeaveType  string    `json:"leave_type"`
	Status     string    `json:"status"`
	Duration   int       `json:"duration"`
	OccurredAt time.Time `json:"occurred_at"`
}
