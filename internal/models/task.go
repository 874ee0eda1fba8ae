package models

import (
	"time"
)

// IntakeStatus 任务状态
type IntakeStatus string

const (
	StatusPending   IntakeStatus = "pending"
	StatusRunning   IntakeStatus = "running"
	StatusCompleted IntakeStatus = "completed"
	StatusFailed    IntakeStatus = "failed"
	StatusCancelled IntakeStatus = "cancelled"
)

// IntakeTask tracks one asynchronous document intake through the queue.
type IntakeTask struct {
	ID        string            `json:"id"`
	Status    IntakeStatus      `json:"status"`
	Type      string            `json:"type"`
	Priority  int               `json:"priority"`
	Progress  float64           `json:"progress"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt,omitempty"`
}
