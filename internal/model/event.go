// internal/model/event.go
package model

import (
	"time"
)

// EventType represents the type of job event
type EventType string

const (
	EventPrintStarted   EventType = "PRINT_STARTED"
	EventPrintCompleted EventType = "PRINT_COMPLETED"
	EventPrintFailed    EventType = "PRINT_FAILED"
	EventDrawerOpened   EventType = "DRAWER_OPENED"
	EventDrawerFailed   EventType = "DRAWER_FAILED"
)

// JobEvent is published for every print and drawer job
type JobEvent struct {
	JobID     string                 `json:"job_id"`
	EventType EventType              `json:"event_type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Severity  string                 `json:"severity"` // INFO, ERROR
}
