package ports

import (
	"context"
	"time"
)

type EventSource string

const (
	SourceMovement EventSource = "movement"
	SourceMission  EventSource = "mission"
)

// OutputEvent wraps a movement event or mission notice for delivery to the
// host. Data is JSON-encodable.
type OutputEvent struct {
	SessionID string      `json:"session_id"`
	Source    EventSource `json:"source"`
	Type      string      `json:"type"`
	At        time.Time   `json:"at"`
	Data      any         `json:"data"`
}

type EventPublisher interface {
	Publish(ctx context.Context, events []OutputEvent) error
}
