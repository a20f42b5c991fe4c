package notifier

import (
	"approval-api/internal/models"
	"context"
	"time"
)

// Event describes one status transition of an approval.
type Event struct {
	ApprovalID int
	From       models.ApproveStatus
	To         models.ApproveStatus
	At         time.Time
}

type Notifier interface {
	StatusChanged(ctx context.Context, event Event) error
	// Events returns transitions recorded at or after since, oldest first.
	Events(ctx context.Context, since time.Time) ([]Event, error)
}

// Nop discards events. Used when Redis is not configured.
type Nop struct{}

func (Nop) StatusChanged(context.Context, Event) error {
	return nil
}

func (Nop) Events(context.Context, time.Time) ([]Event, error) {
	return []Event{}, nil
}
