package repositories

import (
	"approval-api/internal/models"
	"context"
	"fmt"
)

// ApprovalStore is the registry contract shared by the in-memory and Postgres backends.
// Id-scoped lookups return apiErrors.ErrNotFound when no record matches.
type ApprovalStore interface {
	List(ctx context.Context) ([]models.Approval, error)
	Get(ctx context.Context, id int) (*models.Approval, error)
	Create(ctx context.Context, title, description, requestedBy string) (*models.Approval, error)
	Approve(ctx context.Context, id int) (*models.Approval, error)
	Reject(ctx context.Context, id int) (*models.Approval, error)
	// UpdateStatus overwrites the status unconditionally and reports the previous one.
	UpdateStatus(ctx context.Context, id int, status models.ApproveStatus) (*models.Approval, models.ApproveStatus, error)
	Delete(ctx context.Context, id int) (bool, error)
	ListByStatus(ctx context.Context, status string) ([]models.Approval, error)
}

var samples = []struct {
	title, description, requestedBy string
}{
	{"Purchase Order #001", "New laptops for dev team", "John Doe"},
	{"Leave Request", "Vacation from Jan 15-20", "Jane Smith"},
	{"Budget Approval", "Q1 Marketing budget", "Bob Wilson"},
}

// SeedSamples creates the sample approvals when the store is empty.
func SeedSamples(ctx context.Context, store ApprovalStore) error {
	existing, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) != 0 {
		return nil
	}

	for _, s := range samples {
		if _, err := store.Create(ctx, s.title, s.description, s.requestedBy); err != nil {
			return fmt.Errorf("failed to seed %q: %w", s.title, err)
		}
	}
	return nil
}
