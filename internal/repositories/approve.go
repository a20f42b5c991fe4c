package repositories

import (
	"approval-api/internal/models"
	"approval-api/pkg/apiErrors"
	"context"
	"sync"
	"time"
)

// Registry keeps approvals in memory in insertion order.
// Nothing survives a restart.
type Registry struct {
	mu        sync.RWMutex
	approvals []models.Approval
	nextID    int
	now       func() time.Time
}

// NewRegistry returns an empty registry. A nil clock means time.Now.
func NewRegistry(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		approvals: make([]models.Approval, 0),
		nextID:    1,
		now:       now,
	}
}

func (r *Registry) List(_ context.Context) ([]models.Approval, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Approval, len(r.approvals))
	copy(out, r.approvals)
	return out, nil
}

func (r *Registry) Get(_ context.Context, id int) (*models.Approval, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apiErrors.ErrNotFound
	}
	approval := r.approvals[i]
	return &approval, nil
}

func (r *Registry) Create(_ context.Context, title, description, requestedBy string) (*models.Approval, error) {
	approval := models.NewApproval(title, description, requestedBy)

	r.mu.Lock()
	defer r.mu.Unlock()

	approval.ID = r.nextID
	r.nextID++
	approval.CreatedAt = r.now()
	r.approvals = append(r.approvals, *approval)

	return approval, nil
}

func (r *Registry) Approve(ctx context.Context, id int) (*models.Approval, error) {
	approval, _, err := r.UpdateStatus(ctx, id, models.StatusApproved)
	return approval, err
}

func (r *Registry) Reject(ctx context.Context, id int) (*models.Approval, error) {
	approval, _, err := r.UpdateStatus(ctx, id, models.StatusRejected)
	return approval, err
}

func (r *Registry) UpdateStatus(_ context.Context, id int, status models.ApproveStatus) (*models.Approval, models.ApproveStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, "", apiErrors.ErrNotFound
	}
	previous := r.approvals[i].Status
	r.approvals[i].Status = status

	approval := r.approvals[i]
	return &approval, previous, nil
}

func (r *Registry) Delete(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.approvals = append(r.approvals[:i], r.approvals[i+1:]...)
	return true, nil
}

// ListByStatus matches status case-insensitively and never returns nil.
func (r *Registry) ListByStatus(_ context.Context, status string) ([]models.Approval, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Approval, 0)
	for _, approval := range r.approvals {
		if approval.Status.Matches(status) {
			out = append(out, approval)
		}
	}
	return out, nil
}

// indexOf must be called with mu held.
func (r *Registry) indexOf(id int) int {
	for i := range r.approvals {
		if r.approvals[i].ID == id {
			return i
		}
	}
	return -1
}
