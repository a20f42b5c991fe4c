package services

import (
	"approval-api/internal/models"
	"approval-api/internal/notifier"
	"approval-api/internal/repositories"
	"approval-api/pkg/apiErrors"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notifier.Event
	err    error
}

func (r *recordingNotifier) StatusChanged(_ context.Context, event notifier.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingNotifier) Events(_ context.Context, since time.Time) ([]notifier.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifier.Event, 0, len(r.events))
	for _, e := range r.events {
		if !e.At.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func newService(t *testing.T, n notifier.Notifier) *ApprovalService {
	t.Helper()
	store := repositories.NewRegistry(nil)
	require.NoError(t, repositories.SeedSamples(context.Background(), store))
	return NewApprovalService(store, n)
}

func TestApprovalService_TransitionsPublishEvents(t *testing.T) {
	rec := &recordingNotifier{}
	service := newService(t, rec)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return at }
	ctx := context.Background()

	approval, err := service.Approve(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approval.Status)

	approval, err = service.Reject(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, approval.Status)

	require.Len(t, rec.events, 2)
	assert.Equal(t, notifier.Event{ApprovalID: 1, From: models.StatusPending, To: models.StatusApproved, At: at}, rec.events[0])
	assert.Equal(t, notifier.Event{ApprovalID: 1, From: models.StatusApproved, To: models.StatusRejected, At: at}, rec.events[1])

	events, err := service.Events(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestApprovalService_NotFoundSkipsNotifier(t *testing.T) {
	rec := &recordingNotifier{}
	service := newService(t, rec)

	_, err := service.Approve(context.Background(), 77)
	assert.ErrorIs(t, err, apiErrors.ErrNotFound)
	_, err = service.Reject(context.Background(), 77)
	assert.ErrorIs(t, err, apiErrors.ErrNotFound)
	assert.Empty(t, rec.events)
}

func TestApprovalService_NotifierFailureDoesNotFailTransition(t *testing.T) {
	rec := &recordingNotifier{err: errors.New("redis down")}
	service := newService(t, rec)

	approval, err := service.Approve(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approval.Status)
	assert.Len(t, rec.events, 1)
}

func TestApprovalService_CRUD(t *testing.T) {
	service := newService(t, nil)
	ctx := context.Background()

	created, err := service.Create(ctx, "New Hire Approval", "Senior Developer", "HR Manager")
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)

	got, err := service.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	pending, err := service.ListByStatus(ctx, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 4)

	removed, err := service.Delete(ctx, 4)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = service.Delete(ctx, 4)
	require.NoError(t, err)
	assert.False(t, removed)

	all, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	events, err := service.Events(ctx, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, events)
}
