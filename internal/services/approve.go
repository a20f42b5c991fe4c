package services

import (
	"approval-api/internal/metrics"
	"approval-api/internal/models"
	"approval-api/internal/notifier"
	"approval-api/internal/repositories"
	"context"
	"time"

	"github.com/hako/durafmt"
	log "github.com/sirupsen/logrus"
)

type ApprovalService struct {
	store    repositories.ApprovalStore
	notifier notifier.Notifier
	now      func() time.Time
}

func NewApprovalService(store repositories.ApprovalStore, n notifier.Notifier) *ApprovalService {
	if n == nil {
		n = notifier.Nop{}
	}
	return &ApprovalService{store: store, notifier: n, now: time.Now}
}

func (s *ApprovalService) List(ctx context.Context) ([]models.Approval, error) {
	return s.store.List(ctx)
}

func (s *ApprovalService) Get(ctx context.Context, id int) (*models.Approval, error) {
	return s.store.Get(ctx, id)
}

// Create accepts empty fields; nothing is validated.
func (s *ApprovalService) Create(ctx context.Context, title, description, requestedBy string) (*models.Approval, error) {
	approval, err := s.store.Create(ctx, title, description, requestedBy)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"approval_id":  approval.ID,
		"requested_by": approval.RequestedBy,
	}).Info("approval created")
	return approval, nil
}

func (s *ApprovalService) Approve(ctx context.Context, id int) (*models.Approval, error) {
	return s.transition(ctx, id, models.StatusApproved)
}

func (s *ApprovalService) Reject(ctx context.Context, id int) (*models.Approval, error) {
	return s.transition(ctx, id, models.StatusRejected)
}

func (s *ApprovalService) Delete(ctx context.Context, id int) (bool, error) {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		log.WithField("approval_id", id).Info("approval deleted")
	}
	return removed, nil
}

func (s *ApprovalService) ListByStatus(ctx context.Context, status string) ([]models.Approval, error) {
	return s.store.ListByStatus(ctx, status)
}

func (s *ApprovalService) Events(ctx context.Context, since time.Time) ([]notifier.Event, error) {
	return s.notifier.Events(ctx, since)
}

// transition overwrites the status whatever it was before.
// A failed notification is logged and does not fail the transition.
func (s *ApprovalService) transition(ctx context.Context, id int, status models.ApproveStatus) (*models.Approval, error) {
	approval, previous, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	now := s.now()
	metrics.RecordTransition(string(status))

	log.WithFields(log.Fields{
		"approval_id": approval.ID,
		"from":        previous,
		"to":          status,
		"open_for":    durafmt.Parse(now.Sub(approval.CreatedAt)).LimitFirstN(2).String(),
	}).Info("approval status changed")

	event := notifier.Event{ApprovalID: approval.ID, From: previous, To: status, At: now}
	if err := s.notifier.StatusChanged(ctx, event); err != nil {
		log.WithError(err).WithField("approval_id", approval.ID).Warn("failed to publish status change")
	}

	return approval, nil
}
