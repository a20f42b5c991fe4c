package repositories

import (
	"approval-api/internal/models"
	"approval-api/pkg/apiErrors"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore persists approvals through gorm. Ids come from the table's sequence.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) List(ctx context.Context) ([]models.Approval, error) {
	approvals := make([]models.Approval, 0)
	if err := p.db.WithContext(ctx).Order("id").Find(&approvals).Error; err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	return approvals, nil
}

func (p *PostgresStore) Get(ctx context.Context, id int) (*models.Approval, error) {
	var approval models.Approval

	err := p.db.WithContext(ctx).First(&approval, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apiErrors.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get approval %d: %w", id, err)
	}

	return &approval, nil
}

func (p *PostgresStore) Create(ctx context.Context, title, description, requestedBy string) (*models.Approval, error) {
	approval := models.NewApproval(title, description, requestedBy)
	if err := p.db.WithContext(ctx).Create(approval).Error; err != nil {
		return nil, fmt.Errorf("failed to create approval: %w", err)
	}
	return approval, nil
}

func (p *PostgresStore) Approve(ctx context.Context, id int) (*models.Approval, error) {
	approval, _, err := p.UpdateStatus(ctx, id, models.StatusApproved)
	return approval, err
}

func (p *PostgresStore) Reject(ctx context.Context, id int) (*models.Approval, error) {
	approval, _, err := p.UpdateStatus(ctx, id, models.StatusRejected)
	return approval, err
}

func (p *PostgresStore) UpdateStatus(ctx context.Context, id int, status models.ApproveStatus) (*models.Approval, models.ApproveStatus, error) {
	var (
		approval models.Approval
		previous models.ApproveStatus
	)

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&approval, id).Error; err != nil {
			return err
		}
		previous = approval.Status
		if err := tx.Model(&approval).Update("status", status).Error; err != nil {
			return err
		}
		approval.Status = status
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apiErrors.ErrNotFound
	} else if err != nil {
		return nil, "", fmt.Errorf("failed to set status of approval %d: %w", id, err)
	}

	return &approval, previous, nil
}

func (p *PostgresStore) Delete(ctx context.Context, id int) (bool, error) {
	result := p.db.WithContext(ctx).Delete(&models.Approval{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete approval %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (p *PostgresStore) ListByStatus(ctx context.Context, status string) ([]models.Approval, error) {
	approvals := make([]models.Approval, 0)

	err := p.db.WithContext(ctx).
		Where("UPPER(status) = UPPER(?)", status).
		Order("id").
		Find(&approvals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals by status: %w", err)
	}

	return approvals, nil
}
