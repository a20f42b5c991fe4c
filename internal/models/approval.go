package models

import (
	"strings"
	"time"
)

type Approval struct {
	ID          int           `gorm:"primaryKey" json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ApproveStatus `gorm:"type:varchar(50);index" json:"status"`
	RequestedBy string        `json:"requestedBy"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"createdAt"`
}

func (Approval) TableName() string {
	return "approvals"
}

// NewApproval returns a pending approval without an id.
func NewApproval(title, description, requestedBy string) *Approval {
	return &Approval{
		Title:       title,
		Description: description,
		RequestedBy: requestedBy,
		Status:      StatusPending,
	}
}

type ApproveStatus string

const (
	StatusPending  ApproveStatus = "PENDING"
	StatusApproved ApproveStatus = "APPROVED"
	StatusRejected ApproveStatus = "REJECTED"
)

// Matches compares the status against raw input ignoring case.
func (s ApproveStatus) Matches(raw string) bool {
	return strings.EqualFold(string(s), raw)
}
