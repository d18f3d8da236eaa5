package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IssueStatus string

const (
	IssuePending    IssueStatus = "pending"
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in_progress"
	IssueResolved   IssueStatus = "resolved"
	IssueClosed     IssueStatus = "closed"
	IssueRejected   IssueStatus = "rejected"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case IssuePending, IssueOpen, IssueInProgress, IssueResolved, IssueClosed, IssueRejected:
		return true
	}
	return false
}

// Terminal reports whether the status carries a resolution stamp.
func (s IssueStatus) Terminal() bool {
	return s == IssueResolved || s == IssueRejected
}

var IssueCategories = []string{
	"electrical",
	"plumbing",
	"furniture",
	"cleaning",
	"network",
	"projector",
	"air_conditioning",
	"other",
}

var IssuePriorities = []string{"low", "medium", "high", "urgent"}

func ValidIssueCategory(c string) bool {
	for _, v := range IssueCategories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidIssuePriority(p string) bool {
	for _, v := range IssuePriorities {
		if v == p {
			return true
		}
	}
	return false
}

type Issue struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName    string       `gorm:"size:100;not null" json:"user_name"`
	UserRollNo  string       `gorm:"size:20;not null" json:"user_roll_no"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Category    string       `gorm:"size:30;not null;index" json:"category"`
	Priority    string       `gorm:"size:20;not null;default:medium;index" json:"priority"`
	Status      IssueStatus  `gorm:"size:20;not null;default:pending;index" json:"status"`
	Attachments []Attachment `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"attachments"`
	AssignedTo  *uuid.UUID   `gorm:"type:uuid" json:"assigned_to,omitempty"`
	ResolvedBy  *uuid.UUID   `gorm:"type:uuid" json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time   `json:"resolved_at,omitempty"`
	ProcessedBy *uuid.UUID   `gorm:"type:uuid" json:"processed_by,omitempty"`
	ProcessedAt *time.Time   `json:"processed_at,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
