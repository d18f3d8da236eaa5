package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TargetAudience string

const (
	AudienceAll        TargetAudience = "all"
	AudienceStudents   TargetAudience = "students"
	AudienceYear       TargetAudience = "specific_year"
	AudienceDepartment TargetAudience = "specific_department"
)

func (a TargetAudience) Valid() bool {
	switch a {
	case AudienceAll, AudienceStudents, AudienceYear, AudienceDepartment:
		return true
	}
	return false
}

var AnnouncementCategories = []string{
	"general",
	"academic",
	"event",
	"facility",
	"urgent",
}

func ValidAnnouncementCategory(c string) bool {
	for _, v := range AnnouncementCategories {
		if v == c {
			return true
		}
	}
	return false
}

type Announcement struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string             `gorm:"size:200;not null" json:"title"`
	Content          string             `gorm:"type:text;not null" json:"content"`
	Category         string             `gorm:"size:30;not null;default:general;index" json:"category"`
	Priority         string             `gorm:"size:20;not null;default:medium" json:"priority"`
	TargetAudience   TargetAudience     `gorm:"size:30;not null;default:all;index" json:"target_audience"`
	TargetYear       string             `gorm:"size:5" json:"target_year,omitempty"`
	TargetDepartment string             `gorm:"size:50" json:"target_department,omitempty"`
	IsPinned         bool               `gorm:"not null;default:false;index" json:"is_pinned"`
	IsActive         bool               `gorm:"not null;default:true;index" json:"is_active"`
	PublishDate      time.Time          `gorm:"not null" json:"publish_date"`
	ExpiryDate       *time.Time         `json:"expiry_date,omitempty"`
	CreatedBy        uuid.UUID          `gorm:"type:uuid;not null" json:"created_by"`
	Attachments      []Attachment       `gorm:"foreignKey:AnnouncementID;constraint:OnDelete:CASCADE" json:"attachments"`
	ViewCount        int64              `gorm:"not null;default:0" json:"view_count"`
	Views            []AnnouncementView `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt        time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the expiry date, if any, has passed.
func (a *Announcement) Expired(now time.Time) bool {
	return a.ExpiryDate != nil && a.ExpiryDate.Before(now)
}

// VisibleTo applies the targeting rules for the student-facing view. A nil
// viewer is an unauthenticated caller. Admin callers bypass this entirely
// through the management listing.
func (a *Announcement) VisibleTo(viewer *User) bool {
	if viewer == nil {
		return a.TargetAudience == AudienceAll
	}
	switch a.TargetAudience {
	case AudienceAll, AudienceStudents:
		return true
	case AudienceYear:
		return a.TargetYear == viewer.Year
	case AudienceDepartment:
		return a.TargetDepartment == viewer.Department
	}
	return false
}

// AnnouncementView is one viewer's first sight of an announcement. The unique
// index makes the view counter increment at most once per viewer.
type AnnouncementView struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	AnnouncementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_announcement_viewer" json:"announcement_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_announcement_viewer" json:"user_id"`
	ViewedAt       time.Time `gorm:"autoCreateTime" json:"viewed_at"`
}
