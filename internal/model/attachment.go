package model

import (
	"time"

	"github.com/google/uuid"
)

// Attachment records uploaded file metadata. Content lives in the external
// content store; StoragePath is the store's public identifier for deletes.
type Attachment struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid" json:"user_id"`
	IssueID        *uuid.UUID `gorm:"type:uuid;index" json:"issue_id,omitempty"`
	AnnouncementID *uuid.UUID `gorm:"type:uuid;index" json:"announcement_id,omitempty"`
	FileName       string     `gorm:"size:255;not null" json:"file_name"`
	OriginalName   string     `gorm:"size:255;not null" json:"original_name"`
	MimeType       string     `gorm:"size:100" json:"mime_type"`
	Size           int64      `json:"size"`
	FileURL        string     `gorm:"type:text;not null" json:"file_url"`
	StoragePath    string     `gorm:"type:text" json:"-"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
