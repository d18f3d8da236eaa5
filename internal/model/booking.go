package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected:
		return true
	}
	return false
}

// CanTransitionTo encodes the one-way booking lifecycle: a pending booking
// may become approved or rejected, both of which are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingPending && (next == BookingApproved || next == BookingRejected)
}

type Booking struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName    string        `gorm:"size:100;not null" json:"user_name"`
	UserRollNo  string        `gorm:"size:20;not null" json:"user_roll_no"`
	RoomCode    string        `gorm:"size:20;not null;index:idx_bookings_room_date" json:"room_code"`
	Date        string        `gorm:"size:10;not null;index:idx_bookings_room_date" json:"date"`
	StartTime   string        `gorm:"size:5;not null" json:"start_time"`
	EndTime     string        `gorm:"size:5;not null" json:"end_time"`
	Purpose     string        `gorm:"type:text;not null" json:"purpose"`
	Status      BookingStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	AdminNotes  string        `gorm:"type:text" json:"admin_notes,omitempty"`
	ProcessedBy *uuid.UUID    `gorm:"type:uuid" json:"processed_by,omitempty"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Overlaps reports whether two half-open [start,end) intervals on the same
// room and date intersect. Zero-padded HH:MM strings compare correctly
// lexicographically, so no parsing is needed here.
func (b *Booking) Overlaps(startTime, endTime string) bool {
	return startTime < b.EndTime && endTime > b.StartTime
}

// Blocks reports whether the booking counts against availability. Rejected
// bookings release their slot.
func (b *Booking) Blocks() bool {
	return b.Status == BookingPending || b.Status == BookingApproved
}
