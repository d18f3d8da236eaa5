package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingOverlaps(t *testing.T) {
	booking := &Booking{StartTime: "10:00", EndTime: "12:00"}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"identical", "10:00", "12:00", true},
		{"straddles end", "11:00", "13:00", true},
		{"straddles start", "09:00", "11:00", true},
		{"contained", "10:30", "11:30", true},
		{"containing", "09:00", "13:00", true},
		{"adjacent before", "08:00", "10:00", false},
		{"adjacent after", "12:00", "14:00", false},
		{"disjoint", "14:00", "16:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Overlaps(tt.start, tt.end))
		})
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingPending.CanTransitionTo(BookingApproved))
	assert.True(t, BookingPending.CanTransitionTo(BookingRejected))

	// Processed bookings are final.
	assert.False(t, BookingApproved.CanTransitionTo(BookingRejected))
	assert.False(t, BookingRejected.CanTransitionTo(BookingApproved))
	assert.False(t, BookingApproved.CanTransitionTo(BookingPending))
}

func TestBookingBlocks(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingPending}).Blocks())
	assert.True(t, (&Booking{Status: BookingApproved}).Blocks())
	assert.False(t, (&Booking{Status: BookingRejected}).Blocks())
}
