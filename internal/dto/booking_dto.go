package dto

type CreateBookingInput struct {
	RoomCode  string `json:"room_code" binding:"required,min=2,max=20"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Purpose   string `json:"purpose" binding:"required,min=5,max=500"`
}

type AvailabilityQuery struct {
	RoomCode  string `form:"room_code" binding:"required"`
	Date      string `form:"date" binding:"required,datetime=2006-01-02"`
	StartTime string `form:"start_time" binding:"required"`
	EndTime   string `form:"end_time" binding:"required"`
}

// ProcessBookingInput carries the admin decision. Approve/reject shortcuts
// fill Status server-side.
type ProcessBookingInput struct {
	Status     string `json:"status" binding:"required,oneof=approved rejected"`
	AdminNotes string `json:"admin_notes" binding:"omitempty,max=500"`
}

type BookingListQuery struct {
	PageQuery
	Status   string `form:"status"`
	RoomCode string `form:"room_code"`
	Date     string `form:"date"`
	RollNo   string `form:"roll_no"`
}

// AvailabilityResponse reports the conflict checker outcome plus the same-day
// bookings for caller context.
type AvailabilityResponse struct {
	Available   bool        `json:"available"`
	Conflict    interface{} `json:"conflict,omitempty"`
	DayBookings interface{} `json:"day_bookings"`
}
