package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/internal/service"
	"github.com/psgtech/campusfacility/pkg/response"
	"github.com/psgtech/campusfacility/pkg/validator"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var input dto.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}

	caller, err := requireCaller(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), caller, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "booking request submitted", booking)
}

func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var query dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}

	availability, err := h.bookingService.CheckAvailability(
		c.Request.Context(), query.RoomCode, query.Date, query.StartTime, query.EndTime, nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", dto.AvailabilityResponse{
		Available:   availability.Available,
		Conflict:    availability.Conflict,
		DayBookings: availability.DayBookings,
	})
}

func (h *BookingHandler) ListOwn(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}
	page.Normalize()

	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, total, err := h.bookingService.ListOwn(c.Request.Context(), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "", bookings, response.NewPagination(page.Page, page.Limit, total))
}

func (h *BookingHandler) ListAll(c *gin.Context) {
	var query dto.BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, validator.FieldErrors(err))
		return
	}
	query.Normalize()

	bookings, total, err := h.bookingService.ListAll(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "", bookings, response.NewPagination(query.Page, query.Limit, total))
}

func (h *BookingHandler) Get(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Status: "error", Message: "invalid booking id"})
		return
	}

	caller, err := requireCaller(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), caller, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", booking)
}

// Approve and Reject are shortcuts over the generic status patch.
func (h *BookingHandler) Approve(c *gin.Context) {
	h.process(c, "approved")
}

func (h *BookingHandler) Reject(c *gin.Context) {
	h.process(c, "rejected")
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	h.process(c, "")
}

func (h *BookingHandler) process(c *gin.Context, forcedStatus string) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Status: "error", Message: "invalid booking id"})
		return
	}

	var input dto.ProcessBookingInput
	if forcedStatus != "" {
		// Shortcut routes carry only optional notes in the body.
		input.Status = forcedStatus
		var body struct {
			AdminNotes string `json:"admin_notes"`
		}
		_ = c.ShouldBindJSON(&body)
		input.AdminNotes = body.AdminNotes
	} else {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.ValidationError(c, validator.FieldErrors(err))
			return
		}
	}

	adminID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	booking, err := h.bookingService.Process(c.Request.Context(), adminID, bookingID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "booking "+string(booking.Status), booking)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Envelope{Status: "error", Message: "invalid booking id"})
		return
	}

	caller, err := requireCaller(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.bookingService.Delete(c.Request.Context(), caller, bookingID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "booking deleted", nil)
}
