package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/internal/repository"
	"github.com/psgtech/campusfacility/pkg/apperror"
	"gorm.io/gorm"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Availability is the conflict checker outcome: whether the candidate slot is
// free, the first conflicting booking if not, and the same-day bookings for
// caller context.
type Availability struct {
	Available   bool
	Conflict    *model.Booking
	DayBookings []*model.Booking
}

type BookingService interface {
	Create(ctx context.Context, owner *model.User, input dto.CreateBookingInput) (*model.Booking, error)
	// CheckAvailability is a pure read; creation re-verifies atomically with
	// the insert. excludeID skips one booking, for update-in-place checks.
	CheckAvailability(ctx context.Context, roomCode, date, startTime, endTime string, excludeID *uuid.UUID) (*Availability, error)
	ListOwn(ctx context.Context, userID uuid.UUID, page dto.PageQuery) ([]*model.Booking, int64, error)
	ListAll(ctx context.Context, query dto.BookingListQuery) ([]*model.Booking, int64, error)
	Get(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Booking, error)
	Process(ctx context.Context, adminID uuid.UUID, id uuid.UUID, input dto.ProcessBookingInput) (*model.Booking, error)
	Delete(ctx context.Context, caller *model.User, id uuid.UUID) error
}

type bookingService struct {
	repo repository.BookingRepository
	// now is injectable for the date-in-the-past check.
	now func() time.Time
}

func NewBookingService(repo repository.BookingRepository) BookingService {
	return &bookingService{repo: repo, now: time.Now}
}

func (s *bookingService) Create(ctx context.Context, owner *model.User, input dto.CreateBookingInput) (*model.Booking, error) {
	roomCode := strings.ToUpper(strings.TrimSpace(input.RoomCode))

	if err := s.validateSlot(input.Date, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		UserID:     owner.ID,
		UserName:   owner.Name,
		UserRollNo: owner.RollNo,
		RoomCode:   roomCode,
		Date:       input.Date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Purpose:    strings.TrimSpace(input.Purpose),
		Status:     model.BookingPending,
	}

	conflict, err := s.repo.CreateIfAvailable(ctx, booking)
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			msg := "room is already booked for this time slot"
			if conflict != nil {
				msg = "room is already booked from " + conflict.StartTime + " to " + conflict.EndTime
			}
			return nil, apperror.Conflict(msg)
		}
		return nil, err
	}

	return booking, nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, roomCode, date, startTime, endTime string, excludeID *uuid.UUID) (*Availability, error) {
	roomCode = strings.ToUpper(strings.TrimSpace(roomCode))

	if !hhmmPattern.MatchString(startTime) || !hhmmPattern.MatchString(endTime) {
		return nil, apperror.Validation("times must be in HH:MM format")
	}
	if endTime <= startTime {
		return nil, apperror.Validation("end time must be after start time")
	}

	dayBookings, err := s.repo.FindForDay(ctx, roomCode, date)
	if err != nil {
		return nil, err
	}

	result := &Availability{Available: true, DayBookings: dayBookings}
	for _, existing := range dayBookings {
		if excludeID != nil && existing.ID == *excludeID {
			continue
		}
		if existing.Overlaps(startTime, endTime) {
			result.Available = false
			result.Conflict = existing
			break
		}
	}

	return result, nil
}

func (s *bookingService) ListOwn(ctx context.Context, userID uuid.UUID, page dto.PageQuery) ([]*model.Booking, int64, error) {
	page.Normalize()
	return s.repo.FindByUser(ctx, userID, page.Page, page.Limit)
}

func (s *bookingService) ListAll(ctx context.Context, query dto.BookingListQuery) ([]*model.Booking, int64, error) {
	query.Normalize()
	return s.repo.FindAll(ctx, repository.BookingFilter{
		Status:    query.Status,
		RoomCode:  strings.ToUpper(strings.TrimSpace(query.RoomCode)),
		Date:      query.Date,
		RollNo:    strings.ToUpper(strings.TrimSpace(query.RollNo)),
		Page:      query.Page,
		Limit:     query.Limit,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	})
}

func (s *bookingService) Get(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanAccess(caller, booking.UserID) {
		return nil, apperror.Forbidden("you do not have access to this booking")
	}
	return booking, nil
}

func (s *bookingService) Process(ctx context.Context, adminID uuid.UUID, id uuid.UUID, input dto.ProcessBookingInput) (*model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	next := model.BookingStatus(input.Status)
	if !next.Valid() {
		return nil, apperror.Validation("invalid booking status")
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, apperror.Conflict("booking already processed")
	}

	now := time.Now()
	booking.Status = next
	booking.AdminNotes = strings.TrimSpace(input.AdminNotes)
	booking.ProcessedBy = &adminID
	booking.ProcessedAt = &now

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, caller *model.User, id uuid.UUID) error {
	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if caller.Role != model.RoleAdmin {
		if booking.UserID != caller.ID {
			return apperror.Forbidden("you do not have access to this booking")
		}
		if booking.Status != model.BookingPending {
			return apperror.Conflict("only pending bookings can be deleted")
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *bookingService) find(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("booking not found")
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) validateSlot(date, startTime, endTime string) error {
	if !hhmmPattern.MatchString(startTime) || !hhmmPattern.MatchString(endTime) {
		return apperror.Validation("times must be in HH:MM format")
	}
	// Zero-padded HH:MM compares correctly as a string.
	if endTime <= startTime {
		return apperror.Validation("end time must be after start time")
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return apperror.Validation("date must be in YYYY-MM-DD format")
	}
	if day.Format("2006-01-02") < s.now().Format("2006-01-02") {
		return apperror.Validation("date cannot be in the past")
	}
	return nil
}
