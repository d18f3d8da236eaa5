package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingFilter narrows booking listings.
type BookingFilter struct {
	Status    string
	RoomCode  string
	Date      string
	RollNo    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type BookingRepository interface {
	// CreateIfAvailable inserts the booking only if no pending or approved
	// booking for the same room and date overlaps its interval. The check
	// and the insert run in one transaction with the same-day rows locked,
	// so two overlapping requests serialize at the store. Returns the
	// conflicting booking when the slot is taken.
	CreateIfAvailable(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	FindByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Booking, int64, error)
	FindAll(ctx context.Context, filter BookingFilter) ([]*model.Booking, int64, error)
	// FindForDay returns all blocking (pending or approved) bookings for a
	// room and date, ordered by start time.
	FindForDay(ctx context.Context, roomCode, date string) ([]*model.Booking, error)
	Update(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByStatusForUser(ctx context.Context, userID uuid.UUID) (map[string]int64, error)
	CountPerDay(ctx context.Context, since time.Time) ([]DayCount, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) CreateIfAvailable(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	var conflict *model.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sameDay []*model.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("room_code = ? AND date = ? AND status IN ?",
				booking.RoomCode, booking.Date,
				[]model.BookingStatus{model.BookingPending, model.BookingApproved}).
			Order("start_time ASC").
			Find(&sameDay).Error; err != nil {
			return err
		}

		for _, existing := range sameDay {
			if existing.Overlaps(booking.StartTime, booking.EndTime) {
				conflict = existing
				return apperror.ErrConflict
			}
		}

		return tx.Create(booking).Error
	})

	if conflict != nil {
		return conflict, apperror.ErrConflict
	}
	return nil, err
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&booking).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Booking{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []*model.Booking
	if err := query.
		Order("date DESC, start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

var bookingSortColumns = map[string]string{
	"date":       "date",
	"created_at": "created_at",
	"room_code":  "room_code",
	"status":     "status",
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]*model.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Booking{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RoomCode != "" {
		query = query.Where("room_code = ?", filter.RoomCode)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.RollNo != "" {
		query = query.Where("user_roll_no = ?", filter.RollNo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []*model.Booking
	if err := query.
		Order(orderClause(bookingSortColumns, filter.SortBy, filter.SortOrder, "date DESC, start_time DESC")).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *bookingRepository) FindForDay(ctx context.Context, roomCode, date string) ([]*model.Booking, error) {
	var bookings []*model.Booking
	if err := r.db.WithContext(ctx).
		Where("room_code = ? AND date = ? AND status IN ?",
			roomCode, date,
			[]model.BookingStatus{model.BookingPending, model.BookingApproved}).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Booking{}, "id = ?", id).Error
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countGrouped(r.db.WithContext(ctx).Model(&model.Booking{}), "status")
}

func (r *bookingRepository) CountByStatusForUser(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	return countGrouped(
		r.db.WithContext(ctx).Model(&model.Booking{}).Where("user_id = ?", userID),
		"status",
	)
}

func (r *bookingRepository) CountPerDay(ctx context.Context, since time.Time) ([]DayCount, error) {
	return countPerDay(r.db.WithContext(ctx).Model(&model.Booking{}), since)
}
