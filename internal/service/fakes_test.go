package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/internal/repository"
	"github.com/psgtech/campusfacility/pkg/apperror"
	"github.com/psgtech/campusfacility/pkg/storage"
	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. They mirror the store-level
// guarantees the services rely on: record-not-found errors, unique roll/email,
// and the conditional booking insert.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) || strings.EqualFold(existing.RollNo, user.RollNo) {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByRollNo(_ context.Context, rollNo string) (*model.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.RollNo, rollNo) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context, filter repository.UserFilter) ([]*model.User, int64, error) {
	var out []*model.User
	for _, user := range r.users {
		if filter.Role != "" && string(user.Role) != filter.Role {
			continue
		}
		if filter.Approved != nil && user.IsApproved != *filter.Approved {
			continue
		}
		clone := *user
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, user := range r.users {
		out[string(user.Role)]++
	}
	return out, nil
}

func (r *fakeUserRepo) CountPendingApproval(_ context.Context) (int64, error) {
	var count int64
	for _, user := range r.users {
		if !user.IsApproved && user.Role != model.RoleAdmin {
			count++
		}
	}
	return count, nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*model.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*model.Booking)}
}

func (r *fakeBookingRepo) CreateIfAvailable(_ context.Context, booking *model.Booking) (*model.Booking, error) {
	for _, existing := range r.bookings {
		if existing.RoomCode == booking.RoomCode && existing.Date == booking.Date &&
			existing.Blocks() && existing.Overlaps(booking.StartTime, booking.EndTime) {
			clone := *existing
			return &clone, apperror.ErrConflict
		}
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil, nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *booking
	return &clone, nil
}

func (r *fakeBookingRepo) FindByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]*model.Booking, int64, error) {
	var out []*model.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			clone := *booking
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) FindAll(_ context.Context, filter repository.BookingFilter) ([]*model.Booking, int64, error) {
	var out []*model.Booking
	for _, booking := range r.bookings {
		if filter.Status != "" && string(booking.Status) != filter.Status {
			continue
		}
		if filter.RoomCode != "" && booking.RoomCode != filter.RoomCode {
			continue
		}
		if filter.Date != "" && booking.Date != filter.Date {
			continue
		}
		if filter.RollNo != "" && booking.UserRollNo != filter.RollNo {
			continue
		}
		clone := *booking
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) FindForDay(_ context.Context, roomCode, date string) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, booking := range r.bookings {
		if booking.RoomCode == roomCode && booking.Date == date && booking.Blocks() {
			clone := *booking
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *model.Booking) error {
	if _, ok := r.bookings[booking.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, booking := range r.bookings {
		out[string(booking.Status)]++
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByStatusForUser(_ context.Context, userID uuid.UUID) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			out[string(booking.Status)]++
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountPerDay(_ context.Context, _ time.Time) ([]repository.DayCount, error) {
	return nil, nil
}

type fakeIssueRepo struct {
	issues map[uuid.UUID]*model.Issue
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{issues: make(map[uuid.UUID]*model.Issue)}
}

func (r *fakeIssueRepo) Create(_ context.Context, issue *model.Issue) error {
	if issue.ID == uuid.Nil {
		issue.ID = uuid.New()
	}
	clone := *issue
	r.issues[issue.ID] = &clone
	return nil
}

func (r *fakeIssueRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Issue, error) {
	issue, ok := r.issues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *issue
	return &clone, nil
}

func (r *fakeIssueRepo) FindByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]*model.Issue, int64, error) {
	var out []*model.Issue
	for _, issue := range r.issues {
		if issue.UserID == userID {
			clone := *issue
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeIssueRepo) FindAll(_ context.Context, filter repository.IssueFilter) ([]*model.Issue, int64, error) {
	var out []*model.Issue
	for _, issue := range r.issues {
		if filter.Status != "" && string(issue.Status) != filter.Status {
			continue
		}
		if filter.Category != "" && issue.Category != filter.Category {
			continue
		}
		clone := *issue
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeIssueRepo) Update(_ context.Context, issue *model.Issue) error {
	if _, ok := r.issues[issue.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *issue
	r.issues[issue.ID] = &clone
	return nil
}

func (r *fakeIssueRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.issues, id)
	return nil
}

func (r *fakeIssueRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, issue := range r.issues {
		out[string(issue.Status)]++
	}
	return out, nil
}

func (r *fakeIssueRepo) CountByCategory(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, issue := range r.issues {
		out[issue.Category]++
	}
	return out, nil
}

func (r *fakeIssueRepo) CountByPriority(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, issue := range r.issues {
		out[issue.Priority]++
	}
	return out, nil
}

func (r *fakeIssueRepo) CountByStatusForUser(_ context.Context, userID uuid.UUID) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, issue := range r.issues {
		if issue.UserID == userID {
			out[string(issue.Status)]++
		}
	}
	return out, nil
}

func (r *fakeIssueRepo) CountPerDay(_ context.Context, _ time.Time) ([]repository.DayCount, error) {
	return nil, nil
}

type fakeAnnouncementRepo struct {
	announcements map[uuid.UUID]*model.Announcement
	views         map[string]bool
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{
		announcements: make(map[uuid.UUID]*model.Announcement),
		views:         make(map[string]bool),
	}
}

func (r *fakeAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	clone := *a
	r.announcements[a.ID] = &clone
	return nil
}

func (r *fakeAnnouncementRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Announcement, error) {
	a, ok := r.announcements[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeAnnouncementRepo) FindVisible(_ context.Context, viewer *model.User, filter repository.AnnouncementFilter) ([]*model.Announcement, int64, error) {
	now := time.Now()
	var out []*model.Announcement
	for _, a := range r.announcements {
		if !a.IsActive || a.Expired(now) || a.PublishDate.After(now) {
			continue
		}
		if !a.VisibleTo(viewer) {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAnnouncementRepo) FindAllAdmin(_ context.Context, filter repository.AnnouncementFilter) ([]*model.Announcement, int64, error) {
	var out []*model.Announcement
	for _, a := range r.announcements {
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAnnouncementRepo) Update(_ context.Context, a *model.Announcement) error {
	if _, ok := r.announcements[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *a
	r.announcements[a.ID] = &clone
	return nil
}

func (r *fakeAnnouncementRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.announcements, id)
	return nil
}

func (r *fakeAnnouncementRepo) RecordView(_ context.Context, announcementID, userID uuid.UUID) (bool, error) {
	key := announcementID.String() + ":" + userID.String()
	if r.views[key] {
		return false, nil
	}
	r.views[key] = true
	if a, ok := r.announcements[announcementID]; ok {
		a.ViewCount++
	}
	return true, nil
}

func (r *fakeAnnouncementRepo) CountByCategory(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, a := range r.announcements {
		out[a.Category]++
	}
	return out, nil
}

func (r *fakeAnnouncementRepo) CountActive(_ context.Context, now time.Time) (int64, error) {
	var count int64
	for _, a := range r.announcements {
		if a.IsActive && !a.Expired(now) {
			count++
		}
	}
	return count, nil
}

// fakeFileStorage records uploads and deletes in memory.
type fakeFileStorage struct {
	uploads int
	deleted []string
	failAll bool
}

func (s *fakeFileStorage) UploadFile(_ context.Context, r io.Reader, folder, originalName string) (*storage.UploadResult, error) {
	if s.failAll {
		return nil, fmt.Errorf("storage unavailable")
	}
	if r != nil {
		_, _ = io.Copy(io.Discard, r)
	}
	s.uploads++
	name := fmt.Sprintf("%s-%d", originalName, s.uploads)
	return &storage.UploadResult{
		FileName:    name,
		URL:         "https://files.example/" + folder + "/" + name,
		StoragePath: folder + "/" + name,
	}, nil
}

func (s *fakeFileStorage) DeleteFile(_ context.Context, storagePath string) error {
	s.deleted = append(s.deleted, storagePath)
	return nil
}

func uploadOf(name string, size int64) UploadFile {
	return UploadFile{
		Reader:       bytes.NewReader(make([]byte, 16)),
		OriginalName: name,
		MimeType:     "image/png",
		Size:         size,
	}
}
