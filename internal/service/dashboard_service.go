package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/repository"
	"github.com/psgtech/campusfacility/pkg/apperror"
)

// Overview is the admin aggregate dashboard. It is computed as a single unit
// of work; any failing aggregate fails the whole request.
type Overview struct {
	UsersByRole         map[string]int64 `json:"users_by_role"`
	PendingApprovals    int64            `json:"pending_approvals"`
	BookingsByStatus    map[string]int64 `json:"bookings_by_status"`
	IssuesByStatus      map[string]int64 `json:"issues_by_status"`
	IssuesByPriority    map[string]int64 `json:"issues_by_priority"`
	ActiveAnnouncements int64            `json:"active_announcements"`
}

// StudentStats is the per-student dashboard: the caller's own records.
type StudentStats struct {
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	IssuesByStatus   map[string]int64 `json:"issues_by_status"`
}

// Analytics buckets booking and issue creation per calendar day.
type Analytics struct {
	Days     int                   `json:"days"`
	Bookings []repository.DayCount `json:"bookings"`
	Issues   []repository.DayCount `json:"issues"`
}

type DashboardService interface {
	Overview(ctx context.Context) (*Overview, error)
	StudentStats(ctx context.Context, userID uuid.UUID) (*StudentStats, error)
	Analytics(ctx context.Context, days int) (*Analytics, error)
}

type dashboardService struct {
	users         repository.UserRepository
	bookings      repository.BookingRepository
	issues        repository.IssueRepository
	announcements repository.AnnouncementRepository
}

func NewDashboardService(users repository.UserRepository, bookings repository.BookingRepository, issues repository.IssueRepository, announcements repository.AnnouncementRepository) DashboardService {
	return &dashboardService{
		users:         users,
		bookings:      bookings,
		issues:        issues,
		announcements: announcements,
	}
}

func (s *dashboardService) Overview(ctx context.Context) (*Overview, error) {
	usersByRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.users.CountPendingApproval(ctx)
	if err != nil {
		return nil, err
	}
	bookingsByStatus, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	issuesByStatus, err := s.issues.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	issuesByPriority, err := s.issues.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}
	activeAnnouncements, err := s.announcements.CountActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	return &Overview{
		UsersByRole:         usersByRole,
		PendingApprovals:    pending,
		BookingsByStatus:    bookingsByStatus,
		IssuesByStatus:      issuesByStatus,
		IssuesByPriority:    issuesByPriority,
		ActiveAnnouncements: activeAnnouncements,
	}, nil
}

func (s *dashboardService) StudentStats(ctx context.Context, userID uuid.UUID) (*StudentStats, error) {
	bookings, err := s.bookings.CountByStatusForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	issues, err := s.issues.CountByStatusForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &StudentStats{
		BookingsByStatus: bookings,
		IssuesByStatus:   issues,
	}, nil
}

func (s *dashboardService) Analytics(ctx context.Context, days int) (*Analytics, error) {
	if days < 1 {
		days = 30
	}
	if days > 365 {
		return nil, apperror.Validation("analytics window is capped at 365 days")
	}

	since := time.Now().AddDate(0, 0, -days)

	bookings, err := s.bookings.CountPerDay(ctx, since)
	if err != nil {
		return nil, err
	}
	issues, err := s.issues.CountPerDay(ctx, since)
	if err != nil {
		return nil, err
	}

	return &Analytics{Days: days, Bookings: bookings, Issues: issues}, nil
}
