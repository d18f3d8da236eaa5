package service

import (
	"context"
	"testing"

	"github.com/psgtech/campusfacility/internal/dto"
	"github.com/psgtech/campusfacility/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardOverview(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	issues := newFakeIssueRepo()
	announcements := newFakeAnnouncementRepo()
	ctx := context.Background()

	pendingClassRep(t, users)
	bookingSvc := newTestBookingService(bookings)
	seminarHallBooking(t, bookingSvc, testStudent(), "2026-03-12", "10:00", "12:00")

	issueSvc := newTestIssueService(issues, &fakeFileStorage{})
	reportIssue(t, issueSvc, testStudent())

	announcementSvc := newTestAnnouncementService(announcements)
	publishAnnouncement(t, announcementSvc, nil)

	svc := NewDashboardService(users, bookings, issues, announcements)
	overview, err := svc.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), overview.UsersByRole["class_representative"])
	assert.Equal(t, int64(1), overview.PendingApprovals)
	assert.Equal(t, int64(1), overview.BookingsByStatus["pending"])
	assert.Equal(t, int64(1), overview.IssuesByStatus["pending"])
	assert.Equal(t, int64(1), overview.IssuesByPriority["medium"])
	assert.Equal(t, int64(1), overview.ActiveAnnouncements)
}

func TestDashboardStudentStats(t *testing.T) {
	bookings := newFakeBookingRepo()
	issues := newFakeIssueRepo()
	owner := testStudent()
	ctx := context.Background()

	bookingSvc := newTestBookingService(bookings)
	seminarHallBooking(t, bookingSvc, owner, "2026-03-12", "10:00", "12:00")
	seminarHallBooking(t, bookingSvc, testStudent(), "2026-03-12", "14:00", "16:00")

	issueSvc := newTestIssueService(issues, &fakeFileStorage{})
	reportIssue(t, issueSvc, owner)

	svc := NewDashboardService(newFakeUserRepo(), bookings, issues, newFakeAnnouncementRepo())
	stats, err := svc.StudentStats(ctx, owner.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.BookingsByStatus["pending"], "other students' records are excluded")
	assert.Equal(t, int64(1), stats.IssuesByStatus["pending"])
}

func TestDashboardAnalyticsWindow(t *testing.T) {
	svc := NewDashboardService(newFakeUserRepo(), newFakeBookingRepo(), newFakeIssueRepo(), newFakeAnnouncementRepo())
	ctx := context.Background()

	analytics, err := svc.Analytics(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, analytics.Days, "window defaults to 30 days")

	analytics, err = svc.Analytics(ctx, 90)
	require.NoError(t, err)
	assert.Equal(t, 90, analytics.Days)

	_, err = svc.Analytics(ctx, 400)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestListOwnBookingsPaging(t *testing.T) {
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(bookings)
	owner := testStudent()

	seminarHallBooking(t, svc, owner, "2026-03-12", "10:00", "12:00")
	seminarHallBooking(t, svc, owner, "2026-03-13", "10:00", "12:00")

	items, total, err := svc.ListOwn(context.Background(), owner.ID, dto.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
}
