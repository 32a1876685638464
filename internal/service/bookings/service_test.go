package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	bookingRepo "github.com/astraconsult/ACG-BookingService/internal/infra/storage/booking"
	"github.com/astraconsult/ACG-BookingService/internal/service/bookings/models"
	"github.com/astraconsult/ACG-BookingService/pkg/types"
)

type mockBookingRepo struct {
	getByIDFunc      func(ctx context.Context, id int64) (*domain.Booking, error)
	getByDateFunc    func(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
	updateStatusFunc func(ctx context.Context, id int64, status domain.BookingStatus) error
	cancelFunc       func(ctx context.Context, id int64, reason string) error
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *mockBookingRepo) GetByDateWithFilter(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error) {
	if m.getByDateFunc != nil {
		return m.getByDateFunc(ctx, filter)
	}
	return []*domain.Booking{}, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id int64, reason string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id, reason)
	}
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Сейчас среда 2026-03-18 15:00
var testNow = time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func newTestService(repo *mockBookingRepo) *Service {
	return &Service{
		bookingRepo:  repo,
		timeProvider: &fixedTimeProvider{now: testNow},
		logger:       nopLogger{},
	}
}

func testBooking(t *testing.T, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:              1,
		ServiceID:       1,
		BookingDate:     time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		StartTime:       ts(t, "10:00"),
		DurationMinutes: 60,
		Status:          status,
		ClientName:      "Anna Petrova",
		ClientEmail:     "anna@example.com",
	}
}

func repoWith(t *testing.T, booking *domain.Booking) *mockBookingRepo {
	t.Helper()
	return &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Booking, error) {
			if id != booking.ID {
				return nil, bookingRepo.ErrBookingNotFound
			}
			copy := *booking
			return &copy, nil
		},
	}
}

func TestTransition_PendingToConfirmed(t *testing.T) {
	svc := newTestService(repoWith(t, testBooking(t, domain.StatusPending)))

	resp, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestTransition_ConfirmedToCompletedAfterEnd(t *testing.T) {
	// Бронирование 10:00-11:00, сейчас 15:00: время прошло
	svc := newTestService(repoWith(t, testBooking(t, domain.StatusConfirmed)))

	resp, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
}

func TestTransition_CompletedBeforeEndRejected(t *testing.T) {
	booking := testBooking(t, domain.StatusConfirmed)
	booking.StartTime = ts(t, "16:00") // ещё не началось

	svc := newTestService(repoWith(t, booking))

	_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrBookingNotFinished)
}

func TestTransition_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
		target string
	}{
		{name: "pending to completed", status: domain.StatusPending, target: "completed"},
		{name: "completed to confirmed", status: domain.StatusCompleted, target: "confirmed"},
		{name: "cancelled to confirmed", status: domain.StatusCancelled, target: "confirmed"},
		{name: "confirmed to pending", status: domain.StatusConfirmed, target: "pending"},
		{name: "cancel via status endpoint", status: domain.StatusPending, target: "cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(repoWith(t, testBooking(t, tt.status)))

			_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{Status: tt.target})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	svc := newTestService(repoWith(t, testBooking(t, domain.StatusPending)))

	_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{Status: "no_show"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransition_NotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepo{})

	_, err := svc.Transition(context.Background(), 99, &models.TransitionRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ActiveBooking(t *testing.T) {
	var cancelledID int64
	var cancelReason string

	repo := repoWith(t, testBooking(t, domain.StatusConfirmed))
	repo.cancelFunc = func(ctx context.Context, id int64, reason string) error {
		cancelledID = id
		cancelReason = reason
		return nil
	}

	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "клиент заболел"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelledID)
	assert.Equal(t, "клиент заболел", cancelReason)
}

func TestCancel_TerminalStatusesRejected(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			svc := newTestService(repoWith(t, testBooking(t, status)))

			err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepo{})

	err := svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetDayBookings_InvalidStatusFilter(t *testing.T) {
	svc := newTestService(&mockBookingRepo{})

	badStatus := "no_show"
	_, err := svc.GetDayBookings(context.Background(), &models.GetDayBookingsRequest{
		Date:   time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		Status: &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDayBookings_ReturnsList(t *testing.T) {
	repo := &mockBookingRepo{
		getByDateFunc: func(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{
				testBooking(t, domain.StatusPending),
			}, nil
		},
	}

	svc := newTestService(repo)

	resp, err := svc.GetDayBookings(context.Background(), &models.GetDayBookingsRequest{
		Date: time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "10:00", resp.Bookings[0].StartTime)
	assert.Equal(t, "11:00", resp.Bookings[0].EndTime)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepo{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
