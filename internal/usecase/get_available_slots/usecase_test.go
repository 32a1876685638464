package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	"github.com/astraconsult/ACG-BookingService/internal/integrations/catalogservice"
	"github.com/astraconsult/ACG-BookingService/pkg/ptr"
)

// Моки зависимостей

type mockBookingRepo struct {
	getByDateFunc func(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) GetByDateWithFilter(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error) {
	if m.getByDateFunc != nil {
		return m.getByDateFunc(ctx, filter)
	}
	return []*domain.Booking{}, nil
}

type mockScheduleRepo struct {
	listWindowsFunc       func(ctx context.Context, date time.Time) ([]*domain.AvailabilityWindow, error)
	listBlockedRangesFunc func(ctx context.Context, date time.Time) ([]*domain.BlockedRange, error)
}

func (m *mockScheduleRepo) ListWindowsForDate(ctx context.Context, date time.Time) ([]*domain.AvailabilityWindow, error) {
	if m.listWindowsFunc != nil {
		return m.listWindowsFunc(ctx, date)
	}
	return []*domain.AvailabilityWindow{}, nil
}

func (m *mockScheduleRepo) ListBlockedRangesForDate(ctx context.Context, date time.Time) ([]*domain.BlockedRange, error) {
	if m.listBlockedRangesFunc != nil {
		return m.listBlockedRangesFunc(ctx, date)
	}
	return []*domain.BlockedRange{}, nil
}

type mockCatalogClient struct {
	getServiceFunc func(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

func (m *mockCatalogClient) GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
	if m.getServiceFunc != nil {
		return m.getServiceFunc(ctx, serviceID)
	}
	return &catalogservice.Service{
		ID:              serviceID,
		Name:            "Strategy consultation",
		DurationMinutes: 60,
		PriceMinorUnits: ptr.Ptr(int64(15000)),
		Active:          true,
	}, nil
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

func newTestUseCase(
	bookingRepo *mockBookingRepo,
	scheduleRepo *mockScheduleRepo,
	catalogClient *mockCatalogClient,
	now time.Time,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		scheduleRepo:     scheduleRepo,
		catalogClient:    catalogClient,
		timeProvider:     &fixedTimeProvider{now: now},
		minNoticeMinutes: 60,
		logger:           nopLogger{},
	}
}

// Сейчас понедельник 2026-03-16 09:00, запрашиваем среду 2026-03-18
var testNow = time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)

func wednesdaySchedule(t *testing.T) *mockScheduleRepo {
	t.Helper()
	return &mockScheduleRepo{
		listWindowsFunc: func(ctx context.Context, date time.Time) ([]*domain.AvailabilityWindow, error) {
			return []*domain.AvailabilityWindow{
				recurringWindow(t, time.Wednesday, "08:00", "20:00"),
			}, nil
		},
	}
}

func TestExecute_DayWithBookedSlot(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		getByDateFunc: func(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{StartTime: ts(t, "10:00"), DurationMinutes: 60, Status: domain.StatusConfirmed},
			}, nil
		},
	}

	uc := newTestUseCase(bookingRepo, wednesdaySchedule(t), &mockCatalogClient{}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// 12 часовых слотов минус занятый 10:00
	require.Len(t, resp.Slots, 11)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, "10:00", slot.StartTime.String())
	}
}

func TestExecute_Idempotent(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), &mockCatalogClient{}, testNow)

	first, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// Повторный вызов с теми же данными даёт тот же результат
	assert.Equal(t, first, second)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), &mockCatalogClient{}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      testNow.AddDate(0, 0, -1),
	})

	// Прошедшая дата: пустой список, не ошибка
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BlockedDateReturnsEmpty(t *testing.T) {
	scheduleRepo := wednesdaySchedule(t)
	scheduleRepo.listBlockedRangesFunc = func(ctx context.Context, date time.Time) ([]*domain.BlockedRange, error) {
		return []*domain.BlockedRange{
			{StartDate: testDate, EndDate: testDate, Reason: ptr.Ptr("отпуск")},
		}, nil
	}

	uc := newTestUseCase(&mockBookingRepo{}, scheduleRepo, &mockCatalogClient{}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoWindowsReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockScheduleRepo{}, &mockCatalogClient{}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InactiveServiceNotFound(t *testing.T) {
	catalogClient := &mockCatalogClient{
		getServiceFunc: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return &catalogservice.Service{ID: serviceID, DurationMinutes: 60, Active: false}, nil
		},
	}

	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), catalogClient, testNow)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_UnknownServiceNotFound(t *testing.T) {
	catalogClient := &mockCatalogClient{
		getServiceFunc: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return nil, catalogservice.ErrServiceNotFound
		},
	}

	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), catalogClient, testNow)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), &mockCatalogClient{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SameDayNoticeApplied(t *testing.T) {
	// Сейчас среда 10:30, запрашиваем сегодняшние слоты
	now := time.Date(2026, 3, 18, 10, 30, 0, 0, time.UTC)

	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), &mockCatalogClient{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// Минимальное уведомление 60 минут: первый доступный слот 12:00
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "12:00", resp.Slots[0].StartTime.String())
}
