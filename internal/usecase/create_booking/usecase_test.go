package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	bookingRepoPkg "github.com/astraconsult/ACG-BookingService/internal/infra/storage/booking"
	"github.com/astraconsult/ACG-BookingService/internal/integrations/catalogservice"
	"github.com/astraconsult/ACG-BookingService/pkg/ptr"
	"github.com/astraconsult/ACG-BookingService/pkg/txmanager"
	"github.com/astraconsult/ACG-BookingService/pkg/types"
)

// Моки зависимостей

type mockBookingRepo struct {
	createFunc    func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	getByDateFunc func(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	created := *booking
	created.ID = 42
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	return &created, nil
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

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	err error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
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

// Сейчас понедельник 2026-03-16 09:00, бронируем среду 2026-03-18
var (
	testNow  = time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
)

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func wednesdaySchedule(t *testing.T) *mockScheduleRepo {
	t.Helper()
	return &mockScheduleRepo{
		listWindowsFunc: func(ctx context.Context, date time.Time) ([]*domain.AvailabilityWindow, error) {
			return []*domain.AvailabilityWindow{
				{
					DayOfWeek: time.Wednesday,
					StartTime: ts(t, "08:00"),
					EndTime:   ts(t, "20:00"),
					Recurring: true,
				},
			}, nil
		},
	}
}

func newTestUseCase(
	bookingRepo *mockBookingRepo,
	scheduleRepo *mockScheduleRepo,
	catalogClient *mockCatalogClient,
	txManager TransactionManager,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		scheduleRepo:     scheduleRepo,
		catalogClient:    catalogClient,
		txManager:        txManager,
		timeProvider:     &fixedTimeProvider{now: testNow},
		minNoticeMinutes: 60,
		logger:           nopLogger{},
	}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		ServiceID:   1,
		Date:        testDate,
		StartTime:   ts(t, "10:00"),
		EndTime:     ts(t, "11:00"),
		ClientName:  "Anna Petrova",
		ClientEmail: "anna@example.com",
	}
}

func TestExecute_Success(t *testing.T) {
	var created *domain.Booking
	bookingRepo := &mockBookingRepo{
		createFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			created = booking
			result := *booking
			result.ID = 42
			return &result, nil
		},
	}

	uc := newTestUseCase(bookingRepo, wednesdaySchedule(t), &mockCatalogClient{}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "11:00", resp.EndTime.String())

	// Данные услуги денормализованы на момент бронирования
	require.NotNil(t, created)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, "Strategy consultation", created.ServiceName)
	assert.Equal(t, int64(15000), created.TotalPrice)
	assert.Equal(t, 60, created.DurationMinutes)
}

func TestExecute_NilPriceStoredAsZero(t *testing.T) {
	catalogClient := &mockCatalogClient{
		getServiceFunc: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return &catalogservice.Service{
				ID:              serviceID,
				Name:            "Intro call",
				DurationMinutes: 60,
				Active:          true,
			}, nil
		},
	}

	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), catalogClient, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.TotalPrice)
}

func TestExecute_SlotTakenByActiveBooking(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		getByDateFunc: func(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{StartTime: ts(t, "10:00"), DurationMinutes: 60, Status: domain.StatusPending},
			}, nil
		},
	}

	uc := newTestUseCase(bookingRepo, wednesdaySchedule(t), &mockCatalogClient{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_RangeMustMatchSlotExactly(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), &mockCatalogClient{}, &fakeTxManager{})

	// 10:00-12:00 не совпадает ни с одним часовым слотом целиком
	req := validRequest(t)
	req.EndTime = ts(t, "12:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// 10:30-11:30 не выровнен по сетке слотов
	req = validRequest(t)
	req.StartTime = ts(t, "10:30")
	req.EndTime = ts(t, "11:30")

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SameDayInWesternTimezoneAccepted(t *testing.T) {
	// Дата запроса парсится как полночь UTC, а now идёт в операционном поясе.
	// Западнее UTC полночь UTC наступает раньше локальной: сегодняшняя бронь
	// не должна отклоняться как прошедшая
	western := time.FixedZone("UTC-5", -5*60*60)

	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), &mockCatalogClient{}, &fakeTxManager{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 18, 8, 0, 0, 0, western)}

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), &mockCatalogClient{}, &fakeTxManager{})

	req := validRequest(t)
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_BlockedDateRejected(t *testing.T) {
	scheduleRepo := wednesdaySchedule(t)
	scheduleRepo.listBlockedRangesFunc = func(ctx context.Context, date time.Time) ([]*domain.BlockedRange, error) {
		return []*domain.BlockedRange{
			{StartDate: testDate, EndDate: testDate},
		}, nil
	}

	uc := newTestUseCase(&mockBookingRepo{}, scheduleRepo, &mockCatalogClient{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_UniqueIndexConflictMapped(t *testing.T) {
	// Гонка: уникальный индекс отклонил вставку
	bookingRepo := &mockBookingRepo{
		createFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			return nil, bookingRepoPkg.ErrSlotTaken
		},
	}

	uc := newTestUseCase(bookingRepo, wednesdaySchedule(t), &mockCatalogClient{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SerializationConflictMapped(t *testing.T) {
	// Гонка: SERIALIZABLE транзакция не смогла зафиксироваться
	txManager := &fakeTxManager{err: txmanager.ErrSerialization}

	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), &mockCatalogClient{}, txManager)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_InactiveServiceRejected(t *testing.T) {
	catalogClient := &mockCatalogClient{
		getServiceFunc: func(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
			return &catalogservice.Service{ID: serviceID, DurationMinutes: 60, Active: false}, nil
		},
	}

	uc := newTestUseCase(&mockBookingRepo{}, wednesdaySchedule(t), catalogClient, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
