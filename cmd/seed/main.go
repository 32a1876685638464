// Команда seed наполняет базу тестовыми данными для локальной разработки:
// недельное расписание, блокировка дат и случайные бронирования
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	_ "github.com/lib/pq"

	"github.com/astraconsult/ACG-BookingService/internal/config"
	"github.com/astraconsult/ACG-BookingService/internal/domain"
	"github.com/astraconsult/ACG-BookingService/pkg/ptr"
	"github.com/astraconsult/ACG-BookingService/pkg/types"
)

const defaultBookings = 20

func main() {
	configPath := flag.String("config", "config.toml", "путь к конфигурационному файлу")
	bookingsCount := flag.Int("bookings", defaultBookings, "количество случайных бронирований")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		fmt.Printf("Failed to ping database: %v\n", err)
		os.Exit(1)
	}

	if err := seedSchedule(db); err != nil {
		fmt.Printf("Failed to seed schedule: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Schedule seeded: Mon-Fri 08:00-20:00")

	if err := seedBlockedRange(db); err != nil {
		fmt.Printf("Failed to seed blocked range: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Blocked range seeded")

	created, err := seedBookings(db, *bookingsCount)
	if err != nil {
		fmt.Printf("Failed to seed bookings: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Bookings seeded: %d\n", created)
}

// seedSchedule создает повторяющиеся окна доступности на будние дни
func seedSchedule(db *sql.DB) error {
	for day := time.Monday; day <= time.Friday; day++ {
		_, err := db.Exec(
			`INSERT INTO availability_windows (day_of_week, start_time, end_time, recurring)
			 VALUES ($1, $2, $3, true)`,
			int(day), "08:00", "20:00",
		)
		if err != nil {
			return fmt.Errorf("insert window for day %d: %w", day, err)
		}
	}
	return nil
}

// seedBlockedRange блокирует неделю через месяц от текущей даты
func seedBlockedRange(db *sql.DB) error {
	start := time.Now().AddDate(0, 1, 0)
	end := start.AddDate(0, 0, 6)

	_, err := db.Exec(
		`INSERT INTO blocked_ranges (start_date, end_date, reason) VALUES ($1, $2, $3)`,
		start.Format(domain.DateFormat), end.Format(domain.DateFormat), "отпуск",
	)
	return err
}

// seedBookings создает случайные бронирования на будние дни ближайших двух недель
// Занятые слоты пропускаются: частичный уникальный индекс отклоняет дубликаты
func seedBookings(db *sql.DB, count int) (int, error) {
	durations := []int{30, 60, 90, 120}
	created := 0

	for i := 0; i < count; i++ {
		date := nextBusinessDay(time.Now().AddDate(0, 0, gofakeit.Number(1, 14)))

		// Слоты с 08:00 до 18:00 с шагом в полчаса
		startMinutes := 8*60 + 30*gofakeit.Number(0, 20)
		startTime, err := types.NewTimeStringFromMinutes(startMinutes)
		if err != nil {
			return created, err
		}

		duration := durations[gofakeit.Number(0, len(durations)-1)]
		price := int64(gofakeit.Number(50, 500)) * 100

		booking := &domain.Booking{
			ServiceID:       int64(gofakeit.Number(1, 5)),
			BookingDate:     date,
			StartTime:       startTime,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			ClientName:      gofakeit.Name(),
			ClientEmail:     gofakeit.Email(),
			ClientPhone:     ptr.Ptr(gofakeit.Phone()),
			ClientCompany:   ptr.Ptr(gofakeit.Company()),
			ServiceName:     gofakeit.JobTitle() + " consultation",
			TotalPrice:      price,
		}

		if gofakeit.Bool() {
			booking.Status = domain.StatusConfirmed
		}

		_, err = db.Exec(
			`INSERT INTO bookings
			   (service_id, booking_date, start_time, duration_minutes, status,
			    client_name, client_email, client_phone, client_company, service_name, total_price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT DO NOTHING`,
			booking.ServiceID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime.String(),
			booking.DurationMinutes,
			string(booking.Status),
			booking.ClientName,
			booking.ClientEmail,
			booking.ClientPhone,
			booking.ClientCompany,
			booking.ServiceName,
			booking.TotalPrice,
		)
		if err != nil {
			return created, fmt.Errorf("insert booking: %w", err)
		}
		created++
	}

	return created, nil
}

// nextBusinessDay сдвигает дату вперёд до ближайшего буднего дня
func nextBusinessDay(date time.Time) time.Time {
	for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		date = date.AddDate(0, 0, 1)
	}
	return date
}
