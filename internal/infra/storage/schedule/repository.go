package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	"github.com/astraconsult/ACG-BookingService/pkg/dbmetrics"
	"github.com/astraconsult/ACG-BookingService/pkg/psqlbuilder"
)

// DBExecutor общий интерфейс исполнителя запросов
type DBExecutor = dbmetrics.DBExecutor

var windowColumns = []string{
	"id",
	"day_of_week",
	"start_time",
	"end_time",
	"recurring",
	"specific_date",
	"created_at",
	"updated_at",
}

var blockedRangeColumns = []string{
	"id",
	"start_date",
	"end_date",
	"reason",
	"created_at",
}

// Repository репозиторий расписания: окна доступности и блокировки дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWindows возвращает все окна доступности
func (r *Repository) ListWindows(ctx context.Context) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// ListWindowsForDate возвращает окна, действующие на указанную дату:
// повторяющиеся окна с совпадающим днём недели и разовые окна этой даты
func (r *Repository) ListWindowsForDate(ctx context.Context, date time.Time) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"recurring": true},
				squirrel.Eq{"day_of_week": int(date.Weekday())},
			},
			squirrel.And{
				squirrel.Eq{"recurring": false},
				squirrel.Eq{"specific_date": date},
			},
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWindowsForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindowsForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// ReplaceWindows заменяет весь набор окон доступности
// Ожидает вызова внутри транзакции (delete + insert должны быть атомарны)
func (r *Repository) ReplaceWindows(ctx context.Context, windows []*domain.AvailabilityWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_windows").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWindows - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWindows - execute delete: %v", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability_windows").
		Columns("day_of_week", "start_time", "end_time", "recurring", "specific_date")

	for _, w := range windows {
		insertBuilder = insertBuilder.Values(
			int(w.DayOfWeek),
			w.StartTime,
			w.EndTime,
			w.Recurring,
			w.SpecificDate,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWindows - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWindows - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListBlockedRanges возвращает все блокировки дат
func (r *Repository) ListBlockedRanges(ctx context.Context) ([]*domain.BlockedRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedRangeColumns...).
		From("blocked_ranges").
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedRanges(rows)
}

// ListBlockedRangesForDate возвращает блокировки, покрывающие дату (границы включительно)
func (r *Repository) ListBlockedRangesForDate(ctx context.Context, date time.Time) ([]*domain.BlockedRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedRangeColumns...).
		From("blocked_ranges").
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedRangesForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedRangesForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedRanges(rows)
}

// CreateBlockedRange создает новую блокировку дат
func (r *Repository) CreateBlockedRange(ctx context.Context, blocked *domain.BlockedRange) (*domain.BlockedRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_ranges").
		Columns("start_date", "end_date", "reason").
		Values(blocked.StartDate, blocked.EndDate, blocked.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedRange - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&blocked.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedRange - execute insert: %v", ErrExecQuery, err)
	}

	blocked.CreatedAt = createdAt.Time

	return blocked, nil
}

// DeleteBlockedRange удаляет блокировку дат по ID
func (r *Repository) DeleteBlockedRange(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_ranges").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedRange - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedRange - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedRange - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedRangeNotFound
	}

	return nil
}

func (r *Repository) scanWindows(rows *sql.Rows) ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0)

	for rows.Next() {
		var window domain.AvailabilityWindow
		var dayOfWeek int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&dayOfWeek,
			&window.StartTime,
			&window.EndTime,
			&window.Recurring,
			&window.SpecificDate,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}

		window.DayOfWeek = time.Weekday(dayOfWeek)
		window.CreatedAt = createdAt.Time
		window.UpdatedAt = updatedAt.Time

		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

func (r *Repository) scanBlockedRanges(rows *sql.Rows) ([]*domain.BlockedRange, error) {
	ranges := make([]*domain.BlockedRange, 0)

	for rows.Next() {
		var blocked domain.BlockedRange
		var createdAt sql.NullTime

		err := rows.Scan(
			&blocked.ID,
			&blocked.StartDate,
			&blocked.EndDate,
			&blocked.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlockedRanges - scan row: %v", ErrScanRow, err)
		}

		blocked.CreatedAt = createdAt.Time

		ranges = append(ranges, &blocked)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlockedRanges - rows error: %v", ErrScanRow, err)
	}

	return ranges, nil
}
