package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/pkg/dbmetrics"
	"github.com/m04kA/massage-scheduler/pkg/psqlbuilder"
)

const (
	weeklyTable    = "therapist_schedules"
	overridesTable = "schedule_overrides"
)

// codeUniqueViolation нарушение уникального индекса
const codeUniqueViolation pq.ErrorCode = "23505"

// Repository репозиторий недельного шаблона и исключений на даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekly получает недельный шаблон терапевта, упорядоченный по дню недели
func (r *Repository) GetWeekly(ctx context.Context, therapistID int64) ([]domain.TherapistSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"therapist_id",
		"weekday",
		"start_time",
		"end_time",
		"break_minutes",
		"is_active",
		"created_at",
	).
		From(weeklyTable).
		Where(squirrel.Eq{"therapist_id": therapistID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.TherapistSchedule, 0, 7)
	for rows.Next() {
		var day domain.TherapistSchedule
		var createdAt sql.NullTime

		if err := rows.Scan(
			&day.ID,
			&day.TherapistID,
			&day.Weekday,
			&day.StartTime,
			&day.EndTime,
			&day.BreakMinutes,
			&day.IsActive,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetWeekly - scan row: %w", ErrScanRow, err)
		}

		day.CreatedAt = createdAt.Time
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - rows error: %w", ErrScanRow, err)
	}

	return days, nil
}

// DeleteWeekly удаляет весь недельный шаблон терапевта.
// Используется только вместе с CreateWeekly в одной транзакции (полная замена шаблона).
func (r *Repository) DeleteWeekly(ctx context.Context, therapistID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(weeklyTable).
		Where(squirrel.Eq{"therapist_id": therapistID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteWeekly - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteWeekly - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// CreateWeekly вставляет строки недельного шаблона одним запросом
func (r *Repository) CreateWeekly(ctx context.Context, therapistID int64, days []domain.TherapistSchedule) error {
	if len(days) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildWeeklyInsert(therapistID, days).ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateWeekly - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
			return ErrDuplicateWeekday
		}
		return fmt.Errorf("%w: CreateWeekly - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func buildWeeklyInsert(therapistID int64, days []domain.TherapistSchedule) squirrel.InsertBuilder {
	insert := psqlbuilder.Insert(weeklyTable).
		Columns("therapist_id", "weekday", "start_time", "end_time", "break_minutes", "is_active")

	for _, day := range days {
		insert = insert.Values(therapistID, int(day.Weekday), day.StartTime, day.EndTime, day.BreakMinutes, day.IsActive)
	}

	return insert
}
