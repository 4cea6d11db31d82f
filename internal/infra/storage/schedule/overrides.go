package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/pkg/dbmetrics"
	"github.com/m04kA/massage-scheduler/pkg/psqlbuilder"
)

var overrideColumns = []string{
	"id",
	"therapist_id",
	"date",
	"jalali_date",
	"type",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// GetOverride получает исключение терапевта на календарную дату
func (r *Repository) GetOverride(ctx context.Context, therapistID int64, date time.Time) (*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From(overridesTable).
		Where(squirrel.Eq{"therapist_id": therapistID, "date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %w", ErrBuildQuery, err)
	}

	o, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan override: %w", ErrScanRow, err)
	}

	return o, nil
}

// ListOverrides получает исключения терапевта в диапазоне дат [from, to] (границы опциональны)
func (r *Repository) ListOverrides(ctx context.Context, therapistID int64, from, to *time.Time) ([]domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildOverridesQuery(therapistID, from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.ScheduleOverride, 0)
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOverrides - scan row: %w", ErrScanRow, err)
		}
		overrides = append(overrides, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - rows error: %w", ErrScanRow, err)
	}

	return overrides, nil
}

// CreateOverride создает исключение на дату
func (r *Repository) CreateOverride(ctx context.Context, o *domain.ScheduleOverride) (*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(overridesTable).
		Columns("therapist_id", "date", "jalali_date", "type", "start_time", "end_time", "reason").
		Values(
			o.TherapistID,
			o.Date.Format(domain.DateFormat),
			o.JalaliDate,
			o.Type,
			o.StartTime,
			o.EndTime,
			o.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateOverride - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &createdAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
			return nil, ErrDuplicateOverride
		}
		return nil, fmt.Errorf("%w: CreateOverride - execute insert: %w", ErrExecQuery, err)
	}

	o.CreatedAt = createdAt.Time
	return o, nil
}

// DeleteOverride удаляет исключение на дату. Возвращает false, если его не было.
func (r *Repository) DeleteOverride(ctx context.Context, therapistID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(overridesTable).
		Where(squirrel.Eq{"therapist_id": therapistID, "date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: DeleteOverride - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: DeleteOverride - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: DeleteOverride - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

func buildOverridesQuery(therapistID int64, from, to *time.Time) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(overrideColumns...).
		From(overridesTable).
		Where(squirrel.Eq{"therapist_id": therapistID})

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": to.Format(domain.DateFormat)})
	}

	return selectBuilder.OrderBy("date ASC")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOverride(row rowScanner) (*domain.ScheduleOverride, error) {
	var o domain.ScheduleOverride
	var createdAt sql.NullTime

	err := row.Scan(
		&o.ID,
		&o.TherapistID,
		&o.Date,
		&o.JalaliDate,
		&o.Type,
		&o.StartTime,
		&o.EndTime,
		&o.Reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	o.Date = time.Date(o.Date.Year(), o.Date.Month(), o.Date.Day(), 0, 0, 0, 0, time.UTC)
	o.CreatedAt = createdAt.Time
	return &o, nil
}
