package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/pkg/dbmetrics"
	"github.com/m04kA/massage-scheduler/pkg/psqlbuilder"
)

// Repository каталог услуг терапевтов (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveService возвращает длительность и цену услуги терапевта.
// Индивидуальные значения терапевта перекрывают значения типа услуги.
func (r *Repository) GetActiveService(ctx context.Context, therapistID, serviceID int64) (*domain.TherapistService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildServiceQuery(therapistID, serviceID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveService - build select query: %w", ErrBuildQuery, err)
	}

	var s domain.TherapistService
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.TherapistID,
		&s.ServiceID,
		&s.Name,
		&s.DurationMinutes,
		&s.Price,
		&s.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveService - scan service: %w", ErrScanRow, err)
	}

	if !s.IsActive {
		return nil, ErrServiceUnavailable
	}

	return &s, nil
}

func buildServiceQuery(therapistID, serviceID int64) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"ts.therapist_id",
		"st.id",
		"st.name",
		"COALESCE(ts.duration_minutes, st.default_duration_minutes)",
		"COALESCE(ts.price, st.default_price)",
		"(ts.is_active AND st.is_active)",
	).
		From("therapist_services ts").
		Join("service_types st ON st.id = ts.service_id").
		Where(squirrel.Eq{"ts.therapist_id": therapistID, "ts.service_id": serviceID})
}
