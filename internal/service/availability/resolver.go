package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	scheduleRepo "github.com/m04kA/massage-scheduler/internal/infra/storage/schedule"
)

// Resolver вычисляет рабочие часы терапевта на дату с учётом исключений
type Resolver struct {
	scheduleRepo         ScheduleRepository
	defaultOverrideBreak int
	logger               Logger
}

// NewResolver создает новый экземпляр Resolver
func NewResolver(scheduleRepo ScheduleRepository, defaultOverrideBreak int, logger Logger) *Resolver {
	return &Resolver{
		scheduleRepo:         scheduleRepo,
		defaultOverrideBreak: defaultOverrideBreak,
		logger:               logger,
	}
}

// Resolve возвращает доступность терапевта на календарную дату.
// Исключение на дату имеет приоритет: недельный шаблон в этом случае не читается.
func (r *Resolver) Resolve(ctx context.Context, therapistID int64, date time.Time) (domain.Availability, error) {
	override, err := r.scheduleRepo.GetOverride(ctx, therapistID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		r.logger.Error("Resolve: failed to get override for therapist=%d, date=%s: %v",
			therapistID, date.Format(domain.DateFormat), err)
		return domain.Availability{}, fmt.Errorf("%w: Resolve - get override: %w", ErrInternal, err)
	}

	if override != nil {
		return domain.ResolveAvailability(date, override, nil, r.defaultOverrideBreak), nil
	}

	weekly, err := r.scheduleRepo.GetWeekly(ctx, therapistID)
	if err != nil {
		r.logger.Error("Resolve: failed to get weekly schedule for therapist=%d: %v", therapistID, err)
		return domain.Availability{}, fmt.Errorf("%w: Resolve - get weekly schedule: %w", ErrInternal, err)
	}

	return domain.ResolveAvailability(date, nil, weekly, r.defaultOverrideBreak), nil
}

// IsAvailable проверяет, работает ли терапевт в эту дату
func (r *Resolver) IsAvailable(ctx context.Context, therapistID int64, date time.Time) (bool, error) {
	availability, err := r.Resolve(ctx, therapistID, date)
	if err != nil {
		return false, err
	}
	return availability.IsAvailable(), nil
}
