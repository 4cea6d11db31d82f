package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/massage-scheduler/internal/domain"
)

// OverlapDetector проверяет пересечение интервала с подтверждёнными записями терапевта.
//
// Вне транзакции результат носит рекомендательный характер (предпроверка).
// Внутри транзакции найденные строки блокируются, и проверка авторитетна.
type OverlapDetector struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewOverlapDetector создает новый экземпляр OverlapDetector
func NewOverlapDetector(appointmentRepo AppointmentRepository, logger Logger) *OverlapDetector {
	return &OverlapDetector{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// HasOverlap проверяет, пересекается ли [r.Start, r.End) с какой-либо подтверждённой записью.
// excludeID позволяет исключить запись из проверки.
func (d *OverlapDetector) HasOverlap(ctx context.Context, therapistID int64, r domain.TimeRange, excludeID *int64) (bool, error) {
	overlapping, err := d.Overlapping(ctx, therapistID, r, excludeID)
	if err != nil {
		return false, err
	}
	return len(overlapping) > 0, nil
}

// Overlapping возвращает подтверждённые записи, пересекающие интервал
func (d *OverlapDetector) Overlapping(ctx context.Context, therapistID int64, r domain.TimeRange, excludeID *int64) ([]*domain.Appointment, error) {
	if !r.Valid() {
		return nil, ErrInvalidTimeRange
	}

	candidates, err := d.appointmentRepo.List(ctx, domain.AppointmentFilter{
		TherapistID:  therapistID,
		From:         &r.Start,
		To:           &r.End,
		OnlyBlocking: true,
		ExcludeID:    excludeID,
	})
	if err != nil {
		d.logger.Error("Overlapping: failed to list appointments for therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: Overlapping - list appointments: %w", ErrInternal, err)
	}

	overlapping := make([]*domain.Appointment, 0, len(candidates))
	for _, a := range candidates {
		if !a.Status.BlocksTime() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.Range().Overlaps(r) {
			overlapping = append(overlapping, a)
		}
	}

	return overlapping, nil
}
