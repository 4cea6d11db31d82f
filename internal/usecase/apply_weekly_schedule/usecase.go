package apply_weekly_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/internal/service/schedules/models"
)

// UseCase use case замены недельного шаблона терапевта
type UseCase struct {
	appointmentRepo      AppointmentRepository
	scheduleRepo         ScheduleRepository
	locker               Locker
	txManager            TransactionManager
	clock                Clock
	metrics              Metrics
	defaultOverrideBreak int
	loc                  *time.Location
	logger               Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	locker Locker,
	txManager TransactionManager,
	clock Clock,
	metrics Metrics,
	defaultOverrideBreak int,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:      appointmentRepo,
		scheduleRepo:         scheduleRepo,
		locker:               locker,
		txManager:            txManager,
		clock:                clock,
		metrics:              metrics,
		defaultOverrideBreak: defaultOverrideBreak,
		loc:                  loc,
		logger:               logger,
	}
}

// Execute заменяет недельный шаблон целиком.
// Если хотя бы одна будущая запись не помещается в новый шаблон, ничего не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.WeeklyScheduleResponse, error) {
	uc.logger.Info("ApplyWeeklySchedule: therapist=%d, days=%d", req.TherapistID, len(req.Days))

	// 1. Валидация шаблона
	days, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ApplyWeeklySchedule: validation failed: %v", err)
		return nil, err
	}

	var saved []domain.TherapistSchedule

	// 2. Проверка и замена в одной транзакции (READ COMMITTED, порядок задают блокировки)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Эксклюзивная блокировка терапевта: ждём все текущие записи и исключения
		if err := uc.locker.LockTherapistExclusive(txCtx, req.TherapistID); err != nil {
			uc.logger.Error("ApplyWeeklySchedule: failed to lock therapist=%d: %v", req.TherapistID, err)
			return fmt.Errorf("%w: ApplyWeeklySchedule - lock therapist: %w", ErrInternal, err)
		}

		// 2.2. Ищем конфликты с будущими записями (строки блокируются)
		conflicts, err := uc.findConflicts(txCtx, req.TherapistID, days)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("ApplyWeeklySchedule: therapist=%d has %d conflicting appointments",
				req.TherapistID, len(conflicts))
			if uc.metrics != nil {
				uc.metrics.ObserveConflict(conflictKind)
			}
			return &domain.ConflictError{Kind: ErrScheduleConflict, Conflicts: conflicts}
		}

		// 2.3. Удаляем старый шаблон и записываем новый
		if err := uc.scheduleRepo.DeleteWeekly(txCtx, req.TherapistID); err != nil {
			uc.logger.Error("ApplyWeeklySchedule: failed to delete weekly schedule: %v", err)
			return fmt.Errorf("%w: ApplyWeeklySchedule - delete weekly: %w", ErrInternal, err)
		}
		if len(days) > 0 {
			if err := uc.scheduleRepo.CreateWeekly(txCtx, req.TherapistID, days); err != nil {
				uc.logger.Error("ApplyWeeklySchedule: failed to create weekly schedule: %v", err)
				return fmt.Errorf("%w: ApplyWeeklySchedule - create weekly: %w", ErrInternal, err)
			}
		}

		saved, err = uc.scheduleRepo.GetWeekly(txCtx, req.TherapistID)
		if err != nil {
			uc.logger.Error("ApplyWeeklySchedule: failed to read weekly schedule: %v", err)
			return fmt.Errorf("%w: ApplyWeeklySchedule - get weekly: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ApplyWeeklySchedule: therapist=%d now works %d days a week", req.TherapistID, len(saved))
	return models.FromDomainWeekly(req.TherapistID, saved), nil
}

// ConflictReport возвращает конфликты предлагаемого шаблона без его применения.
// Блокировки не берутся, результат носит рекомендательный характер.
func (uc *UseCase) ConflictReport(ctx context.Context, req *Request) (*models.ConflictReportResponse, error) {
	uc.logger.Info("WeeklyConflictReport: therapist=%d, days=%d", req.TherapistID, len(req.Days))

	days, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("WeeklyConflictReport: validation failed: %v", err)
		return nil, err
	}

	conflicts, err := uc.findConflicts(ctx, req.TherapistID, days)
	if err != nil {
		return nil, err
	}

	return models.FromDomainConflicts(conflicts, uc.loc), nil
}

// findConflicts сверяет будущие подтверждённые записи с предлагаемым шаблоном.
// Даты с исключением оцениваются по исключению.
func (uc *UseCase) findConflicts(ctx context.Context, therapistID int64, days []domain.TherapistSchedule) ([]domain.Conflict, error) {
	now := uc.clock.Now()

	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentFilter{
		TherapistID:  therapistID,
		From:         &now,
		OnlyBlocking: true,
	})
	if err != nil {
		uc.logger.Error("ApplyWeeklySchedule: failed to list appointments of therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: ApplyWeeklySchedule - list appointments: %w", ErrInternal, err)
	}

	future := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.StartsAt.After(now) {
			future = append(future, *a)
		}
	}
	if len(future) == 0 {
		return nil, nil
	}

	today := domain.CalendarDate(now, uc.loc)
	overrides, err := uc.scheduleRepo.ListOverrides(ctx, therapistID, &today, nil)
	if err != nil {
		uc.logger.Error("ApplyWeeklySchedule: failed to list overrides of therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: ApplyWeeklySchedule - list overrides: %w", ErrInternal, err)
	}

	return domain.FindWeeklyConflicts(days, overrides, future, uc.defaultOverrideBreak, uc.loc), nil
}
