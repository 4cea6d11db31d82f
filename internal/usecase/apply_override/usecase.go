package apply_override

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/internal/service/schedules/models"
)

// UseCase use case исключений расписания на дату
type UseCase struct {
	appointmentRepo      AppointmentRepository
	scheduleRepo         ScheduleRepository
	locker               Locker
	txManager            TransactionManager
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
		metrics:              metrics,
		defaultOverrideBreak: defaultOverrideBreak,
		loc:                  loc,
		logger:               logger,
	}
}

// Execute создаёт исключение на дату, заменяя существующее.
// Записи на дату не отменяются: при конфликте исключение не создаётся.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.OverrideResponse, error) {
	uc.logger.Info("ApplyOverride: therapist=%d, date=%s, type=%s", req.TherapistID, req.JalaliDate, req.Type)

	// 1. Валидация входных данных
	override, err := buildOverride(req)
	if err != nil {
		uc.logger.Warn("ApplyOverride: validation failed: %v", err)
		return nil, err
	}

	var created *domain.ScheduleOverride

	// 2. Проверка и замена в одной транзакции (READ COMMITTED, порядок задают блокировки)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем день терапевта
		if err := uc.lockDay(txCtx, override.TherapistID, override.Date); err != nil {
			return err
		}

		// 2.2. Проверяем записи на дату против нового окна
		availability := domain.ResolveAvailability(override.Date, override, nil, uc.defaultOverrideBreak)
		conflicts, err := uc.findConflicts(txCtx, override.TherapistID, override.Date, availability)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return uc.reject(override, conflicts)
		}

		// 2.3. Заменяем исключение
		if _, err := uc.scheduleRepo.DeleteOverride(txCtx, override.TherapistID, override.Date); err != nil {
			uc.logger.Error("ApplyOverride: failed to delete previous override: %v", err)
			return fmt.Errorf("%w: ApplyOverride - delete override: %w", ErrInternal, err)
		}

		created, err = uc.scheduleRepo.CreateOverride(txCtx, override)
		if err != nil {
			uc.logger.Error("ApplyOverride: failed to create override: %v", err)
			return fmt.Errorf("%w: ApplyOverride - create override: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ApplyOverride: created override id=%d for therapist=%d on %s",
		created.ID, created.TherapistID, created.JalaliDate)
	return models.FromDomainOverride(created), nil
}

// ConflictReport возвращает конфликты исключения без его создания.
// Блокировки не берутся, результат носит рекомендательный характер.
func (uc *UseCase) ConflictReport(ctx context.Context, req *Request) (*models.ConflictReportResponse, error) {
	uc.logger.Info("OverrideConflictReport: therapist=%d, date=%s, type=%s", req.TherapistID, req.JalaliDate, req.Type)

	override, err := buildOverride(req)
	if err != nil {
		uc.logger.Warn("OverrideConflictReport: validation failed: %v", err)
		return nil, err
	}

	availability := domain.ResolveAvailability(override.Date, override, nil, uc.defaultOverrideBreak)
	conflicts, err := uc.findConflicts(ctx, override.TherapistID, override.Date, availability)
	if err != nil {
		return nil, err
	}

	return models.FromDomainConflicts(conflicts, uc.loc), nil
}

// Delete удаляет исключение: дата снова подчиняется недельному шаблону.
// Записи, которые не помещаются в шаблон, блокируют удаление.
func (uc *UseCase) Delete(ctx context.Context, req *DeleteRequest) error {
	uc.logger.Info("DeleteOverride: therapist=%d, date=%s", req.TherapistID, req.JalaliDate)

	if req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}
	date, err := parseDate(req.JalaliDate)
	if err != nil {
		uc.logger.Warn("DeleteOverride: invalid date=%q: %v", req.JalaliDate, err)
		return err
	}

	return uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем день терапевта
		if err := uc.lockDay(txCtx, req.TherapistID, date); err != nil {
			return err
		}

		// 2. Проверяем записи против недельного шаблона
		weekly, err := uc.scheduleRepo.GetWeekly(txCtx, req.TherapistID)
		if err != nil {
			uc.logger.Error("DeleteOverride: failed to get weekly schedule: %v", err)
			return fmt.Errorf("%w: DeleteOverride - get weekly: %w", ErrInternal, err)
		}

		availability := domain.ResolveAvailability(date, nil, weekly, uc.defaultOverrideBreak)
		conflicts, err := uc.findConflicts(txCtx, req.TherapistID, date, availability)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return uc.reject(&domain.ScheduleOverride{TherapistID: req.TherapistID, Date: date}, conflicts)
		}

		// 3. Удаляем
		deleted, err := uc.scheduleRepo.DeleteOverride(txCtx, req.TherapistID, date)
		if err != nil {
			uc.logger.Error("DeleteOverride: failed to delete override: %v", err)
			return fmt.Errorf("%w: DeleteOverride - delete: %w", ErrInternal, err)
		}
		if !deleted {
			uc.logger.Warn("DeleteOverride: no override for therapist=%d on %s", req.TherapistID, req.JalaliDate)
			return ErrOverrideNotFound
		}

		uc.logger.Info("DeleteOverride: removed override of therapist=%d on %s", req.TherapistID, req.JalaliDate)
		return nil
	})
}

func (uc *UseCase) lockDay(ctx context.Context, therapistID int64, date time.Time) error {
	if err := uc.locker.LockTherapistShared(ctx, therapistID); err != nil {
		uc.logger.Error("ApplyOverride: failed to lock therapist=%d: %v", therapistID, err)
		return fmt.Errorf("%w: lock therapist: %w", ErrInternal, err)
	}
	if err := uc.locker.LockTherapistDay(ctx, therapistID, date); err != nil {
		uc.logger.Error("ApplyOverride: failed to lock therapist=%d day=%s: %v",
			therapistID, date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: lock day: %w", ErrInternal, err)
	}
	return nil
}

// findConflicts сверяет подтверждённые записи, затрагивающие дату, с доступностью
func (uc *UseCase) findConflicts(
	ctx context.Context,
	therapistID int64,
	date time.Time,
	availability domain.Availability,
) ([]domain.Conflict, error) {
	day := domain.DayRange(date, uc.loc)

	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentFilter{
		TherapistID:  therapistID,
		From:         &day.Start,
		To:           &day.End,
		OnlyBlocking: true,
	})
	if err != nil {
		uc.logger.Error("ApplyOverride: failed to list appointments of therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: list appointments: %w", ErrInternal, err)
	}

	list := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		list = append(list, *a)
	}

	return domain.FindDateConflicts(date, availability, list, uc.loc), nil
}

func (uc *UseCase) reject(override *domain.ScheduleOverride, conflicts []domain.Conflict) error {
	uc.logger.Warn("ApplyOverride: therapist=%d has %d conflicting appointments on %s",
		override.TherapistID, len(conflicts), override.Date.Format(domain.DateFormat))
	if uc.metrics != nil {
		uc.metrics.ObserveConflict(conflictKind)
	}
	return &domain.ConflictError{Kind: ErrOverrideConflict, Conflicts: conflicts}
}
