package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	appointmentRepo "github.com/m04kA/massage-scheduler/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/massage-scheduler/internal/infra/storage/catalog"
	"github.com/m04kA/massage-scheduler/internal/service/appointments/models"
	"github.com/m04kA/massage-scheduler/pkg/jalali"
)

// UseCase use case записи к терапевту
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	locker          Locker
	resolver        AvailabilityResolver
	overlaps        OverlapDetector
	txManager       TransactionManager
	clock           Clock
	metrics         Metrics
	loc             *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	locker Locker,
	resolver AvailabilityResolver,
	overlaps OverlapDetector,
	txManager TransactionManager,
	clock Clock,
	metrics Metrics,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		locker:          locker,
		resolver:        resolver,
		overlaps:        overlaps,
		txManager:       txManager,
		clock:           clock,
		metrics:         metrics,
		loc:             loc,
		logger:          logger,
	}
}

// Execute выполняет запись к терапевту.
// Блокировка дня терапевта берётся до любой проверки доступности:
// длительность известна только после чтения услуги, а итоговая проверка пересечений
// должна выполняться под той же блокировкой, что и вставка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.ObserveBooking(outcomeOf(err))
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: therapist=%d, service=%d, date=%s, time=%s",
		req.TherapistID, req.ServiceID, req.JalaliDate, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Конвертируем дату по джалали в григорианскую
	date, err := jalali.JalaliToGregorian(req.JalaliDate)
	if err != nil {
		uc.logger.Warn("BookAppointment: invalid date=%q: %v", req.JalaliDate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	startsAt, err := req.StartTime.OnDate(date, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	var (
		created *domain.Appointment
		service *domain.TherapistService
	)

	// 3. Все проверки и вставка выполняются в одной транзакции.
	// READ COMMITTED: каждый запрос после блокировки видит данные, зафиксированные её предыдущим владельцем.
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем терапевта (shared) и день записи (exclusive)
		if err := uc.locker.LockTherapistShared(txCtx, req.TherapistID); err != nil {
			uc.logger.Error("BookAppointment: failed to lock therapist=%d: %v", req.TherapistID, err)
			return fmt.Errorf("%w: BookAppointment - lock therapist: %w", ErrInternal, err)
		}
		if err := uc.locker.LockTherapistDay(txCtx, req.TherapistID, date); err != nil {
			uc.logger.Error("BookAppointment: failed to lock therapist=%d day=%s: %v",
				req.TherapistID, date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: BookAppointment - lock day: %w", ErrInternal, err)
		}

		// 3.2. Получаем услугу из каталога
		service, err = uc.catalogRepo.GetActiveService(txCtx, req.TherapistID, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) || errors.Is(err, catalogRepo.ErrServiceUnavailable) {
				uc.logger.Warn("BookAppointment: service=%d of therapist=%d: %v", req.ServiceID, req.TherapistID, err)
				return ErrServiceNotFound
			}
			uc.logger.Error("BookAppointment: failed to get service=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: BookAppointment - get service: %w", ErrInternal, err)
		}

		// 3.3. Вычисляем интервал сеанса
		appointment := domain.NewAppointment(req.TherapistID, *service, startsAt, req.Client)
		slot := appointment.Range()

		// 3.4. Сеанс может закончиться на следующий день: блокируем и его
		for _, day := range slot.Days(uc.loc)[1:] {
			if err := uc.locker.LockTherapistDay(txCtx, req.TherapistID, day); err != nil {
				uc.logger.Error("BookAppointment: failed to lock therapist=%d day=%s: %v",
					req.TherapistID, day.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: BookAppointment - lock day: %w", ErrInternal, err)
			}
		}

		// 3.5. Сеанс должен помещаться в рабочие часы даты
		if err := uc.checkWorkingHours(txCtx, req.TherapistID, date, slot); err != nil {
			return err
		}

		// 3.6. Итоговая проверка пересечений под блокировкой
		overlap, err := uc.overlaps.HasOverlap(txCtx, req.TherapistID, slot, nil)
		if err != nil {
			uc.logger.Error("BookAppointment: overlap check failed: %v", err)
			return fmt.Errorf("%w: BookAppointment - overlap check: %w", ErrInternal, err)
		}
		if overlap {
			uc.logger.Warn("BookAppointment: slot %s-%s of therapist=%d is taken",
				slot.Start.Format(time.RFC3339), slot.End.Format(time.RFC3339), req.TherapistID)
			return ErrSlotUnavailable
		}

		// 3.7. Начало должно быть строго в будущем
		if now := uc.clock.Now(); !startsAt.After(now) {
			uc.logger.Warn("BookAppointment: start %s is not after now %s",
				startsAt.Format(time.RFC3339), now.Format(time.RFC3339))
			return ErrPastTime
		}

		// 3.8. Сохраняем запись со снимком длительности и цены
		created, err = uc.appointmentRepo.Create(txCtx, &appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("BookAppointment: slot rejected by storage constraint")
				return ErrSlotUnavailable
			}
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: BookAppointment - create: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: created appointment id=%d for therapist=%d", created.ID, created.TherapistID)

	return &Response{
		AppointmentResponse: models.FromDomainAppointment(created, uc.loc),
		ServiceName:         service.Name,
	}, nil
}

// checkWorkingHours проверяет, что интервал лежит внутри рабочих часов даты
func (uc *UseCase) checkWorkingHours(ctx context.Context, therapistID int64, date time.Time, slot domain.TimeRange) error {
	availability, err := uc.resolver.Resolve(ctx, therapistID, date)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to resolve availability: %v", err)
		return fmt.Errorf("%w: BookAppointment - resolve availability: %w", ErrInternal, err)
	}

	if !availability.IsAvailable() {
		uc.logger.Warn("BookAppointment: therapist=%d does not work on %s", therapistID, date.Format(domain.DateFormat))
		return fmt.Errorf("%w: therapist does not work on this date", ErrOutsideWorkingHours)
	}

	bounds, err := availability.Window.Bounds(date, uc.loc)
	if err != nil {
		uc.logger.Error("BookAppointment: invalid working window %s-%s: %v",
			availability.Window.Start, availability.Window.End, err)
		return fmt.Errorf("%w: BookAppointment - working window: %w", ErrInternal, err)
	}

	if !bounds.Covers(slot) {
		uc.logger.Warn("BookAppointment: slot is outside %s-%s", availability.Window.Start, availability.Window.End)
		return fmt.Errorf("%w: working hours are %s-%s",
			ErrOutsideWorkingHours, availability.Window.Start, availability.Window.End)
	}

	return nil
}
