package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	catalogRepo "github.com/m04kA/massage-scheduler/internal/infra/storage/catalog"
	"github.com/m04kA/massage-scheduler/pkg/jalali"
)

// UseCase use case для получения свободных слотов.
// Результат носит рекомендательный характер: блокировки не берутся,
// окончательная проверка выполняется при записи.
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	resolver        AvailabilityResolver
	clock           Clock
	stepMinutes     int
	loc             *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	resolver AvailabilityResolver,
	clock Clock,
	stepMinutes int,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		resolver:        resolver,
		clock:           clock,
		stepMinutes:     stepMinutes,
		loc:             loc,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: therapist=%d, service=%d, date=%s",
		req.TherapistID, req.ServiceID, req.JalaliDate)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Конвертируем дату
	date, err := jalali.JalaliToGregorian(req.JalaliDate)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date=%q: %v", req.JalaliDate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// 3. Получаем услугу, она задаёт длительность
	service, err := uc.catalogRepo.GetActiveService(ctx, req.TherapistID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) || errors.Is(err, catalogRepo.ErrServiceUnavailable) {
			uc.logger.Warn("GetAvailableSlots: service id=%d of therapist=%d not available", req.ServiceID, req.TherapistID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: GetAvailableSlots - get service: %w", ErrInternal, err)
	}

	resp := &Response{
		TherapistID:     req.TherapistID,
		ServiceID:       req.ServiceID,
		Date:            jalali.FromGregorian(date).String(),
		GregorianDate:   date.Format(domain.DateFormat),
		DurationMinutes: service.DurationMinutes,
		StepMinutes:     uc.stepMinutes,
		Slots:           []Slot{},
	}

	// 4. Получаем рабочие часы на дату
	availability, err := uc.resolver.Resolve(ctx, req.TherapistID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: GetAvailableSlots - resolve availability: %w", ErrInternal, err)
	}
	if !availability.IsAvailable() {
		uc.logger.Info("GetAvailableSlots: therapist=%d does not work on %s", req.TherapistID, resp.GregorianDate)
		return resp, nil
	}

	// 5. Получаем записи, затрагивающие дату
	day := domain.DayRange(date, uc.loc)
	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentFilter{
		TherapistID:  req.TherapistID,
		From:         &day.Start,
		To:           &day.End,
		OnlyBlocking: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: GetAvailableSlots - list appointments: %w", ErrInternal, err)
	}

	// 6. Генерируем свободные слоты
	slots, err := generateTimeSlots(
		*availability.Window,
		date,
		service.DurationMinutes,
		uc.stepMinutes,
		uc.clock.Now(),
		appointments,
		uc.loc,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: GetAvailableSlots - generate slots: %w", ErrInternal, err)
	}
	resp.Slots = toSlots(slots)

	uc.logger.Info("GetAvailableSlots: generated %d slots for therapist=%d, service=%d, date=%s",
		len(resp.Slots), req.TherapistID, req.ServiceID, resp.GregorianDate)

	return resp, nil
}
