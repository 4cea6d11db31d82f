package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	appointmentRepo "github.com/m04kA/massage-scheduler/internal/infra/storage/appointment"
	"github.com/m04kA/massage-scheduler/internal/service/appointments/models"
	"github.com/m04kA/massage-scheduler/pkg/jalali"
)

// Service сервис для чтения записей и административных переходов статуса
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	clock           Clock
	loc             *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	clock Clock,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		clock:           clock,
		loc:             loc,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment, s.loc), nil
}

// ListByTherapistAndDate получает записи терапевта, пересекающие дату по джалали
func (s *Service) ListByTherapistAndDate(ctx context.Context, req *models.ListByDateRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByTherapistAndDate: therapist=%d, date=%s", req.TherapistID, req.JalaliDate)

	if req.TherapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	date, err := jalali.JalaliToGregorian(req.JalaliDate)
	if err != nil {
		s.logger.Warn("ListByTherapistAndDate: invalid date=%q: %v", req.JalaliDate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return s.list(ctx, "ListByTherapistAndDate", req.TherapistID, date, date, req.Status)
}

// ListByTherapistAndJalaliMonth получает записи терапевта за месяц по джалали
func (s *Service) ListByTherapistAndJalaliMonth(ctx context.Context, req *models.ListByMonthRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByTherapistAndJalaliMonth: therapist=%d, month=%04d-%02d", req.TherapistID, req.Year, req.Month)

	if req.TherapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	first, err := jalali.StartOfMonth(req.Year, req.Month)
	if err != nil {
		s.logger.Warn("ListByTherapistAndJalaliMonth: invalid month %d-%d: %v", req.Year, req.Month, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	last, err := jalali.EndOfMonth(req.Year, req.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return s.list(ctx, "ListByTherapistAndJalaliMonth", req.TherapistID, first, last, req.Status)
}

// Complete отмечает запись как состоявшуюся
func (s *Service) Complete(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, id, domain.StatusCompleted)
}

// MarkNoShow отмечает неявку клиента
func (s *Service) MarkNoShow(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, id, domain.StatusNoShow)
}

// UpdateStatus переводит запись в completed или no_show.
// Отмена выполняется отдельным сценарием с политикой возврата.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	status, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	switch status {
	case domain.StatusCompleted, domain.StatusNoShow:
		return s.transition(ctx, id, status)
	case domain.StatusConfirmed, domain.StatusCancelled:
		s.logger.Warn("UpdateStatus: status=%s cannot be set directly for appointment id=%d", status, id)
		return nil, fmt.Errorf("%w: status %s cannot be set directly", ErrInvalidInput, status)
	default:
		return nil, fmt.Errorf("%w: unknown status", ErrInvalidInput)
	}
}

// transition меняет статус записи под блокировкой строки
func (s *Service) transition(ctx context.Context, id int64, to domain.AppointmentStatus) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d -> %s", id, to)

	var result domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись с блокировкой строки
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - get appointment: %w", ErrInternal, err)
		}

		now := s.clock.Now()

		// 2. Нельзя отметить сеанс, который ещё не начался
		if appointment.Status == domain.StatusConfirmed && now.Before(appointment.StartsAt) {
			s.logger.Warn("UpdateStatus: appointment id=%d starts at %s, too early for %s",
				id, appointment.StartsAt.In(s.loc).Format(time.RFC3339), to)
			return ErrNotStarted
		}

		// 3. Проверяем допустимость перехода
		updated, err := domain.TransitionStatus(*appointment, to, now)
		if err != nil {
			s.logger.Warn("UpdateStatus: appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, to)
		}

		// 4. Сохраняем статус
		if err := s.appointmentRepo.UpdateStatus(txCtx, &updated); err != nil {
			s.logger.Error("UpdateStatus: failed to update appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - update status: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%d is now %s", id, to)
	return models.FromDomainAppointment(&result, s.loc), nil
}

// list возвращает записи, пересекающие календарные дни [first, last] в часовом поясе салона
func (s *Service) list(
	ctx context.Context,
	op string,
	therapistID int64,
	first, last time.Time,
	status *string,
) (*models.AppointmentListResponse, error) {
	from := domain.DayRange(first, s.loc).Start
	to := domain.DayRange(last, s.loc).End

	filter := domain.AppointmentFilter{
		TherapistID: therapistID,
		From:        &from,
		To:          &to,
	}

	if status != nil {
		st, err := domain.ParseAppointmentStatus(*status)
		if err != nil {
			s.logger.Warn("%s: invalid status=%q", op, *status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &st
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error for therapist=%d: %v", op, therapistID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d appointments for therapist=%d", op, len(appointments), therapistID)
	return models.FromDomainAppointmentList(appointments, s.loc), nil
}
