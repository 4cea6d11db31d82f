package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	appointmentRepo "github.com/m04kA/massage-scheduler/internal/infra/storage/appointment"
	"github.com/m04kA/massage-scheduler/internal/service/appointments/models"
)

// UseCase use case отмены записи по политике возврата
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	clock           Clock
	loc             *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	clock Clock,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		clock:           clock,
		loc:             loc,
		logger:          logger,
	}
}

// Policy возвращает условия отмены записи на текущий момент без изменений
func (uc *UseCase) Policy(ctx context.Context, appointmentID int64) (*PolicyResponse, error) {
	uc.logger.Info("CancellationPolicy: appointment id=%d", appointmentID)

	appointment, err := uc.getAppointment(ctx, "CancellationPolicy", appointmentID)
	if err != nil {
		return nil, err
	}

	decision := domain.EvaluateCancellation(*appointment, uc.clock.Now())
	return fromDecision(appointment.ID, decision), nil
}

// Execute отменяет запись.
// Строка записи блокируется на время транзакции, поэтому параллельные отмены
// и смены статуса одной записи выполняются по очереди.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: appointment id=%d by actor=%d", req.AppointmentID, req.ActorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	var (
		result   domain.Appointment
		decision domain.CancellationDecision
	)

	// 2. Отмена в транзакции с блокировкой строки
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем запись (SELECT ... FOR UPDATE)
		appointment, err := uc.getAppointment(txCtx, "CancelAppointment", req.AppointmentID)
		if err != nil {
			return err
		}

		now := uc.clock.Now()

		// 2.2. Применяем политику отмены
		decision = domain.EvaluateCancellation(*appointment, now)
		if !decision.CanCancel {
			uc.logger.Warn("CancelAppointment: appointment id=%d status=%s: %s",
				appointment.ID, appointment.Status, decision.Message)
			return fmt.Errorf("%w: %s", ErrNotCancellable, decision.Message)
		}

		// 2.3. Переводим в cancelled
		cancelled, err := domain.CancelAppointment(*appointment, req.Reason, req.ActorID, now)
		if err != nil {
			uc.logger.Warn("CancelAppointment: appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: %v", ErrNotCancellable, err)
		}

		// 2.4. Сохраняем
		if err := uc.appointmentRepo.UpdateStatus(txCtx, &cancelled); err != nil {
			uc.logger.Error("CancelAppointment: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: CancelAppointment - update status: %w", ErrInternal, err)
		}

		result = cancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelAppointment: appointment id=%d cancelled, refund=%d%%",
		result.ID, decision.RefundPercentage)

	return &Response{
		Appointment: models.FromDomainAppointment(&result, uc.loc),
		Policy:      fromDecision(result.ID, decision),
	}, nil
}

// BulkCancel отменяет список записей независимо друг от друга.
// Ошибка по одной записи не прерывает обработку остальных.
// При отмене контекста возвращается частичный результат вместе с ошибкой контекста:
// необработанные записи попадают в Failed.
func (uc *UseCase) BulkCancel(ctx context.Context, req *BulkRequest) (*BulkResponse, error) {
	uc.logger.Info("BulkCancel: %d appointments by actor=%d", len(req.AppointmentIDs), req.ActorID)

	if err := validateBulkRequest(req); err != nil {
		uc.logger.Warn("BulkCancel: validation failed: %v", err)
		return nil, err
	}

	ids := uniqueIDs(req.AppointmentIDs)
	resp := &BulkResponse{
		Requested: len(ids),
		Failed:    make([]BulkFailure, 0),
	}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("BulkCancel: stopped after %d of %d: %v", resp.Cancelled, len(ids), err)
			for _, rest := range ids[i:] {
				resp.Failed = append(resp.Failed, BulkFailure{AppointmentID: rest, Error: err.Error()})
			}
			return resp, err
		}

		_, err := uc.Execute(ctx, &Request{AppointmentID: id, Reason: req.Reason, ActorID: req.ActorID})
		if err != nil {
			resp.Failed = append(resp.Failed, BulkFailure{AppointmentID: id, Error: err.Error()})
			continue
		}
		resp.Cancelled++
	}

	uc.logger.Info("BulkCancel: cancelled %d of %d", resp.Cancelled, resp.Requested)
	return resp, nil
}

func (uc *UseCase) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("%s: failed to get appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get appointment: %w", ErrInternal, op, err)
	}
	return appointment, nil
}
