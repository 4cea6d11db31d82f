package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/internal/infra/storage/appointment"
)

// AppointmentRepository in-memory репозиторий записей
type AppointmentRepository struct {
	store *Store
}

// Appointments возвращает репозиторий записей
func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{store: s}
}

// Create создает новую запись
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAppointmentID++
	a.ID = s.nextAppointmentID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt

	s.appointments[a.ID] = *a
	id := a.ID
	s.record(ctx, func() { delete(s.appointments, id) })

	created := *a
	return &created, nil
}

// GetByID получает запись по ID. В транзакции блокирует строку.
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	s := r.store

	if _, ok := txFromContext(ctx); ok {
		if err := s.acquire(ctx, appointmentLockKey(id), false); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return &a, nil
}

// List получает записи терапевта, пересекающие [From, To). В транзакции блокирует найденные строки.
func (r *AppointmentRepository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	s := r.store

	result := r.find(filter)

	if _, ok := txFromContext(ctx); ok {
		// строки блокируются по возрастанию id, как в PostgreSQL при ORDER BY
		ids := make([]int64, len(result))
		for i, a := range result {
			ids[i] = a.ID
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			if err := s.acquire(ctx, appointmentLockKey(id), false); err != nil {
				return nil, err
			}
		}
		// перечитываем после захвата блокировок
		result = r.find(filter)
	}

	return result, nil
}

// UpdateStatus сохраняет статус записи и поля отмены
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, a *domain.Appointment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.appointments[a.ID]
	if !ok {
		return appointment.ErrAppointmentNotFound
	}

	updated := prev
	updated.Status = a.Status
	updated.CancellationReason = a.CancellationReason
	updated.CancelledAt = a.CancelledAt
	updated.CancelledBy = a.CancelledBy
	if !a.UpdatedAt.IsZero() {
		updated.UpdatedAt = a.UpdatedAt
	}

	s.appointments[a.ID] = updated
	s.record(ctx, func() { s.appointments[prev.ID] = prev })

	return nil
}

func (r *AppointmentRepository) find(filter domain.AppointmentFilter) []*domain.Appointment {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if matches(a, filter) {
			a := a
			result = append(result, &a)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartsAt.Equal(result[j].StartsAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartsAt.Before(result[j].StartsAt)
	})
	return result
}

func matches(a domain.Appointment, f domain.AppointmentFilter) bool {
	if a.TherapistID != f.TherapistID {
		return false
	}
	if f.To != nil && !a.StartsAt.Before(*f.To) {
		return false
	}
	if f.From != nil && !a.EndsAt.After(*f.From) {
		return false
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.Status == nil && f.OnlyBlocking && !a.Status.BlocksTime() {
		return false
	}
	if f.ExcludeID != nil && a.ID == *f.ExcludeID {
		return false
	}
	return true
}
