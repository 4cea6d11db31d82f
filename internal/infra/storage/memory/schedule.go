package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/internal/infra/storage/catalog"
	"github.com/m04kA/massage-scheduler/internal/infra/storage/schedule"
)

// ScheduleRepository in-memory репозиторий недельного шаблона и исключений
type ScheduleRepository struct {
	store *Store
}

// Schedules возвращает репозиторий расписания
func (s *Store) Schedules() *ScheduleRepository {
	return &ScheduleRepository{store: s}
}

// GetWeekly получает недельный шаблон терапевта
func (r *ScheduleRepository) GetWeekly(_ context.Context, therapistID int64) ([]domain.TherapistSchedule, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := append([]domain.TherapistSchedule(nil), s.weekly[therapistID]...)
	sort.Slice(days, func(i, j int) bool { return days[i].Weekday < days[j].Weekday })
	return days, nil
}

// DeleteWeekly удаляет недельный шаблон терапевта
func (r *ScheduleRepository) DeleteWeekly(ctx context.Context, therapistID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.weekly[therapistID]
	delete(s.weekly, therapistID)
	s.record(ctx, func() {
		if existed {
			s.weekly[therapistID] = prev
		}
	})
	return nil
}

// CreateWeekly добавляет строки недельного шаблона
func (r *ScheduleRepository) CreateWeekly(ctx context.Context, therapistID int64, days []domain.TherapistSchedule) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.weekly[therapistID]

	seen := make(map[domain.Weekday]bool, len(prev)+len(days))
	for _, d := range prev {
		seen[d.Weekday] = true
	}

	rows := append([]domain.TherapistSchedule(nil), prev...)
	now := time.Now()
	for _, d := range days {
		if seen[d.Weekday] {
			return schedule.ErrDuplicateWeekday
		}
		seen[d.Weekday] = true

		s.nextScheduleID++
		d.ID = s.nextScheduleID
		d.TherapistID = therapistID
		d.CreatedAt = now
		rows = append(rows, d)
	}

	s.weekly[therapistID] = rows
	s.record(ctx, func() {
		if existed {
			s.weekly[therapistID] = prev
		} else {
			delete(s.weekly, therapistID)
		}
	})
	return nil
}

// GetOverride получает исключение на дату
func (r *ScheduleRepository) GetOverride(_ context.Context, therapistID int64, date time.Time) (*domain.ScheduleOverride, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.overrides[overrideKey{therapistID, date.Format(domain.DateFormat)}]
	if !ok {
		return nil, schedule.ErrOverrideNotFound
	}
	return &o, nil
}

// ListOverrides получает исключения в диапазоне дат [from, to]
func (r *ScheduleRepository) ListOverrides(_ context.Context, therapistID int64, from, to *time.Time) ([]domain.ScheduleOverride, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ScheduleOverride, 0)
	for key, o := range s.overrides {
		if key.therapistID != therapistID {
			continue
		}
		if from != nil && key.date < from.Format(domain.DateFormat) {
			continue
		}
		if to != nil && key.date > to.Format(domain.DateFormat) {
			continue
		}
		result = append(result, o)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// CreateOverride создает исключение на дату
func (r *ScheduleRepository) CreateOverride(ctx context.Context, o *domain.ScheduleOverride) (*domain.ScheduleOverride, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := overrideKey{o.TherapistID, o.Date.Format(domain.DateFormat)}
	if _, exists := s.overrides[key]; exists {
		return nil, schedule.ErrDuplicateOverride
	}

	s.nextOverrideID++
	o.ID = s.nextOverrideID
	o.CreatedAt = time.Now()

	s.overrides[key] = *o
	s.record(ctx, func() { delete(s.overrides, key) })

	created := *o
	return &created, nil
}

// DeleteOverride удаляет исключение на дату
func (r *ScheduleRepository) DeleteOverride(ctx context.Context, therapistID int64, date time.Time) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := overrideKey{therapistID, date.Format(domain.DateFormat)}
	prev, ok := s.overrides[key]
	if !ok {
		return false, nil
	}

	delete(s.overrides, key)
	s.record(ctx, func() { s.overrides[key] = prev })
	return true, nil
}

// Catalog возвращает каталог услуг
func (s *Store) Catalog() *CatalogRepository {
	return &CatalogRepository{store: s}
}

// CatalogRepository in-memory каталог услуг
type CatalogRepository struct {
	store *Store
}

// GetActiveService возвращает активную услугу терапевта
func (r *CatalogRepository) GetActiveService(_ context.Context, therapistID, serviceID int64) (*domain.TherapistService, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	service, ok := s.services[serviceKey{therapistID, serviceID}]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	if !service.IsActive {
		return nil, catalog.ErrServiceUnavailable
	}
	return &service, nil
}
