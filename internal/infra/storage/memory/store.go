// Package memory in-memory хранилище с той же семантикой блокировок, что и PostgreSQL.
//
// Блокировки (терапевт, день терапевта, строка записи) удерживаются до конца транзакции.
// Изменения внутри транзакции пишутся сразу, а при откате отменяются по журналу.
// Чтения вне транзакции не блокируются и могут увидеть незафиксированные данные:
// для предпросмотра это допустимо, окончательная проверка всегда идёт под блокировкой.
package memory

import (
	"sync"

	"github.com/m04kA/massage-scheduler/internal/domain"
)

type serviceKey struct {
	therapistID int64
	serviceID   int64
}

type overrideKey struct {
	therapistID int64
	date        string
}

// Store in-memory реализация репозиториев, блокировок и менеджера транзакций
type Store struct {
	mu sync.RWMutex

	appointments map[int64]domain.Appointment
	weekly       map[int64][]domain.TherapistSchedule
	overrides    map[overrideKey]domain.ScheduleOverride
	services     map[serviceKey]domain.TherapistService

	nextAppointmentID int64
	nextScheduleID    int64
	nextOverrideID    int64

	locks *keyLocks
}

// NewStore создаёт пустое хранилище
func NewStore() *Store {
	return &Store{
		appointments: make(map[int64]domain.Appointment),
		weekly:       make(map[int64][]domain.TherapistSchedule),
		overrides:    make(map[overrideKey]domain.ScheduleOverride),
		services:     make(map[serviceKey]domain.TherapistService),
		locks:        newKeyLocks(),
	}
}

// SeedService добавляет услугу терапевта в каталог
func (s *Store) SeedService(service domain.TherapistService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[serviceKey{service.TherapistID, service.ServiceID}] = service
}
