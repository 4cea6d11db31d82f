package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/massage-scheduler/internal/infra/storage/locks"
)

// LockTherapistShared берёт разделяемую блокировку терапевта
func (s *Store) LockTherapistShared(ctx context.Context, therapistID int64) error {
	return s.acquire(ctx, therapistLockKey(therapistID), true)
}

// LockTherapistExclusive берёт эксклюзивную блокировку терапевта
func (s *Store) LockTherapistExclusive(ctx context.Context, therapistID int64) error {
	return s.acquire(ctx, therapistLockKey(therapistID), false)
}

// LockTherapistDay берёт эксклюзивную блокировку календарного дня терапевта
func (s *Store) LockTherapistDay(ctx context.Context, therapistID int64, day time.Time) error {
	therapistKey, dayKey := locks.DayKey(therapistID, day)
	return s.acquire(ctx, fmt.Sprintf("day:%d:%d", therapistKey, dayKey), false)
}

func therapistLockKey(therapistID int64) string {
	return fmt.Sprintf("therapist:%d", therapistID)
}

func appointmentLockKey(id int64) string {
	return fmt.Sprintf("appointment:%d", id)
}
