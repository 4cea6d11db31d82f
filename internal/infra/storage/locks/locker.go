// Package locks реализует транзакционные advisory-блокировки PostgreSQL для расписания терапевта.
//
// Ключи:
//   - терапевт: pg_advisory_xact_lock[_shared](therapist_id)
//   - день терапевта: pg_advisory_xact_lock(int4(therapist_id), unix-день)
//
// Бронирование и исключения берут shared-блокировку терапевта и эксклюзивную блокировку дня.
// Замена недельного шаблона берёт эксклюзивную блокировку терапевта и ждёт все операции по его дням.
// Блокировки снимаются при завершении транзакции.
package locks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/massage-scheduler/pkg/dbmetrics"
)

var (
	// ErrNoTransaction возвращается при попытке взять блокировку вне транзакции
	ErrNoTransaction = errors.New("locks: advisory lock requires a transaction")

	// ErrAcquire возвращается при ошибке захвата блокировки
	ErrAcquire = errors.New("locks: failed to acquire lock")
)

const (
	queryTherapistShared    = "SELECT pg_advisory_xact_lock_shared($1)"
	queryTherapistExclusive = "SELECT pg_advisory_xact_lock($1)"
	queryTherapistDay       = "SELECT pg_advisory_xact_lock($1, $2)"
)

// Locker advisory-блокировки PostgreSQL.
// Запросы выполняются в транзакции из контекста (dbmetrics.WithTx).
type Locker struct{}

// NewLocker создает новый экземпляр Locker
func NewLocker() *Locker {
	return &Locker{}
}

// LockTherapistShared берёт разделяемую блокировку терапевта
func (l *Locker) LockTherapistShared(ctx context.Context, therapistID int64) error {
	return l.exec(ctx, "LockTherapistShared", queryTherapistShared, therapistID)
}

// LockTherapistExclusive берёт эксклюзивную блокировку терапевта
func (l *Locker) LockTherapistExclusive(ctx context.Context, therapistID int64) error {
	return l.exec(ctx, "LockTherapistExclusive", queryTherapistExclusive, therapistID)
}

// LockTherapistDay берёт эксклюзивную блокировку календарного дня терапевта.
// Коллизия ключей разных терапевтов приводит только к лишнему ожиданию.
func (l *Locker) LockTherapistDay(ctx context.Context, therapistID int64, day time.Time) error {
	therapistKey, dayKey := DayKey(therapistID, day)
	return l.exec(ctx, "LockTherapistDay", queryTherapistDay, therapistKey, dayKey)
}

// DayKey возвращает пару int4-ключей для блокировки дня
func DayKey(therapistID int64, day time.Time) (int32, int32) {
	y, m, d := day.Date()
	unixDay := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	return int32(therapistID), int32(unixDay)
}

func (l *Locker) exec(ctx context.Context, op, query string, args ...interface{}) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return ErrNoTransaction
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAcquire, op, err)
	}
	return nil
}
