package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/massage-scheduler/internal/infra/storage/locks"
)

type txKey struct{}

// tx состояние транзакции: удерживаемые блокировки и журнал отката
type tx struct {
	held map[string]func()
	undo []func()
}

func txFromContext(ctx context.Context) (*tx, bool) {
	t, ok := ctx.Value(txKey{}).(*tx)
	return t, ok
}

// Do выполняет fn в транзакции
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	t := &tx{held: make(map[string]func())}

	defer func() {
		if p := recover(); p != nil {
			s.rollback(t)
			t.release()
			panic(p)
		}
		if err != nil {
			s.rollback(t)
		}
		t.release()
	}()

	return fn(context.WithValue(ctx, txKey{}, t))
}

// record добавляет операцию отката, если код выполняется в транзакции.
// Вызывается под s.mu.
func (s *Store) record(ctx context.Context, undo func()) {
	if t, ok := txFromContext(ctx); ok {
		t.undo = append(t.undo, undo)
	}
}

func (s *Store) rollback(t *tx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *tx) release() {
	for _, unlock := range t.held {
		unlock()
	}
	t.held = nil
}

// keyLocks именованные RW-блокировки, создаваемые по требованию
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*sync.RWMutex)}
}

func (k *keyLocks) get(key string) *sync.RWMutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.RWMutex{}
		k.locks[key] = l
	}
	return l
}

// acquire берёт блокировку key до конца транзакции из ctx.
// Повторный захват того же ключа в той же транзакции ничего не делает.
func (s *Store) acquire(ctx context.Context, key string, shared bool) error {
	t, ok := txFromContext(ctx)
	if !ok {
		return locks.ErrNoTransaction
	}
	if _, held := t.held[key]; held {
		return nil
	}

	l := s.locks.get(key)
	if shared {
		l.RLock()
		t.held[key] = l.RUnlock
	} else {
		l.Lock()
		t.held[key] = l.Unlock
	}

	// Блокировка уже записана в транзакцию и будет снята при её завершении
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memory: lock %s: %w", key, err)
	}
	return nil
}
