// Package clock предоставляет источники текущего времени.
// Бизнес-логика никогда не вызывает time.Now() напрямую, а получает Provider.
package clock

import (
	"sync"
	"time"
)

// Real реальный провайдер времени для production
type Real struct{}

// Now возвращает текущее время
func (Real) Now() time.Time {
	return time.Now()
}

// Fixed провайдер, возвращающий заданное время (для тестов)
type Fixed struct {
	mu sync.RWMutex
	t  time.Time
}

// NewFixed создаёт провайдер с фиксированным временем
func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t}
}

// Now возвращает зафиксированное время
func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.t
}

// Set переставляет время
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.t = t
	f.mu.Unlock()
}

// Advance сдвигает время на d
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}
