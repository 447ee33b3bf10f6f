// Package memory — внутрипроцессная реализация сервиса именованных
// блокировок. Подходит для single-instance запуска и тестов; семантика
// совпадает с Redis-реализацией, включая токен владельца.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// LockService — in-memory реализация domain.LockService.
type LockService struct {
	mu    sync.Mutex
	locks map[string]*namedLock
}

type namedLock struct {
	slot  chan struct{}
	mu    sync.Mutex
	owner string
}

// NewLockService возвращает пустой сервис блокировок.
func NewLockService() *LockService {
	return &LockService{locks: make(map[string]*namedLock)}
}

func (s *LockService) named(name string) *namedLock {
	s.mu.Lock()
	defer s.mu.Unlock()

	nl, ok := s.locks[name]
	if !ok {
		nl = &namedLock{slot: make(chan struct{}, 1)}
		s.locks[name] = nl
	}
	return nl
}

// Acquire блокируется до получения замка, но не дольше wait.
func (s *LockService) Acquire(ctx context.Context, name string, wait time.Duration) (domain.Lock, error) {
	nl := s.named(name)
	token := uuid.NewString()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case nl.slot <- struct{}{}:
		nl.mu.Lock()
		nl.owner = token
		nl.mu.Unlock()
		return &lock{named: nl, name: name, token: token}, nil
	case <-timer.C:
		return nil, fmt.Errorf("lock %q: %w", name, domain.ErrLockTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type lock struct {
	named *namedLock
	name  string
	token string
}

func (l *lock) Name() string { return l.name }

// Release снимает замок, только если токен всё ещё владеет им; иначе no-op.
func (l *lock) Release(_ context.Context) error {
	l.named.mu.Lock()
	owned := l.named.owner == l.token
	if owned {
		l.named.owner = ""
	}
	l.named.mu.Unlock()

	if owned {
		<-l.named.slot
	}
	return nil
}

var _ domain.LockService = (*LockService)(nil)
