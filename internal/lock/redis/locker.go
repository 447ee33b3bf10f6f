// Package redis реализует внешний сервис именованных блокировок поверх Redis.
// Захват — SET NX с токеном владельца и страховочным TTL на случай падения
// держателя; освобождение — Lua-скрипт compare-and-delete, поэтому чужой или
// просроченный замок снять нельзя.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

const (
	// defaultLockTTL ограничивает время удержания замка упавшим процессом.
	defaultLockTTL = 30 * time.Second
	// pollInterval — пауза между повторными попытками SET NX.
	pollInterval = 50 * time.Millisecond
)

var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// LockService — Redis-реализация domain.LockService.
type LockService struct {
	client  *redis.Client
	logger  *log.Entry
	lockTTL time.Duration
}

// NewLockService создаёт сервис блокировок с TTL по умолчанию.
func NewLockService(client *redis.Client, logger *log.Entry) *LockService {
	if logger == nil {
		logger = log.WithField("component", "redis-lock")
	}
	return &LockService{
		client:  client,
		logger:  logger,
		lockTTL: defaultLockTTL,
	}
}

// Acquire пытается захватить именованный замок, опрашивая Redis до истечения wait.
func (s *LockService) Acquire(ctx context.Context, name string, wait time.Duration) (domain.Lock, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(wait)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		ok, err := s.client.SetNX(ctx, name, token, s.lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %q: %w", name, err)
		}
		if ok {
			return &lock{service: s, name: name, token: token}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("lock %q: %w", name, domain.ErrLockTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// lock хранит токен владельца; снять замок может только этот токен.
type lock struct {
	service *LockService
	name    string
	token   string
}

func (l *lock) Name() string { return l.name }

// Release снимает замок compare-and-delete скриптом. Если токен уже не владеет
// ключом (TTL истёк или замок перехвачен), это no-op, а не ошибка.
func (l *lock) Release(ctx context.Context) error {
	deleted, err := releaseScript.Run(ctx, l.service.client, []string{l.name}, l.token).Int()
	if err != nil {
		l.service.logger.WithError(err).WithField("lock", l.name).Error("release lock failed")
		return fmt.Errorf("release lock %q: %w", l.name, err)
	}
	if deleted == 0 {
		l.service.logger.WithField("lock", l.name).Debug("lock already released or expired")
	}
	return nil
}

var _ domain.LockService = (*LockService)(nil)
