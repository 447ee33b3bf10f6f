package domain

import (
	"context"
	"time"
)

// Cache — простой байтовый k/v с TTL. Реализации — Redis и in-memory.
type Cache interface {
	// Get возвращает значение или ErrCacheMiss, если ключа нет или TTL истёк.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set сохраняет значение с ограничением времени жизни.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del удаляет ключи; отсутствие ключа — не ошибка.
	Del(ctx context.Context, keys ...string) error
}

// Lock — удерживаемый именованный замок. Хранит токен владельца: Release
// снимает замок только если он всё ещё принадлежит этому токену, иначе no-op.
type Lock interface {
	// Name возвращает имя замка.
	Name() string
	// Release снимает замок. Повторный или чужой Release не считается ошибкой.
	Release(ctx context.Context) error
}

// LockService — внешний сервис взаимного исключения по имени замка.
// Замки нереентерабельны; корректность координатора опирается только на них
// и на фиксированный порядок захвата.
type LockService interface {
	// Acquire блокирует вызывающего до получения замка, но не дольше wait.
	// По истечении wait возвращает ErrLockTimeout.
	Acquire(ctx context.Context, name string, wait time.Duration) (Lock, error)
}

// EventPublisher публикует события, затрагивающие инвентарь, во внешний сервис.
// Вызовы fire-and-forget: ошибки публикации логируются и не влияют на исход операции.
type EventPublisher interface {
	Publish(topic string, key string, event interface{}) error
}
