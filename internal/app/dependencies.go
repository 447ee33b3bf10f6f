package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	cachemem "github.com/hemantkumar00/product-category-service/internal/cache/memory"
	cacheredis "github.com/hemantkumar00/product-category-service/internal/cache/redis"
	"github.com/hemantkumar00/product-category-service/internal/domain"
	lockmem "github.com/hemantkumar00/product-category-service/internal/lock/memory"
	lockredis "github.com/hemantkumar00/product-category-service/internal/lock/redis"
	"github.com/hemantkumar00/product-category-service/internal/messaging/kafka"
	"github.com/hemantkumar00/product-category-service/internal/storage/memory"
	"github.com/hemantkumar00/product-category-service/internal/storage/postgres"
)

// Dependencies содержит инфраструктурные зависимости сервиса каталога.
type Dependencies struct {
	Products   domain.ProductRepository
	Inventory  domain.InventoryStore
	Categories domain.CategoryRepository
	Cache      domain.Cache
	Locks      domain.LockService
	Producer   *kafka.Producer
	Logger     *log.Entry

	store       *postgres.Store
	redisClient *redis.Client
}

// NewDependencies собирает зависимости по конфигурации. Для каждой внешней
// системы есть in-memory запасной вариант, чтобы сервис запускался и без неё.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	if err := deps.initStorage(ctx, cfg, logger); err != nil {
		return nil, err
	}
	deps.initCacheAndLocks(cfg, logger)
	deps.initProducer(cfg, logger)

	return deps, nil
}

// initStorage подключает PostgreSQL или поднимает in-memory хранилище.
func (d *Dependencies) initStorage(ctx context.Context, cfg Config, logger *log.Entry) error {
	if cfg.PostgresDSN == "" {
		repo := memory.NewProductRepository()
		d.Products = repo
		d.Inventory = repo
		d.Categories = memory.NewCategoryRepository()
		logger.Info("postgres не настроен, используем in-memory хранилище")
		return nil
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return fmt.Errorf("ensure schema: %w", err)
	}

	productRepo := postgres.NewProductRepository(store)
	d.store = store
	d.Products = productRepo
	d.Inventory = productRepo
	d.Categories = postgres.NewCategoryRepository(store)
	logger.Info("postgres хранилище инициализировано")
	return nil
}

// initCacheAndLocks подключает Redis для кеша и замков или in-memory аналоги.
func (d *Dependencies) initCacheAndLocks(cfg Config, logger *log.Entry) {
	if cfg.RedisAddr == "" {
		d.Cache = cachemem.NewCache()
		d.Locks = lockmem.NewLockService()
		logger.Info("redis не настроен, кеш и замки работают в памяти процесса")
		return
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	d.redisClient = client
	d.Cache = cacheredis.NewCache(client, logger.WithField("component", "cache"))
	d.Locks = lockredis.NewLockService(client, logger.WithField("component", "lock"))
	logger.WithField("addr", cfg.RedisAddr).Info("redis инициализирован")
}

// initProducer инициализирует Kafka producer, если заданы брокеры.
// Ошибка подключения не фатальна: события просто не публикуются.
func (d *Dependencies) initProducer(cfg Config, logger *log.Entry) {
	if len(cfg.KafkaBrokers) == 0 {
		return
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return
	}
	d.Producer = producer
	logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
}

// Close освобождает все внешние подключения в обратном порядке инициализации.
func (d *Dependencies) Close() {
	if d.Producer != nil {
		if err := d.Producer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			d.Logger.Info("kafka producer closed")
		}
	}
	if d.redisClient != nil {
		if err := d.redisClient.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close redis client")
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
