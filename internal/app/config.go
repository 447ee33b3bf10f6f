package app

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config описывает настройки запуска сервиса каталога.
// Redis, PostgreSQL и Kafka опциональны: без них сервис поднимается
// на in-memory реализациях, что удобно для локальной разработки.
type Config struct {
	HTTPAddr    string `env:"CATALOG_HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"CATALOG_METRICS_ADDR" envDefault:":9090"`

	// RedisAddr — адрес Redis для кеша и распределённых замков.
	RedisAddr string `env:"REDIS_ADDR"`
	// PostgresDSN — строка подключения к PostgreSQL-хранилищу каталога.
	PostgresDSN string `env:"POSTGRES_DSN"`
	// KafkaBrokers — брокеры для публикации событий каталога.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
}

// ReadConfig читает конфигурацию из переменных окружения.
func ReadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig возвращает конфигурацию для локального запуска без внешних систем.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}
