package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/annel0/skyblob/internal/logging"
	"github.com/go-redis/redis/v8"
)

// RedisScoreStore хранит счётчики в Redis
type RedisScoreStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr      string // Адрес Redis сервера
	Password  string // Пароль (пустой если не требуется)
	DB        int    // Номер базы данных
	KeyPrefix string // Префикс для ключей
}

// NewRedisScoreStore подключается к Redis и проверяет соединение
func NewRedisScoreStore(ctx context.Context, cfg RedisConfig) (*RedisScoreStore, error) {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "skyblob:score:"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetStorageLogger().Info("🔴 Connected to Redis at %s", cfg.Addr)
	return &RedisScoreStore{client: client, keyPrefix: cfg.KeyPrefix}, nil
}

// Get implements ScoreStore
func (r *RedisScoreStore) Get(ctx context.Context, key string) (int64, bool, error) {
	v, err := r.client.Get(ctx, r.keyPrefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, true, nil
}

// Set implements ScoreStore
func (r *RedisScoreStore) Set(ctx context.Context, key string, value int64) error {
	if err := r.client.Set(ctx, r.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete implements ScoreStore
func (r *RedisScoreStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (r *RedisScoreStore) Close() error {
	return r.client.Close()
}
