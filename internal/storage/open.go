package storage

import (
	"context"
	"fmt"

	"github.com/annel0/skyblob/internal/config"
	"github.com/annel0/skyblob/internal/logging"
)

// Open создаёт ScoreStore по настройкам хранилища
func Open(ctx context.Context, cfg config.StorageConfig) (ScoreStore, error) {
	log := logging.GetStorageLogger()

	var (
		store ScoreStore
		err   error
	)
	switch cfg.Backend {
	case "", "memory":
		store = NewMemoryScoreStore()
	case "badger":
		store, err = NewBadgerScoreStore(cfg.Path)
	case "redis":
		store, err = NewRedisScoreStore(ctx, RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	case "maria":
		store, err = NewMariaScoreStore(ctx, cfg.MariaDSN)
	case "mongo":
		store, err = NewMongoScoreStore(ctx, MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDB})
	default:
		return nil, fmt.Errorf("неизвестный backend хранилища: %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("storage %s: %w", cfg.Backend, err)
	}

	log.Info("💾 Хранилище рекордов: %s", backendName(cfg.Backend))
	return store, nil
}

func backendName(b string) string {
	if b == "" {
		return "memory"
	}
	return b
}
