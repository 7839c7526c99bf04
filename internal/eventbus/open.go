package eventbus

import (
	"fmt"
	"time"

	"github.com/annel0/skyblob/internal/config"
)

// Open создаёт шину по конфигурации: memory (по умолчанию) или nats
func Open(cfg config.EventBusConfig) (EventBus, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryBus(cfg.Capacity), nil
	case "nats":
		return NewJetStreamBus(cfg.URL, cfg.Stream, time.Duration(cfg.Retention)*time.Hour)
	default:
		return nil, fmt.Errorf("eventbus: неизвестный backend %q", cfg.Backend)
	}
}
