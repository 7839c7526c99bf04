package storage

import (
	"context"
	"time"

	"github.com/annel0/skyblob/internal/logging"
	"github.com/annel0/skyblob/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Bridge даёт игровому миру синхронный доступ к ScoreStore.
// Каждый вызов ограничен таймаутом и оборачивается в span.
type Bridge struct {
	store   ScoreStore
	timeout time.Duration
	tracer  trace.Tracer
	log     *logging.Logger
}

// NewBridge создаёт мост с таймаутом на операцию (0 — 2 секунды)
func NewBridge(store ScoreStore, timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Bridge{
		store:   store,
		timeout: timeout,
		tracer:  observability.Tracer("storage"),
		log:     logging.GetStorageLogger(),
	}
}

// Get читает значение ключа
func (b *Bridge) Get(key string) (int64, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	ctx, span := b.tracer.Start(ctx, "score.get", trace.WithAttributes(attribute.String("score.key", key)))
	defer span.End()

	v, ok, err := b.store.Get(ctx, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, false, err
	}
	span.SetAttributes(attribute.Bool("score.found", ok), attribute.Int64("score.value", v))
	return v, ok, nil
}

// Set записывает значение ключа
func (b *Bridge) Set(key string, value int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	ctx, span := b.tracer.Start(ctx, "score.set", trace.WithAttributes(
		attribute.String("score.key", key),
		attribute.Int64("score.value", value),
	))
	defer span.End()

	if err := b.store.Set(ctx, key, value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	b.log.Debug("💾 %s = %d", key, value)
	return nil
}
