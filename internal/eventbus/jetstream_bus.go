package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	nats "github.com/nats-io/nats.go"
)

const (
	subjectPrefix = "skyblob"
	defaultStream = "SKYBLOB"
)

// JetStreamBus — шина поверх NATS JetStream.
// Событие game.player_died уходит в subject skyblob.game.player_died.
type JetStreamBus struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	stream string

	published atomic.Uint64
	consumed  atomic.Uint64
	dropped   atomic.Uint64
}

// NewJetStreamBus подключается к NATS и создаёт стрим, если его ещё нет.
// retention ограничивает возраст сообщений в стриме (0 — без ограничения).
func NewJetStreamBus(url, stream string, retention time.Duration) (*JetStreamBus, error) {
	if stream == "" {
		stream = defaultStream
	}

	nc, err := nats.Connect(url, nats.Name("skyblob"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	_, err = js.StreamInfo(stream)
	if errors.Is(err, nats.ErrStreamNotFound) {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:      stream,
			Subjects:  []string{subjectPrefix + ".>"},
			Retention: nats.LimitsPolicy,
			MaxAge:    retention,
			Storage:   nats.FileStorage,
		})
	}
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("stream %s: %w", stream, err)
	}

	return &JetStreamBus{nc: nc, js: js, stream: stream}, nil
}

func subjectFor(eventType string) string { return subjectPrefix + "." + eventType }

// Publish отправляет Envelope как JSON и ждёт подтверждения стрима
func (jb *JetStreamBus) Publish(ctx context.Context, ev *Envelope) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := jb.js.Publish(subjectFor(ev.EventType), data, nats.Context(ctx)); err != nil {
		jb.dropped.Add(1)
		return fmt.Errorf("jetstream publish %s: %w", ev.EventType, err)
	}
	jb.published.Add(1)
	return nil
}

// Subscribe читает только новые сообщения: история стрима нужна внешним
// потребителям, а не слушателям этого процесса. На каждый тип из фильтра
// создаётся отдельная подписка, без типов — одна на весь префикс.
func (jb *JetStreamBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	subjects := []string{subjectPrefix + ".>"}
	if len(f.Types) > 0 {
		subjects = subjects[:0]
		for _, t := range f.Types {
			subjects = append(subjects, subjectFor(t))
		}
	}

	handle := func(msg *nats.Msg) {
		var ev Envelope
		if err := json.Unmarshal(msg.Data, &ev); err == nil && matchFilter(&ev, f) {
			h(ctx, &ev)
			jb.consumed.Add(1)
		}
		_ = msg.Ack()
	}

	subs := make(jetSubs, 0, len(subjects))
	for _, subj := range subjects {
		s, err := jb.js.Subscribe(subj, handle,
			nats.DeliverNew(),
			nats.ManualAck(),
			nats.AckWait(30*time.Second),
			nats.Durable("skyblob_"+uuid.NewString()[:8]),
		)
		if err != nil {
			subs.Unsubscribe()
			return nil, fmt.Errorf("jetstream subscribe %s: %w", subj, err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}

type jetSubs []*nats.Subscription

func (s jetSubs) Unsubscribe() {
	for _, sub := range s {
		_ = sub.Unsubscribe()
	}
}

// Metrics возвращает счётчики; очередь живёт на стороне сервера, InFlight всегда 0
func (jb *JetStreamBus) Metrics() Stats {
	return Stats{
		Published: jb.published.Load(),
		Consumed:  jb.consumed.Load(),
		Dropped:   jb.dropped.Load(),
	}
}

// Close дожидается отправки буфера и закрывает соединение
func (jb *JetStreamBus) Close() error {
	return jb.nc.Drain()
}
