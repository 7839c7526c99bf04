package tracking

import (
	"sync"
	"time"

	"github.com/annel0/skyblob/internal/world"
)

// Source — источник blob'ов для очередного тика.
// Blobs вызывается из игрового цикла и не должен блокироваться.
type Source interface {
	Blobs() []world.Blob
}

// SourceFunc позволяет использовать функцию как Source
type SourceFunc func() []world.Blob

// Blobs вызывает f()
func (f SourceFunc) Blobs() []world.Blob { return f() }

// DefaultStaleAfter — кадр старше этого считается потерянным трекингом
const DefaultStaleAfter = 500 * time.Millisecond

// Feed хранит последний полученный кадр трекинга. Потокобезопасен:
// писатель (websocket, терминал) и игровой цикл работают в разных горутинах.
type Feed struct {
	mu         sync.RWMutex
	blobs      []world.Blob
	updated    time.Time
	frames     uint64
	staleAfter time.Duration
	now        func() time.Time
}

// NewFeed создаёт ленту кадров. staleAfter <= 0 отключает устаревание.
func NewFeed(staleAfter time.Duration) *Feed {
	return &Feed{staleAfter: staleAfter, now: time.Now}
}

// Set заменяет текущий кадр
func (f *Feed) Set(blobs []world.Blob) {
	cp := make([]world.Blob, len(blobs))
	copy(cp, blobs)

	f.mu.Lock()
	f.blobs = cp
	f.updated = f.now()
	f.frames++
	f.mu.Unlock()
}

// Blobs возвращает копию последнего кадра или nil, если он устарел
func (f *Feed) Blobs() []world.Blob {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.blobs) == 0 {
		return nil
	}
	if f.staleAfter > 0 && f.now().Sub(f.updated) > f.staleAfter {
		return nil
	}
	cp := make([]world.Blob, len(f.blobs))
	copy(cp, f.blobs)
	return cp
}

// Frames возвращает число полученных кадров
func (f *Feed) Frames() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.frames
}
