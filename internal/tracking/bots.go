package tracking

import (
	"sync"

	"github.com/annel0/skyblob/internal/util"
	"github.com/annel0/skyblob/internal/world"
)

// Bots — синтетические blob'ы, плавно блуждающие по нижней половине мира.
// Каждый бот читает свою полосу шума Перлина.
type Bots struct {
	mu     sync.Mutex
	noise  *util.Noise
	count  int
	width  float64
	height float64
	step   float64
	t      float64
}

// NewBots создаёт count ботов для мира width×height
func NewBots(count int, width, height float64, seed int64) *Bots {
	return &Bots{
		noise:  util.NewNoise(seed),
		count:  count,
		width:  width,
		height: height,
		step:   0.01,
	}
}

// Blobs сдвигает ботов на один шаг и возвращает их позиции.
// Идентификаторы ботов — 1..count.
func (b *Bots) Blobs() []world.Blob {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.t += b.step
	blobs := make([]world.Blob, b.count)
	for i := range blobs {
		lane := float64(i) * 17.3
		blobs[i] = world.Blob{
			ID: i + 1,
			X:  b.noise.At2D(b.t, lane) * b.width,
			Y:  b.height/2 + b.noise.At2D(lane, b.t)*b.height/2,
		}
	}
	return blobs
}
