// Package clock задаёт временную базу симуляции: длительность одного тика
// вычисляется из частоты кадров.
package clock

import (
	"sync"
	"time"
)

// Clock возвращает длительность текущего тика в секундах.
type Clock interface {
	Delta() float64
}

// Delta переводит частоту кадров в длительность тика.
// При нулевой частоте возвращается 1, чтобы не делить на ноль и не останавливать таймеры.
func Delta(frameRate float64) float64 {
	if frameRate == 0 {
		return 1
	}
	return 1 / frameRate
}

// Fixed — часы с постоянной частотой кадров (тесты, безголовый режим).
type Fixed float64

// Delta реализует Clock
func (f Fixed) Delta() float64 { return Delta(float64(f)) }

// FrameClock измеряет фактическую частоту кадров по отметкам Tick,
// сглаживая её экспоненциальным средним.
type FrameClock struct {
	mu        sync.Mutex
	now       func() time.Time
	last      time.Time
	frameRate float64
	smoothing float64
}

// NewFrameClock создаёт часы с начальной частотой nominal кадров в секунду.
func NewFrameClock(nominal float64) *FrameClock {
	return &FrameClock{
		now:       time.Now,
		frameRate: nominal,
		smoothing: 0.1,
	}
}

// Tick отмечает начало нового кадра и пересчитывает частоту.
func (c *FrameClock) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now()
	if !c.last.IsZero() {
		elapsed := t.Sub(c.last).Seconds()
		if elapsed > 0 {
			sample := 1 / elapsed
			c.frameRate += (sample - c.frameRate) * c.smoothing
		}
	}
	c.last = t
}

// FrameRate возвращает сглаженную частоту кадров.
func (c *FrameClock) FrameRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameRate
}

// Delta реализует Clock
func (c *FrameClock) Delta() float64 {
	return Delta(c.FrameRate())
}
