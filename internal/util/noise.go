package util

import (
	"github.com/aquilax/go-perlin"
)

const (
	noiseAlpha   = 2.0 // Сглаживание шума
	noiseBeta    = 2.0 // Частота шума
	noiseOctaves = 3   // Количество октав
)

// Noise — генератор шума Перлина с собственным сидом.
// perlin.Perlin неизменяем после создания, значения можно читать из любых горутин.
type Noise struct {
	p *perlin.Perlin
}

// NewNoise создаёт генератор с указанным сидом
func NewNoise(seed int64) *Noise {
	return &Noise{p: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)}
}

// At1D возвращает значение шума в точке x в диапазоне [0, 1]
func (n *Noise) At1D(x float64) float64 {
	return normalize(n.p.Noise1D(x))
}

// At2D возвращает значение шума в точке (x, y) в диапазоне [0, 1]
func (n *Noise) At2D(x, y float64) float64 {
	return normalize(n.p.Noise2D(x, y))
}

// normalize переводит шум из [-1, 1] в [0, 1] с отсечением выбросов
func normalize(v float64) float64 {
	v = (v + 1.0) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
