package physics

import (
	"github.com/annel0/skyblob/internal/vec"
)

// Box — прямоугольник, привязанный к центру. Все сущности мира
// хранят позицию центра, поэтому коллизии считаются в той же системе.
type Box struct {
	Center vec.Vec2Float
	Width  float64
	Height float64
}

// NewBox создаёт коллайдер с центром в (x, y)
func NewBox(x, y, w, h float64) Box {
	return Box{Center: vec.Vec2Float{X: x, Y: y}, Width: w, Height: h}
}

// Min возвращает левый верхний угол
func (b Box) Min() vec.Vec2Float {
	return vec.Vec2Float{X: b.Center.X - b.Width/2, Y: b.Center.Y - b.Height/2}
}

// Max возвращает правый нижний угол
func (b Box) Max() vec.Vec2Float {
	return vec.Vec2Float{X: b.Center.X + b.Width/2, Y: b.Center.Y + b.Height/2}
}

// IsPointInside проверяет, находится ли точка внутри коллайдера
func (b Box) IsPointInside(point vec.Vec2Float) bool {
	lo, hi := b.Min(), b.Max()
	return point.X >= lo.X && point.X < hi.X &&
		point.Y >= lo.Y && point.Y < hi.Y
}

// Overlaps проверяет пересечение двух коллайдеров.
// Неравенства строгие: касание краями и вырожденные (нулевые) размеры не дают пересечения.
func Overlaps(a, b Box) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()

	return aMin.X < bMax.X &&
		aMax.X > bMin.X &&
		aMin.Y < bMax.Y &&
		aMax.Y > bMin.Y
}
