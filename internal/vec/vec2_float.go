package vec

import "math"

// Vec2Float — точка или направление в мировых координатах.
// Ось Y направлена вниз, к игрокам.
type Vec2Float struct {
	X, Y float64
}

func (v Vec2Float) Add(o Vec2Float) Vec2Float { return Vec2Float{v.X + o.X, v.Y + o.Y} }

func (v Vec2Float) Sub(o Vec2Float) Vec2Float { return Vec2Float{v.X - o.X, v.Y - o.Y} }

// Mul масштабирует обе компоненты на k
func (v Vec2Float) Mul(k float64) Vec2Float { return v.Scale(k, k) }

// Scale масштабирует компоненты независимо (нормированные координаты → мировые)
func (v Vec2Float) Scale(sx, sy float64) Vec2Float { return Vec2Float{v.X * sx, v.Y * sy} }

// FlipX меняет знак горизонтальной составляющей
func (v Vec2Float) FlipX() Vec2Float { return Vec2Float{-v.X, v.Y} }

// FlipY меняет знак вертикальной составляющей
func (v Vec2Float) FlipY() Vec2Float { return Vec2Float{v.X, -v.Y} }

// Length — евклидова длина
func (v Vec2Float) Length() float64 { return math.Hypot(v.X, v.Y) }

// DistanceTo — расстояние между точками
func (v Vec2Float) DistanceTo(o Vec2Float) float64 { return v.Sub(o).Length() }

// Normalized возвращает единичный вектор того же направления.
// Нулевой вектор возвращается как есть.
func (v Vec2Float) Normalized() Vec2Float {
	l := v.Length()
	if l == 0 {
		return Vec2Float{}
	}
	return v.Mul(1 / l)
}
