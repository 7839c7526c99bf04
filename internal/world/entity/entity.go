package entity

import (
	"github.com/annel0/skyblob/internal/physics"
	"github.com/annel0/skyblob/internal/vec"
)

// Bounds — размеры мира, в пределах которого живут сущности
type Bounds struct {
	Width  float64
	Height float64
}

// Body — позиция (центр) и размер сущности, плюс отметка об удалении.
// Удалённые сущности остаются в коллекции мира до конца тика и пропускаются всеми проходами.
type Body struct {
	Pos     vec.Vec2Float
	Size    vec.Vec2Float
	removed bool
}

// NewBody создаёт тело с центром в pos
func NewBody(pos vec.Vec2Float, w, h float64) Body {
	return Body{Pos: pos, Size: vec.Vec2Float{X: w, Y: h}}
}

// Box возвращает коллайдер тела
func (b *Body) Box() physics.Box {
	return physics.Box{Center: b.Pos, Width: b.Size.X, Height: b.Size.Y}
}

// MarkRemoved помечает сущность удалённой
func (b *Body) MarkRemoved() { b.removed = true }

// Removed сообщает, помечена ли сущность к удалению
func (b *Body) Removed() bool { return b.removed }

// OutOfVerticalBounds — тело целиком вышло за верхнюю или нижнюю границу мира
func (b *Body) OutOfVerticalBounds(bounds Bounds) bool {
	half := b.Size.Y / 2
	return b.Pos.Y+half < 0 || b.Pos.Y-half > bounds.Height
}

// Text — надпись интерфейса
type Text struct {
	Body
	Content string
	Align   Align
}

// NewText создаёт надпись с левым верхним углом области в (x, y)
func NewText(content string, x, y, w, h float64, align Align) *Text {
	return &Text{
		Body:    NewBody(vec.Vec2Float{X: x + w/2, Y: y + h/2}, w, h),
		Content: content,
		Align:   align,
	}
}

// SetText меняет содержимое надписи
func (t *Text) SetText(content string) {
	t.Content = content
}

// MoveTo переносит центр надписи
func (t *Text) MoveTo(pos vec.Vec2Float) {
	t.Pos = pos
}
