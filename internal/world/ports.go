package world

import (
	"github.com/annel0/skyblob/internal/vec"
	"github.com/annel0/skyblob/internal/world/entity"
)

// Blob — отслеживаемая точка от системы трекинга в мировых координатах.
// ID стабилен, пока точка не потеряна.
type Blob struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Persistence — синхронный доступ к постоянному хранилищу рекорда
type Persistence interface {
	Get(key string) (int64, bool, error)
	Set(key string, value int64) error
}

// Sprite — изображение для отрисовки. Pos — центр.
type Sprite struct {
	Image string
	Pos   vec.Vec2Float
	Size  vec.Vec2Float
	Tint  entity.Tint
}

// Text — надпись для отрисовки. Pos — центр области.
type Text struct {
	Content string
	Pos     vec.Vec2Float
	Size    vec.Vec2Float
	Align   entity.Align
}

// Canvas — приёмник отрисовки. Ничего не возвращает в симуляцию.
type Canvas interface {
	DrawSprite(Sprite)
	DrawText(Text)
}

// MemoryPersistence — Persistence в памяти, для тестов и автономных запусков
type MemoryPersistence struct {
	values map[string]int64
}

// NewMemoryPersistence создаёт пустое хранилище
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{values: make(map[string]int64)}
}

// Get возвращает значение ключа
func (m *MemoryPersistence) Get(key string) (int64, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// Set записывает значение ключа
func (m *MemoryPersistence) Set(key string, value int64) error {
	m.values[key] = value
	return nil
}
