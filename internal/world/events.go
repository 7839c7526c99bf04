package world

import (
	"github.com/annel0/skyblob/internal/vec"
	"github.com/annel0/skyblob/internal/world/entity"
)

// EventType определяет тип игрового события
type EventType uint8

const (
	EventPlayerJoined    EventType = iota // Новый игрок занял слот
	EventPlayerOffline                    // Игрок потерял blob
	EventPlayerLeft                       // Истекло время ожидания переподключения
	EventPlayerDied                       // Игрок сбит
	EventEnemyDestroyed                   // Враг уничтожен
	EventEnemyEscaped                     // Враг покинул мир
	EventPowerUpSpawned                   // Появился бонус
	EventPowerUpCollected                 // Бонус подобран
	EventPowerUpExpired                   // Бонус исчез
	EventShotFired                        // Выстрел
	EventNewBestScore                     // Новый рекорд
	EventSessionEnded                     // Сессия завершена
)

var eventNames = [...]string{
	"player_joined",
	"player_offline",
	"player_left",
	"player_died",
	"enemy_destroyed",
	"enemy_escaped",
	"powerup_spawned",
	"powerup_collected",
	"powerup_expired",
	"shot_fired",
	"new_best_score",
	"session_ended",
}

// String возвращает имя события в snake_case
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event — игровое событие. Slot == -1, если событие не относится к игроку.
type Event struct {
	Type     EventType
	Tick     uint64
	Slot     int
	Plane    entity.Kind
	PowerUp  entity.PowerUpKind
	Position vec.Vec2Float
	Score    int64
}

// Observer получает события синхронно после изменения состояния.
// Наблюдатель не должен обращаться к миру из OnEvent.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc позволяет использовать функцию как Observer
type ObserverFunc func(Event)

// OnEvent вызывает f(e)
func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Observers рассылает событие нескольким наблюдателям по порядку
type Observers []Observer

// OnEvent передаёт событие каждому наблюдателю
func (o Observers) OnEvent(e Event) {
	for _, obs := range o {
		if obs != nil {
			obs.OnEvent(e)
		}
	}
}

type nopObserver struct{}

func (nopObserver) OnEvent(Event) {}

// HasPlane сообщает, заполнено ли поле Plane для этого типа события
func (e Event) HasPlane() bool {
	switch e.Type {
	case EventPlayerJoined, EventPlayerOffline, EventPlayerLeft, EventPlayerDied,
		EventEnemyDestroyed, EventEnemyEscaped, EventShotFired:
		return true
	}
	return false
}

// HasPowerUp сообщает, заполнено ли поле PowerUp для этого типа события
func (e Event) HasPowerUp() bool {
	switch e.Type {
	case EventPowerUpSpawned, EventPowerUpCollected, EventPowerUpExpired:
		return true
	}
	return false
}
