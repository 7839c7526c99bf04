package entity

// Kind — тег варианта самолёта. Поведение выбирается по тегу, а не через иерархию типов.
type Kind uint8

const (
	KindBasic Kind = iota
	KindHard
	KindKamikaze
	KindPlayer
)

// String возвращает имя варианта
func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindHard:
		return "hard"
	case KindKamikaze:
		return "kamikaze"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// IsEnemy сообщает, относится ли вариант к вражеским самолётам
func (k Kind) IsEnemy() bool {
	return k != KindPlayer
}

// PowerUpKind — вариант бонуса
type PowerUpKind uint8

const (
	PowerUpScore PowerUpKind = iota
	PowerUpRapidFire
	PowerUpTripleFire
	PowerUpLives

	powerUpKindCount
)

// PowerUpKinds перечисляет все варианты бонусов в порядке случайного выбора
var PowerUpKinds = [powerUpKindCount]PowerUpKind{PowerUpScore, PowerUpRapidFire, PowerUpTripleFire, PowerUpLives}

// String возвращает имя бонуса
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpScore:
		return "score"
	case PowerUpRapidFire:
		return "rapid_fire"
	case PowerUpTripleFire:
		return "triple_fire"
	case PowerUpLives:
		return "lives"
	default:
		return "unknown"
	}
}

// Image возвращает идентификатор спрайта бонуса
func (k PowerUpKind) Image() string {
	return "powerup_" + k.String()
}

// Tint — цветовая полоса отрисовки
type Tint uint8

const (
	TintNone Tint = iota
	TintWhite
	TintYellow
	TintGreen
	TintOrange
	TintRed
)

// String возвращает имя цвета
func (t Tint) String() string {
	switch t {
	case TintWhite:
		return "white"
	case TintYellow:
		return "yellow"
	case TintGreen:
		return "green"
	case TintOrange:
		return "orange"
	case TintRed:
		return "red"
	default:
		return "none"
	}
}

// LifeTint выбирает цвет по доле оставшихся жизней: белый — полные,
// дальше жёлтый, зелёный, оранжевый, красный — критическое состояние.
func LifeTint(lives, maxLives int) Tint {
	if maxLives <= 0 {
		return TintWhite
	}
	ratio := float64(lives) / float64(maxLives)
	switch {
	case ratio >= 1:
		return TintWhite
	case ratio >= 0.75:
		return TintYellow
	case ratio >= 0.5:
		return TintGreen
	case ratio >= 0.25:
		return TintOrange
	default:
		return TintRed
	}
}

// Align — выравнивание текста
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
)
