package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/annel0/skyblob/internal/world"
)

const (
	MouseBlobID = 1
	KeysBlobID  = 2
)

// Input превращает события терминала в blob'ы: мышь — blob 1,
// стрелки — blob 2. Клавиша m прячет мышь, Delete убирает blob стрелок,
// что имитирует потерю трекинга.
type Input struct {
	mu     sync.Mutex
	screen tcell.Screen
	worldW float64
	worldH float64
	step   float64

	mouse   world.Blob
	mouseOn bool
	keys    world.Blob
	keysOn  bool
	quit    bool
	restart bool
}

// NewInput создаёт источник для мира worldW×worldH
func NewInput(screen tcell.Screen, worldW, worldH float64) *Input {
	return &Input{
		screen: screen,
		worldW: worldW,
		worldH: worldH,
		step:   worldW / 40,
		mouse:  world.Blob{ID: MouseBlobID},
		keys:   world.Blob{ID: KeysBlobID, X: worldW / 2, Y: worldH * 0.9},
	}
}

// HandleEvent применяет событие tcell. Возвращает false, если игрок просит выйти.
func (in *Input) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		in.MouseAt(x, y)
	case *tcell.EventKey:
		return in.Key(ev.Key(), ev.Rune())
	}
	return true
}

// MouseAt переносит blob мыши в центр ячейки (x, y)
func (in *Input) MouseAt(x, y int) {
	cols, rows := in.screen.Size()
	if cols == 0 || rows == 0 {
		return
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	in.mouse.X = (float64(x) + 0.5) / float64(cols) * in.worldW
	in.mouse.Y = (float64(y) + 0.5) / float64(rows) * in.worldH
	in.mouseOn = true
}

// Key применяет нажатие клавиши. Возвращает false, если игрок просит выйти.
func (in *Input) Key(key tcell.Key, r rune) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.quit = true
		return false
	case tcell.KeyUp:
		in.moveKeys(0, -in.step)
	case tcell.KeyDown:
		in.moveKeys(0, in.step)
	case tcell.KeyLeft:
		in.moveKeys(-in.step, 0)
	case tcell.KeyRight:
		in.moveKeys(in.step, 0)
	case tcell.KeyDelete:
		in.keysOn = false
	case tcell.KeyRune:
		switch r {
		case 'q':
			in.quit = true
			return false
		case 'm':
			in.mouseOn = false
		case 'r':
			in.restart = true
		}
	}
	return true
}

func (in *Input) moveKeys(dx, dy float64) {
	in.keysOn = true
	in.keys.X = clamp(in.keys.X+dx, 0, in.worldW)
	in.keys.Y = clamp(in.keys.Y+dy, 0, in.worldH)
}

// Blobs implements tracking.Source
func (in *Input) Blobs() []world.Blob {
	in.mu.Lock()
	defer in.mu.Unlock()

	var blobs []world.Blob
	if in.mouseOn {
		blobs = append(blobs, in.mouse)
	}
	if in.keysOn {
		blobs = append(blobs, in.keys)
	}
	return blobs
}

// TakeRestart сообщает, просил ли игрок перезапуск, и сбрасывает запрос
func (in *Input) TakeRestart() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	r := in.restart
	in.restart = false
	return r
}

// Quit сообщает, просил ли игрок выйти
func (in *Input) Quit() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.quit
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
