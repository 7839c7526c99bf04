// Package render выводит мир в терминал через tcell и превращает мышь
// и клавиатуру в blob'ы трекинга.
package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/annel0/skyblob/internal/util"
	"github.com/annel0/skyblob/internal/world"
	"github.com/annel0/skyblob/internal/world/entity"
)

const cloudThreshold = 0.62

// glyph — символ для префикса идентификатора изображения
type glyph struct {
	prefix string
	r      rune
}

var glyphs = []glyph{
	{"plane_", '▲'},
	{"enemy_basic", 'V'},
	{"enemy_hard", 'W'},
	{"enemy_kamikaze", 'X'},
	{"bullet_up", '|'},
	{"bullet_down", '!'},
	{"powerup_score", '$'},
	{"powerup_rapid_fire", 'R'},
	{"powerup_triple_fire", 'T'},
	{"powerup_lives", '+'},
	{"explosion", '*'},
}

// Glyph возвращает символ изображения; неизвестные рисуются как '?'
func Glyph(image string) rune {
	for _, g := range glyphs {
		if strings.HasPrefix(image, g.prefix) {
			return g.r
		}
	}
	return '?'
}

// Color переводит цветовую полосу в цвет терминала
func Color(t entity.Tint) tcell.Color {
	switch t {
	case entity.TintWhite:
		return tcell.ColorWhite
	case entity.TintYellow:
		return tcell.ColorYellow
	case entity.TintGreen:
		return tcell.ColorGreen
	case entity.TintOrange:
		return tcell.ColorOrange
	case entity.TintRed:
		return tcell.ColorRed
	default:
		return tcell.ColorDefault
	}
}

// Terminal — world.Canvas поверх экрана tcell. Мировые координаты
// масштабируются на текущий размер экрана в ячейках.
type Terminal struct {
	screen tcell.Screen
	worldW float64
	worldH float64
	noise  *util.Noise
	cols   int
	rows   int
}

// NewTerminal создаёт холст для мира worldW×worldH
func NewTerminal(screen tcell.Screen, worldW, worldH float64, seed int64) *Terminal {
	t := &Terminal{
		screen: screen,
		worldW: worldW,
		worldH: worldH,
		noise:  util.NewNoise(seed),
	}
	t.cols, t.rows = screen.Size()
	return t
}

// BeginFrame очищает экран и перечитывает его размер
func (t *Terminal) BeginFrame() {
	t.cols, t.rows = t.screen.Size()
	t.screen.Clear()
}

// EndFrame выводит кадр
func (t *Terminal) EndFrame() {
	t.screen.Show()
}

// Cell переводит мировую точку в ячейку экрана
func (t *Terminal) Cell(x, y float64) (int, int) {
	return int(x / t.worldW * float64(t.cols)), int(y / t.worldH * float64(t.rows))
}

func (t *Terminal) inside(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < t.cols && cy < t.rows
}

// DrawSprite рисует спрайт одним символом в ячейке его центра.
// Слои фона рисуются облаками из шума Перлина.
func (t *Terminal) DrawSprite(s world.Sprite) {
	if s.Image == "background" {
		t.drawClouds(s)
		return
	}
	cx, cy := t.Cell(s.Pos.X, s.Pos.Y)
	if !t.inside(cx, cy) {
		return
	}
	style := tcell.StyleDefault.Foreground(Color(s.Tint))
	if strings.HasPrefix(s.Image, "powerup_") {
		style = style.Foreground(tcell.ColorAqua).Bold(true)
	}
	t.screen.SetContent(cx, cy, Glyph(s.Image), nil, style)
}

// drawClouds заполняет видимую часть слоя. Шум берётся в координатах слоя,
// поэтому облака едут вместе с ним.
func (t *Terminal) drawClouds(s world.Sprite) {
	top := s.Pos.Y - s.Size.Y/2
	topRow := top / t.worldH * float64(t.rows)
	_, y0 := t.Cell(0, top)
	_, y1 := t.Cell(0, top+s.Size.Y)
	if y0 < 0 {
		y0 = 0
	}
	if y1 > t.rows {
		y1 = t.rows
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for cy := y0; cy < y1; cy++ {
		layerY := float64(cy) - topRow
		for cx := 0; cx < t.cols; cx++ {
			if t.noise.At2D(float64(cx)*0.08, layerY*0.15) > cloudThreshold {
				t.screen.SetContent(cx, cy, '░', nil, style)
			}
		}
	}
}

// DrawText рисует надпись в строке её центра
func (t *Terminal) DrawText(txt world.Text) {
	if txt.Content == "" {
		return
	}
	runes := []rune(txt.Content)

	var cx, cy int
	if txt.Align == entity.AlignCenter {
		cx, cy = t.Cell(txt.Pos.X, txt.Pos.Y)
		cx -= len(runes) / 2
	} else {
		cx, cy = t.Cell(txt.Pos.X-txt.Size.X/2, txt.Pos.Y)
	}
	if cy < 0 || cy >= t.rows {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	for i, r := range runes {
		if x := cx + i; x >= 0 && x < t.cols {
			t.screen.SetContent(x, cy, r, nil, style)
		}
	}
}
