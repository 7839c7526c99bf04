package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/skyblob/internal/vec"
	"github.com/annel0/skyblob/internal/world"
	"github.com/annel0/skyblob/internal/world/entity"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, '▲', Glyph("plane_idle_01"))
	assert.Equal(t, 'W', Glyph("enemy_hard_00"))
	assert.Equal(t, '|', Glyph("bullet_up"))
	assert.Equal(t, '!', Glyph("bullet_down"))
	assert.Equal(t, '+', Glyph(entity.PowerUpLives.Image()))
	assert.Equal(t, '*', Glyph("explosion_03"))
	assert.Equal(t, '?', Glyph("unknown"))
}

func TestColor(t *testing.T) {
	assert.Equal(t, tcell.ColorRed, Color(entity.TintRed))
	assert.Equal(t, tcell.ColorWhite, Color(entity.TintWhite))
	assert.Equal(t, tcell.ColorDefault, Color(entity.TintNone))
}

func TestTerminal_DrawSpriteScalesToCells(t *testing.T) {
	screen := newScreen(t)
	term := NewTerminal(screen, 800, 240, 1)

	term.BeginFrame()
	term.DrawSprite(world.Sprite{Image: "enemy_basic_00", Pos: vec.Vec2Float{X: 405, Y: 125}, Tint: entity.TintWhite})
	term.DrawSprite(world.Sprite{Image: "bullet_up", Pos: vec.Vec2Float{X: -10, Y: 5}})
	term.EndFrame()

	x, y := term.Cell(405, 125)
	assert.Equal(t, 40, x)
	assert.Equal(t, 12, y)
	assert.Equal(t, 'V', runeAt(screen, 40, 12))
}

func TestTerminal_DrawText(t *testing.T) {
	screen := newScreen(t)
	term := NewTerminal(screen, 800, 240, 1)

	term.BeginFrame()
	term.DrawText(world.Text{Content: "Best: 5", Pos: vec.Vec2Float{X: 400, Y: 5}, Size: vec.Vec2Float{X: 800, Y: 10}})
	term.DrawText(world.Text{Content: "GAME", Pos: vec.Vec2Float{X: 400, Y: 120}, Align: entity.AlignCenter})
	term.EndFrame()

	assert.Equal(t, 'B', runeAt(screen, 0, 0))
	assert.Equal(t, '5', runeAt(screen, 6, 0))
	assert.Equal(t, 'G', runeAt(screen, 38, 12))
	assert.Equal(t, 'E', runeAt(screen, 41, 12))
}

func TestTerminal_CloudsStayInsideLayer(t *testing.T) {
	screen := newScreen(t)
	term := NewTerminal(screen, 800, 240, 1)

	// слой занимает только верхнюю половину экрана
	term.BeginFrame()
	term.DrawSprite(world.Sprite{Image: "background", Pos: vec.Vec2Float{X: 400, Y: -60}, Size: vec.Vec2Float{X: 800, Y: 240}})
	term.EndFrame()

	for y := 12; y < 24; y++ {
		for x := 0; x < 80; x++ {
			assert.NotEqual(t, '░', runeAt(screen, x, y))
		}
	}
}

func TestInput_MouseAndKeys(t *testing.T) {
	screen := newScreen(t)
	in := NewInput(screen, 800, 240)

	assert.Empty(t, in.Blobs())

	in.MouseAt(39, 11)
	blobs := in.Blobs()
	require.Len(t, blobs, 1)
	assert.Equal(t, MouseBlobID, blobs[0].ID)
	assert.InDelta(t, 395, blobs[0].X, 1e-9)
	assert.InDelta(t, 115, blobs[0].Y, 1e-9)

	assert.True(t, in.Key(tcell.KeyLeft, 0))
	blobs = in.Blobs()
	require.Len(t, blobs, 2)
	assert.Equal(t, KeysBlobID, blobs[1].ID)
	assert.InDelta(t, 380, blobs[1].X, 1e-9)

	in.Key(tcell.KeyRune, 'm')
	in.Key(tcell.KeyDelete, 0)
	assert.Empty(t, in.Blobs())

	in.Key(tcell.KeyRune, 'r')
	assert.True(t, in.TakeRestart())
	assert.False(t, in.TakeRestart())

	assert.False(t, in.Key(tcell.KeyEscape, 0))
	assert.True(t, in.Quit())
}

func TestInput_KeysClampedToWorld(t *testing.T) {
	in := NewInput(newScreen(t), 800, 240)
	for i := 0; i < 100; i++ {
		in.Key(tcell.KeyRight, 0)
		in.Key(tcell.KeyDown, 0)
	}
	blobs := in.Blobs()
	require.Len(t, blobs, 1)
	assert.Equal(t, 800.0, blobs[0].X)
	assert.Equal(t, 240.0, blobs[0].Y)
}
