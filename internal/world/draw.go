package world

import (
	"fmt"
	"strings"

	"github.com/annel0/skyblob/internal/vec"
	"github.com/annel0/skyblob/internal/world/entity"
)

// updateTexts пересчитывает надписи со счётом и жизнями
func (w *World) updateTexts() {
	if w.ended {
		w.statusText.SetText("GAME OVER")
		w.statusText.MoveTo(vec.Vec2Float{X: w.rules.Bounds.Width / 2, Y: w.rules.Bounds.Height/2 - 10})
		w.statusText.Align = entity.AlignCenter
		w.livesText.SetText(fmt.Sprintf("Best: %d", w.bestEver))
		w.livesText.MoveTo(vec.Vec2Float{X: w.rules.Bounds.Width / 2, Y: w.rules.Bounds.Height/2 + 10})
		w.livesText.Align = entity.AlignCenter
		return
	}

	var status, lives strings.Builder
	fmt.Fprintf(&status, "Best: %d", w.bestEver)
	for slot, p := range w.players {
		fmt.Fprintf(&status, "  P%d: %d", slot, w.slotScore[slot])
		if slot > 0 {
			lives.WriteString("  ")
		}
		switch {
		case p != nil && p.Offline():
			fmt.Fprintf(&lives, "P%d: %d (offline)", slot, p.Lives)
		case p != nil:
			fmt.Fprintf(&lives, "P%d: %d", slot, p.Lives)
		case w.respawn[slot].active:
			fmt.Fprintf(&lives, "P%d: respawn %.0fs", slot, w.respawn[slot].left)
		default:
			fmt.Fprintf(&lives, "P%d: -", slot)
		}
	}
	w.statusText.SetText(status.String())
	w.livesText.SetText(lives.String())

	for slot, p := range w.players {
		t := w.playerTexts[slot]
		if p == nil {
			t.SetText("")
			continue
		}
		t.SetText(fmt.Sprintf("P%d", slot))
		t.MoveTo(vec.Vec2Float{X: p.Pos.X, Y: p.Pos.Y - p.Size.Y})
	}
}

// Draw передаёт все живые сущности и надписи в canvas.
// После End рисуется только экран окончания игры.
func (w *World) Draw(c Canvas) {
	if !w.ended {
		w.drawBackground(c)
		for _, e := range w.enemies {
			c.DrawSprite(Sprite{Image: e.Anim.Image(), Pos: e.Pos, Size: e.Size, Tint: e.Tint()})
		}
		for _, p := range w.players {
			if p != nil {
				c.DrawSprite(Sprite{Image: p.Anim.Image(), Pos: p.Pos, Size: p.Size, Tint: p.Tint()})
			}
		}
		for _, b := range w.bullets {
			c.DrawSprite(Sprite{Image: b.Image(), Pos: b.Pos, Size: b.Size, Tint: b.Tint()})
		}
		for _, pu := range w.powerUps {
			c.DrawSprite(Sprite{Image: pu.Image(), Pos: pu.Pos, Size: pu.Size})
		}
		for _, ex := range w.explosions {
			c.DrawSprite(Sprite{Image: ex.Anim.Image(), Pos: ex.Pos, Size: ex.Size})
		}
		for _, t := range w.playerTexts {
			if t.Content != "" {
				c.DrawText(textOf(t))
			}
		}
	}
	c.DrawText(textOf(w.statusText))
	c.DrawText(textOf(w.livesText))
}

func (w *World) drawBackground(c Canvas) {
	size := vec.Vec2Float{X: w.rules.Bounds.Width, Y: w.rules.Bounds.Height}
	for i, img := range w.background.Images {
		pos := vec.Vec2Float{X: size.X / 2, Y: w.background.Offsets[i] + size.Y/2}
		c.DrawSprite(Sprite{Image: img, Pos: pos, Size: size})
	}
}

func textOf(t *entity.Text) Text {
	return Text{Content: t.Content, Pos: t.Pos, Size: t.Size, Align: t.Align}
}
