package plumber

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/dr-plumber/internal/config"
	"github.com/vovakirdan/dr-plumber/internal/core"
	"github.com/vovakirdan/dr-plumber/internal/games/plumber/bottle"
)

func TestRenderBottleAndHUD(t *testing.T) {
	g, _ := playing(t, bottle.MustParse("R.......", "by......"),
		bottle.Capsule{Color1: bottle.Red, Color2: bottle.Blue, Pos: bottle.P(1, 4), Dir: bottle.DirRight})
	screen := core.NewScreen(MinWidth, MinHeight)

	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "DR. PLUMBER")
	assert.Contains(t, out, "LEVEL   1")
	assert.Contains(t, out, "SPEED  MID")
	assert.Contains(t, out, "VIRUS   1")
	assert.Contains(t, out, "┘      └", "neck opens into the body")

	// The falling capsule sits in row 1, just below the neck.
	assert.Contains(t, screen.Row(4), "(==)")

	// Bottom row of the field: medicine b, y.
	bottom := screen.Row(MinHeight - 2)
	assert.True(t, strings.HasPrefix(bottom, "│()()"), "bottom row = %q", bottom)
	assert.Equal(t, core.ColorBlue, screen.GetCell(1, MinHeight-2).Color)
	assert.Equal(t, core.ColorYellow, screen.GetCell(3, MinHeight-2).Color)

	// Virus above it, drawn bright.
	assert.True(t, strings.HasPrefix(screen.Row(MinHeight-3), "│><"))
	assert.Equal(t, core.ColorBrightRed, screen.GetCell(1, MinHeight-3).Color)
}

func TestRenderTopRowOnlyInNeck(t *testing.T) {
	// At MinWidth the body's top wall is screen row 3 and the neck spans x 6..11.
	const wallY = 3

	g, _ := playing(t, bottle.New(),
		bottle.Capsule{Color1: bottle.Red, Color2: bottle.Blue, Pos: bottle.P(1, 1), Dir: bottle.DirUp})
	screen := core.NewScreen(MinWidth, MinHeight)
	g.Render(screen)
	assert.Equal(t, '─', screen.GetCell(1, wallY).Rune, "wall keeps its edge")
	assert.Equal(t, '(', screen.GetCell(1, wallY+1).Rune, "lower half still drawn")

	g.current = &bottle.Capsule{Color1: bottle.Red, Color2: bottle.Blue, Pos: bottle.P(1, 6), Dir: bottle.DirUp}
	screen.Clear()
	g.Render(screen)
	assert.Equal(t, '└', screen.GetCell(12, wallY).Rune, "lip corner kept")

	g.current = &bottle.Capsule{Color1: bottle.Red, Color2: bottle.Blue, Pos: bottle.P(1, 4), Dir: bottle.DirUp}
	screen.Clear()
	g.Render(screen)
	assert.Equal(t, '(', screen.GetCell(7, wallY).Rune, "neck shows the top row")
	assert.Equal(t, core.ColorBlue, screen.GetCell(7, wallY).Color)
}

func TestRenderPrompts(t *testing.T) {
	g := newTestGame(t, 2, config.DefaultPlumberConfig())
	g.bottle = bottle.New()
	screen := core.NewScreen(60, 30)

	g.enter(ModeGameOver, epoch)
	g.Render(screen)
	assert.Contains(t, screen.String(), "CONTINUE?")
	assert.Contains(t, screen.String(), ">YES<")

	g.selection = SelectNo
	g.enter(ModeWin, epoch)
	g.Render(screen)
	assert.Contains(t, screen.String(), "NEXT LEVEL?")
	assert.Contains(t, screen.String(), ">NO<")
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 2, config.DefaultPlumberConfig())
	screen := core.NewScreen(30, 10)

	g.Render(screen)

	assert.Contains(t, screen.String(), "Terminal too small")
}

func TestBlockGlyphs(t *testing.T) {
	assert.Equal(t, "><", blockGlyph(bottle.Virus(bottle.Red)))
	assert.Equal(t, "()", blockGlyph(bottle.Medicine(bottle.Red)))
	assert.Equal(t, "**", blockGlyph(bottle.Vanishing(bottle.Red)))
	assert.Equal(t, "(=", blockGlyph(bottle.Half(bottle.Red, bottle.DirRight)))
	assert.Equal(t, "=)", blockGlyph(bottle.Half(bottle.Red, bottle.DirLeft)))
}
