package plumber

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/dr-plumber/internal/core"
	"github.com/vovakirdan/dr-plumber/internal/games/plumber/bottle"
)

// Layout of the bottle on screen. Every bottle cell is two characters wide.
const (
	cellW   = 2
	bodyW   = bottle.Cols*cellW + 2 // inner field plus walls
	bodyH   = bottle.Rows + 2
	lipW    = 8
	lipH    = 4 // bottom edge is shared with the top of the body
	lipX    = (bodyW - lipW) / 2
	hudGap  = 3
	hudW    = 18
	layoutW = bodyW + hudGap + hudW
	layoutH = lipH - 1 + bodyH
)

// Smallest screen the bottle and HUD fit in.
const (
	MinWidth  = layoutW
	MinHeight = layoutH
)

var wallColor = core.ColorWhite

// Render draws the bottle, the HUD and any prompt into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < layoutW || dst.Height() < layoutH {
		g.renderTooSmall(dst)
		return
	}

	ox := (dst.Width() - layoutW) / 2
	oy := (dst.Height() - layoutH) / 2
	bodyY := oy + lipH - 1

	g.renderBottle(dst, ox, oy, bodyY)
	g.renderHUD(dst, ox+bodyW+hudGap, bodyY+1)

	switch g.mode {
	case ModeGameOver:
		g.renderPrompt(dst, ox, bodyY, "GAME OVER", "CONTINUE?")
	case ModeWin:
		g.renderPrompt(dst, ox, bodyY, "STAGE CLEAR", "NEXT LEVEL?")
	}
}

// renderBottle draws the lip with the next capsule, the body and its contents.
func (g *Game) renderBottle(dst *core.Screen, ox, oy, bodyY int) {
	dst.DrawBox(core.NewRect(ox, bodyY, bodyW, bodyH), wallColor)

	lip := core.NewRect(ox+lipX, oy, lipW, lipH)
	dst.DrawBox(lip, wallColor)
	// Open the neck into the body.
	for x := lip.X + 1; x < lip.Right()-1; x++ {
		dst.Set(x, bodyY, ' ')
	}
	dst.SetColored(lip.X, bodyY, '┘', wallColor)
	dst.SetColored(lip.Right()-1, bodyY, '└', wallColor)

	// Next capsule preview, centered in the lip.
	px := lip.X + (lipW-2*cellW)/2
	drawGlyph(dst, px, oy+1, "(=", blockColor(g.next[0], false))
	drawGlyph(dst, px+cellW, oy+1, "=)", blockColor(g.next[1], false))

	if g.bottle == nil {
		return
	}

	cellAt := func(p bottle.Pos) (int, int) {
		return ox + 1 + (p.Col-1)*cellW, bodyY + p.Row
	}
	// Row 0 is the bottle's top edge; only the neck opening can show it.
	visible := func(p bottle.Pos) bool {
		if p.Row > bottle.BufferRow {
			return true
		}
		x, _ := cellAt(p)
		return x > lip.X && x+cellW < lip.Right()
	}

	g.bottle.Each(func(p bottle.Pos, blk bottle.Block) {
		if !visible(p) {
			return
		}
		x, y := cellAt(p)
		drawGlyph(dst, x, y, blockGlyph(blk), blockColor(blk.Color, blk.Kind == bottle.KindVirus || blk.Kind == bottle.KindVanishing))
	})

	if g.current != nil {
		c := *g.current
		cells := c.Cells()
		colors := [2]bottle.Color{c.Color1, c.Color2}
		links := [2]bottle.Dir{c.Dir, c.Dir.Reverse()}
		for i, p := range cells {
			if !visible(p) {
				continue
			}
			x, y := cellAt(p)
			drawGlyph(dst, x, y, blockGlyph(bottle.Half(colors[i], links[i])), blockColor(colors[i], false))
		}
	}
}

// renderHUD draws the status panel to the right of the bottle.
func (g *Game) renderHUD(dst *core.Screen, x, y int) {
	speed := g.cfg.Speed
	if speed == "" {
		speed = "-"
	}

	dst.DrawTextColored(x, y, "DR. PLUMBER", core.ColorCyan)
	lines := []string{
		fmt.Sprintf("LEVEL  %2d", g.level),
		fmt.Sprintf("SPEED  %s", strings.ToUpper(speed)),
		fmt.Sprintf("VIRUS  %2d", g.VirusesLeft()),
	}
	for i, line := range lines {
		dst.DrawText(x, y+2+i, line)
	}

	if status := g.statusLine(); status != "" {
		dst.DrawTextColored(x, y+6, status, core.ColorYellow)
	}
}

// statusLine returns a short hint for the current phase.
func (g *Game) statusLine() string {
	switch g.mode {
	case ModePreparing:
		return "INFECTING..."
	case ModeReady:
		return "READY"
	case ModeVanishingReady, ModeVanishing, ModeFalling:
		if g.cascade > 0 {
			return fmt.Sprintf("CHAIN x%d", g.cascade+1)
		}
	case ModeGameOverReady, ModeGameOver:
		return "GAME OVER"
	case ModeWinReady, ModeWin:
		return "CLEAR!"
	}
	return ""
}

// renderPrompt draws a YES/NO overlay across the middle of the bottle body.
func (g *Game) renderPrompt(dst *core.Screen, ox, bodyY int, title, question string) {
	box := core.NewRect(ox, bodyY+bodyH/2-3, bodyW, 6)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorYellow)

	center := func(y int, text string, c core.Color) {
		dst.DrawTextColored(box.X+(box.W-len(text))/2, y, text, c)
	}
	center(box.Y+1, title, core.ColorBrightRed)
	center(box.Y+2, question, core.ColorWhite)

	yes, no := " YES ", " NO "
	if g.selection == SelectYes {
		yes = ">YES<"
	} else {
		no = ">NO<"
	}
	center(box.Y+4, yes+"  "+no, core.ColorBrightYellow)
}

// renderTooSmall asks for a bigger terminal.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Terminal too small", core.ColorBrightRed)
	dst.DrawTextCentered(y, fmt.Sprintf("need %dx%d, have %dx%d", layoutW, layoutH, dst.Width(), dst.Height()), core.ColorGray)
}

func drawGlyph(dst *core.Screen, x, y int, glyph string, c core.Color) {
	dst.DrawTextColored(x, y, glyph, c)
}

// blockGlyph returns the two-character picture of a block.
func blockGlyph(blk bottle.Block) string {
	switch blk.Kind {
	case bottle.KindVirus:
		return "><"
	case bottle.KindMedicine:
		return "()"
	case bottle.KindVanishing:
		return "**"
	case bottle.KindCapsuleHalf:
		switch blk.Link {
		case bottle.DirRight:
			return "(="
		case bottle.DirLeft:
			return "=)"
		default:
			return "()"
		}
	}
	panic("plumber: no glyph for " + blk.Kind.String())
}

// blockColor maps a bottle color to a screen color. Bright is used for
// viruses and vanishing cells.
func blockColor(c bottle.Color, bright bool) core.Color {
	switch c {
	case bottle.Red:
		if bright {
			return core.ColorBrightRed
		}
		return core.ColorRed
	case bottle.Blue:
		if bright {
			return core.ColorBrightBlue
		}
		return core.ColorBlue
	case bottle.Yellow:
		if bright {
			return core.ColorBrightYellow
		}
		return core.ColorYellow
	}
	panic("plumber: no screen color for " + c.String())
}
