package plumber

import (
	"math/rand"

	"github.com/vovakirdan/dr-plumber/internal/games/plumber/bottle"
)

// maxVirusRun is the longest same-colored virus line generation allows.
const maxVirusRun = 2

// placement is one virus waiting to be revealed.
type placement struct {
	pos   bottle.Pos
	color bottle.Color
}

// placeViruses draws count distinct positions from rows topRow..16 and
// colors them so no three same-colored viruses line up. The result is in
// reveal order.
func placeViruses(rng *rand.Rand, count, topRow int) []placement {
	var cells []bottle.Pos
	for row := topRow; row <= bottle.Rows; row++ {
		for col := 1; col <= bottle.Cols; col++ {
			cells = append(cells, bottle.P(row, col))
		}
	}
	rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
	if count > len(cells) {
		count = len(cells)
	}

	scratch := bottle.New()
	out := make([]placement, 0, count)
	for _, p := range cells[:count] {
		c := pickColor(rng, scratch, p)
		scratch.Set(p, bottle.Virus(c))
		out = append(out, placement{pos: p, color: c})
	}
	return out
}

// pickColor chooses a random color that keeps every virus line at p
// shorter than three. When every color would make a longer line it takes
// the one making the shortest.
func pickColor(rng *rand.Rand, b *bottle.Bottle, p bottle.Pos) bottle.Color {
	var ok []bottle.Color
	best, bestRun := bottle.Red, bottle.Rows+1
	for _, c := range bottle.Colors {
		run := max(b.RunLength(c, p, bottle.AxisRow), b.RunLength(c, p, bottle.AxisCol))
		if run <= maxVirusRun {
			ok = append(ok, c)
		}
		if run < bestRun {
			best, bestRun = c, run
		}
	}
	if len(ok) == 0 {
		return best
	}
	return ok[rng.Intn(len(ok))]
}

func randomColor(rng *rand.Rand) bottle.Color {
	return bottle.Colors[rng.Intn(len(bottle.Colors))]
}

// randomPair draws the colors of the next capsule.
func randomPair(rng *rand.Rand) [2]bottle.Color {
	return [2]bottle.Color{randomColor(rng), randomColor(rng)}
}
