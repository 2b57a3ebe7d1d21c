package bottle

import (
	"fmt"
	"strings"
)

// MinRun is the number of contiguous same-colored cells that vanish.
const MinRun = 4

// The arena includes the buffer row 0 and an unused column 0 so that
// positions index it directly.
const (
	arenaRows = Rows + 1
	arenaCols = Cols + 1
)

type cell struct {
	block  Block
	filled bool
}

// Bottle is the playfield grid. Cells are stored in row-major order in a
// flat arena: index = row*arenaCols + col.
type Bottle struct {
	cells [arenaRows * arenaCols]cell
}

// New creates an empty bottle.
func New() *Bottle {
	return &Bottle{}
}

// index converts a position to an arena index.
// Positions outside the arena are a programming error.
func index(p Pos) int {
	if p.Row < 0 || p.Row >= arenaRows || p.Col < 0 || p.Col >= arenaCols {
		panic(fmt.Sprintf("bottle: position %v outside the arena", p))
	}
	return p.Row*arenaCols + p.Col
}

// InRange reports whether a capsule half may occupy p: rows 0..16, cols 1..8.
func InRange(p Pos) bool {
	return p.Row >= BufferRow && p.Row <= Rows && p.Col >= 1 && p.Col <= Cols
}

// Playable reports whether p is inside the visible 16x8 field.
func Playable(p Pos) bool {
	return p.Row >= 1 && p.Row <= Rows && p.Col >= 1 && p.Col <= Cols
}

// Get returns the block at p and whether the cell is occupied.
func (b *Bottle) Get(p Pos) (Block, bool) {
	c := b.cells[index(p)]
	return c.block, c.filled
}

// Set places a block at p, overwriting whatever was there.
func (b *Bottle) Set(p Pos, blk Block) {
	b.cells[index(p)] = cell{block: blk, filled: true}
}

// Clear empties the cell at p.
func (b *Bottle) Clear(p Pos) {
	b.cells[index(p)] = cell{}
}

// IsEmpty reports whether the cell at p is unoccupied.
func (b *Bottle) IsEmpty(p Pos) bool {
	return !b.cells[index(p)].filled
}

// Clone returns a deep copy of the bottle.
func (b *Bottle) Clone() *Bottle {
	c := *b
	return &c
}

// Equal returns true if both bottles hold the same blocks.
func (b *Bottle) Equal(other *Bottle) bool {
	return b.cells == other.cells
}

// Each calls fn for every occupied in-range cell, top to bottom, left to right.
func (b *Bottle) Each(fn func(Pos, Block)) {
	for row := BufferRow; row <= Rows; row++ {
		for col := 1; col <= Cols; col++ {
			p := P(row, col)
			if blk, ok := b.Get(p); ok {
				fn(p, blk)
			}
		}
	}
}

// CountKind returns the number of blocks of the given kind.
func (b *Bottle) CountKind(k Kind) int {
	n := 0
	b.Each(func(_ Pos, blk Block) {
		if blk.Kind == k {
			n++
		}
	})
	return n
}

// CountViruses returns the number of viruses left in the bottle.
func (b *Bottle) CountViruses() int {
	return b.CountKind(KindVirus)
}

// hasColor reports whether p is in range and holds a block of color c.
func (b *Bottle) hasColor(p Pos, c Color) bool {
	if !InRange(p) {
		return false
	}
	blk, ok := b.Get(p)
	return ok && blk.Color == c
}

// line collects p plus every contiguous cell of color c along the axis.
// The seed itself is not inspected.
func (b *Bottle) line(c Color, p Pos, a Axis) []Pos {
	fwd := a.forward()
	back := fwd.Reverse()

	run := []Pos{p}
	for q := p.Step(back); b.hasColor(q, c); q = q.Step(back) {
		run = append(run, q)
	}
	for q := p.Step(fwd); b.hasColor(q, c); q = q.Step(fwd) {
		run = append(run, q)
	}
	return run
}

// RunLength returns the length of the run that a block of color c at p
// would be part of along the axis, counting p itself.
func (b *Bottle) RunLength(c Color, p Pos, a Axis) int {
	return len(b.line(c, p, a))
}

// ScanRun returns the contiguous run of color c through p along the axis,
// including p, when it is at least MinRun long. Any block kind counts toward
// a run. Returns nil for shorter runs or when p itself does not hold c.
func (b *Bottle) ScanRun(c Color, p Pos, a Axis) []Pos {
	if !b.hasColor(p, c) {
		return nil
	}
	run := b.line(c, p, a)
	if len(run) < MinRun {
		return nil
	}
	return run
}

// Matches returns the union of the row and column runs through every seed,
// each matched position exactly once. Seeds scan with their own color.
func (b *Bottle) Matches(seeds ...Pos) []Pos {
	seen := make(map[Pos]bool)
	var out []Pos
	for _, s := range seeds {
		blk, ok := b.Get(s)
		if !ok {
			continue
		}
		for _, a := range [...]Axis{AxisRow, AxisCol} {
			for _, p := range b.ScanRun(blk.Color, s, a) {
				if !seen[p] {
					seen[p] = true
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// Partner returns the position of the other half linked to the capsule half
// at p. The link must be mutual; a one-sided link reports false.
func (b *Bottle) Partner(p Pos) (Pos, bool) {
	blk, ok := b.Get(p)
	if !ok || blk.Kind != KindCapsuleHalf {
		return Pos{}, false
	}
	q := p.Step(blk.Link)
	if !InRange(q) {
		return Pos{}, false
	}
	other, ok := b.Get(q)
	if !ok || other.Kind != KindCapsuleHalf || other.Link != blk.Link.Reverse() {
		return Pos{}, false
	}
	return q, true
}

// Unlink breaks the capsule at p into two medicine blocks of the same
// colors. Cells that are not capsule halves are left untouched.
func (b *Bottle) Unlink(p Pos) {
	blk, ok := b.Get(p)
	if !ok || blk.Kind != KindCapsuleHalf {
		return
	}
	if q, linked := b.Partner(p); linked {
		other, _ := b.Get(q)
		b.Set(q, Medicine(other.Color))
	}
	b.Set(p, Medicine(blk.Color))
}

// Freeze writes a landed capsule into the grid as two linked halves.
func (b *Bottle) Freeze(c Capsule) {
	b.Set(c.Pos, Half(c.Color1, c.Dir))
	b.Set(c.Second(), Half(c.Color2, c.Dir.Reverse()))
}

// MarkVanishing unlinks every matched capsule half from its partner and then
// marks each matched cell as vanishing. Partners that are themselves matched
// end up vanishing too; unmatched partners are left as medicine.
func (b *Bottle) MarkVanishing(ps []Pos) {
	for _, p := range ps {
		b.Unlink(p)
	}
	for _, p := range ps {
		if blk, ok := b.Get(p); ok {
			b.Set(p, Vanishing(blk.Color))
		}
	}
}

// RemoveVanishing empties every vanishing cell and returns how many were removed.
func (b *Bottle) RemoveVanishing() int {
	removed := 0
	b.Each(func(p Pos, blk Block) {
		if blk.Kind == KindVanishing {
			b.Clear(p)
			removed++
		}
	})
	return removed
}

// freeBelow reports whether the cell under p exists and is empty.
func (b *Bottle) freeBelow(p Pos) bool {
	below := p.Step(DirDown)
	if below.Row > Rows {
		return false
	}
	return b.IsEmpty(below)
}

// IsFloating reports whether the block at p should drop one row: a medicine
// with an empty cell below it, or a linked capsule whose halves both have
// nothing below them other than each other. Viruses and vanishing blocks
// never float.
func (b *Bottle) IsFloating(p Pos) bool {
	blk, ok := b.Get(p)
	if !ok {
		return false
	}

	switch blk.Kind {
	case KindMedicine:
		return b.freeBelow(p)
	case KindCapsuleHalf:
		q, linked := b.Partner(p)
		if !linked {
			return b.freeBelow(p)
		}
		return (p.Step(DirDown) == q || b.freeBelow(p)) &&
			(q.Step(DirDown) == p || b.freeBelow(q))
	default:
		return false
	}
}

// CollectFloating returns every floating position ordered bottom-up.
// The buffer row is included so a half stranded there settles into the field.
func (b *Bottle) CollectFloating() []Pos {
	var out []Pos
	for row := Rows; row >= BufferRow; row-- {
		for col := 1; col <= Cols; col++ {
			p := P(row, col)
			if b.IsFloating(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// ApplyGravity drops every currently floating block by exactly one row.
// Floating status is decided once, before anything moves, so a stack of
// loose blocks falls one row per call rather than all the way at once.
// Returns the new positions of the moved blocks.
func (b *Bottle) ApplyGravity() []Pos {
	floating := b.CollectFloating()
	moved := make([]Pos, 0, len(floating))
	// Bottom-up order: the lower half of a vertical capsule vacates its
	// cell before the upper half moves into it.
	for _, p := range floating {
		blk, _ := b.Get(p)
		dst := p.Step(DirDown)
		b.Clear(p)
		b.Set(dst, blk)
		moved = append(moved, dst)
	}
	return moved
}

// Settle applies gravity until nothing floats and returns the number of steps.
func (b *Bottle) Settle() int {
	steps := 0
	for len(b.ApplyGravity()) > 0 {
		steps++
	}
	return steps
}

// Parse builds a bottle from text rows aligned to the bottom of the field:
// the last row is row 16. Each row is up to 8 characters; '.' or ' ' is
// empty, upper-case R/B/Y is a virus and lower-case r/b/y is medicine.
func Parse(rows ...string) (*Bottle, error) {
	if len(rows) > Rows {
		return nil, fmt.Errorf("bottle: %d rows exceed the field height %d", len(rows), Rows)
	}

	b := New()
	top := Rows - len(rows) + 1
	for i, line := range rows {
		if len(line) > Cols {
			return nil, fmt.Errorf("bottle: row %q is wider than %d", line, Cols)
		}
		for j, ch := range line {
			p := P(top+i, j+1)
			switch ch {
			case '.', ' ':
			case 'R', 'B', 'Y':
				c, _ := ParseColor(string(ch))
				b.Set(p, Virus(c))
			case 'r', 'b', 'y':
				c, _ := ParseColor(string(ch))
				b.Set(p, Medicine(c))
			default:
				return nil, fmt.Errorf("bottle: unexpected %q at %v", ch, p)
			}
		}
	}
	return b, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(rows ...string) *Bottle {
	b, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

// String renders the playable field in the Parse format. Capsule halves are
// shown like medicine and vanishing blocks as '*'.
func (b *Bottle) String() string {
	var sb strings.Builder
	for row := 1; row <= Rows; row++ {
		if row > 1 {
			sb.WriteByte('\n')
		}
		for col := 1; col <= Cols; col++ {
			blk, ok := b.Get(P(row, col))
			if !ok {
				sb.WriteByte('.')
				continue
			}
			sb.WriteRune(blockRune(blk))
		}
	}
	return sb.String()
}

func blockRune(blk Block) rune {
	letter := rune(blk.Color.String()[0])
	switch blk.Kind {
	case KindVirus:
		return letter - 'a' + 'A'
	case KindVanishing:
		return '*'
	default:
		return letter
	}
}
