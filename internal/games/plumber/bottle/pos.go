// Package bottle implements the playfield of the capsule puzzle: the grid of
// viruses and medicine, run detection, gravity and the falling capsule rules.
// It is UI-agnostic and deterministic; the state machine in the parent
// package is the only owner of a Bottle during play.
package bottle

import "fmt"

// Playfield geometry. Row 0 is a buffer row above the visible field that is
// only reachable by the upper half of a vertical capsule.
const (
	Rows = 16
	Cols = 8

	BufferRow = 0
)

// Pos is a cell address in the bottle. Rows grow downward.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Step returns the neighbouring position in the given direction.
func (p Pos) Step(d Dir) Pos {
	dr, dc := d.Delta()
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// Dir is one of the four grid directions.
type Dir uint8

const (
	DirLeft Dir = iota
	DirRight
	DirUp
	DirDown
)

// String returns the direction name. Panics on an invalid value.
func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	panic(fmt.Sprintf("bottle: invalid direction %d", uint8(d)))
}

// Delta returns the (row, col) offset of one step in this direction.
func (d Dir) Delta() (dr, dc int) {
	switch d {
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	}
	panic(fmt.Sprintf("bottle: invalid direction %d", uint8(d)))
}

// Reverse returns the opposite direction.
func (d Dir) Reverse() Dir {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	}
	panic(fmt.Sprintf("bottle: invalid direction %d", uint8(d)))
}

// Rotation is a quarter turn of a capsule around its anchor half.
type Rotation uint8

const (
	RotateLeft  Rotation = iota // counter-clockwise on screen
	RotateRight                 // clockwise on screen
)

// String returns the rotation name. Panics on an invalid value.
func (r Rotation) String() string {
	switch r {
	case RotateLeft:
		return "rotate-left"
	case RotateRight:
		return "rotate-right"
	}
	panic(fmt.Sprintf("bottle: invalid rotation %d", uint8(r)))
}

// Apply maps a link direction through one quarter turn.
// Clockwise cycle: right -> down -> left -> up -> right.
func (r Rotation) Apply(d Dir) Dir {
	switch r {
	case RotateRight:
		switch d {
		case DirRight:
			return DirDown
		case DirDown:
			return DirLeft
		case DirLeft:
			return DirUp
		case DirUp:
			return DirRight
		}
	case RotateLeft:
		switch d {
		case DirRight:
			return DirUp
		case DirUp:
			return DirLeft
		case DirLeft:
			return DirDown
		case DirDown:
			return DirRight
		}
	default:
		panic(fmt.Sprintf("bottle: invalid rotation %d", uint8(r)))
	}
	panic(fmt.Sprintf("bottle: invalid direction %d", uint8(d)))
}

// Axis selects the line a run is scanned along.
type Axis uint8

const (
	AxisRow Axis = iota // row fixed, scan across columns
	AxisCol             // column fixed, scan across rows
)

// forward returns the direction that walks the axis toward higher indices.
func (a Axis) forward() Dir {
	switch a {
	case AxisRow:
		return DirRight
	case AxisCol:
		return DirDown
	}
	panic(fmt.Sprintf("bottle: invalid axis %d", uint8(a)))
}
