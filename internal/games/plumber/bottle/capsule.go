package bottle

// Capsule is the falling two-cell piece. Pos is the anchor half, Dir points
// from the anchor to the second half. Capsules are values: every move or
// rotation returns a new one.
type Capsule struct {
	Color1 Color
	Color2 Color
	Pos    Pos
	Dir    Dir
}

// Second returns the position of the second half.
func (c Capsule) Second() Pos {
	return c.Pos.Step(c.Dir)
}

// Cells returns the absolute positions of both halves, anchor first.
func (c Capsule) Cells() [2]Pos {
	return [2]Pos{c.Pos, c.Second()}
}

// Move returns the capsule shifted one cell in the given direction.
func Move(d Dir, c Capsule) Capsule {
	c.Pos = c.Pos.Step(d)
	return c
}

// Rotate returns the capsule turned a quarter around its anchor.
func Rotate(r Rotation, c Capsule) Capsule {
	c.Dir = r.Apply(c.Dir)
	return c
}

// OverlapsOrOutOfRange reports whether either half of the capsule lies
// outside the bottle or on an occupied cell.
func OverlapsOrOutOfRange(c Capsule, b *Bottle) bool {
	for _, p := range c.Cells() {
		if !InRange(p) || !b.IsEmpty(p) {
			return true
		}
	}
	return false
}

// TryMove moves the capsule if the new placement is free.
// Returns the original capsule and false when the move is blocked.
func TryMove(d Dir, c Capsule, b *Bottle) (Capsule, bool) {
	moved := Move(d, c)
	if OverlapsOrOutOfRange(moved, b) {
		return c, false
	}
	return moved, true
}

// TryRotate rotates the capsule, kicking it back one cell away from the new
// link direction when the plain rotation is blocked. Only one kick is tried;
// if that placement is blocked too the rotation is rejected and the original
// capsule is returned with false.
func TryRotate(r Rotation, c Capsule, b *Bottle) (Capsule, bool) {
	rotated := Rotate(r, c)
	if !OverlapsOrOutOfRange(rotated, b) {
		return rotated, true
	}

	kicked := Move(rotated.Dir.Reverse(), rotated)
	if !OverlapsOrOutOfRange(kicked, b) {
		return kicked, true
	}
	return c, false
}
