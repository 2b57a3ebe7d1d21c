package core

import "fmt"

// Key is a logical key, abstracted from the physical key that produced it.
type Key int

const (
	KeyLeft        Key = iota // Left arrow
	KeyRight                  // Right arrow
	KeyDown                   // Down arrow, soft drop
	KeyRotateLeft             // d
	KeyRotateRight            // f
	KeyConfirm                // Enter
)

// String returns the logical key name. Panics on an invalid value.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyDown:
		return "down"
	case KeyRotateLeft:
		return "d"
	case KeyRotateRight:
		return "f"
	case KeyConfirm:
		return "enter"
	}
	panic(fmt.Sprintf("core: invalid key %d", int(k)))
}

// InputFrame is the set of logical keys pressed since the previous tick.
// Presses between two ticks coalesce; there is no queueing across ticks.
type InputFrame struct {
	Keys map[Key]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Keys: make(map[Key]bool)}
}

// Press marks a key as pressed for this frame.
func (f *InputFrame) Press(k Key) {
	if f.Keys == nil {
		f.Keys = make(map[Key]bool)
	}
	f.Keys[k] = true
}

// Has returns true if the key was pressed this frame.
func (f InputFrame) Has(k Key) bool {
	return f.Keys[k]
}

// Empty reports whether no key was pressed.
func (f InputFrame) Empty() bool {
	return len(f.Keys) == 0
}

// Clear releases every key for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Keys {
		delete(f.Keys, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Keys {
		clone.Keys[k] = v
	}
	return clone
}
