package bottle

import (
	"fmt"
	"strings"
)

// Color is the color of a virus or a medicine half.
type Color uint8

const (
	Red Color = iota
	Blue
	Yellow
)

// Colors lists every valid color in a stable order.
var Colors = [...]Color{Red, Blue, Yellow}

// String returns the color name. Panics on an invalid value.
func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	}
	panic(fmt.Sprintf("bottle: invalid color %d", uint8(c)))
}

// ParseColor converts a color name to a Color.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "red", "r":
		return Red, true
	case "blue", "b":
		return Blue, true
	case "yellow", "y":
		return Yellow, true
	default:
		return Red, false
	}
}

// Kind tags the variant a Block holds.
type Kind uint8

const (
	KindVirus       Kind = iota // static, removed only by matching
	KindMedicine                // settled, unlinked half
	KindCapsuleHalf             // half of a linked capsule, Link points at its partner
	KindVanishing               // scheduled for removal at the end of the vanish phase
)

// String returns the kind name. Panics on an invalid value.
func (k Kind) String() string {
	switch k {
	case KindVirus:
		return "virus"
	case KindMedicine:
		return "medicine"
	case KindCapsuleHalf:
		return "capsule-half"
	case KindVanishing:
		return "vanishing"
	}
	panic(fmt.Sprintf("bottle: invalid block kind %d", uint8(k)))
}

// Block is the content of an occupied cell.
// Link is meaningful only for KindCapsuleHalf.
type Block struct {
	Kind  Kind
	Color Color
	Link  Dir
}

// Virus returns a virus block.
func Virus(c Color) Block {
	return Block{Kind: KindVirus, Color: c}
}

// Medicine returns an unlinked medicine block.
func Medicine(c Color) Block {
	return Block{Kind: KindMedicine, Color: c}
}

// Half returns a capsule half linked toward its partner.
func Half(c Color, link Dir) Block {
	return Block{Kind: KindCapsuleHalf, Color: c, Link: link}
}

// Vanishing returns a block marked for removal.
func Vanishing(c Color) Block {
	return Block{Kind: KindVanishing, Color: c}
}

// String returns a compact description, e.g. "red virus" or "blue capsule-half>right".
func (b Block) String() string {
	if b.Kind == KindCapsuleHalf {
		return fmt.Sprintf("%s %s>%s", b.Color, b.Kind, b.Link)
	}
	return fmt.Sprintf("%s %s", b.Color, b.Kind)
}
