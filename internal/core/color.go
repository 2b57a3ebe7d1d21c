package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorYellow
	ColorBrightRed
	ColorBrightBlue
	ColorBrightYellow
	ColorWhite
	ColorGray
	ColorCyan
	ColorGreen
	ColorMagenta
)
