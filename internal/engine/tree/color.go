package tree

// Color is a display color name used for placeholder glyphs.
// It is purely cosmetic and never read for logic.
type Color string

// Colors is the fixed palette assigned to container components.
var Colors = [...]Color{
	"red",
	"blue",
	"green",
	"orange",
	"purple",
	"teal",
	"magenta",
	"olive",
	"brown",
	"violet",
	"cyan",
}

// ColorFunc maps a construction sequence number to a color.
// The expression passes its own counter, so the function itself is stateless.
type ColorFunc func(seq int) Color

// CycleColors walks the palette in order, wrapping around after the last color.
func CycleColors(seq int) Color {
	if seq < 0 {
		seq = -seq
	}
	return Colors[seq%len(Colors)]
}

// SingleColor returns a ColorFunc that always yields c.
func SingleColor(c Color) ColorFunc {
	return func(int) Color { return c }
}

// Cycle returns a ColorFunc that walks colors in order. With no colors it
// falls back to CycleColors.
func Cycle(colors ...Color) ColorFunc {
	if len(colors) == 0 {
		return CycleColors
	}
	cs := append([]Color(nil), colors...)
	return func(seq int) Color {
		if seq < 0 {
			seq = -seq
		}
		return cs[seq%len(cs)]
	}
}
