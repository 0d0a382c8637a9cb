package canvas

// Color is a 24-bit RGB color, or the unset "no color" value standing in
// for spec.md §4.6's `a == 1` pass-through case: no escape sequence should
// be emitted and terminal defaults apply.
type Color struct {
	R, G, B uint8
	Set     bool
}

// RGB builds a set Color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, Set: true} }

// Unset is the zero value; included for readability at call sites.
var Unset = Color{}
