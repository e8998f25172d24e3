package graphics

// Color is an 8-bit RGB triple as sent to the LED strip.
type Color struct {
	R, G, B uint8
}

// Scale returns the color dimmed by factor, which is clamped to [0, 1].
func (c Color) Scale(factor float64) Color {
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}
	return Color{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)
