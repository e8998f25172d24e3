// Package font is a tiny 3x5 bitmap font for the LED matrices. Glyph height
// is fixed at 5 rows, width at 3 columns plus 1 column of spacing.
package font

import (
	"strings"

	"github.com/keyfall/keyfall/internal/graphics"
)

const (
	GlyphWidth  = 3
	GlyphHeight = 5
	// Advance is the horizontal step between glyph origins.
	Advance = GlyphWidth + 1
)

var glyphs = map[rune][GlyphHeight]string{
	'A': {"010", "101", "111", "101", "101"},
	'B': {"110", "101", "110", "101", "110"},
	'C': {"011", "100", "100", "100", "011"},
	'D': {"110", "101", "101", "101", "110"},
	'E': {"111", "100", "110", "100", "111"},
	'F': {"111", "100", "110", "100", "100"},
	'G': {"011", "100", "101", "101", "011"},
	'H': {"101", "101", "111", "101", "101"},
	'I': {"111", "010", "010", "010", "111"},
	'J': {"011", "001", "001", "101", "010"},
	'K': {"101", "101", "110", "101", "101"},
	'L': {"100", "100", "100", "100", "111"},
	'M': {"101", "111", "111", "101", "101"},
	'N': {"101", "111", "111", "111", "101"},
	'O': {"010", "101", "101", "101", "010"},
	'P': {"110", "101", "110", "100", "100"},
	'Q': {"111", "101", "101", "111", "001"},
	'R': {"111", "101", "111", "110", "101"},
	'S': {"011", "100", "010", "001", "110"},
	'T': {"111", "010", "010", "010", "010"},
	'U': {"101", "101", "101", "101", "111"},
	'V': {"101", "101", "101", "101", "010"},
	'W': {"101", "101", "111", "111", "101"},
	'X': {"101", "101", "010", "101", "101"},
	'Y': {"101", "101", "111", "010", "010"},
	'Z': {"111", "001", "010", "100", "111"},
	' ': {"000", "000", "000", "000", "000"},
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "010", "010", "010"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'/': {"001", "001", "010", "100", "100"},
	'!': {"010", "010", "010", "000", "010"},
	'-': {"000", "000", "111", "000", "000"},
	':': {"000", "010", "000", "010", "000"},
}

// Width is the pixel width of the rendered text, without trailing spacing.
func Width(text string) int {
	if len(text) == 0 {
		return 0
	}
	return len([]rune(text))*Advance - 1
}

// SetPixel is the single pixel sink the drawing helpers write through.
type SetPixel func(x, y int, c graphics.Color)

// Draw renders text with its top-left glyph corner at (x0, y0). Unknown
// runes render as blanks.
func Draw(text string, x0, y0 int, c graphics.Color, set SetPixel) {
	x := x0
	for _, r := range strings.ToUpper(text) {
		bitmap, ok := glyphs[r]
		if ok {
			for dy, row := range bitmap {
				for dx := 0; dx < GlyphWidth; dx++ {
					if row[dx] == '1' {
						set(x+dx, y0+dy, c)
					}
				}
			}
		}
		x += Advance
	}
}

// DrawCentered renders text horizontally centered in a region width pixels
// wide, top row at y0.
func DrawCentered(text string, width, y0 int, c graphics.Color, set SetPixel) {
	x0 := (width - Width(text)) / 2
	if x0 < 0 {
		x0 = 0
	}
	Draw(text, x0, y0, c, set)
}
