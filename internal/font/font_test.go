package font

import (
	"testing"

	"github.com/keyfall/keyfall/internal/graphics"
)

func TestWidth(t *testing.T) {
	widths := map[string]int{
		"":     0,
		"A":    3,
		"GO":   7,
		"12/6": 15,
	}
	for text, expected := range widths {
		if got := Width(text); got != expected {
			t.Log(text, "width", got, "expected", expected)
			t.Fail()
		}
	}
}

func TestDrawCentered(t *testing.T) {
	lit := map[[2]int]bool{}
	DrawCentered("I", 32, 5, graphics.White, func(x, y int, c graphics.Color) {
		lit[[2]int{x, y}] = true
	})

	if len(lit) == 0 {
		t.Fatal("nothing drawn")
	}
	for px := range lit {
		if px[0] < 14 || px[0] > 16 || px[1] < 5 || px[1] > 9 {
			t.Log("pixel outside the centered glyph box:", px)
			t.Fail()
		}
	}
}

func TestDrawSkipsUnknownRunes(t *testing.T) {
	count := 0
	Draw("#", 0, 0, graphics.White, func(x, y int, c graphics.Color) { count++ })
	if count != 0 {
		t.Log("unknown rune drew", count, "pixels")
		t.Fail()
	}
}
