package graphics

import "testing"

func TestScale(t *testing.T) {
	c := Color{R: 100, G: 200, B: 0}

	if got := c.Scale(0.5); got != (Color{R: 50, G: 100, B: 0}) {
		t.Log("half", got)
		t.Fail()
	}
	if got := c.Scale(0); got != Black {
		t.Log("zero", got)
		t.Fail()
	}
	if got := c.Scale(2); got != c {
		t.Log("clamped", got)
		t.Fail()
	}
	if got := c.Scale(-1); got != Black {
		t.Log("negative", got)
		t.Fail()
	}
}
