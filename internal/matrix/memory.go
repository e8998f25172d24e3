package matrix

import (
	"github.com/keyfall/keyfall/internal/game"
	"github.com/keyfall/keyfall/internal/graphics"
)

// Memory is an in-memory panel used by tests.
type Memory struct {
	Pixels    [Height][Width]graphics.Color
	ShowCount int
}

func (m *Memory) Clear() {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			m.Pixels[y][x] = graphics.Black
		}
	}
}

func (m *Memory) SetPixel(x, y int, c graphics.Color) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	m.Pixels[y][x] = c
}

func (m *Memory) FillLane(lane game.Lane, c graphics.Color, brightness float64) {
	scaled := c.Scale(brightness)
	x0, x1 := LaneSpan(lane)
	for y := 0; y < Height; y++ {
		for x := x0; x < x1; x++ {
			m.Pixels[y][x] = scaled
		}
	}
}

func (m *Memory) Show() error {
	m.ShowCount++
	return nil
}
