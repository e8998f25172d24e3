package matrix

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/keyfall/keyfall/internal/game"
	"github.com/keyfall/keyfall/internal/graphics"
)

// Console renders the panel into the terminal with truecolor escape codes,
// one "██" cell per LED. It stands in for the hardware driver on a desk.
type Console struct {
	buffer strings.Builder
	pixels [Height][Width]graphics.Color
}

func NewConsole() (*Console, error) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return nil, fmt.Errorf("unable to get terminal size: %w", err)
	}
	if cols < Width*2 || rows < Height {
		return nil, fmt.Errorf("terminal too small for %vx%v panel (%vx%v)", Width, Height, cols, rows)
	}

	c := &Console{}
	fmt.Printf("%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return c, nil
}

// Close restores the terminal state.
func (c *Console) Close() {
	fmt.Printf("%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
}

func (c *Console) Clear() {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c.pixels[y][x] = graphics.Black
		}
	}
}

func (c *Console) SetPixel(x, y int, col graphics.Color) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	c.pixels[y][x] = col
}

func (c *Console) FillLane(lane game.Lane, col graphics.Color, brightness float64) {
	scaled := col.Scale(brightness)
	x0, x1 := LaneSpan(lane)
	for y := 0; y < Height; y++ {
		for x := x0; x < x1; x++ {
			c.pixels[y][x] = scaled
		}
	}
}

func (c *Console) Show() error {
	c.buffer.Reset()
	for y := 0; y < Height; y++ {
		c.buffer.WriteString("\033[")
		c.buffer.WriteString(strconv.Itoa(y + 1))
		c.buffer.WriteString(";1H")
		for x := 0; x < Width; x++ {
			p := c.pixels[y][x]
			c.buffer.WriteString("\033[38;2;")
			c.buffer.WriteString(strconv.Itoa(int(p.R)))
			c.buffer.WriteString(";")
			c.buffer.WriteString(strconv.Itoa(int(p.G)))
			c.buffer.WriteString(";")
			c.buffer.WriteString(strconv.Itoa(int(p.B)))
			c.buffer.WriteString("m██")
		}
		c.buffer.WriteString("\033[0m")
	}
	if _, err := os.Stdout.WriteString(c.buffer.String()); nil != err {
		return fmt.Errorf("unable to flush panel: %w", err)
	}
	return nil
}
