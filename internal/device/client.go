package device

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"go.bug.st/serial"
)

// LineBuffer splits a byte stream into complete lines, carrying a partial
// trailing line over to the next feed. Empty lines are dropped.
type LineBuffer struct {
	rest string
}

func (b *LineBuffer) Feed(data []byte) []string {
	b.rest += string(data)
	lines := []string{}
	for {
		i := strings.IndexByte(b.rest, '\n')
		if i < 0 {
			return lines
		}
		line := strings.TrimSpace(b.rest[:i])
		b.rest = b.rest[i+1:]
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
}

// Client is the host side of the serial link. Sends and polls never block
// the caller and never surface I/O errors beyond a log line: the engine's
// timing must not depend on the display being attached.
type Client struct {
	port io.ReadWriteCloser
	rx   LineBuffer
	buf  [256]byte
}

// Open connects to the display device. The short read timeout makes Poll
// effectively non-blocking.
func Open(device string, baud int) (*Client, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if nil != err {
		return nil, fmt.Errorf("unable to open %v: %w", device, err)
	}
	if err := port.SetReadTimeout(time.Millisecond); nil != err {
		port.Close()
		return nil, fmt.Errorf("unable to set read timeout on %v: %w", device, err)
	}
	log.Printf("device: opened %v @ %v", device, baud)
	return NewClient(port), nil
}

// NewClient wraps an already-open transport. Tests pass an in-memory pipe.
func NewClient(port io.ReadWriteCloser) *Client {
	return &Client{port: port}
}

// Send writes one command line. Failures degrade to a logged no-op.
func (c *Client) Send(cmd Command) {
	if nil == c || nil == c.port {
		return
	}
	line := Format(cmd)
	if line == "" {
		return
	}
	if _, err := c.port.Write([]byte(line + "\n")); nil != err {
		log.Println("device: write failed:", err)
		return
	}
	log.Println("device >>", line)
}

// Poll drains whatever bytes are waiting and returns the complete commands
// among them. Partial lines stay buffered; unparseable lines are logged and
// dropped with state unchanged.
func (c *Client) Poll() []Command {
	if nil == c || nil == c.port {
		return nil
	}
	cmds := []Command{}
	for {
		n, err := c.port.Read(c.buf[:])
		if nil != err {
			if err != io.EOF {
				log.Println("device: read failed:", err)
			}
			break
		}
		if n == 0 {
			break
		}
		for _, line := range c.rx.Feed(c.buf[:n]) {
			cmd, err := ParseLine(line)
			if nil != err {
				log.Println("device: ignoring line:", err)
				continue
			}
			log.Println("device <<", line)
			cmds = append(cmds, cmd)
		}
		if n < len(c.buf) {
			break
		}
	}
	return cmds
}

func (c *Client) Close() {
	if nil == c || nil == c.port {
		return
	}
	if err := c.port.Close(); nil != err {
		log.Println("device: close failed:", err)
	}
}
