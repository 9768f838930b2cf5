package led

import (
	"fmt"
	"io"
	"sync"
)

// Console renders the indicator as a truecolor swatch on a terminal.
// Used by the simulate command so blink sequences are visible without
// hardware. Each Set rewrites the same line in place.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a console output writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Set draws the color as an ANSI background swatch followed by its hex value.
func (c *Console) Set(color RGB) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.w, "\r\x1b[48;2;%d;%d;%dm      \x1b[0m %s ",
		color.R, color.G, color.B, color.String())
	return err
}

// Close terminates the swatch line.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintln(c.w)
	return err
}
