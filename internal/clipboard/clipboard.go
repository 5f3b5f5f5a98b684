// Package clipboard provides cross-platform clipboard support.
package clipboard

import (
	"errors"
	"fmt"
	"io"

	sysclip "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable is returned when no system clipboard tool is installed and
// no terminal fallback is configured.
var ErrUnavailable = errors.New("clipboard unavailable")

// Clipboard copies text to the system clipboard, falling back to an OSC 52
// escape sequence written to the terminal.
type Clipboard struct {
	write     func(string) error
	supported bool
	terminal  io.Writer
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithTerminal sets the writer that receives the OSC 52 fallback.
func WithTerminal(w io.Writer) Option {
	return func(c *Clipboard) {
		c.terminal = w
	}
}

// WithWriter replaces the system clipboard writer.
func WithWriter(write func(string) error) Option {
	return func(c *Clipboard) {
		c.write = write
		c.supported = write != nil
	}
}

// New returns a Clipboard backed by pbcopy, xclip, xsel, wl-copy or clip,
// whichever the platform provides.
func New(opts ...Option) *Clipboard {
	c := &Clipboard{
		write:     sysclip.WriteAll,
		supported: !sysclip.Unsupported,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Write copies text to the clipboard.
func (c *Clipboard) Write(text string) error {
	if c.supported {
		err := c.write(text)
		if err == nil {
			return nil
		}
		if c.terminal == nil {
			return fmt.Errorf("writing clipboard: %w", err)
		}
	}
	if c.terminal == nil {
		return ErrUnavailable
	}
	if _, err := osc52.New(text).WriteTo(c.terminal); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}
	return nil
}

// Available reports whether Write can succeed without the terminal fallback.
func (c *Clipboard) Available() bool {
	return c.supported
}
