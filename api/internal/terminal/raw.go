package terminal

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal reads masked lines from a (possibly) interactive input.
type Terminal struct {
	in   *os.File
	out  io.Writer
	keys *StreamKeys
	Mask rune
}

func New(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:   in,
		out:  out,
		keys: NewStreamKeys(bufio.NewReader(in)),
		Mask: DefaultMask,
	}
}

func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// ReadMasked switches the input to raw mode (no echo, no line buffering) for
// the duration of one line and always restores the previous state. When the
// input is not a terminal the line is read as-is.
func (t *Terminal) ReadMasked(prompt string) (string, error) {
	if !t.IsTerminal() {
		return ReadMasked(t.keys, t.out, prompt, t.Mask)
	}
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return "", err
	}
	defer term.Restore(fd, state)
	return ReadMasked(t.keys, crlfWriter{w: t.out}, prompt, t.Mask)
}
