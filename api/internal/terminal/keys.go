// Package terminal reads secrets from an interactive terminal one key press
// at a time, echoing a mask glyph instead of the typed characters.
package terminal

import (
	"bufio"
	"errors"
	"io"
	"unicode"
)

// ErrInterrupted is returned when the user presses Ctrl-C while a line is
// being read in raw mode.
var ErrInterrupted = errors.New("interrupted")

type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyBackspace
	KeyInterrupt
	// KeyIgnored covers control bytes and escape sequences (arrows, F-keys).
	KeyIgnored
)

type Key struct {
	Kind KeyKind
	Rune rune
}

// KeyReader yields one key press per call.
type KeyReader interface {
	ReadKey() (Key, error)
}

const (
	keyCtrlC     = 0x03
	keyBackspace = 0x08
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

// StreamKeys decodes key presses from a raw byte stream.
type StreamKeys struct {
	r *bufio.Reader
}

func NewStreamKeys(r io.Reader) *StreamKeys {
	if br, ok := r.(*bufio.Reader); ok {
		return &StreamKeys{r: br}
	}
	return &StreamKeys{r: bufio.NewReader(r)}
}

func (s *StreamKeys) ReadKey() (Key, error) {
	c, _, err := s.r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	switch {
	case c == '\r' || c == '\n':
		if c == '\r' && s.r.Buffered() > 0 {
			if b, _ := s.r.Peek(1); len(b) == 1 && b[0] == '\n' {
				_, _ = s.r.ReadByte()
			}
		}
		return Key{Kind: KeyEnter}, nil
	case c == keyDelete || c == keyBackspace:
		return Key{Kind: KeyBackspace}, nil
	case c == keyCtrlC:
		return Key{Kind: KeyInterrupt}, nil
	case c == keyEscape:
		s.skipEscape()
		return Key{Kind: KeyIgnored}, nil
	case unicode.IsPrint(c):
		return Key{Kind: KeyRune, Rune: c}, nil
	default:
		return Key{Kind: KeyIgnored, Rune: c}, nil
	}
}

// skipEscape consumes the rest of a CSI ("ESC [ params final") or SS3
// ("ESC O x") sequence. A bare ESC followed by anything else leaves that
// byte for the next ReadKey.
func (s *StreamKeys) skipEscape() {
	next, err := s.r.ReadByte()
	if err != nil {
		return
	}
	switch next {
	case '[':
		for {
			b, err := s.r.ReadByte()
			if err != nil || (b >= 0x40 && b <= 0x7e) {
				return
			}
		}
	case 'O':
		_, _ = s.r.ReadByte()
	default:
		_ = s.r.UnreadByte()
	}
}
