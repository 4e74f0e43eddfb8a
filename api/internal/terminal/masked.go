package terminal

import (
	"io"
	"strings"
)

// DefaultMask is echoed once per buffered character.
const DefaultMask = '*'

// eraseOne moves back one cell, blanks it and moves back again.
const eraseOne = "\b \b"

// ReadMasked writes prompt to out and reads a line from keys until Enter.
// Every accepted rune is echoed as mask; Backspace removes the last rune
// and erases one mask cell, and is a no-op on an empty buffer.
func ReadMasked(keys KeyReader, out io.Writer, prompt string, mask rune) (string, error) {
	if _, err := io.WriteString(out, prompt); err != nil {
		return "", err
	}
	maskStr := string(mask)
	var buf []rune
	for {
		k, err := keys.ReadKey()
		if err != nil {
			return string(buf), err
		}
		switch k.Kind {
		case KeyEnter:
			_, err := io.WriteString(out, "\n")
			return string(buf), err
		case KeyBackspace:
			if len(buf) == 0 {
				continue
			}
			buf = buf[:len(buf)-1]
			if _, err := io.WriteString(out, eraseOne); err != nil {
				return string(buf), err
			}
		case KeyInterrupt:
			_, _ = io.WriteString(out, "\n")
			return "", ErrInterrupted
		case KeyRune:
			buf = append(buf, k.Rune)
			if _, err := io.WriteString(out, maskStr); err != nil {
				return string(buf), err
			}
		}
	}
}

// crlfWriter translates "\n" to "\r\n" while the terminal is in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	s := strings.ReplaceAll(string(p), "\n", "\r\n")
	if _, err := io.WriteString(c.w, s); err != nil {
		return 0, err
	}
	return len(p), nil
}
