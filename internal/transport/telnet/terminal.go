package telnet

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
)

// terminal wraps one client connection with line-oriented prompt/read
// helpers. Read errors (including the zero-byte read of a disconnect)
// propagate up and unwind the whole session; parse failures come back as
// ErrValidation so menus can report them and carry on.
type terminal struct {
	rw io.ReadWriter
	r  *bufio.Reader
}

func newTerminal(rw io.ReadWriter) *terminal {
	return &terminal{rw: rw, r: bufio.NewReader(rw)}
}

func (t *terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.rw, format, args...)
}

func (t *terminal) prompt(msg string) (string, error) {
	if _, err := io.WriteString(t.rw, msg); err != nil {
		return "", err
	}
	line, err := t.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *terminal) promptInt32(msg string) (int32, error) {
	line, err := t.prompt(msg)
	if err != nil {
		return 0, err
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
	if perr != nil {
		return 0, fmt.Errorf("not a number %q: %w", line, apperrors.ErrValidation)
	}
	return int32(n), nil
}

func (t *terminal) promptFloat32(msg string) (float32, error) {
	line, err := t.prompt(msg)
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(strings.TrimSpace(line), 32)
	if perr != nil {
		return 0, fmt.Errorf("not an amount %q: %w", line, apperrors.ErrValidation)
	}
	return float32(f), nil
}
