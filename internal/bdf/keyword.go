package bdf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLine = 1 << 20

// KeyArg reports whether line starts with key followed by a blank or the end
// of the line, and returns the rest of the line with leading blanks removed.
// "FONT" does not match "FONT_ASCENT 8".
func KeyArg(line, key string) (string, bool) {
	if !strings.HasPrefix(line, key) {
		return "", false
	}
	rest := line[len(key):]
	if rest != "" && rest[0] > ' ' {
		return "", false
	}
	return strings.TrimLeftFunc(rest, func(r rune) bool { return r <= ' ' }), true
}

// ints parses whitespace separated integers from arg into dst. Missing or
// malformed values are left at zero and the first one is reported.
func ints(arg string, dst ...*int) error {
	f := strings.Fields(arg)
	var bad error
	for i, p := range dst {
		*p = 0
		if i >= len(f) {
			if bad == nil {
				bad = fmt.Errorf("%w: missing value %d", ErrMalformedDirective, i+1)
			}
			continue
		}
		v, err := strconv.Atoi(f[i])
		if err != nil {
			if bad == nil {
				bad = fmt.Errorf("%w: %q", ErrMalformedDirective, f[i])
			}
			continue
		}
		*p = v
	}
	return bad
}

type lineReader struct {
	s *bufio.Scanner
	n int
}

func newLineReader(r io.Reader) *lineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLine)
	return &lineReader{s: s}
}

func (lr *lineReader) scan() bool {
	if !lr.s.Scan() {
		return false
	}
	lr.n++
	return true
}

func (lr *lineReader) text() string { return trimControl(lr.s.Text()) }

func (lr *lineReader) err() error { return lr.s.Err() }
