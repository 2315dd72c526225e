// Package emit formats decoded glyphs as C array literal bodies.
package emit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mhbvr/bdfe/internal/bdf"
)

// HeaderInfo is echoed in the header comment block.
type HeaderInfo struct {
	File     string
	Ascender uint
	Min, Max uint32
}

// Sink receives decoded glyphs in source order. The glyph bitmap is only
// valid for the duration of the call.
type Sink interface {
	Header(m *bdf.Metrics, h HeaderInfo) error
	Glyph(m *bdf.Metrics, g *bdf.Glyph) error
	Close() error
}

// Discard drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Header(*bdf.Metrics, HeaderInfo) error { return nil }
func (discard) Glyph(*bdf.Metrics, *bdf.Glyph) error  { return nil }
func (discard) Close() error                          { return nil }

// Multi returns a sink that forwards to each of sinks in turn.
func Multi(sinks ...Sink) Sink { return multi(sinks) }

type multi []Sink

func (ms multi) Header(m *bdf.Metrics, h HeaderInfo) error {
	for _, s := range ms {
		if err := s.Header(m, h); err != nil {
			return err
		}
	}
	return nil
}

func (ms multi) Glyph(m *bdf.Metrics, g *bdf.Glyph) error {
	for _, s := range ms {
		if err := s.Glyph(m, g); err != nil {
			return err
		}
	}
	return nil
}

func (ms multi) Close() error {
	var errs []error
	for _, s := range ms {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

// printer keeps the first write error.
type printer struct {
	w   *bufio.Writer
	err error
}

func newPrinter(w io.Writer) printer { return printer{w: bufio.NewWriter(w)} }

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) flush() error {
	if p.err != nil {
		return p.err
	}
	return p.w.Flush()
}

// writeHeader prints the comment block that opens the output.
func writeHeader(p *printer, m *bdf.Metrics, h HeaderInfo) {
	p.printf("// File generated by 'bdfe")
	if h.Ascender != 0 {
		p.printf(" -a %d", h.Ascender)
	}
	p.printf(" -s %d-%d %s'\n", h.Min, h.Max, baseName(h.File))
	for _, line := range m.Header {
		p.printf("// %s\n", line)
	}
	p.printf("// Converted Font Size %dx%d\n\n", m.CellWidth, m.CellHeight)
}

// baseName strips both slash and backslash separated directories.
func baseName(name string) string {
	return name[strings.LastIndexAny(name, `/\`)+1:]
}

func printable(code int) bool { return code >= 0x20 && code < 0x7f }

func char(code int) rune {
	if printable(code) {
		return rune(code)
	}
	return ' '
}

// rows returns the decoded rows that fit below the displacement.
func rows(m *bdf.Metrics, g *bdf.Glyph) []byte {
	return g.Bitmap[:(m.CellHeight-g.Displacement)*m.RowBytes]
}
