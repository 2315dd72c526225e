package emit

import (
	"io"

	"github.com/mhbvr/bdfe/internal/bdf"
)

// Compact writes one line per glyph:
//
//	0x00, 0x00, 0x7E, 0x81, 0x81, 0xFF, 0x81, 0x81,  //    65 'A'
type Compact struct {
	p printer
}

func NewCompact(w io.Writer) *Compact {
	return &Compact{p: newPrinter(w)}
}

func (c *Compact) Header(m *bdf.Metrics, h HeaderInfo) error {
	writeHeader(&c.p, m, h)
	return c.p.err
}

func (c *Compact) Glyph(m *bdf.Metrics, g *bdf.Glyph) error {
	c.p.printf("\t")
	for i := 0; i < g.Displacement*m.RowBytes; i++ {
		c.p.printf("0x00, ")
	}
	for _, b := range rows(m, g) {
		c.p.printf("0x%02X, ", b)
	}
	c.p.printf(" // %5d", g.Code)
	if printable(g.Code) {
		c.p.printf(" '%c'", g.Code)
	}
	c.p.printf("\n")
	return c.p.err
}

func (c *Compact) Close() error { return c.p.flush() }
