package emit

import (
	"io"
	"strings"

	"github.com/mhbvr/bdfe/internal/bdf"
)

// Table writes a block per glyph with one row per line and an ASCII
// rendering of the row bits:
//
//	//    65 'A' |01234567|
//	 0x00, //   0|        |
//	 0x7E, //   1| ###### |
type Table struct {
	p       printer
	verbose bool
}

// NewTable returns a table sink. With verbose set the STARTCHAR, ENCODING
// and BBX source lines are echoed before each block.
func NewTable(w io.Writer, verbose bool) *Table {
	return &Table{p: newPrinter(w), verbose: verbose}
}

func (t *Table) Header(m *bdf.Metrics, h HeaderInfo) error {
	writeHeader(&t.p, m, h)
	return t.p.err
}

func (t *Table) Glyph(m *bdf.Metrics, g *bdf.Glyph) error {
	if t.verbose {
		t.p.printf("// %s\n", g.Label)
		for _, line := range g.Source {
			t.p.printf("// %s\n", line)
		}
	}

	bits := m.RowBytes * 8
	blank := strings.Repeat(" ", bits)

	// Line up the ruler with the art column of the rows below.
	t.p.printf("//%s%5d '%c' |", strings.Repeat(" ", 6*m.RowBytes-5), g.Code, char(g.Code))
	for i := 0; i < bits; i++ {
		if i < m.CellWidth {
			t.p.printf("%d", i%10)
		} else {
			t.p.printf(" ")
		}
	}
	t.p.printf("|\n")

	for r := 0; r < g.Displacement; r++ {
		for i := 0; i < m.RowBytes; i++ {
			t.p.printf(" 0x00,")
		}
		t.p.printf(" //  %2d|%s|\n", r, blank)
	}

	data := rows(m, g)
	for r := 0; r*m.RowBytes < len(data); r++ {
		row := data[r*m.RowBytes : (r+1)*m.RowBytes]
		for _, b := range row {
			t.p.printf(" 0x%02X,", b)
		}
		t.p.printf(" //  %2d|%s|\n", r+g.Displacement, art(row))
	}
	t.p.printf("\n")
	return t.p.err
}

func (t *Table) Close() error { return t.p.flush() }

// art renders the row bits MSB first, '#' for set and ' ' for clear.
func art(row []byte) string {
	var b strings.Builder
	for _, v := range row {
		for bit := 0; bit < 8; bit++ {
			if v&(0x80>>bit) != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}
