package bdf

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/icza/bitio"
	"github.com/sirupsen/logrus"
)

// Code points at or above this are not checked for duplicates.
const maxTracked = 0x110000

// Decoder walks the glyph records of a font. It owns a single scratch
// buffer of RowBytes*CellHeight bytes which is cleared at every BITMAP line
// and handed out as Glyph.Bitmap.
type Decoder struct {
	lr  *lineReader
	m   *Metrics
	log logrus.FieldLogger

	buf  []byte
	bits bytes.Buffer
	w    *bitio.Writer
	seen bitset.BitSet
}

// NewDecoder returns a decoder reading glyph records from r, which must be
// positioned at the start of the font.
func NewDecoder(r io.Reader, m *Metrics, log logrus.FieldLogger) *Decoder {
	d := &Decoder{
		lr:  newLineReader(r),
		m:   m,
		log: orDiscard(log),
		buf: make([]byte, m.RowBytes*m.CellHeight),
	}
	d.w = bitio.NewWriter(&d.bits)
	return d
}

// Next decodes the next glyph record. It returns io.EOF after the last one.
//
// A malformed record is reported as a *GlyphError with a nil glyph and the
// decoder resumes after its ENDCHAR. A record whose vertical placement had
// to be clamped is returned together with a *GlyphError for which
// IsWarning is true.
func (d *Decoder) Next() (*Glyph, error) {
	for d.lr.scan() {
		line := d.lr.text()
		if name, ok := KeyArg(line, "STARTCHAR"); ok {
			return d.decode(line, name)
		}
	}
	if err := d.lr.err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (d *Decoder) decode(label, name string) (*Glyph, error) {
	g := &Glyph{Label: label, Name: name, Bitmap: d.buf}

	var (
		inBitmap bool
		cursor   int
		fail     error
		failLine int
	)
	setFail := func(err error) {
		if fail == nil {
			fail, failLine = err, d.lr.n
		}
	}

	for d.lr.scan() {
		line := d.lr.text()
		if _, ok := KeyArg(line, "ENDCHAR"); ok {
			if fail != nil {
				return nil, &GlyphError{Code: g.Code, Name: name, Line: failLine, Err: fail}
			}
			return d.finish(g)
		}

		if inBitmap {
			g.Rows++
			if fail == nil && cursor+d.m.RowBytes <= len(d.buf) {
				if err := d.decodeRow(d.buf[cursor:cursor+d.m.RowBytes], line, g.Box.OffsetX); err != nil {
					setFail(err)
				}
				cursor += d.m.RowBytes
			}
			continue
		}

		if arg, ok := KeyArg(line, "ENCODING"); ok {
			g.Source = append(g.Source, line)
			if err := ints(arg, &g.Code); err != nil {
				d.warn(line, err)
			}
		} else if arg, ok := KeyArg(line, "BBX"); ok {
			g.Source = append(g.Source, line)
			if err := ints(arg, &g.Box.Width, &g.Box.Height, &g.Box.OffsetX, &g.Box.OffsetY); err != nil {
				d.warn(line, err)
			}
		} else if _, ok := KeyArg(line, "BITMAP"); ok {
			inBitmap = true
			cursor = 0
			clear(d.buf)
			switch off := g.Box.OffsetX; {
			case off < 0:
				setFail(fmt.Errorf("%w (%d)", ErrNegativeOffset, off))
			case off >= d.m.RowBytes*8:
				setFail(fmt.Errorf("%w (%d, cell row is %d bits)", ErrOffsetOverflow, off, d.m.RowBytes*8))
			}
		}
	}
	if err := d.lr.err(); err != nil {
		return nil, err
	}
	return nil, &GlyphError{Code: g.Code, Name: name, Line: d.lr.n, Err: ErrUnterminatedGlyph}
}

// finish places a fully read glyph vertically in the cell.
func (d *Decoder) finish(g *Glyph) (*Glyph, error) {
	if g.Rows != g.Box.Height {
		d.log.WithFields(logrus.Fields{"line": d.lr.n, "code": g.Code}).
			Debugf("BBX height %d, %d bitmap rows", g.Box.Height, g.Rows)
	}
	g.Box.Height = g.Rows
	d.track(g)

	disp := d.m.Ascent - g.Box.Height - g.Box.OffsetY
	var warn error
	switch {
	case disp < 0:
		warn = fmt.Errorf("%w by %d rows", ErrNegativeDisplacement, -disp)
		disp = 0
	case disp > d.m.CellHeight:
		warn = fmt.Errorf("%w (%d > %d)", ErrDisplacementOverflow, disp, d.m.CellHeight)
		disp = d.m.CellHeight
	}
	g.Displacement = disp

	if warn != nil {
		return g, &GlyphError{Code: g.Code, Name: g.Name, Line: d.lr.n, Err: warn}
	}
	return g, nil
}

// decodeRow writes one hex row into dst. The row bytes are left aligned in
// the len(dst)*8 bit field and then moved right by shift bits. Bits pushed
// past the right edge are dropped.
func (d *Decoder) decodeRow(dst []byte, line string, shift int) error {
	s := strings.TrimSpace(line)
	if s == "" || len(s)%2 != 0 {
		return fmt.Errorf("%w: %q", ErrMalformedRow, s)
	}
	src, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	if len(src) > len(dst) {
		return fmt.Errorf("%w: %d bytes, cell row is %d", ErrRowTooWide, len(src), len(dst))
	}

	d.bits.Reset()
	for ; shift >= 8; shift -= 8 {
		if err := d.w.WriteByte(0); err != nil {
			return err
		}
	}
	if err := d.w.WriteBits(0, uint8(shift)); err != nil {
		return err
	}
	for _, b := range src {
		if err := d.w.WriteByte(b); err != nil {
			return err
		}
	}
	if _, err := d.w.Align(); err != nil {
		return err
	}
	copy(dst, d.bits.Bytes())
	return nil
}

func (d *Decoder) track(g *Glyph) {
	if g.Code < 0 || g.Code >= maxTracked {
		return
	}
	c := uint(g.Code)
	if d.seen.Test(c) {
		d.log.WithFields(logrus.Fields{"line": d.lr.n, "code": g.Code}).
			Warnf("duplicate glyph %s", g.Name)
	}
	d.seen.Set(c)
}

func (d *Decoder) warn(line string, err error) {
	d.log.WithField("line", d.lr.n).Warnf("%v in %q", err, line)
}
