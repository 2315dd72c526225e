// Package bdf reads Glyph Bitmap Distribution Format font descriptions.
//
// A font is read in two passes over the same stream: ScanMetrics collects the
// global cell geometry, then a Decoder walks the STARTCHAR..ENDCHAR records
// and decodes each glyph into a cell sized scratch buffer.
package bdf

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Metrics holds the font wide geometry. It is built once by ScanMetrics and
// never modified afterwards.
type Metrics struct {
	CellWidth  int
	CellHeight int
	RowBytes   int // (CellWidth+7)/8
	OffsetX    int
	OffsetY    int
	Ascent     int
	Descent    int

	// Header holds the FONT, COMMENT, COPYRIGHT, FONTBOUNDINGBOX,
	// FONT_ASCENT and FONT_DESCENT lines in source order.
	Header []string
}

// Box is a glyph bounding box: width, height and offset from the origin.
type Box struct {
	Width, Height    int
	OffsetX, OffsetY int
}

// Glyph is one decoded STARTCHAR record.
type Glyph struct {
	Label  string   // the STARTCHAR line
	Name   string   // STARTCHAR argument
	Code   int      // ENCODING
	Source []string // raw ENCODING and BBX lines
	Box    Box

	// Rows is the number of bitmap rows in the record, including rows that
	// did not fit in the cell. Box.Height is set to it.
	Rows int

	// Displacement is the number of blank rows above the bitmap.
	Displacement int

	// Bitmap is RowBytes*CellHeight bytes, row major, MSB is the leftmost
	// pixel. It aliases the decoder scratch buffer and is only valid until
	// the next call to Decoder.Next.
	Bitmap []byte
}

func orDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func trimControl(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool { return r < ' ' })
}
