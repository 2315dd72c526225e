package bdf

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

var headerKeys = []string{
	"FONT",
	"COMMENT",
	"COPYRIGHT",
	"FONTBOUNDINGBOX",
	"FONT_ASCENT",
	"FONT_DESCENT",
}

// ScanMetrics reads the whole of r and returns the font cell geometry.
// A font without a usable FONTBOUNDINGBOX is reported as ErrInvalidFont.
func ScanMetrics(r io.Reader, log logrus.FieldLogger) (*Metrics, error) {
	log = orDiscard(log)
	m := &Metrics{}

	lr := newLineReader(r)
	for lr.scan() {
		line := lr.text()
		for _, k := range headerKeys {
			if _, ok := KeyArg(line, k); ok {
				m.Header = append(m.Header, line)
				break
			}
		}

		var err error
		if arg, ok := KeyArg(line, "FONTBOUNDINGBOX"); ok {
			err = ints(arg, &m.CellWidth, &m.CellHeight, &m.OffsetX, &m.OffsetY)
			m.RowBytes = (m.CellWidth + 7) / 8
		} else if arg, ok := KeyArg(line, "FONT_ASCENT"); ok {
			err = ints(arg, &m.Ascent)
		} else if arg, ok := KeyArg(line, "FONT_DESCENT"); ok {
			err = ints(arg, &m.Descent)
		}
		if err != nil {
			log.WithField("line", lr.n).Warnf("%v in %q", err, line)
		}
	}
	if err := lr.err(); err != nil {
		return nil, err
	}

	if m.CellHeight == 0 {
		return nil, ErrNoBoundingBox
	}
	if m.CellWidth <= 0 || m.CellHeight < 0 {
		return nil, fmt.Errorf("%w: cell %dx%d", ErrInvalidFont, m.CellWidth, m.CellHeight)
	}
	return m, nil
}
