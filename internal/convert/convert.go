// Package convert runs the two pass BDF to C array conversion.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mhbvr/bdfe/internal/bdf"
	"github.com/mhbvr/bdfe/internal/config"
	"github.com/mhbvr/bdfe/internal/emit"
)

// Stats counts what happened to the glyph records of a font.
type Stats struct {
	Glyphs   int // decoded, including clamped ones
	Emitted  int
	Filtered int // outside the code point range
	Skipped  int // malformed records
	Warnings int // clamped records
}

// NewSink returns the text sink selected by o writing to w, plus the BMP
// preview when o.Preview is set.
func NewSink(w io.Writer, o config.Options) emit.Sink {
	var s emit.Sink
	if o.Compact {
		s = emit.NewCompact(w)
	} else {
		s = emit.NewTable(w, o.Verbose)
	}
	if o.Preview != "" {
		s = emit.Multi(s, emit.NewPreview(o.Preview))
	}
	return s
}

// File opens path and converts it with Convert.
func File(path string, o config.Options, log logrus.FieldLogger, sink emit.Sink) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()
	return Convert(f, path, o, log, sink)
}

// Convert reads the font twice: once for the metrics and once for the
// glyphs, each of which is handed to sink as soon as it is decoded. Nothing
// reaches sink when r is not a valid font. The caller closes sink.
func Convert(r io.ReadSeeker, name string, o config.Options, log logrus.FieldLogger, sink emit.Sink) (Stats, error) {
	var st Stats
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}

	m, err := bdf.ScanMetrics(r, log)
	if err != nil {
		return st, fmt.Errorf("%s: %w", name, err)
	}
	log.WithFields(logrus.Fields{
		"cell":   fmt.Sprintf("%dx%d", m.CellWidth, m.CellHeight),
		"bytes":  m.RowBytes,
		"ascent": m.Ascent,
	}).Debug("font metrics")

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return st, fmt.Errorf("%s: rewind: %w", name, err)
	}

	if o.Mute {
		sink = emit.Discard
	}
	if o.Header {
		h := emit.HeaderInfo{File: name, Ascender: o.Ascender, Min: o.Range.Min, Max: o.Range.Max}
		if err := sink.Header(m, h); err != nil {
			return st, fmt.Errorf("%s: write header: %w", name, err)
		}
	}

	dec := bdf.NewDecoder(r, m, log)
	for {
		g, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var ge *bdf.GlyphError
			if !errors.As(err, &ge) || o.Strict {
				return st, fmt.Errorf("%s: %w", name, err)
			}
			fields := logrus.Fields{"line": ge.Line, "code": ge.Code}
			if !bdf.IsWarning(err) {
				st.Skipped++
				log.WithFields(fields).Warnf("skipping glyph %s: %v", ge.Name, ge.Err)
				continue
			}
			st.Warnings++
			log.WithFields(fields).Warnf("glyph %s: %v", ge.Name, ge.Err)
		}

		st.Glyphs++
		if !o.Range.Contains(g.Code) {
			st.Filtered++
			continue
		}
		if err := sink.Glyph(m, g); err != nil {
			return st, fmt.Errorf("%s: glyph %d: %w", name, g.Code, err)
		}
		st.Emitted++
	}
	return st, nil
}
