package bdf

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFont   = errors.New("bdf: not a valid font description")
	ErrNoBoundingBox = fmt.Errorf("%w: no FONTBOUNDINGBOX", ErrInvalidFont)

	ErrMalformedDirective = errors.New("bdf: malformed directive argument")

	ErrMalformedRow      = errors.New("bdf: malformed bitmap row")
	ErrRowTooWide        = errors.New("bdf: bitmap row wider than the cell")
	ErrNegativeOffset    = errors.New("bdf: negative glyph x offset")
	ErrOffsetOverflow    = errors.New("bdf: glyph x offset outside the cell")
	ErrUnterminatedGlyph = errors.New("bdf: glyph without ENDCHAR")

	// Geometry warnings. The glyph is still returned, clamped.
	ErrNegativeDisplacement = errors.New("bdf: glyph extends above the ascent")
	ErrDisplacementOverflow = errors.New("bdf: glyph displacement exceeds the cell height")
)

// GlyphError reports a problem with a single glyph record.
type GlyphError struct {
	Code int
	Name string
	Line int
	Err  error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("glyph %d (%s) line %d: %v", e.Code, e.Name, e.Line, e.Err)
}

func (e *GlyphError) Unwrap() error { return e.Err }

// IsWarning reports whether err only flags a clamped glyph geometry, in
// which case the glyph returned alongside it is usable.
func IsWarning(err error) bool {
	return errors.Is(err, ErrNegativeDisplacement) || errors.Is(err, ErrDisplacementOverflow)
}
