// Package config holds the conversion options and their yaml file form.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Options select what the converter writes. They never change how a glyph
// is decoded.
type Options struct {
	Header  bool `yaml:"header"`  // header comment block
	Verbose bool `yaml:"verbose"` // echo glyph source lines, table layout only
	Mute    bool `yaml:"mute"`    // decode only
	Compact bool `yaml:"compact"` // one glyph per line instead of a table
	Strict  bool `yaml:"strict"`  // fail on any glyph error

	Range    Range  `yaml:"range"`
	Ascender uint   `yaml:"ascender"` // echoed in the header only
	Preview  string `yaml:"preview"`  // BMP sheet path
	Out      string `yaml:"out"`
}

func Default() Options {
	return Options{Range: FullRange, Out: "-"}
}

// Load reads options from a yaml file. Keys missing from the file keep
// their Default value.
func Load(path string) (Options, error) {
	o := Default()
	buf, err := os.ReadFile(path)
	if err != nil {
		return o, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.UnmarshalStrict(buf, &o); err != nil {
		return o, fmt.Errorf("load config %s: %w", path, err)
	}
	return o, nil
}

// Range is an inclusive code point range.
type Range struct {
	Min, Max uint32
}

var FullRange = Range{Min: 0, Max: math.MaxUint32}

// ParseRange parses "MIN-MAX" or a single code point. Bounds may be
// decimal or 0x prefixed hex.
func ParseRange(s string) (Range, error) {
	lo, hi, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		hi = lo
	}
	first, err := strconv.ParseUint(strings.TrimSpace(lo), 0, 32)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	last, err := strconv.ParseUint(strings.TrimSpace(hi), 0, 32)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	if first > last {
		return Range{}, fmt.Errorf("range %q: %d > %d", s, first, last)
	}
	return Range{Min: uint32(first), Max: uint32(last)}, nil
}

// Contains reports whether code is in r. Negative codes, used by BDF for
// unencoded glyphs, are never contained.
func (r Range) Contains(code int) bool {
	return code >= 0 && int64(code) >= int64(r.Min) && int64(code) <= int64(r.Max)
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

func (r *Range) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseRange(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}
