package convert

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhbvr/bdfe/internal/bdf"
	"github.com/mhbvr/bdfe/internal/config"
)

const letterA = `STARTFONT 2.1
FONTBOUNDINGBOX 8 8 0 0
STARTPROPERTIES 1
FONT_ASCENT 8
ENDPROPERTIES
CHARS 1
STARTCHAR A
ENCODING 65
BBX 8 6 0 0
BITMAP
7E
81
81
FF
81
81
ENDCHAR
ENDFONT
`

const twoGlyphs = `STARTFONT 2.1
FONTBOUNDINGBOX 8 4 0 0
FONT_ASCENT 4
CHARS 2
STARTCHAR broken
ENCODING 1
BBX 8 2 0 0
BITMAP
FF
XY
ENDCHAR
STARTCHAR tall
ENCODING 2
BBX 8 5 0 0
BITMAP
01
02
03
04
05
ENDCHAR
ENDFONT
`

func options(compact bool) config.Options {
	o := config.Default()
	o.Compact = compact
	return o
}

func run(t *testing.T, src string, o config.Options) (string, Stats, error) {
	t.Helper()
	var out bytes.Buffer
	sink := NewSink(&out, o)
	log, _ := test.NewNullLogger()
	st, err := Convert(strings.NewReader(src), "font.bdf", o, log, sink)
	require.NoError(t, sink.Close())
	return out.String(), st, err
}

func runFile(t *testing.T, path string, o config.Options) (string, Stats, error) {
	t.Helper()
	var out bytes.Buffer
	sink := NewSink(&out, o)
	st, err := File(path, o, nil, sink)
	require.NoError(t, sink.Close())
	return out.String(), st, err
}

func TestConvertLetterA(t *testing.T) {
	out, st, err := run(t, letterA, options(true))
	require.NoError(t, err)
	assert.Equal(t, "\t0x00, 0x00, 0x7E, 0x81, 0x81, 0xFF, 0x81, 0x81,  //    65 'A'\n", out)
	assert.Equal(t, Stats{Glyphs: 1, Emitted: 1}, st)
}

func TestConvertFileCompact(t *testing.T) {
	o := options(true)
	o.Header = true
	out, st, err := runFile(t, "testdata/tiny.bdf", o)
	require.NoError(t, err)

	assert.Equal(t, ""+
		"// File generated by 'bdfe -s 0-4294967295 tiny.bdf'\n"+
		"// COMMENT tiny test font\n"+
		"// FONT -bdfe-tiny-medium-r-normal--8-80-75-75-c-80-iso8859-1\n"+
		"// FONTBOUNDINGBOX 8 8 0 0\n"+
		"// COPYRIGHT \"public domain\"\n"+
		"// FONT_ASCENT 8\n"+
		"// FONT_DESCENT 0\n"+
		"// Converted Font Size 8x8\n"+
		"\n"+
		"\t"+strings.Repeat("0x00, ", 8)+" //    32 ' '\n"+
		"\t0x00, 0x00, 0x7E, 0x81, 0x81, 0xFF, 0x81, 0x81,  //    65 'A'\n"+
		"\t"+strings.Repeat("0x3C, ", 8)+" //   124 '|'\n", out)
	assert.Equal(t, Stats{Glyphs: 3, Emitted: 3}, st)
}

func TestConvertFileTable(t *testing.T) {
	o := options(false)
	o.Verbose = true
	out, _, err := runFile(t, "testdata/tiny.bdf", o)
	require.NoError(t, err)

	assert.Contains(t, out, ""+
		"// STARTCHAR bar\n"+
		"// ENCODING 124\n"+
		"// BBX 4 8 2 0\n"+
		"//   124 '|' |01234567|\n"+
		" 0x3C, //   0|  ####  |\n")
	assert.True(t, strings.HasSuffix(out, " 0x3C, //   7|  ####  |\n\n"))
}

func TestConvertIdempotent(t *testing.T) {
	o := options(false)
	o.Header = true
	o.Verbose = true
	first, _, err := runFile(t, "testdata/tiny.bdf", o)
	require.NoError(t, err)
	second, _, err := runFile(t, "testdata/tiny.bdf", o)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConvertRowsFillCell(t *testing.T) {
	out, _, err := runFile(t, "testdata/tiny.bdf", options(true))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		// displacement rows plus decoded rows always make up the cell
		assert.Equal(t, 8, strings.Count(line, "0x"), line)
	}
}

func TestConvertNoBoundingBox(t *testing.T) {
	o := options(true)
	o.Header = true
	o.Preview = filepath.Join(t.TempDir(), "sheet.bmp")

	out, st, err := runFile(t, "testdata/nobox.bdf", o)
	assert.ErrorIs(t, err, bdf.ErrNoBoundingBox)
	assert.Empty(t, out)
	assert.Equal(t, Stats{}, st)

	_, err = os.Stat(o.Preview)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertMissingFile(t *testing.T) {
	out, _, err := runFile(t, "testdata/missing.bdf", options(true))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Empty(t, out)
}

func TestConvertRange(t *testing.T) {
	cases := []struct {
		name  string
		r     config.Range
		codes []string
		st    Stats
	}{
		{"full range keeps every glyph", config.FullRange, []string{"32", "65", "124"}, Stats{Glyphs: 3, Emitted: 3}},
		{"out of range glyphs are dropped", config.Range{Min: 65, Max: 65}, []string{"65"}, Stats{Glyphs: 3, Emitted: 1, Filtered: 2}},
		{"printable ascii", config.Range{Min: 33, Max: 126}, []string{"65", "124"}, Stats{Glyphs: 3, Emitted: 2, Filtered: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := options(true)
			o.Range = c.r
			out, st, err := runFile(t, "testdata/tiny.bdf", o)
			require.NoError(t, err)
			assert.Equal(t, c.st, st)

			var codes []string
			for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
				f := strings.Fields(line[strings.Index(line, "//")+2:])
				codes = append(codes, f[0])
			}
			assert.Equal(t, c.codes, codes)
		})
	}
}

func TestConvertMute(t *testing.T) {
	o := options(false)
	o.Mute = true
	o.Header = true
	o.Preview = filepath.Join(t.TempDir(), "sheet.bmp")

	out, st, err := runFile(t, "testdata/tiny.bdf", o)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 3, st.Glyphs)

	_, err = os.Stat(o.Preview)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertPreview(t *testing.T) {
	o := options(true)
	o.Preview = filepath.Join(t.TempDir(), "sheet.bmp")
	_, _, err := runFile(t, "testdata/tiny.bdf", o)
	require.NoError(t, err)

	fi, err := os.Stat(o.Preview)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())
}

func TestConvertBadGlyphs(t *testing.T) {
	out, st, err := run(t, twoGlyphs, options(true))
	require.NoError(t, err)
	// "broken" is skipped, "tall" is clamped to the top of the cell.
	assert.Equal(t, "\t0x01, 0x02, 0x03, 0x04,  //     2\n", out)
	assert.Equal(t, Stats{Glyphs: 1, Emitted: 1, Skipped: 1, Warnings: 1}, st)
}

func TestConvertStrict(t *testing.T) {
	o := options(true)
	o.Strict = true
	out, st, err := run(t, twoGlyphs, o)
	assert.ErrorIs(t, err, bdf.ErrMalformedRow)
	assert.Empty(t, out)
	assert.Equal(t, Stats{}, st)

	// A clamped glyph also fails in strict mode.
	src := strings.Replace(twoGlyphs, "XY", "FE", 1)
	out, st, err = run(t, src, o)
	assert.ErrorIs(t, err, bdf.ErrNegativeDisplacement)
	assert.Equal(t, "\t0x00, 0x00, 0xFF, 0xFE,  //     1\n", out)
	assert.Equal(t, Stats{Glyphs: 1, Emitted: 1}, st)
}

func TestConvertLogsSkippedGlyph(t *testing.T) {
	var out bytes.Buffer
	log, hook := test.NewNullLogger()
	o := options(true)
	_, err := Convert(strings.NewReader(twoGlyphs), "font.bdf", o, log, NewSink(&out, o))
	require.NoError(t, err)

	require.Len(t, hook.AllEntries(), 2)
	e := hook.AllEntries()[0]
	assert.Equal(t, "skipping glyph broken: bdf: malformed bitmap row: encoding/hex: invalid byte: U+0058 'X'", e.Message)
	assert.Equal(t, 10, e.Data["line"])
	assert.Equal(t, 1, e.Data["code"])
}
