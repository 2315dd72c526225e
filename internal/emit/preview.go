package emit

import (
	"image"
	"image/color"
	"os"

	"golang.org/x/image/bmp"

	"github.com/mhbvr/bdfe/internal/bdf"
)

const previewColumns = 16

// Palette indices of the preview sheet.
const (
	paper = iota
	ink
	gutter
)

var previewPalette = color.Palette{
	paper:  color.White,
	ink:    color.Black,
	gutter: color.Gray{Y: 0xc0},
}

// Preview collects the decoded cells and writes them to a BMP sheet,
// sixteen glyphs per row, when closed.
type Preview struct {
	path  string
	m     *bdf.Metrics
	cells [][]byte
}

func NewPreview(path string) *Preview {
	return &Preview{path: path}
}

func (p *Preview) Header(*bdf.Metrics, HeaderInfo) error { return nil }

func (p *Preview) Glyph(m *bdf.Metrics, g *bdf.Glyph) error {
	p.m = m
	cell := make([]byte, m.RowBytes*m.CellHeight)
	copy(cell[g.Displacement*m.RowBytes:], rows(m, g))
	p.cells = append(p.cells, cell)
	return nil
}

// Close writes the sheet. Nothing is written if no glyph was received.
func (p *Preview) Close() (err error) {
	if len(p.cells) == 0 {
		return nil
	}
	f, err := os.Create(p.path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return bmp.Encode(f, p.sheet())
}

// sheet renders the collected cells separated by a one pixel gutter.
func (p *Preview) sheet() *image.Paletted {
	w, h, rb := p.m.CellWidth, p.m.CellHeight, p.m.RowBytes
	cols := min(len(p.cells), previewColumns)
	lines := (len(p.cells) + previewColumns - 1) / previewColumns

	img := image.NewPaletted(image.Rect(0, 0, cols*(w+1)+1, lines*(h+1)+1), previewPalette)
	for i := range img.Pix {
		img.Pix[i] = gutter
	}
	for i, cell := range p.cells {
		ox := (i%previewColumns)*(w+1) + 1
		oy := (i/previewColumns)*(h+1) + 1
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := uint8(paper)
				if cell[y*rb+x/8]&(0x80>>(x%8)) != 0 {
					c = ink
				}
				img.SetColorIndex(ox+x, oy+y, c)
			}
		}
	}
	return img
}
