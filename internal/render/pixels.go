package render

import (
	"image"
	"image/png"
	"io"
)

// FillRGBA writes one RGBA pixel per cell of f into buf, which must hold
// 4*len(f.Cells) bytes. Cells beyond the buffer are ignored.
func FillRGBA(buf []byte, f Frame, p Palette) {
	for i, c := range f.Cells {
		base := i * 4
		if base+3 >= len(buf) {
			return
		}
		col := p.Color(c, f.Rules.IsWall(c, f.Mode))
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Image renders f at one pixel per cell.
func Image(f Frame, p Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Cols, f.Cols))
	FillRGBA(img.Pix, f, p)
	return img
}

// WritePNG encodes the current generation of src as a PNG, one pixel per cell.
func WritePNG(w io.Writer, src Source, palettes Palettes) error {
	var img *image.RGBA
	src.View(func(f Frame) {
		img = Image(f, palettes.For(f.State))
	})
	return png.Encode(w, img)
}
