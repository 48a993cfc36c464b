// Package charset decodes the C64's CHARGEN ROM image — either the raw
// 4096-byte dump or a BMP character-set reference sheet via
// golang.org/x/image/bmp — into the 8x8x1bpp glyph data the VIC
// reads through its character-ROM bank.
package charset

import (
	"bytes"
	"image"
	"image/color"

	_ "golang.org/x/image/bmp"
)

// DecodeROM accepts a raw 4096-byte CHARGEN dump unchanged, or a bitmap
// image (one row of 256 characters, 8x8 each) and rasterizes it back
// into the same packed 1bpp-per-row layout real CHARGEN ROMs use.
func DecodeROM(raw []byte) ([]byte, error) {
	if len(raw) == 4096 {
		out := make([]byte, 4096)
		copy(out, raw)
		return out, nil
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return rasterize(img), nil
}

func rasterize(img image.Image) []byte {
	bounds := img.Bounds()
	out := make([]byte, 4096)
	charsPerRow := bounds.Dx() / 8
	if charsPerRow == 0 {
		charsPerRow = 1
	}
	for ch := 0; ch < 256; ch++ {
		cx := (ch % charsPerRow) * 8
		cy := (ch / charsPerRow) * 8
		for row := 0; row < 8; row++ {
			var b byte
			for col := 0; col < 8; col++ {
				px := img.At(bounds.Min.X+cx+col, bounds.Min.Y+cy+row)
				if isForeground(px) {
					b |= 1 << uint(7-col)
				}
			}
			out[ch*8+row] = b
		}
	}
	return out
}

func isForeground(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	lum := (r + g + b) / 3
	return lum > 0x7FFF
}
