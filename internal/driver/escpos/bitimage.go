package escpos

import (
	"bytes"
	"image"
)

// Dark reports whether a pixel prints. Transparent pixels count as paper.
func Dark(img image.Image, x, y int) bool {
	r, g, b, a := img.At(x, y).RGBA()
	if a <= 0x7FFF {
		return false
	}
	// Y = 0.299*R + 0.587*G + 0.114*B on 8 bit channels
	gray := (299*(r>>8) + 587*(g>>8) + 114*(b>>8)) / 1000
	return gray < 128
}

// WriteBitImage appends img as a sequence of ESC * bands. Each band is
// mode.Dots rows tall, one column per dot of width, MSB on top. Rows past
// the bottom of the image are blank.
func WriteBitImage(buf *bytes.Buffer, img image.Image, mode Mode) {
	bounds := img.Bounds()
	width := bounds.Dx()
	bytesPerColumn := mode.Dots / 8

	for top := bounds.Min.Y; top < bounds.Max.Y; top += mode.Dots {
		buf.Write(ESC_POS_COMMANDS.BIT_IMAGE)
		buf.WriteByte(mode.M)
		buf.WriteByte(byte(width % 256)) // nL
		buf.WriteByte(byte(width / 256)) // nH

		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			for k := 0; k < bytesPerColumn; k++ {
				var b byte
				for bit := 0; bit < 8; bit++ {
					y := top + k*8 + bit
					if y < bounds.Max.Y && Dark(img, x, y) {
						b |= 1 << uint(7-bit)
					}
				}
				buf.WriteByte(b)
			}
		}

		buf.Write(ESC_POS_COMMANDS.LINE_FEED)
	}
}
