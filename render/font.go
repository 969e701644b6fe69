package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const labelPad = 4

// DrawLabel writes single line of text with its top-left corner at (x, y) over a translucent backing box
func DrawLabel(dst draw.Image, x, y int, text string, c color.Color) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	width := dr.MeasureString(text).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	box := image.Rect(x, y, x+width+2*labelPad, y+height+2*labelPad)
	draw.Draw(dst, box, image.NewUniform(color.NRGBA{A: 160}), image.Point{}, draw.Over)
	dr.Dot = fixed.Point26_6{
		X: fixed.I(x + labelPad),
		Y: fixed.I(y+labelPad) + metrics.Ascent,
	}
	dr.DrawString(text)
}
