package layout

import (
	"image"
	"image/color"

	"receipt-service/internal/render/text"
)

// Op is one draw operation. Ops are plain values; a painter executes them
// in order and nothing carries over from one op to the next.
type Op interface {
	op()
}

// Text draws S with its baseline at Y. X is interpreted through Style.Align.
type Text struct {
	X, Y  int
	S     string
	Style text.Style
}

// Rule draws a horizontal line centered on Y
type Rule struct {
	X0, X1 int
	Y      int
	Weight int
}

// Fill paints a solid rectangle
type Fill struct {
	Rect  image.Rectangle
	Color color.Color
}

// Picture copies Src with its top left corner at At
type Picture struct {
	At  image.Point
	Src image.Image
}

func (Text) op()    {}
func (Rule) op()    {}
func (Fill) op()    {}
func (Picture) op() {}

// Bounds returns the rectangle covered by the rule
func (r Rule) Bounds() image.Rectangle {
	top := r.Y - r.Weight/2
	return image.Rect(r.X0, top, r.X1, top+r.Weight)
}

// Bounds returns the rectangle covered by the picture
func (p Picture) Bounds() image.Rectangle {
	b := p.Src.Bounds()
	return image.Rectangle{Min: p.At, Max: p.At.Add(b.Size())}
}
