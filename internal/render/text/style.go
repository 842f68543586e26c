package text

// Align is the horizontal anchor of a line relative to its x coordinate
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Direction is the base direction of a line
type Direction int

const (
	LTR Direction = iota
	RTL
)

// Weight selects the regular or bold face
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Style carries everything needed to place one line. Nothing is inherited
// from a previous draw call.
type Style struct {
	Size      float64
	Weight    Weight
	Align     Align
	Direction Direction
}

// BoldStyle is the common receipt style: bold, left to right.
func BoldStyle(size float64, align Align) Style {
	return Style{Size: size, Weight: Bold, Align: align, Direction: LTR}
}

// RTL returns a copy of s with a right to left base direction.
func (s Style) RTL() Style {
	s.Direction = RTL
	return s
}
