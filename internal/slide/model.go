// Package slide fills the named placeholder shapes of a profile slide.
//
// The package is independent of any presentation file format: a template is
// seen as a tree of Shapes (leaves and groups), and every styling rule produces
// plain Paragraph values that a format adapter writes back.
package slide

import (
	"fmt"
	"strings"
)

// Color is an RGB colour
type Color struct {
	R, G, B uint8
}

// Hex returns the colour as an uppercase RRGGBB string
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Palette used by the profile slide
var (
	ColorPurple = Color{R: 137, G: 87, B: 230}
	ColorBlue   = Color{R: 0, G: 112, B: 192}
	ColorWhite  = Color{R: 255, G: 255, B: 255}
)

// Run is a span of text with a single style. Size is in points.
type Run struct {
	Text  string
	Bold  bool
	Size  float64
	Color Color
}

// Paragraph is an ordered list of runs at an indentation level
type Paragraph struct {
	Level int
	Runs  []Run
}

// Text concatenates the text of all runs
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Kind classifies a shape
type Kind int

// Shape kinds
const (
	KindShape Kind = iota
	KindTextBox
	KindLine
	KindPicture
	KindGroup
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindTextBox:
		return "text_box"
	case KindLine:
		return "line"
	case KindPicture:
		return "picture"
	case KindGroup:
		return "group"
	default:
		return "other"
	}
}

// Shape is a node of the slide's shape tree. Groups return their members
// from Children; leaves return nil.
type Shape interface {
	Name() string
	Kind() Kind
	Children() []Shape
}

// Filler is implemented by shapes that accept a solid background fill
type Filler interface {
	SetSolidFill(c Color) error
}

// TextSetter is implemented by shapes that carry a text frame. SetParagraphs
// clears the frame and writes the given paragraphs in order.
type TextSetter interface {
	SetParagraphs(paragraphs []Paragraph) error
}

// Slide exposes the top-level shapes of one slide
type Slide interface {
	Shapes() []Shape
}
