package slide

import "errors"

// fakeShape is an in-memory Shape used by the tests
type fakeShape struct {
	name       string
	kind       Kind
	children   []Shape
	fill       *Color
	paragraphs []Paragraph
	noText     bool
	failFill   bool
}

func (f *fakeShape) Name() string      { return f.name }
func (f *fakeShape) Kind() Kind        { return f.kind }
func (f *fakeShape) Children() []Shape { return f.children }

func (f *fakeShape) SetSolidFill(c Color) error {
	if f.failFill {
		return errors.New("fill rejected")
	}
	f.fill = &c
	return nil
}

func (f *fakeShape) SetParagraphs(paragraphs []Paragraph) error {
	f.paragraphs = paragraphs
	return nil
}

// noTextShape has no text frame
type noTextShape struct {
	name string
}

func (n *noTextShape) Name() string      { return n.name }
func (n *noTextShape) Kind() Kind        { return KindPicture }
func (n *noTextShape) Children() []Shape { return nil }

type fakeSlide struct {
	shapes []Shape
}

func (s *fakeSlide) Shapes() []Shape { return s.shapes }

func leaf(name string) *fakeShape {
	return &fakeShape{name: name, kind: KindShape}
}

func group(name string, children ...Shape) *fakeShape {
	return &fakeShape{name: name, kind: KindGroup, children: children}
}
