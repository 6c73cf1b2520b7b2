package pptx

import (
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/jonathan/profile-builder/internal/slide"
)

// Slide is one slide of a presentation. It implements slide.Slide.
type Slide struct {
	part string
	tree *etree.Element
}

// Part returns the package part name of the slide (e.g. ppt/slides/slide1.xml)
func (s *Slide) Part() string {
	return s.part
}

// Shapes returns the top-level shapes of the slide's shape tree
func (s *Slide) Shapes() []slide.Shape {
	return wrapAll(s.tree)
}

// lineGeometries are preset geometries drawn as lines
var lineGeometries = map[string]bool{
	"line":               true,
	"lineInv":            true,
	"straightConnector1": true,
}

// fillTags are the spPr children that define a shape fill
var fillTags = map[string]bool{
	"noFill":    true,
	"solidFill": true,
	"gradFill":  true,
	"blipFill":  true,
	"pattFill":  true,
	"grpFill":   true,
}

func wrapAll(parent *etree.Element) []slide.Shape {
	var shapes []slide.Shape
	for _, el := range parent.ChildElements() {
		if s := wrap(el); s != nil {
			shapes = append(shapes, s)
		}
	}
	return shapes
}

func wrap(el *etree.Element) slide.Shape {
	switch el.Tag {
	case "sp":
		return &AutoShape{element{el: el}}
	case "grpSp", "cxnSp", "pic", "graphicFrame", "contentPart":
		return &element{el: el}
	default:
		return nil
	}
}

// element is a shape without editable fill or text
type element struct {
	el *etree.Element
}

// Name returns the cNvPr name of the shape
func (e *element) Name() string {
	for _, c := range e.el.ChildElements() {
		if !strings.HasPrefix(c.Tag, "nv") {
			continue
		}
		if cNvPr := child(c, "cNvPr"); cNvPr != nil {
			return cNvPr.SelectAttrValue("name", "")
		}
	}
	return ""
}

// Kind classifies the shape by element type and geometry
func (e *element) Kind() slide.Kind {
	switch e.el.Tag {
	case "grpSp":
		return slide.KindGroup
	case "cxnSp":
		return slide.KindLine
	case "pic":
		return slide.KindPicture
	case "sp":
		if cNvSpPr := descend(e.el, "nvSpPr", "cNvSpPr"); cNvSpPr != nil && cNvSpPr.SelectAttrValue("txBox", "") == "1" {
			return slide.KindTextBox
		}
		if geom := descend(e.el, "spPr", "prstGeom"); geom != nil && lineGeometries[geom.SelectAttrValue("prst", "")] {
			return slide.KindLine
		}
		return slide.KindShape
	default:
		return slide.KindOther
	}
}

// Children returns the members of a group shape
func (e *element) Children() []slide.Shape {
	if e.el.Tag != "grpSp" {
		return nil
	}
	return wrapAll(e.el)
}

// AutoShape is a p:sp element: it can take a fill and carries a text frame
type AutoShape struct {
	element
}

// SetSolidFill replaces the shape's fill with a solid colour
func (s *AutoShape) SetSolidFill(c slide.Color) error {
	spPr := child(s.el, "spPr")
	if spPr == nil {
		spPr = etree.NewElement("p:spPr")
		s.el.InsertChildAt(nvIndex(s.el)+1, spPr)
	}

	for _, el := range spPr.ChildElements() {
		if fillTags[el.Tag] {
			spPr.RemoveChild(el)
		}
	}

	// Fill follows xfrm and the geometry element in spPr.
	at := 0
	for _, el := range spPr.ChildElements() {
		if el.Tag == "xfrm" || el.Tag == "prstGeom" || el.Tag == "custGeom" {
			at = el.Index() + 1
		}
	}

	fill := etree.NewElement("a:solidFill")
	fill.CreateElement("a:srgbClr").CreateAttr("val", c.Hex())
	spPr.InsertChildAt(at, fill)
	return nil
}

// FillHex returns the solid fill colour set on the shape, or "" when the
// shape has no explicit solid fill.
func (s *AutoShape) FillHex() string {
	clr := descend(s.el, "spPr", "solidFill", "srgbClr")
	if clr == nil {
		return ""
	}
	return clr.SelectAttrValue("val", "")
}

// SetParagraphs clears the text frame and writes paragraphs. Properties of the
// first existing paragraph (alignment, end-of-paragraph run style) are kept.
func (s *AutoShape) SetParagraphs(paragraphs []slide.Paragraph) error {
	body := s.textBody()

	var firstPPr, endRPr *etree.Element
	existing := children(body, "p")
	if len(existing) > 0 {
		if pPr := child(existing[0], "pPr"); pPr != nil {
			firstPPr = pPr.Copy()
		}
		if end := child(existing[0], "endParaRPr"); end != nil {
			endRPr = end.Copy()
		}
	}
	for _, p := range existing {
		body.RemoveChild(p)
	}

	if len(paragraphs) == 0 {
		paragraphs = []slide.Paragraph{{}}
	}
	for i, para := range paragraphs {
		p := body.CreateElement("a:p")
		var pPr *etree.Element
		if i == 0 && firstPPr != nil {
			pPr = firstPPr
		} else if para.Level > 0 {
			pPr = etree.NewElement("a:pPr")
		}
		if pPr != nil {
			if para.Level > 0 {
				pPr.CreateAttr("lvl", strconv.Itoa(para.Level))
			}
			p.AddChild(pPr)
		}
		for _, r := range para.Runs {
			writeRun(p, r)
		}
		if i == 0 && endRPr != nil {
			p.AddChild(endRPr)
		}
	}
	return nil
}

// Text returns the shape's text, one line per paragraph
func (s *AutoShape) Text() string {
	body := child(s.el, "txBody")
	if body == nil {
		return ""
	}
	var lines []string
	for _, p := range children(body, "p") {
		var sb strings.Builder
		for _, r := range children(p, "r") {
			if t := child(r, "t"); t != nil {
				sb.WriteString(t.Text())
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// textBody returns the p:txBody element, creating an empty one if needed
func (s *AutoShape) textBody() *etree.Element {
	if body := child(s.el, "txBody"); body != nil {
		return body
	}
	body := etree.NewElement("p:txBody")
	body.CreateElement("a:bodyPr")
	body.CreateElement("a:lstStyle")
	if ext := child(s.el, "extLst"); ext != nil {
		s.el.InsertChildAt(ext.Index(), body)
	} else {
		s.el.AddChild(body)
	}
	return body
}

func writeRun(p *etree.Element, run slide.Run) {
	r := p.CreateElement("a:r")
	rPr := r.CreateElement("a:rPr")
	rPr.CreateAttr("lang", "en-US")
	rPr.CreateAttr("sz", strconv.Itoa(int(math.Round(run.Size*100))))
	rPr.CreateAttr("b", boolAttr(run.Bold))
	rPr.CreateAttr("dirty", "0")
	rPr.CreateElement("a:solidFill").CreateElement("a:srgbClr").CreateAttr("val", run.Color.Hex())
	r.CreateElement("a:t").SetText(run.Text)
}

func boolAttr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// nvIndex returns the child index of the non-visual properties element
func nvIndex(el *etree.Element) int {
	for _, c := range el.ChildElements() {
		if strings.HasPrefix(c.Tag, "nv") {
			return c.Index()
		}
	}
	return -1
}
