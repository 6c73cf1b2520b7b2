// Package pptx reads and writes PowerPoint (.pptx) packages and exposes slide
// shapes as slide.Shape values.
package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
)

type part struct {
	header zip.FileHeader
	data   []byte
}

// Presentation is an in-memory copy of a .pptx package. Parsed XML parts are
// cached and serialized back on Save.
type Presentation struct {
	path  string
	parts []*part
	index map[string]*part
	docs  map[string]*etree.Document
	dirty map[string]bool
}

// Open reads the package at path
func Open(path string) (*Presentation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &PackageError{Path: path, Message: "failed to read file", Cause: err}
	}
	p, err := Read(data)
	if err != nil {
		var pkgErr *PackageError
		if errors.As(err, &pkgErr) {
			pkgErr.Path = path
		}
		return nil, err
	}
	p.path = path
	return p, nil
}

// Read loads a package from memory
func Read(data []byte) (*Presentation, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &PackageError{Message: "not a zip archive", Cause: err}
	}

	p := &Presentation{
		index: make(map[string]*part, len(zr.File)),
		docs:  make(map[string]*etree.Document),
		dirty: make(map[string]bool),
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, &PackageError{Message: fmt.Sprintf("failed to open part %s", f.Name), Cause: err}
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, &PackageError{Message: fmt.Sprintf("failed to read part %s", f.Name), Cause: err}
		}
		pt := &part{header: f.FileHeader, data: content}
		p.parts = append(p.parts, pt)
		p.index[f.Name] = pt
	}

	if _, ok := p.index[presentationPart]; !ok {
		return nil, &PackageError{Message: "missing " + presentationPart}
	}
	return p, nil
}

// SlideCount returns the number of slides listed in the presentation
func (p *Presentation) SlideCount() (int, error) {
	parts, err := p.slideParts()
	if err != nil {
		return 0, err
	}
	return len(parts), nil
}

// Slide returns the slide at the 0-based index in presentation order
func (p *Presentation) Slide(index int) (*Slide, error) {
	parts, err := p.slideParts()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(parts) {
		return nil, &PackageError{Path: p.path, Message: fmt.Sprintf("slide %d out of range (presentation has %d)", index, len(parts))}
	}

	name := parts[index]
	doc, err := p.xml(name)
	if err != nil {
		return nil, err
	}
	tree := descend(doc.Root(), "cSld", "spTree")
	if tree == nil {
		return nil, &PackageError{Path: p.path, Message: fmt.Sprintf("%s has no shape tree", name)}
	}
	// Shapes are edited in place, so the part is rewritten on save.
	p.dirty[name] = true
	return &Slide{part: name, tree: tree}, nil
}

// Save writes the package to path. The file is written to a temporary sibling
// and renamed into place, so a failed save leaves no partial output.
func (p *Presentation) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pptx-*")
	if err != nil {
		return &PackageError{Path: path, Message: "failed to create temporary file", Cause: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := p.Write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return &PackageError{Path: path, Message: "failed to flush temporary file", Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &PackageError{Path: path, Message: "failed to move output into place", Cause: err}
	}
	return nil
}

// Write serializes the package to w
func (p *Presentation) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, pt := range p.parts {
		data := pt.data
		if p.dirty[pt.header.Name] {
			b, err := p.docs[pt.header.Name].WriteToBytes()
			if err != nil {
				return &PackageError{Path: p.path, Message: fmt.Sprintf("failed to serialize %s", pt.header.Name), Cause: err}
			}
			data = b
		}

		header := pt.header
		header.Method = zip.Deflate
		fw, err := zw.CreateHeader(&header)
		if err != nil {
			return &PackageError{Path: p.path, Message: fmt.Sprintf("failed to write %s", header.Name), Cause: err}
		}
		if _, err := fw.Write(data); err != nil {
			return &PackageError{Path: p.path, Message: fmt.Sprintf("failed to write %s", header.Name), Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return &PackageError{Path: p.path, Message: "failed to finalize archive", Cause: err}
	}
	return nil
}

// xml returns the parsed document for a part, parsing it on first use
func (p *Presentation) xml(name string) (*etree.Document, error) {
	if doc, ok := p.docs[name]; ok {
		return doc, nil
	}
	pt, ok := p.index[name]
	if !ok {
		return nil, &PackageError{Path: p.path, Message: "missing part " + name}
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(pt.data); err != nil {
		return nil, &PackageError{Path: p.path, Message: "invalid XML in " + name, Cause: err}
	}
	if doc.Root() == nil {
		return nil, &PackageError{Path: p.path, Message: "empty XML part " + name}
	}
	p.docs[name] = doc
	return doc, nil
}

// slideParts resolves the slide list of presentation.xml to part names
func (p *Presentation) slideParts() ([]string, error) {
	pres, err := p.xml(presentationPart)
	if err != nil {
		return nil, err
	}
	rels, err := p.xml(presentationRels)
	if err != nil {
		return nil, err
	}

	targets := make(map[string]string)
	for _, rel := range rels.Root().ChildElements() {
		if rel.Tag != "Relationship" {
			continue
		}
		targets[rel.SelectAttrValue("Id", "")] = rel.SelectAttrValue("Target", "")
	}

	list := descend(pres.Root(), "sldIdLst")
	if list == nil {
		return []string{}, nil
	}

	var parts []string
	for _, sldID := range children(list, "sldId") {
		relID := sldID.SelectAttrValue("r:id", "")
		target, ok := targets[relID]
		if !ok {
			return nil, &PackageError{Path: p.path, Message: fmt.Sprintf("slide relationship %q not found", relID)}
		}
		parts = append(parts, resolveTarget(target))
	}
	return parts, nil
}

func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join("ppt", target)
}

// children returns the child elements of el with the given local name
func children(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// child returns the first child element of el with the given local name
func child(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// descend follows a chain of local names from el
func descend(el *etree.Element, tags ...string) *etree.Element {
	for _, tag := range tags {
		el = child(el, tag)
		if el == nil {
			return nil
		}
	}
	return el
}
