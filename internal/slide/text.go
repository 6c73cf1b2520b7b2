package slide

import (
	"strings"

	"github.com/jonathan/profile-builder/internal/types"
)

// Font sizes in points
const (
	TitleSize       = 24
	SidebarSize     = 14
	RoleTitleSize   = 18
	RoleDetailsSize = 12
	BulletSize      = 14
	FooterSize      = 14
)

// Fixed glyphs and labels
const (
	RoleSeparator     = " – "
	BulletGlyph       = "-> "
	StrengthSeparator = ", "
	FooterLabel       = "Core Strengths:"
)

// TextColor is used for every run written to the slide
var TextColor = ColorWhite

// SimpleText returns a single paragraph holding one run
func SimpleText(text string, size float64, bold bool) []Paragraph {
	return []Paragraph{{Runs: []Run{run(text, size, bold)}}}
}

// LabeledText returns one paragraph with a bold label followed by a regular value
func LabeledText(label, value string, size float64) []Paragraph {
	return []Paragraph{{Runs: []Run{
		run(label+" ", size, true),
		run(value, size, false),
	}}}
}

// RoleBlock returns the header paragraph (bold job title, separator, regular
// description) followed by one bullet paragraph per achievement.
func RoleBlock(role types.Role) []Paragraph {
	paragraphs := []Paragraph{{Runs: []Run{
		run(role.JobTitle+RoleSeparator, RoleTitleSize, true),
		run(role.Description, RoleDetailsSize, false),
	}}}
	for _, achievement := range role.Achievements {
		paragraphs = append(paragraphs, bullet(achievement, BulletSize))
	}
	return paragraphs
}

// FooterBlock returns the bold footer label followed by up to two bullet lines
// holding the strengths split at the midpoint.
func FooterBlock(strengths []string) []Paragraph {
	paragraphs := []Paragraph{{Runs: []Run{run(FooterLabel, FooterSize, true)}}}
	if len(strengths) == 0 {
		return paragraphs
	}

	first, second := SplitHalves(strengths)
	paragraphs = append(paragraphs, bullet(strings.Join(first, StrengthSeparator), FooterSize))
	if len(second) > 0 {
		paragraphs = append(paragraphs, bullet(strings.Join(second, StrengthSeparator), FooterSize))
	}
	return paragraphs
}

// SplitHalves splits items so that the first half holds ceil(n/2) items
func SplitHalves(items []string) (first, second []string) {
	mid := (len(items) + 1) / 2
	return items[:mid], items[mid:]
}

// WriteText clears shape's text and writes paragraphs. A nil shape is a no-op.
func WriteText(shape Shape, paragraphs []Paragraph) error {
	if shape == nil {
		return nil
	}
	setter, ok := shape.(TextSetter)
	if !ok {
		return &TemplateError{Shape: shape.Name(), Message: "shape has no text frame"}
	}
	if err := setter.SetParagraphs(paragraphs); err != nil {
		return &TemplateError{Shape: shape.Name(), Message: "failed to write text", Cause: err}
	}
	return nil
}

func run(text string, size float64, bold bool) Run {
	return Run{Text: text, Bold: bold, Size: size, Color: TextColor}
}

func bullet(text string, size float64) Paragraph {
	return Paragraph{Runs: []Run{
		run(BulletGlyph, size, false),
		run(text, size, false),
	}}
}
