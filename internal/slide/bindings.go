package slide

import (
	"fmt"

	"github.com/jonathan/profile-builder/internal/types"
)

// Field identifies the profile value a placeholder displays
type Field string

// Profile fields bound to placeholders
const (
	FieldGender            Field = "gender"
	FieldSectorFocus       Field = "sector_focus"
	FieldLocation          Field = "location"
	FieldExperienceSummary Field = "experience_summary"
	FieldTitle             Field = "title"
	FieldCoreStrengths     Field = "core_strengths"
)

// RoleField identifies the i-th experience entry (0-based)
func RoleField(i int) Field {
	return Field(fmt.Sprintf("experience[%d]", i))
}

// Binding maps one profile field to the shape that displays it and the rule
// that styles it.
type Binding struct {
	Field  Field
	Shape  string
	Render func(p *types.Profile) []Paragraph
}

// Sidebar labels
const (
	LabelGender     = "Gender:"
	LabelSector     = "Sector Focus:"
	LabelLocation   = "Location:"
	LabelExperience = "Experience:"
)

// Bindings returns the text bindings in rendering order: sidebar, headline,
// one binding per role (roleCount of them), footer.
func (l Layout) Bindings(roleCount int) []Binding {
	bindings := []Binding{
		{Field: FieldGender, Shape: l.Gender, Render: func(p *types.Profile) []Paragraph {
			return LabeledText(LabelGender, p.Gender, SidebarSize)
		}},
		{Field: FieldSectorFocus, Shape: l.Sectors, Render: func(p *types.Profile) []Paragraph {
			return LabeledText(LabelSector, p.SectorFocus, SidebarSize)
		}},
		{Field: FieldLocation, Shape: l.Location, Render: func(p *types.Profile) []Paragraph {
			return LabeledText(LabelLocation, p.Location, SidebarSize)
		}},
		{Field: FieldExperienceSummary, Shape: l.Summary, Render: func(p *types.Profile) []Paragraph {
			return LabeledText(LabelExperience, p.ExperienceSummary, SidebarSize)
		}},
		{Field: FieldTitle, Shape: l.Title, Render: func(p *types.Profile) []Paragraph {
			return SimpleText(p.Title, TitleSize, true)
		}},
	}

	for i := range roleCount {
		bindings = append(bindings, Binding{
			Field: RoleField(i),
			Shape: l.RoleShape(i),
			Render: func(p *types.Profile) []Paragraph {
				return RoleBlock(p.Experience[i])
			},
		})
	}

	bindings = append(bindings, Binding{Field: FieldCoreStrengths, Shape: l.Footer, Render: func(p *types.Profile) []Paragraph {
		return FooterBlock(p.CoreStrengths)
	}})

	return bindings
}
