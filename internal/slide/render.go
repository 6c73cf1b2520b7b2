package slide

import (
	"strings"

	"github.com/jonathan/profile-builder/internal/types"
)

// Report describes what Render changed
type Report struct {
	Accent        Color
	AccentFilled  int
	Filled        []string
	Missing       []string
	RolesRendered int
	RolesDropped  int
}

// Render overwrites the placeholders of s with the content of p. Placeholders
// absent from the template are recorded in the report and skipped. Roles are
// matched to role slots by position, so only min(roles, slots) are filled.
func Render(s Slide, p *types.Profile, layout Layout) (*Report, error) {
	if s == nil {
		return nil, &RenderError{Message: "slide is nil"}
	}
	if p == nil {
		return nil, &RenderError{Message: "profile is nil"}
	}
	p = p.Normalized()

	shapes := s.Shapes()
	report := &Report{
		Accent:  AccentColor(p),
		Filled:  []string{},
		Missing: []string{},
	}

	for _, name := range layout.AccentShapes {
		shape := Find(shapes, name)
		if shape == nil {
			report.Missing = append(report.Missing, name)
			continue
		}
		n, err := ApplyAccent(shape, report.Accent)
		if err != nil {
			return nil, err
		}
		report.AccentFilled += n
	}

	for _, b := range layout.Bindings(len(p.Experience)) {
		shape := Find(shapes, b.Shape)
		if shape == nil {
			report.Missing = append(report.Missing, b.Shape)
			if isRole(b.Field) {
				report.RolesDropped++
			}
			continue
		}
		if err := WriteText(shape, b.Render(p)); err != nil {
			return nil, err
		}
		report.Filled = append(report.Filled, b.Shape)
		if isRole(b.Field) {
			report.RolesRendered++
		}
	}

	return report, nil
}

func isRole(f Field) bool {
	return strings.HasPrefix(string(f), "experience[")
}
