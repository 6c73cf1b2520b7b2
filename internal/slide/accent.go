package slide

import "github.com/jonathan/profile-builder/internal/types"

// AccentColor picks blue for a male profile and purple for anything else
func AccentColor(p *types.Profile) Color {
	if p != nil && p.IsMale() {
		return ColorBlue
	}
	return ColorPurple
}

// ApplyAccent fills shape with c. Groups are filled member by member; lines and
// text boxes are skipped, as are shapes that cannot take a fill. A nil shape is
// a no-op. It returns the number of shapes actually filled.
func ApplyAccent(shape Shape, c Color) (int, error) {
	if shape == nil {
		return 0, nil
	}

	switch shape.Kind() {
	case KindGroup:
		total := 0
		for _, child := range shape.Children() {
			n, err := ApplyAccent(child, c)
			total += n
			if err != nil {
				return total, err
			}
		}
		return total, nil
	case KindLine, KindTextBox:
		return 0, nil
	}

	filler, ok := shape.(Filler)
	if !ok {
		return 0, nil
	}
	if err := filler.SetSolidFill(c); err != nil {
		return 0, &TemplateError{Shape: shape.Name(), Message: "failed to set fill", Cause: err}
	}
	return 1, nil
}
