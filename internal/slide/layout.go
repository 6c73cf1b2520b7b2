package slide

import "fmt"

// Layout names the placeholder shapes of a template
type Layout struct {
	Title        string   `json:"title,omitempty"`
	AccentShapes []string `json:"accent_shapes,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	Sectors      string   `json:"sectors,omitempty"`
	Location     string   `json:"location,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	RolePrefix   string   `json:"role_prefix,omitempty"`
	Footer       string   `json:"footer,omitempty"`
}

// DefaultLayout returns the shape names used by the stock profile template
func DefaultLayout() Layout {
	return Layout{
		Title:        "header_title",
		AccentShapes: []string{"gender_box_main", "gender_box_1", "gender_box_2", "gender_box_3", "gender_box_4"},
		Gender:       "sidebar_gender_text",
		Sectors:      "sidebar_sectors",
		Location:     "sidebar_location",
		Summary:      "sidebar_summary",
		RolePrefix:   "role_",
		Footer:       "footer_strengths",
	}
}

// MergeWithDefaults returns a copy with empty names filled from DefaultLayout
func (l Layout) MergeWithDefaults() Layout {
	d := DefaultLayout()
	if l.Title == "" {
		l.Title = d.Title
	}
	if len(l.AccentShapes) == 0 {
		l.AccentShapes = d.AccentShapes
	}
	if l.Gender == "" {
		l.Gender = d.Gender
	}
	if l.Sectors == "" {
		l.Sectors = d.Sectors
	}
	if l.Location == "" {
		l.Location = d.Location
	}
	if l.Summary == "" {
		l.Summary = d.Summary
	}
	if l.RolePrefix == "" {
		l.RolePrefix = d.RolePrefix
	}
	if l.Footer == "" {
		l.Footer = d.Footer
	}
	return l
}

// RoleShape returns the name of the role slot at the 0-based index i
func (l Layout) RoleShape(i int) string {
	return fmt.Sprintf("%s%d", l.RolePrefix, i+1)
}
