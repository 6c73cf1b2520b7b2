// Package types provides type definitions for structured data used throughout the profile-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"slices"
	"strings"
)

// Profile is the anonymized, structured representation of one résumé.
// It is produced once by the extractor and read by the slide and SQL stages.
type Profile struct {
	Title             string   `json:"title"`
	Gender            string   `json:"gender"`
	ExperienceSummary string   `json:"experience_summary"`
	SectorFocus       string   `json:"sector_focus"`
	Location          string   `json:"location"`
	Experience        []Role   `json:"experience"`
	CoreStrengths     []string `json:"core_strengths"`
}

// Role is one entry of a profile's experience list
type Role struct {
	JobTitle     string   `json:"job_title"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// DetailsSeparator joins a role's achievements into one stored column. It is
// the two characters backslash and n, not a newline.
const DetailsSeparator = `\n`

// Details returns the achievements joined with DetailsSeparator
func (r Role) Details() string {
	return strings.Join(r.Achievements, DetailsSeparator)
}

// SplitDetails reverses Details. An empty string yields no achievements.
func SplitDetails(details string) []string {
	if details == "" {
		return []string{}
	}
	return strings.Split(details, DetailsSeparator)
}

// Normalize replaces absent sequences with empty ones so downstream stages
// can range over them without nil checks. Missing scalars already decode as "".
func (p *Profile) Normalize() {
	if p.Experience == nil {
		p.Experience = []Role{}
	}
	if p.CoreStrengths == nil {
		p.CoreStrengths = []string{}
	}
	for i := range p.Experience {
		if p.Experience[i].Achievements == nil {
			p.Experience[i].Achievements = []string{}
		}
	}
}

// Normalized returns a normalized deep copy of p and leaves p untouched
func (p *Profile) Normalized() *Profile {
	c := *p
	if p.Experience != nil {
		c.Experience = make([]Role, len(p.Experience))
		for i, role := range p.Experience {
			role.Achievements = slices.Clone(role.Achievements)
			c.Experience[i] = role
		}
	}
	c.CoreStrengths = slices.Clone(p.CoreStrengths)
	c.Normalize()
	return &c
}

// IsMale reports whether the gender field reads "male" ignoring case and
// surrounding whitespace. Everything else, including "", is not male.
func (p *Profile) IsMale() bool {
	return strings.EqualFold(strings.TrimSpace(p.Gender), "male")
}

// TextField is one free-text value of a profile and its JSON path
type TextField struct {
	Path string
	Text string
}

// TextFields returns every free-text value of the profile in document order.
// Used by checks that scan all generated text.
func (p *Profile) TextFields() []TextField {
	fields := []TextField{
		{"title", p.Title},
		{"gender", p.Gender},
		{"experience_summary", p.ExperienceSummary},
		{"sector_focus", p.SectorFocus},
		{"location", p.Location},
	}
	for i, role := range p.Experience {
		fields = append(fields,
			TextField{rolePath(i, "job_title"), role.JobTitle},
			TextField{rolePath(i, "description"), role.Description},
		)
		for j, a := range role.Achievements {
			fields = append(fields, TextField{fmt.Sprintf("experience[%d].achievements[%d]", i, j), a})
		}
	}
	for i, s := range p.CoreStrengths {
		fields = append(fields, TextField{fmt.Sprintf("core_strengths[%d]", i), s})
	}
	return fields
}

func rolePath(i int, field string) string {
	return fmt.Sprintf("experience[%d].%s", i, field)
}
