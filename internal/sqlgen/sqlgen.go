// Package sqlgen renders a Profile as SQL INSERT statements for the
// executives, executive_highlights and executive_strengths tables.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/jonathan/profile-builder/internal/types"
)

// Placeholder stands in for the executives id until the operator replaces it
const Placeholder = "[EXECUTIVE_ID_PLACEHOLDER]"

// ManualIDNote follows the executives insert in every script
const ManualIDNote = "-- NOTE: The ID below must be updated manually after the first INSERT executes and returns the new ID."

const executiveInsert = `
INSERT INTO executives (title, gender, experience, sector_focus, location)
VALUES (
    '%s',
    '%s',
    '%s',
    '%s',
    '%s'
);

%s
`

const highlightInsert = `
INSERT INTO executive_highlights (executive_id, position_title, company_description, details, display_order)
VALUES
(%s, '%s', '%s',
'%s',
%d);
`

const strengthInsert = `
INSERT INTO executive_strengths (executive_id, strength_description, display_order)
VALUES
(%s, '%s', %d);
`

// Options controls the foreign-key token
type Options struct {
	// Placeholder replaces the default token; ignored when ExecutiveID is set
	Placeholder string
	// ExecutiveID is a known executives id written in place of the token
	ExecutiveID string
}

// Escape doubles every single quote so s can sit inside a SQL string literal
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Generate returns the script for p: one executives insert followed by the
// manual-id note, one highlight insert per role and one strength insert per
// core strength, in profile order with 1-based display_order values. The
// script has no leading or trailing whitespace.
func Generate(p *types.Profile, opts Options) string {
	if p == nil {
		p = &types.Profile{}
	}
	fk := foreignKey(opts)

	var highlights strings.Builder
	for i, role := range p.Experience {
		fmt.Fprintf(&highlights, highlightInsert,
			fk, Escape(role.JobTitle), Escape(role.Description), Escape(role.Details()), i+1)
	}

	var strengths strings.Builder
	for i, strength := range p.CoreStrengths {
		fmt.Fprintf(&strengths, strengthInsert, fk, Escape(strength), i+1)
	}

	executive := fmt.Sprintf(executiveInsert,
		Escape(p.Title),
		Escape(p.Gender),
		Escape(p.ExperienceSummary),
		Escape(p.SectorFocus),
		Escape(p.Location),
		ManualIDNote,
	)

	script := strings.Join([]string{executive, highlights.String(), strengths.String()}, "\n")
	return strings.TrimSpace(script)
}

// CountStatements returns the number of INSERT statements in script
func CountStatements(script string) int {
	n := 0
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(line, "INSERT INTO ") {
			n++
		}
	}
	return n
}

// HasPlaceholder reports whether script still needs a manual id
func HasPlaceholder(script, placeholder string) bool {
	if placeholder == "" {
		placeholder = Placeholder
	}
	return strings.Contains(script, placeholder)
}

func foreignKey(opts Options) string {
	if opts.ExecutiveID != "" {
		return opts.ExecutiveID
	}
	if opts.Placeholder != "" {
		return opts.Placeholder
	}
	return Placeholder
}
