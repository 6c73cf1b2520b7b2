// Package validation runs data-quality checks on extracted profiles. The
// generator is instructed to anonymize and size its output; these checks
// verify that it did.
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/jonathan/profile-builder/internal/types"
)

// Violation types
const (
	TypeDateLiteral      = "date_literal"
	TypeSummaryLength    = "summary_length"
	TypeRoleCount        = "experience_count"
	TypeAchievementCount = "achievement_count"
	TypeStrengthCount    = "strength_count"
	TypeEmptyField       = "empty_field"
	TypeForbiddenPhrase  = "forbidden_phrase"
)

// Limits holds the size bounds requested from the generator
type Limits struct {
	MaxSummaryWords int
	MinRoles        int
	MaxRoles        int
	MinAchievements int
	MaxAchievements int
	MinStrengths    int
	MaxStrengths    int
}

// DefaultLimits returns the bounds written into the extraction schema
func DefaultLimits() Limits {
	return Limits{
		MaxSummaryWords: 10,
		MinRoles:        3,
		MaxRoles:        4,
		MinAchievements: 2,
		MaxAchievements: 3,
		MinStrengths:    3,
		MaxStrengths:    4,
	}
}

// Options configures CheckProfile
type Options struct {
	Limits Limits
	// ForbiddenPhrases are names that must not appear anywhere in the
	// profile, such as the candidate's former employers
	ForbiddenPhrases []string
}

// yearPattern matches four-digit years from 1900 to 2099
var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// requiredText are the scalar fields every profile should fill
var requiredText = []string{"title", "experience_summary", "sector_focus", "location"}

// CheckProfile runs every check against p and returns the findings as
// warnings. A nil profile yields no findings.
func CheckProfile(p *types.Profile, opts Options) *types.Violations {
	result := &types.Violations{Violations: []types.Violation{}}
	if p == nil {
		return result
	}
	if opts.Limits == (Limits{}) {
		opts.Limits = DefaultLimits()
	}

	fields := p.TextFields()
	result.Violations = append(result.Violations, checkEmpty(fields)...)
	result.Violations = append(result.Violations, checkDates(fields)...)
	result.Violations = append(result.Violations, checkSummary(p.ExperienceSummary, opts.Limits.MaxSummaryWords)...)
	result.Violations = append(result.Violations, checkCounts(p, opts.Limits)...)
	result.Violations = append(result.Violations, CheckForbiddenPhrases(fields, opts.ForbiddenPhrases)...)
	return result
}

// Enforce escalates every finding to an error when strict is set and returns
// an *Error if any error-severity finding remains.
func Enforce(v *types.Violations, strict bool) error {
	if v == nil {
		return nil
	}
	if strict {
		for i := range v.Violations {
			v.Violations[i].Severity = types.SeverityError
		}
	}
	if !v.HasErrors() {
		return nil
	}

	count := 0
	for _, violation := range v.Violations {
		if violation.Severity == types.SeverityError {
			count++
		}
	}
	return &Error{Message: "profile failed data-quality checks", Count: count}
}

func checkEmpty(fields []types.TextField) []types.Violation {
	var out []types.Violation
	for _, f := range fields {
		if !slices.Contains(requiredText, f.Path) || strings.TrimSpace(f.Text) != "" {
			continue
		}
		out = append(out, warning(TypeEmptyField, f.Path, "field is empty"))
	}
	return out
}

func checkDates(fields []types.TextField) []types.Violation {
	var out []types.Violation
	for _, f := range fields {
		if years := yearPattern.FindAllString(f.Text, -1); len(years) > 0 {
			out = append(out, warning(TypeDateLiteral, f.Path,
				fmt.Sprintf("contains literal year(s) %s", strings.Join(years, ", "))))
		}
	}
	return out
}

func checkSummary(summary string, maxWords int) []types.Violation {
	if maxWords <= 0 {
		return nil
	}
	if words := len(strings.Fields(summary)); words > maxWords {
		return []types.Violation{warning(TypeSummaryLength, "experience_summary",
			fmt.Sprintf("%d words, at most %d expected", words, maxWords))}
	}
	return nil
}

func checkCounts(p *types.Profile, l Limits) []types.Violation {
	var out []types.Violation
	if v, ok := checkRange(TypeRoleCount, "experience", len(p.Experience), l.MinRoles, l.MaxRoles); !ok {
		out = append(out, v)
	}
	for i, role := range p.Experience {
		field := fmt.Sprintf("experience[%d].achievements", i)
		if v, ok := checkRange(TypeAchievementCount, field, len(role.Achievements), l.MinAchievements, l.MaxAchievements); !ok {
			out = append(out, v)
		}
	}
	if v, ok := checkRange(TypeStrengthCount, "core_strengths", len(p.CoreStrengths), l.MinStrengths, l.MaxStrengths); !ok {
		out = append(out, v)
	}
	return out
}

func checkRange(kind, field string, n, lo, hi int) (types.Violation, bool) {
	if n >= lo && n <= hi {
		return types.Violation{}, true
	}
	return warning(kind, field, fmt.Sprintf("%d item(s), expected %d to %d", n, lo, hi)), false
}

func warning(kind, field, details string) types.Violation {
	return types.Violation{
		Type:     kind,
		Severity: types.SeverityWarning,
		Field:    field,
		Details:  details,
	}
}
