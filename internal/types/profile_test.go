package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_UnmarshalAndNormalize(t *testing.T) {
	raw := `{
		"title": "Fractional CFO",
		"gender": "Female",
		"experience": [{"job_title": "CFO", "description": "Leading SaaS Provider"}]
	}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	p.Normalize()

	assert.Equal(t, "Fractional CFO", p.Title)
	assert.Equal(t, "", p.Location)
	assert.NotNil(t, p.CoreStrengths)
	assert.Empty(t, p.CoreStrengths)
	require.Len(t, p.Experience, 1)
	assert.NotNil(t, p.Experience[0].Achievements)
	assert.Empty(t, p.Experience[0].Achievements)
}

func TestProfile_NormalizeEmpty(t *testing.T) {
	var p Profile
	p.Normalize()
	assert.NotNil(t, p.Experience)
	assert.NotNil(t, p.CoreStrengths)
}

func TestProfile_NormalizedLeavesOriginal(t *testing.T) {
	p := &Profile{Title: "X", Experience: []Role{{JobTitle: "A"}}}
	n := p.Normalized()

	assert.Nil(t, p.CoreStrengths)
	assert.Nil(t, p.Experience[0].Achievements)
	assert.NotNil(t, n.CoreStrengths)
	assert.NotNil(t, n.Experience[0].Achievements)

	n.Experience[0].JobTitle = "B"
	assert.Equal(t, "A", p.Experience[0].JobTitle)
}

func TestProfile_IsMale(t *testing.T) {
	tests := []struct {
		gender string
		want   bool
	}{
		{"Male", true},
		{"male", true},
		{" MALE ", true},
		{"\tmale\n", true},
		{"Female", false},
		{"", false},
		{"Other", false},
		{"males", false},
	}

	for _, tt := range tests {
		t.Run(tt.gender, func(t *testing.T) {
			p := Profile{Gender: tt.gender}
			assert.Equal(t, tt.want, p.IsMale())
		})
	}
}

func TestProfile_TextFields(t *testing.T) {
	p := Profile{
		Title: "T",
		Experience: []Role{
			{JobTitle: "A", Description: "d", Achievements: []string{"x", "y"}},
		},
		CoreStrengths: []string{"s1"},
	}

	fields := p.TextFields()
	require.Len(t, fields, 10)
	assert.Equal(t, TextField{"title", "T"}, fields[0])
	assert.Equal(t, TextField{"location", ""}, fields[4])
	assert.Equal(t, TextField{"experience[0].job_title", "A"}, fields[5])
	assert.Equal(t, TextField{"experience[0].description", "d"}, fields[6])
	assert.Equal(t, TextField{"experience[0].achievements[1]", "y"}, fields[8])
	assert.Equal(t, TextField{"core_strengths[0]", "s1"}, fields[9])
}

func TestViolations_HasErrors(t *testing.T) {
	v := Violations{Violations: []Violation{{Severity: SeverityWarning}}}
	assert.False(t, v.HasErrors())

	v.Violations = append(v.Violations, Violation{Severity: SeverityError})
	assert.True(t, v.HasErrors())
}

func TestRole_Details(t *testing.T) {
	r := Role{Achievements: []string{"x", "y"}}
	assert.Equal(t, `x\ny`, r.Details())
	assert.Len(t, r.Details(), 4)
	assert.Equal(t, "", Role{}.Details())

	assert.Equal(t, []string{"x", "y"}, SplitDetails(r.Details()))
	assert.Equal(t, []string{}, SplitDetails(""))
	assert.Equal(t, []string{"line one\nstill one"}, SplitDetails("line one\nstill one"))
}
