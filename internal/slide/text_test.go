package slide

import (
	"testing"

	"github.com/jonathan/profile-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleText(t *testing.T) {
	paragraphs := SimpleText("Fractional CFO", TitleSize, true)

	require.Len(t, paragraphs, 1)
	require.Len(t, paragraphs[0].Runs, 1)
	r := paragraphs[0].Runs[0]
	assert.Equal(t, "Fractional CFO", r.Text)
	assert.True(t, r.Bold)
	assert.Equal(t, float64(TitleSize), r.Size)
	assert.Equal(t, ColorWhite, r.Color)
}

func TestLabeledText(t *testing.T) {
	paragraphs := LabeledText("Location:", "EU", SidebarSize)

	require.Len(t, paragraphs, 1)
	runs := paragraphs[0].Runs
	require.Len(t, runs, 2)
	assert.Equal(t, "Location: ", runs[0].Text)
	assert.True(t, runs[0].Bold)
	assert.Equal(t, "EU", runs[1].Text)
	assert.False(t, runs[1].Bold)
	for _, r := range runs {
		assert.Equal(t, float64(SidebarSize), r.Size)
		assert.Equal(t, ColorWhite, r.Color)
	}
	assert.Equal(t, "Location: EU", paragraphs[0].Text())
}

func TestRoleBlock_WithAchievements(t *testing.T) {
	role := types.Role{
		JobTitle:     "Group HR Director",
		Description:  "Executive at a large industrial conglomerate",
		Achievements: []string{"Directed HR across 27 entities", "Negotiated 7 labour agreements"},
	}

	paragraphs := RoleBlock(role)
	require.Len(t, paragraphs, 3)

	header := paragraphs[0].Runs
	require.Len(t, header, 2)
	assert.Equal(t, "Group HR Director – ", header[0].Text)
	assert.True(t, header[0].Bold)
	assert.Equal(t, float64(RoleTitleSize), header[0].Size)
	assert.Equal(t, "Executive at a large industrial conglomerate", header[1].Text)
	assert.False(t, header[1].Bold)
	assert.Equal(t, float64(RoleDetailsSize), header[1].Size)

	for i, p := range paragraphs[1:] {
		require.Len(t, p.Runs, 2)
		assert.Equal(t, BulletGlyph, p.Runs[0].Text)
		assert.Equal(t, role.Achievements[i], p.Runs[1].Text)
		assert.Equal(t, float64(BulletSize), p.Runs[1].Size)
		assert.Equal(t, 0, p.Level)
	}
}

func TestRoleBlock_NoAchievements(t *testing.T) {
	paragraphs := RoleBlock(types.Role{JobTitle: "A", Description: "d1"})

	require.Len(t, paragraphs, 1)
	assert.Len(t, paragraphs[0].Runs, 2)
	assert.Equal(t, "A – d1", paragraphs[0].Text())
}

func TestFooterBlock_Split(t *testing.T) {
	tests := []struct {
		name      string
		strengths []string
		wantLines []string
	}{
		{
			name:      "empty",
			strengths: nil,
			wantLines: []string{FooterLabel},
		},
		{
			name:      "one",
			strengths: []string{"s1"},
			wantLines: []string{FooterLabel, "-> s1"},
		},
		{
			name:      "two",
			strengths: []string{"s1", "s2"},
			wantLines: []string{FooterLabel, "-> s1", "-> s2"},
		},
		{
			name:      "three",
			strengths: []string{"s1", "s2", "s3"},
			wantLines: []string{FooterLabel, "-> s1, s2", "-> s3"},
		},
		{
			name:      "four",
			strengths: []string{"s1", "s2", "s3", "s4"},
			wantLines: []string{FooterLabel, "-> s1, s2", "-> s3, s4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paragraphs := FooterBlock(tt.strengths)
			lines := make([]string, len(paragraphs))
			for i, p := range paragraphs {
				lines[i] = p.Text()
			}
			assert.Equal(t, tt.wantLines, lines)
			assert.True(t, paragraphs[0].Runs[0].Bold)
		})
	}
}

func TestSplitHalves(t *testing.T) {
	for n := 0; n <= 9; n++ {
		items := make([]string, n)
		first, second := SplitHalves(items)
		assert.Equal(t, (n+1)/2, len(first), "n=%d", n)
		assert.Equal(t, n/2, len(second), "n=%d", n)
	}
}

func TestWriteText(t *testing.T) {
	s := leaf("box")
	paragraphs := SimpleText("hello", 12, false)

	require.NoError(t, WriteText(s, paragraphs))
	assert.Equal(t, paragraphs, s.paragraphs)

	assert.NoError(t, WriteText(nil, paragraphs))

	err := WriteText(&noTextShape{name: "pic"}, paragraphs)
	var templateErr *TemplateError
	require.ErrorAs(t, err, &templateErr)
	assert.Equal(t, "pic", templateErr.Shape)
}
