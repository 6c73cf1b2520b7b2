package extraction

import (
	"github.com/jonathan/profile-builder/internal/llm"
	"github.com/jonathan/profile-builder/internal/prompts"
)

const promptFile = "extraction.json"

// Profile field names in the order the model is asked to emit them
var profileFields = []string{
	"title", "gender", "experience_summary", "sector_focus", "location", "experience", "core_strengths",
}

var roleFields = []string{"job_title", "description", "achievements"}

// SystemInstruction returns the anonymization instruction sent with every call
func SystemInstruction() string {
	return prompts.MustGet(promptFile, "system-instruction")
}

// ProfileSchema returns the response schema for one profile. Field
// descriptions carry the word limits, list sizes and anonymization rules the
// generator must follow.
func ProfileSchema() *llm.Schema {
	str := func(key string) *llm.Schema {
		return &llm.Schema{Type: llm.TypeString, Description: describe(key)}
	}

	role := &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"job_title":   str("field-job-title"),
			"description": str("field-description"),
			"achievements": {
				Type:        llm.TypeArray,
				Description: describe("field-achievements"),
				Items:       &llm.Schema{Type: llm.TypeString},
			},
		},
		PropertyOrder: roleFields,
		Required:      roleFields,
	}

	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"title":              str("field-title"),
			"gender":             str("field-gender"),
			"experience_summary": str("field-experience-summary"),
			"sector_focus":       str("field-sector-focus"),
			"location":           str("field-location"),
			"experience": {
				Type:        llm.TypeArray,
				Description: describe("field-experience"),
				Items:       role,
			},
			"core_strengths": {
				Type:        llm.TypeArray,
				Description: describe("field-core-strengths"),
				Items:       &llm.Schema{Type: llm.TypeString},
			},
		},
		PropertyOrder: profileFields,
		Required:      profileFields,
	}
}

func describe(key string) string {
	return prompts.MustGet(promptFile, key)
}
