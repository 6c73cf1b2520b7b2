// Package steps provides step definitions and input checks for the profile
// pipeline.
package steps

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	dbpkg "github.com/jonathan/profile-builder/internal/db"
)

// Artifact names a file handed between steps
type Artifact string

// Pipeline artifacts
const (
	ArtifactResume   Artifact = "resume"
	ArtifactProfile  Artifact = "profile"
	ArtifactTemplate Artifact = "template"
	ArtifactSlide    Artifact = "slide"
	ArtifactSQL      Artifact = "sql"
)

// Step names
const (
	StepExtract     = "extract"
	StepValidate    = "validate"
	StepRenderSlide = "render_slide"
	StepGenerateSQL = "generate_sql"
	StepPublish     = "publish"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name string
	// Label is the progress prefix, e.g. "1/3" or "1a/3"
	Label string
	// Record is the artifact step stored for a run, empty if none
	Record  string
	Inputs  []Artifact
	Outputs []Artifact
	// Optional steps only run when requested
	Optional bool
}

// Order is the fixed execution order
var Order = []string{StepExtract, StepValidate, StepRenderSlide, StepGenerateSQL, StepPublish}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	StepExtract: {
		Name:    StepExtract,
		Label:   "1/3",
		Record:  dbpkg.StepProfile,
		Inputs:  []Artifact{ArtifactResume},
		Outputs: []Artifact{ArtifactProfile},
	},
	StepValidate: {
		Name:   StepValidate,
		Label:  "1a/3",
		Record: dbpkg.StepViolations,
		Inputs: []Artifact{ArtifactProfile},
	},
	StepRenderSlide: {
		Name:    StepRenderSlide,
		Label:   "2/3",
		Record:  dbpkg.StepRenderReport,
		Inputs:  []Artifact{ArtifactProfile, ArtifactTemplate},
		Outputs: []Artifact{ArtifactSlide},
	},
	StepGenerateSQL: {
		Name:    StepGenerateSQL,
		Label:   "3/3",
		Record:  dbpkg.StepSQL,
		Inputs:  []Artifact{ArtifactProfile},
		Outputs: []Artifact{ArtifactSQL},
	},
	StepPublish: {
		Name:     StepPublish,
		Label:    "3a/3",
		Inputs:   []Artifact{ArtifactProfile},
		Optional: true,
	},
}

// DependencyError is returned when a step's input artifacts are unavailable
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s has missing dependencies: %s", e.Step, strings.Join(e.MissingDependencies, ", "))
}

// Plan returns the steps to execute, in order, starting at from (the first
// step when empty). Optional steps are included only when listed in with.
func Plan(from string, with ...string) ([]StepDefinition, error) {
	if from == "" {
		from = Order[0]
	}
	if _, ok := StepRegistry[from]; !ok {
		return nil, fmt.Errorf("unknown step: %s", from)
	}
	for _, name := range with {
		if _, ok := StepRegistry[name]; !ok {
			return nil, fmt.Errorf("unknown step: %s", name)
		}
	}

	var plan []StepDefinition
	started := false
	for _, name := range Order {
		if name == from {
			started = true
		}
		if !started {
			continue
		}
		def := StepRegistry[name]
		if def.Optional && !slices.Contains(with, name) {
			continue
		}
		plan = append(plan, def)
	}
	if len(plan) == 0 {
		return nil, fmt.Errorf("nothing to run from step %s: it is optional and was not requested", from)
	}
	return plan, nil
}

// ValidateDependencies checks that every input of def is either produced by
// an earlier step (listed in produced) or exists on disk at its path.
func ValidateDependencies(def StepDefinition, paths map[Artifact]string, produced map[Artifact]bool) error {
	var missing []string
	for _, input := range def.Inputs {
		if produced[input] {
			continue
		}
		path := paths[input]
		if path == "" {
			missing = append(missing, string(input))
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				missing = append(missing, fmt.Sprintf("%s (%s)", input, path))
				continue
			}
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Step: def.Name, MissingDependencies: missing}
	}
	return nil
}
