package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/profile-builder/internal/types"
)

// Run represents a pipeline run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	Error       *string    `json:"error,omitempty"`
	ExecutiveID *int64     `json:"executive_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status values
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Artifact steps recorded for a run
const (
	StepResumeText   = "resume_text"
	StepResumeMeta   = "resume_metadata"
	StepProfile      = "profile"
	StepViolations   = "violations"
	StepRenderReport = "render_report"
	StepSQL          = "sql"
)

// Artifact represents an artifact record
type Artifact struct {
	ID          uuid.UUID       `json:"id"`
	RunID       uuid.UUID       `json:"run_id"`
	Step        string          `json:"step"`
	Content     json.RawMessage `json:"content,omitempty"`
	TextContent string          `json:"text_content,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Executive is a published profile read back from the executives table and
// its highlight and strength rows
type Executive struct {
	ID        int64         `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Profile   types.Profile `json:"profile"`
}
