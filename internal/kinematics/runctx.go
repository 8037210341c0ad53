package kinematics

import (
	"time"

	"github.com/google/uuid"
)

// RunContext identifies one analysis run for reporting collaborators. It
// replaces the legacy process-wide output-folder bookkeeping: the caller
// creates one per run and passes it explicitly, so no global state exists
// between concurrent runs on different datasets.
type RunContext struct {
	RunID     string
	Label     string
	OutputDir string
	StartedAt time.Time
}

// NewRunContext creates a run context with a fresh unique ID.
func NewRunContext(label, outputDir string) *RunContext {
	return &RunContext{
		RunID:     uuid.New().String(),
		Label:     label,
		OutputDir: outputDir,
		StartedAt: time.Now(),
	}
}
