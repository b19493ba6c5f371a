package optimization

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
)

// RunState tracks an optimization run through its lifecycle
type RunState string

// Run states. A run only moves forward; Failed is terminal.
const (
	RunStateBuilt    RunState = "built"
	RunStateSolved   RunState = "solved"
	RunStateCompiled RunState = "compiled"
	RunStateFailed   RunState = "failed"
)

// Event types published for run transitions
const (
	EventRunBuilt    = "optimization.built"
	EventRunSolved   = "optimization.solved"
	EventRunCompiled = "optimization.compiled"
	EventRunFailed   = "optimization.failed"
)

// EntityTypeRun is the entity type reported by Run
const EntityTypeRun = "optimization_run"

// Run is one pass of validate, build, solve and compile. It is the source
// entity of every run event.
type Run struct {
	ID        string
	Tier      wrathglory.Tier
	Targets   map[string]int
	State     RunState
	Nodes     int
	Cached    bool
	Result    *Result
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Compile-time check that runs can be event sources
var _ core.Entity = (*Run)(nil)

// GetID returns the run ID
func (r *Run) GetID() string {
	return r.ID
}

// GetType returns the entity type for rpg-toolkit
func (r *Run) GetType() string {
	return EntityTypeRun
}
