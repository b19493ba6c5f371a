// Package branchbound is an exact depth-first branch-and-bound solver for
// engine models.
//
// Linear constraints are propagated as intervals at every node. The lower
// bound sums each variable's cheapest value in its current domain and adds
// the cheapest way to cover the breadth constraint's deficit. Variables that
// appear in no constraint are fixed at their cheapest value up front.
package branchbound

import (
	"context"

	"github.com/KirkDiggler/xp-optimizer/internal/engine"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
)

// DefaultMaxNodes caps the search tree when neither the config nor the solve
// options set a limit.
const DefaultMaxNodes = 5_000_000

// Config configures the solver
type Config struct {
	// MaxNodes applies when a solve does not set its own cap
	MaxNodes int
}

// Validate checks the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.MaxNodes < 0 {
		vb.Field("max_nodes", "must not be negative")
	}
	return vb.Build()
}

// Solver opens branch-and-bound sessions
type Solver struct {
	maxNodes int
}

// New creates a solver
func New(cfg *Config) (*Solver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	maxNodes := cfg.MaxNodes
	if maxNodes == 0 {
		maxNodes = DefaultMaxNodes
	}

	return &Solver{maxNodes: maxNodes}, nil
}

var _ engine.Solver = (*Solver)(nil)

// NewSession validates the model and precomputes its cost tables
func (s *Solver) NewSession(ctx context.Context, input *engine.NewSessionInput) (engine.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input == nil || input.Model == nil {
		return nil, errors.InvalidArgument("model is required")
	}
	if err := input.Model.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	return newSession(input.Model, s.maxNodes), nil
}
