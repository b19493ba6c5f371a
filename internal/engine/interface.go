// Package engine defines the contract between the XP optimizer and the
// integer solver that finds the cheapest ratings.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/xp-optimizer/internal/engine Solver,Session

import (
	"context"
)

// Solver opens solve sessions for integer models
type Solver interface {
	// NewSession validates the model and reserves whatever the solve needs.
	// Callers must Close the session on every path.
	NewSession(ctx context.Context, input *NewSessionInput) (Session, error)
}

// Session solves one model once. Sessions are not safe for concurrent use.
type Session interface {
	Solve(ctx context.Context, input *SolveInput) (*SolveOutput, error)
	Close() error
}
