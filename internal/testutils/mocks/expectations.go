// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/xp-optimizer/internal/engine"
	enginemock "github.com/KirkDiggler/xp-optimizer/internal/engine/mock"
)

// ExpectSolve sets up one session that returns the given solution or error
// and must be closed.
func ExpectSolve(
	mockSolver *enginemock.MockSolver, mockSession *enginemock.MockSession,
	solution *engine.Solution, err error,
) *gomock.Call {
	mockSolver.EXPECT().
		NewSession(gomock.Any(), gomock.Any()).
		Return(mockSession, nil)

	var out *engine.SolveOutput
	if err == nil {
		out = &engine.SolveOutput{Solution: solution}
	}
	solve := mockSession.EXPECT().
		Solve(gomock.Any(), gomock.Any()).
		Return(out, err)

	mockSession.EXPECT().Close().Return(nil).After(solve)
	return solve
}

// ExpectSessionError sets up a solver that refuses to open a session
func ExpectSessionError(mockSolver *enginemock.MockSolver, err error) *gomock.Call {
	return mockSolver.EXPECT().
		NewSession(gomock.Any(), gomock.Any()).
		Return(nil, err)
}
