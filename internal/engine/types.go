package engine

import (
	stderrors "errors"
	"fmt"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
)

// Solver outcomes other than success
var (
	// ErrInfeasible means no assignment satisfies every constraint
	ErrInfeasible = stderrors.New("engine: model is infeasible")

	// ErrNotConverged means the search stopped before proving an optimum
	ErrNotConverged = stderrors.New("engine: solver did not converge")

	// ErrSessionClosed is returned by Solve after Close
	ErrSessionClosed = stderrors.New("engine: session closed")
)

// CostFunc maps a variable value to its objective contribution
type CostFunc func(value int) int

// Variable is a bounded integer decision variable
type Variable struct {
	Name  string
	Lower int
	Upper int
	// Initial seeds the search when warm start is enabled. Values outside the
	// bounds are ignored.
	Initial int
	Cost    CostFunc
	// Component names the objective component this variable's cost belongs to
	Component string
}

// Term is Coefficient * Variables[Variable]
type Term struct {
	Variable    int
	Coefficient int
}

// LinearConstraint requires sum(Terms) + Offset >= AtLeast
type LinearConstraint struct {
	Name    string
	Terms   []Term
	Offset  int
	AtLeast int
}

// BreadthConstraint requires the number of Variables above ZeroEpsilon to be
// at least the largest value among them.
type BreadthConstraint struct {
	Name        string
	Variables   []int
	ZeroEpsilon float64
}

// Model is an integer program with a separable objective
type Model struct {
	Variables   []Variable
	Constraints []LinearConstraint
	Breadth     *BreadthConstraint
}

// AddVariable appends a variable and returns its index
func (m *Model) AddVariable(v Variable) int {
	m.Variables = append(m.Variables, v)
	return len(m.Variables) - 1
}

// AddConstraint appends a linear constraint
func (m *Model) AddConstraint(c LinearConstraint) {
	m.Constraints = append(m.Constraints, c)
}

// Components lists objective component names in first-seen order
func (m *Model) Components() []string {
	seen := make(map[string]bool)
	var names []string
	for _, v := range m.Variables {
		if !seen[v.Component] {
			seen[v.Component] = true
			names = append(names, v.Component)
		}
	}
	return names
}

// Validate checks the model is well formed
func (m *Model) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(m.Variables) == 0 {
		vb.RequiredField("variables")
	}
	for i, v := range m.Variables {
		field := fmt.Sprintf("variables[%d]", i)
		if v.Lower > v.Upper {
			vb.Fieldf(field, "lower bound %d exceeds upper bound %d", v.Lower, v.Upper)
		}
		if v.Cost == nil {
			vb.Field(field, "cost function is required")
		}
	}
	for i, c := range m.Constraints {
		field := fmt.Sprintf("constraints[%d]", i)
		if len(c.Terms) == 0 {
			vb.Field(field, "at least one term is required")
		}
		for _, t := range c.Terms {
			if t.Variable < 0 || t.Variable >= len(m.Variables) {
				vb.Fieldf(field, "unknown variable %d", t.Variable)
			}
			if t.Coefficient == 0 {
				vb.Field(field, "coefficients must be non-zero")
			}
		}
	}
	if m.Breadth != nil {
		for _, idx := range m.Breadth.Variables {
			if idx < 0 || idx >= len(m.Variables) {
				vb.Fieldf("breadth", "unknown variable %d", idx)
			}
		}
	}

	return vb.Build()
}

// Options tune a single solve
type Options struct {
	// MaxNodes caps the search tree. Zero means the solver default.
	MaxNodes int
	// WarmStart tries each variable's Initial value first
	WarmStart bool
}

// Solution is an optimal assignment
type Solution struct {
	Values     []int
	Objective  float64
	Components map[string]float64
	Nodes      int
}

// NewSessionInput carries the model to solve
type NewSessionInput struct {
	Model *Model
}

// SolveInput carries per-solve options
type SolveInput struct {
	Options Options
}

// SolveOutput carries the optimal solution
type SolveOutput struct {
	Solution *Solution
}
