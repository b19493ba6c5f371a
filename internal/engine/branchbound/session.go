package branchbound

import (
	"context"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/xp-optimizer/internal/engine"
)

// cancelCheckInterval is how many nodes pass between context checks
const cancelCheckInterval = 1024

type session struct {
	model           *engine.Model
	defaultMaxNodes int

	costs     [][]int
	free      []bool
	inBreadth []bool
	order     []int
	eps       float64

	loStack  [][]int
	hiStack  [][]int
	valStack [][]int
	incBuf   []int

	best     []int
	bestCost int
	hasBest  bool
	nodes    int
	maxNodes int
	warm     bool
	ctx      context.Context
	err      error
	closed   bool
}

var _ engine.Session = (*session)(nil)

func newSession(model *engine.Model, defaultMaxNodes int) *session {
	n := len(model.Variables)
	s := &session{
		model:           model,
		defaultMaxNodes: defaultMaxNodes,
		costs:           make([][]int, n),
		free:            make([]bool, n),
		inBreadth:       make([]bool, n),
		best:            make([]int, n),
	}

	for i, v := range model.Variables {
		table := make([]int, v.Upper-v.Lower+1)
		for j := range table {
			table[j] = v.Cost(v.Lower + j)
		}
		s.costs[i] = table
	}

	degree := make([]int, n)
	for _, c := range model.Constraints {
		for _, t := range c.Terms {
			degree[t.Variable]++
		}
	}
	if model.Breadth != nil {
		s.eps = model.Breadth.ZeroEpsilon
		for _, idx := range model.Breadth.Variables {
			s.inBreadth[idx] = true
		}
	}

	for i := range model.Variables {
		s.free[i] = degree[i] == 0 && !s.inBreadth[i]
		if !s.free[i] {
			s.order = append(s.order, i)
		}
	}
	// most constrained first, declaration order otherwise
	sort.SliceStable(s.order, func(a, b int) bool {
		return degree[s.order[a]] > degree[s.order[b]]
	})

	depth := len(s.order) + 1
	s.loStack = make([][]int, depth)
	s.hiStack = make([][]int, depth)
	s.valStack = make([][]int, depth)
	for d := 0; d < depth; d++ {
		s.loStack[d] = make([]int, n)
		s.hiStack[d] = make([]int, n)
	}
	s.incBuf = make([]int, 0, n)

	return s
}

// Solve runs the search to completion or until the node cap is reached
func (s *session) Solve(ctx context.Context, input *engine.SolveInput) (*engine.SolveOutput, error) {
	if s.closed {
		return nil, engine.ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var opts engine.Options
	if input != nil {
		opts = input.Options
	}
	s.maxNodes = opts.MaxNodes
	if s.maxNodes <= 0 {
		s.maxNodes = s.defaultMaxNodes
	}
	s.warm = opts.WarmStart
	s.ctx = ctx
	s.err = nil
	s.nodes = 0
	s.hasBest = false
	defer func() { s.ctx = nil }()

	lo, hi := s.loStack[0], s.hiStack[0]
	for i, v := range s.model.Variables {
		lo[i], hi[i] = v.Lower, v.Upper
		if s.free[i] {
			value := s.cheapestValue(i)
			lo[i], hi[i] = value, value
		}
	}

	s.search(0)

	slog.Debug("branch and bound finished",
		"nodes", s.nodes,
		"variables", len(s.model.Variables),
		"branched", len(s.order),
		"found", s.hasBest)

	if s.err != nil {
		return nil, s.err
	}
	if !s.hasBest {
		return nil, engine.ErrInfeasible
	}

	return &engine.SolveOutput{Solution: s.solution()}, nil
}

// Close releases the session's buffers. Further solves fail.
func (s *session) Close() error {
	s.closed = true
	s.costs = nil
	s.loStack = nil
	s.hiStack = nil
	s.valStack = nil
	s.incBuf = nil
	return nil
}

func (s *session) search(depth int) {
	s.nodes++
	if s.nodes > s.maxNodes {
		s.err = engine.ErrNotConverged
		return
	}
	if s.nodes%cancelCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return
		}
	}

	lo, hi := s.loStack[depth], s.hiStack[depth]
	if !s.propagate(lo, hi) {
		return
	}
	lb, ok := s.lowerBound(lo, hi)
	if !ok || (s.hasBest && lb >= s.bestCost) {
		return
	}

	if depth == len(s.order) {
		copy(s.best, lo)
		s.bestCost = lb
		s.hasBest = true
		return
	}

	k := s.order[depth]
	values := s.orderedValues(depth, k, lo[k], hi[k])
	nextLo, nextHi := s.loStack[depth+1], s.hiStack[depth+1]
	for _, v := range values {
		copy(nextLo, lo)
		copy(nextHi, hi)
		nextLo[k], nextHi[k] = v, v
		s.search(depth + 1)
		if s.err != nil {
			return
		}
	}
}

// propagate tightens bounds until every linear constraint is consistent with
// the domains. It reports false when a domain empties.
func (s *session) propagate(lo, hi []int) bool {
	for changed := true; changed; {
		changed = false
		for _, c := range s.model.Constraints {
			best := c.Offset
			for _, t := range c.Terms {
				best += maxContribution(t, lo, hi)
			}
			if best < c.AtLeast {
				return false
			}

			for _, t := range c.Terms {
				need := c.AtLeast - (best - maxContribution(t, lo, hi))
				i := t.Variable
				if t.Coefficient > 0 {
					if nl := ceilDiv(need, t.Coefficient); nl > lo[i] {
						lo[i] = nl
						changed = true
					}
				} else {
					if nh := floorDiv(need, t.Coefficient); nh < hi[i] {
						hi[i] = nh
						changed = true
					}
				}
				if lo[i] > hi[i] {
					return false
				}
			}
		}
	}
	return true
}

// lowerBound returns a bound on the objective of any completion of the
// domains, or false when the breadth constraint cannot be met.
func (s *session) lowerBound(lo, hi []int) (int, bool) {
	lb := 0
	for i := range lo {
		lb += s.minCost(i, lo[i], hi[i])
	}

	breadth := s.model.Breadth
	if breadth == nil || len(breadth.Variables) == 0 {
		return lb, true
	}

	largest, nonZero := lo[breadth.Variables[0]], 0
	for _, i := range breadth.Variables {
		if lo[i] > largest {
			largest = lo[i]
		}
		if s.isNonZero(lo[i]) {
			nonZero++
		}
	}
	deficit := largest - nonZero
	if deficit <= 0 {
		return lb, true
	}

	inc := s.incBuf[:0]
	for _, i := range breadth.Variables {
		if s.isNonZero(lo[i]) || !s.isNonZero(hi[i]) {
			continue
		}
		above := -1
		for v := lo[i]; v <= hi[i]; v++ {
			if !s.isNonZero(v) {
				continue
			}
			if c := s.cost(i, v); above < 0 || c < above {
				above = c
			}
		}
		inc = append(inc, above-s.minCost(i, lo[i], hi[i]))
	}
	if len(inc) < deficit {
		return 0, false
	}
	sort.Ints(inc)
	for _, c := range inc[:deficit] {
		lb += c
	}
	return lb, true
}

// orderedValues lists the domain of k, initial value first under warm start,
// then by cost and value.
func (s *session) orderedValues(depth, k, lo, hi int) []int {
	values := s.valStack[depth][:0]
	for v := lo; v <= hi; v++ {
		values = append(values, v)
	}
	s.valStack[depth] = values

	initial := s.model.Variables[k].Initial
	sort.SliceStable(values, func(a, b int) bool {
		va, vb := values[a], values[b]
		if s.warm && (va == initial) != (vb == initial) {
			return va == initial
		}
		if ca, cb := s.cost(k, va), s.cost(k, vb); ca != cb {
			return ca < cb
		}
		return va < vb
	})
	return values
}

func (s *session) cheapestValue(i int) int {
	v := s.model.Variables[i]
	best := v.Lower
	if s.warm && v.Initial >= v.Lower && v.Initial <= v.Upper {
		best = v.Initial
	}
	for value := v.Lower; value <= v.Upper; value++ {
		if s.cost(i, value) < s.cost(i, best) {
			best = value
		}
	}
	return best
}

func (s *session) solution() *engine.Solution {
	sol := &engine.Solution{
		Values:     make([]int, len(s.best)),
		Objective:  float64(s.bestCost),
		Components: make(map[string]float64),
		Nodes:      s.nodes,
	}
	copy(sol.Values, s.best)
	for _, name := range s.model.Components() {
		sol.Components[name] = 0
	}
	for i, v := range s.model.Variables {
		sol.Components[v.Component] += float64(s.cost(i, s.best[i]))
	}
	return sol
}

func (s *session) cost(i, value int) int {
	return s.costs[i][value-s.model.Variables[i].Lower]
}

func (s *session) minCost(i, lo, hi int) int {
	best := s.cost(i, lo)
	for v := lo + 1; v <= hi; v++ {
		if c := s.cost(i, v); c < best {
			best = c
		}
	}
	return best
}

func (s *session) isNonZero(v int) bool {
	return float64(v) > s.eps
}

func maxContribution(t engine.Term, lo, hi []int) int {
	if t.Coefficient > 0 {
		return t.Coefficient * hi[t.Variable]
	}
	return t.Coefficient * lo[t.Variable]
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
