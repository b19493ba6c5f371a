package optimizer_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/xp-optimizer/internal/engine"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"
	"github.com/KirkDiggler/xp-optimizer/internal/testutils"
)

type CompilerTestSuite struct {
	suite.Suite
}

func TestCompilerSuite(t *testing.T) {
	suite.Run(t, new(CompilerTestSuite))
}

func (s *CompilerTestSuite) problem(raw map[string]interface{}) *optimizer.Problem {
	targets, err := optimizer.ValidateTargetValues(raw)
	s.Require().NoError(err)
	return optimizer.BuildProblem(targets)
}

// solutionFor prices an assignment the way the solver reports it
func solutionFor(problem *optimizer.Problem, attributes map[wrathglory.AttributeID]int, ranks map[wrathglory.SkillID]int) *engine.Solution {
	solution := &engine.Solution{
		Values:     make([]int, len(problem.Model.Variables)),
		Components: map[string]float64{},
	}
	for _, attr := range wrathglory.Attributes() {
		rating := 1
		if v, ok := attributes[attr.ID]; ok {
			rating = v
		}
		solution.Values[problem.AttributeVar(attr.ID)] = rating
		solution.Components[optimizer.ComponentAttributes] += float64(wrathglory.AttributeCost(rating))
	}
	for _, skill := range wrathglory.Skills() {
		rank := ranks[skill.ID]
		solution.Values[problem.SkillVar(skill.ID)] = rank
		solution.Components[optimizer.ComponentSkills] += float64(wrathglory.SkillCost(rank))
	}
	solution.Objective = solution.Components[optimizer.ComponentAttributes] +
		solution.Components[optimizer.ComponentSkills]
	return solution
}

func (s *CompilerTestSuite) TestBaseline() {
	problem := s.problem(nil)

	result, err := optimizer.CompileResult(problem, solutionFor(problem, nil, nil))

	s.Require().NoError(err)
	s.Equal(testutils.BaselineResult(), result)
	s.Zero(result.XPCost.Total())
	s.False(result.HasMisses())
}

func (s *CompilerTestSuite) TestTotalsTargetsAndCost() {
	problem := s.problem(map[string]interface{}{
		"Tier":     2,
		"Agility":  3,
		"Stealth":  5,
		"Defence":  2,
		"MaxShock": 4,
	})
	solution := solutionFor(problem,
		map[wrathglory.AttributeID]int{wrathglory.Agility: 3, wrathglory.Initiative: 3, wrathglory.Willpower: 2},
		map[wrathglory.SkillID]int{wrathglory.Stealth: 2, wrathglory.Athletics: 1},
	)

	result, err := optimizer.CompileResult(problem, solution)

	s.Require().NoError(err)
	s.Equal(wrathglory.Tier(2), result.Tier)
	s.Equal(3, result.Attributes.Total["Agility"])
	s.Equal(3, result.Attributes.Target["Agility"])
	s.Equal(2, result.Skills.Rank["Stealth"])
	s.Equal(5, result.Skills.Total["Stealth"])
	s.Equal(5, result.Skills.Target["Stealth"])
	s.Equal(2, result.Traits.Total["Defence"])
	s.Equal(4, result.Traits.Total["MaxShock"])
	s.NotContains(result.Traits.Target, "Resolve")
	s.False(result.HasMisses())

	s.Equal(10+10+4, result.XPCost.Attributes)
	s.Equal(6+2, result.XPCost.Skills)
	s.Equal(result.XPCost.Attributes+result.XPCost.Skills, result.XPCost.Total())
}

func (s *CompilerTestSuite) TestMissedWhenTotalBelowTarget() {
	problem := s.problem(map[string]interface{}{"Strength": 4, "Athletics": 6, "Resilience": 2})
	solution := solutionFor(problem,
		map[wrathglory.AttributeID]int{wrathglory.Strength: 3},
		map[wrathglory.SkillID]int{wrathglory.Athletics: 3},
	)

	result, err := optimizer.CompileResult(problem, solution)

	s.Require().NoError(err)
	s.True(result.HasMisses())
	s.Equal([]string{"Strength"}, result.Attributes.Missed())
	s.Equal([]string{}, result.Skills.Missed())
	s.Equal([]string{}, result.Traits.Missed())
}

func (s *CompilerTestSuite) TestIdempotent() {
	problem := s.problem(testutils.ScholarTargets())
	solution := solutionFor(problem,
		map[wrathglory.AttributeID]int{wrathglory.Intellect: 8, wrathglory.Toughness: 3},
		map[wrathglory.SkillID]int{wrathglory.Scholar: 7, wrathglory.Tech: 2},
	)

	first, err := optimizer.CompileResult(problem, solution)
	s.Require().NoError(err)
	second, err := optimizer.CompileResult(problem, solution)
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *CompilerTestSuite) TestObjectiveMismatch() {
	problem := s.problem(nil)
	solution := solutionFor(problem, map[wrathglory.AttributeID]int{wrathglory.Strength: 2}, nil)
	solution.Objective = 5

	_, err := optimizer.CompileResult(problem, solution)

	s.Require().Error(err)
	s.True(errors.IsInternal(err))
	meta := errors.GetMeta(err)
	s.Equal(4, meta[errors.MetaComputedAttributes])
	s.Equal(0, meta[errors.MetaComputedSkills])
	s.Equal(float64(5), meta[errors.MetaReportedObjective])
}

func (s *CompilerTestSuite) TestComponentMismatch() {
	problem := s.problem(nil)
	solution := solutionFor(problem, nil, map[wrathglory.SkillID]int{wrathglory.Tech: 1})
	solution.Components[optimizer.ComponentAttributes] = 2
	solution.Components[optimizer.ComponentSkills] = 0

	_, err := optimizer.CompileResult(problem, solution)

	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *CompilerTestSuite) TestWrongValueCount() {
	problem := s.problem(nil)

	_, err := optimizer.CompileResult(problem, &engine.Solution{Values: []int{1, 2}})

	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}
