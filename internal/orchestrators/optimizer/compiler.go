package optimizer

import (
	"github.com/KirkDiggler/xp-optimizer/internal/engine"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/optimization"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
)

// CompileResult reads a solution back into ratings, totals and targets and
// checks that the XP breakdown matches what the solver optimised. It does not
// modify its arguments.
func CompileResult(problem *Problem, solution *engine.Solution) (*optimization.Result, error) {
	if problem == nil || solution == nil {
		return nil, errors.Internal("problem and solution are required")
	}
	if len(solution.Values) != len(problem.Model.Variables) {
		return nil, errors.Internalf("solution has %d values for %d variables",
			len(solution.Values), len(problem.Model.Variables))
	}

	targets := problem.Targets
	result := optimization.NewResult(targets.Tier)

	ratings := make(map[wrathglory.AttributeID]int)
	for _, attr := range wrathglory.Attributes() {
		rating := solution.Values[problem.AttributeVar(attr.ID)]
		ratings[attr.ID] = rating

		name := string(attr.ID)
		result.Attributes.Set(name, rating)
		if target, ok := targets.Attributes[attr.ID]; ok {
			result.Attributes.SetTarget(name, target)
		}
		result.XPCost.Attributes += wrathglory.AttributeCost(rating)
	}

	for _, skill := range wrathglory.Skills() {
		rank := solution.Values[problem.SkillVar(skill.ID)]

		name := string(skill.ID)
		result.Skills.SetSkill(name, rank, skill.Total(rank, ratings[skill.Attribute]))
		if target, ok := targets.Skills[skill.ID]; ok {
			result.Skills.SetTarget(name, target)
		}
		result.XPCost.Skills += wrathglory.SkillCost(rank)
	}

	for _, trait := range wrathglory.Traits() {
		name := string(trait.ID)
		result.Traits.Set(name, trait.Rating(ratings[trait.Attribute], targets.Tier))
		if target, ok := targets.Traits[trait.ID]; ok {
			result.Traits.SetTarget(name, target)
		}
	}

	if err := checkCostConsistency(result.XPCost, solution); err != nil {
		return nil, err
	}

	return result, nil
}

func checkCostConsistency(cost optimization.XPCost, solution *engine.Solution) error {
	reportedAttributes := solution.Components[ComponentAttributes]
	reportedSkills := solution.Components[ComponentSkills]

	if float64(cost.Attributes) == reportedAttributes &&
		float64(cost.Skills) == reportedSkills &&
		float64(cost.Total()) == solution.Objective {
		return nil
	}

	return errors.CostConsistency(cost.Attributes, cost.Skills,
		reportedAttributes, reportedSkills, solution.Objective)
}
