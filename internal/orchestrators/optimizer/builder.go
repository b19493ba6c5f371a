package optimizer

import (
	"fmt"

	"github.com/KirkDiggler/xp-optimizer/internal/engine"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
)

const (
	// ComponentAttributes names the attribute share of the XP objective
	ComponentAttributes = "attributes"

	// ComponentSkills names the skill share of the XP objective
	ComponentSkills = "skills"

	// ZeroEpsilon is the threshold above which a skill rank counts as trained
	// for the tree-of-learning rule.
	ZeroEpsilon = 0.5

	treeOfLearning = "tree_of_learning"
)

// Problem is the integer model for one target set together with the
// variable index of every attribute and skill.
type Problem struct {
	Model   *engine.Model
	Targets *TargetSet

	attributeVars map[wrathglory.AttributeID]int
	skillVars     map[wrathglory.SkillID]int
}

// AttributeVar returns the variable index of an attribute
func (p *Problem) AttributeVar(id wrathglory.AttributeID) int {
	return p.attributeVars[id]
}

// SkillVar returns the variable index of a skill
func (p *Problem) SkillVar(id wrathglory.SkillID) int {
	return p.skillVars[id]
}

// BuildProblem turns validated targets into a solver model: one variable per
// attribute and skill, one inequality per target and the tree-of-learning
// breadth rule over every skill.
func BuildProblem(targets *TargetSet) *Problem {
	p := &Problem{
		Model:         &engine.Model{},
		Targets:       targets,
		attributeVars: make(map[wrathglory.AttributeID]int),
		skillVars:     make(map[wrathglory.SkillID]int),
	}

	seeded := make(map[wrathglory.AttributeID]int)
	for _, attr := range wrathglory.Attributes() {
		lower, _ := attr.Min()
		upper, _ := attr.Max()
		initial := lower
		if target, ok := targets.Attributes[attr.ID]; ok {
			initial = target
		}
		seeded[attr.ID] = initial

		p.attributeVars[attr.ID] = p.Model.AddVariable(engine.Variable{
			Name:      string(attr.ID),
			Lower:     lower,
			Upper:     upper,
			Initial:   initial,
			Cost:      wrathglory.AttributeCost,
			Component: ComponentAttributes,
		})
	}

	breadth := &engine.BreadthConstraint{Name: treeOfLearning, ZeroEpsilon: ZeroEpsilon}
	for _, skill := range wrathglory.Skills() {
		lower, _ := skill.Min()
		upper, _ := skill.Max()
		initial := lower
		if target, ok := targets.Skills[skill.ID]; ok {
			initial = skill.RatingBounds.Clip(target - seeded[skill.Attribute])
		}

		idx := p.Model.AddVariable(engine.Variable{
			Name:      string(skill.ID),
			Lower:     lower,
			Upper:     upper,
			Initial:   initial,
			Cost:      wrathglory.SkillCost,
			Component: ComponentSkills,
		})
		p.skillVars[skill.ID] = idx
		breadth.Variables = append(breadth.Variables, idx)
	}
	p.Model.Breadth = breadth

	// Constraints follow catalogue order so identical targets give identical models
	for _, attr := range wrathglory.Attributes() {
		target, ok := targets.Attributes[attr.ID]
		if !ok {
			continue
		}
		p.Model.AddConstraint(engine.LinearConstraint{
			Name:    targetConstraintName(string(attr.ID)),
			Terms:   []engine.Term{{Variable: p.attributeVars[attr.ID], Coefficient: 1}},
			AtLeast: target,
		})
	}
	for _, skill := range wrathglory.Skills() {
		target, ok := targets.Skills[skill.ID]
		if !ok {
			continue
		}
		p.Model.AddConstraint(engine.LinearConstraint{
			Name: targetConstraintName(string(skill.ID)),
			Terms: []engine.Term{
				{Variable: p.skillVars[skill.ID], Coefficient: 1},
				{Variable: p.attributeVars[skill.Attribute], Coefficient: 1},
			},
			AtLeast: target,
		})
	}
	for _, trait := range wrathglory.Traits() {
		target, ok := targets.Traits[trait.ID]
		if !ok {
			continue
		}
		p.Model.AddConstraint(engine.LinearConstraint{
			Name:    targetConstraintName(string(trait.ID)),
			Terms:   []engine.Term{{Variable: p.attributeVars[trait.Attribute], Coefficient: 1}},
			Offset:  trait.Offset(targets.Tier),
			AtLeast: target,
		})
	}

	return p
}

func targetConstraintName(property string) string {
	return fmt.Sprintf("target_%s", property)
}
