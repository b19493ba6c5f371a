// Package optimization holds the compiled outcome of an XP optimization run
// and its renderings.
package optimization

import (
	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
)

// PropertyResults lists the final value of every property in a category
// together with the targets that were asked for.
type PropertyResults struct {
	// Names fixes the row order. Every name has a Total.
	Names  []string
	Total  map[string]int
	Target map[string]int
}

// NewPropertyResults creates an empty result set
func NewPropertyResults() *PropertyResults {
	return &PropertyResults{
		Total:  make(map[string]int),
		Target: make(map[string]int),
	}
}

// Set records the total of a property, keeping first-insertion order
func (p *PropertyResults) Set(name string, total int) {
	if _, ok := p.Total[name]; !ok {
		p.Names = append(p.Names, name)
	}
	p.Total[name] = total
}

// SetTarget records the requested value of a property
func (p *PropertyResults) SetTarget(name string, target int) {
	p.Target[name] = target
}

// Missed lists, in row order, the targeted properties whose total is below
// the target.
func (p *PropertyResults) Missed() []string {
	missed := []string{}
	for _, name := range p.Names {
		if target, ok := p.Target[name]; ok && p.Total[name] < target {
			missed = append(missed, name)
		}
	}
	return missed
}

// IsMissed reports whether name is targeted and below its target
func (p *PropertyResults) IsMissed(name string) bool {
	target, ok := p.Target[name]
	return ok && p.Total[name] < target
}

// SkillResults adds the purchased rank to each skill total
type SkillResults struct {
	PropertyResults
	Rank map[string]int
}

// NewSkillResults creates an empty skill result set
func NewSkillResults() *SkillResults {
	return &SkillResults{
		PropertyResults: *NewPropertyResults(),
		Rank:            make(map[string]int),
	}
}

// SetSkill records the rank and total of a skill
func (s *SkillResults) SetSkill(name string, rank, total int) {
	s.Set(name, total)
	s.Rank[name] = rank
}

// XPCost splits the spent XP by category
type XPCost struct {
	Attributes int
	Skills     int
}

// Total is the sum of both categories
func (c XPCost) Total() int {
	return c.Attributes + c.Skills
}

// Result is the compiled outcome of one optimization run
type Result struct {
	Tier       wrathglory.Tier
	Attributes *PropertyResults
	Skills     *SkillResults
	Traits     *PropertyResults
	XPCost     XPCost
}

// NewResult creates an empty result for the given tier
func NewResult(tier wrathglory.Tier) *Result {
	return &Result{
		Tier:       tier,
		Attributes: NewPropertyResults(),
		Skills:     NewSkillResults(),
		Traits:     NewPropertyResults(),
	}
}

// HasMisses reports whether any target was not reached
func (r *Result) HasMisses() bool {
	return len(r.Attributes.Missed())+len(r.Skills.Missed())+len(r.Traits.Missed()) > 0
}
