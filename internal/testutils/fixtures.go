package testutils

import (
	"github.com/KirkDiggler/xp-optimizer/internal/entities/optimization"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
)

// ScholarTargets is a tier 2 investigator build. Its optimum costs 120 XP in
// attributes and 80 XP in skills.
func ScholarTargets() map[string]interface{} {
	return map[string]interface{}{
		"Tier":          2,
		"Intellect":     5,
		"Investigation": 10,
		"Medicae":       10,
		"Scholar":       15,
		"Tech":          10,
		"MaxWounds":     7,
	}
}

// ScoutTargets is a tier 1 build with a 95 XP optimum
func ScoutTargets() map[string]interface{} {
	return map[string]interface{}{
		"Tier":           1,
		"Athletics":      5,
		"Awareness":      3,
		"BallisticSkill": 7,
		"Cunning":        2,
		"Stealth":        10,
	}
}

// WarriorTargets is a tier 2 build with a 124 XP optimum
func WarriorTargets() map[string]interface{} {
	return map[string]interface{}{
		"Tier":           2,
		"Strength":       5,
		"Toughness":      5,
		"Willpower":      2,
		"BallisticSkill": 2,
		"Survival":       4,
		"WeaponSkill":    8,
	}
}

// BaselineResult is the compiled result of an empty tier 1 request
func BaselineResult() *optimization.Result {
	result := optimization.NewResult(wrathglory.DefaultTier)
	for _, a := range wrathglory.Attributes() {
		result.Attributes.Set(string(a.ID), 1)
	}
	for _, s := range wrathglory.Skills() {
		result.Skills.SetSkill(string(s.ID), 0, 1)
	}
	for _, t := range wrathglory.Traits() {
		result.Traits.Set(string(t.ID), t.Rating(1, wrathglory.DefaultTier))
	}
	return result
}
