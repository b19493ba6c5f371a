package optimizer

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
)

// TargetSet is a validated target-values map with every key resolved to its
// canonical property.
type TargetSet struct {
	Tier       wrathglory.Tier
	Attributes map[wrathglory.AttributeID]int
	Skills     map[wrathglory.SkillID]int
	Traits     map[wrathglory.TraitID]int
}

func newTargetSet(tier wrathglory.Tier) *TargetSet {
	return &TargetSet{
		Tier:       tier,
		Attributes: make(map[wrathglory.AttributeID]int),
		Skills:     make(map[wrathglory.SkillID]int),
		Traits:     make(map[wrathglory.TraitID]int),
	}
}

// Canonical returns the targets keyed by canonical identifier, without Tier
func (t *TargetSet) Canonical() map[string]int {
	out := make(map[string]int, len(t.Attributes)+len(t.Skills)+len(t.Traits))
	for id, v := range t.Attributes {
		out[string(id)] = v
	}
	for id, v := range t.Skills {
		out[string(id)] = v
	}
	for id, v := range t.Traits {
		out[string(id)] = v
	}
	return out
}

// Len is the number of targeted properties
func (t *TargetSet) Len() int {
	return len(t.Attributes) + len(t.Skills) + len(t.Traits)
}

// ValidateTargetValues checks a raw target-values map and resolves its keys.
// Tier defaults to 1 when absent. Any bad entry rejects the whole map with an
// InvalidArgument error listing one reason per offending key.
func ValidateTargetValues(raw map[string]interface{}) (*TargetSet, error) {
	var reasons []string
	reject := func(key, format string, args ...interface{}) {
		reasons = append(reasons, fmt.Sprintf("%s: %s", key, fmt.Sprintf(format, args...)))
	}

	tier, tierOK := wrathglory.DefaultTier, true
	if value, ok := raw[wrathglory.TierKey]; ok {
		n, isInt := toInt(value)
		switch {
		case !isInt:
			reject(wrathglory.TierKey, "must be an integer")
			tierOK = false
		case !wrathglory.TierBounds().Contains(n):
			reject(wrathglory.TierKey, "must be within %s", wrathglory.TierBounds())
			tierOK = false
		default:
			tier = wrathglory.Tier(n)
		}
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		if key != wrathglory.TierKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	targets := newTargetSet(tier)
	claimedBy := make(map[string]string)
	for _, key := range keys {
		canonical, bounds, boundsKnown, assign := resolveTarget(key, tier, tierOK, targets)
		if assign == nil {
			reject(key, "unknown target value")
			continue
		}
		if other, dup := claimedBy[canonical]; dup {
			reject(key, "names the same property as %q", other)
			continue
		}
		claimedBy[canonical] = key

		n, isInt := toInt(raw[key])
		if !isInt {
			reject(key, "must be an integer")
			continue
		}
		if boundsKnown && !bounds.Contains(n) {
			reject(key, "must be within %s", bounds)
			continue
		}
		assign(n)
	}

	if len(reasons) > 0 {
		sort.Strings(reasons)
		return nil, errors.InvalidTargetValues(raw, reasons)
	}
	return targets, nil
}

// resolveTarget looks key up as an attribute, then a skill, then a trait. A
// nil assign means the key is unknown. Trait bounds depend on the tier and
// are unknown when the tier itself is invalid.
func resolveTarget(
	key string, tier wrathglory.Tier, tierOK bool, targets *TargetSet,
) (string, wrathglory.RatingBounds, bool, func(int)) {
	if attr, ok := wrathglory.LookupAttribute(key); ok {
		return string(attr.ID), attr.RatingBounds, true, func(n int) { targets.Attributes[attr.ID] = n }
	}
	if skill, ok := wrathglory.LookupSkill(key); ok {
		return string(skill.ID), skill.TotalBounds(), true, func(n int) { targets.Skills[skill.ID] = n }
	}
	if trait, ok := wrathglory.LookupTrait(key); ok {
		return string(trait.ID), trait.Bounds(tier), tierOK, func(n int) { targets.Traits[trait.ID] = n }
	}
	return "", wrathglory.RatingBounds{}, false, nil
}

// toInt accepts Go integer types and JSON integer literals. Floats, strings
// and booleans are not integers even when they look like one.
func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int64ToInt(v)
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int64ToInt(int64(v))
	case uint64:
		if v > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case uint:
		if v > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int64ToInt(n)
	default:
		return 0, false
	}
}

func int64ToInt(v int64) (int, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}
