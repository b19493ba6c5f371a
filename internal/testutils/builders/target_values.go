// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
)

// TargetValuesBuilder provides a fluent interface for building raw
// target-value maps as a transport would decode them
type TargetValuesBuilder struct {
	values map[string]interface{}
}

// NewTargetValuesBuilder creates an empty builder. No Tier is set.
func NewTargetValuesBuilder() *TargetValuesBuilder {
	return &TargetValuesBuilder{values: make(map[string]interface{})}
}

// WithTier sets the Tier key
func (b *TargetValuesBuilder) WithTier(tier int) *TargetValuesBuilder {
	b.values[wrathglory.TierKey] = tier
	return b
}

// WithAttribute targets an attribute rating
func (b *TargetValuesBuilder) WithAttribute(id wrathglory.AttributeID, rating int) *TargetValuesBuilder {
	b.values[string(id)] = rating
	return b
}

// WithSkill targets a skill total
func (b *TargetValuesBuilder) WithSkill(id wrathglory.SkillID, total int) *TargetValuesBuilder {
	b.values[string(id)] = total
	return b
}

// WithTrait targets a trait rating
func (b *TargetValuesBuilder) WithTrait(id wrathglory.TraitID, rating int) *TargetValuesBuilder {
	b.values[string(id)] = rating
	return b
}

// WithRaw sets any key to any value, for malformed input
func (b *TargetValuesBuilder) WithRaw(key string, value interface{}) *TargetValuesBuilder {
	b.values[key] = value
	return b
}

// Build returns a copy of the accumulated map
func (b *TargetValuesBuilder) Build() map[string]interface{} {
	out := make(map[string]interface{}, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}
