package optimizer

import (
	"time"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/optimization"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
)

// OptimizeXPInput defines the request for an optimization run
type OptimizeXPInput struct {
	// TargetValues maps Tier and property names to integer targets
	TargetValues map[string]interface{}
	// MaxNodes overrides the configured solver node cap when positive
	MaxNodes int
	// SkipCache forces a fresh solve even when a cached result exists
	SkipCache bool
}

// OptimizeXPOutput defines the response for an optimization run
type OptimizeXPOutput struct {
	RunID    string
	Result   *optimization.Result
	Cached   bool
	Nodes    int
	Duration time.Duration
}

// ValidateTargetValuesInput defines the request for validating targets
type ValidateTargetValuesInput struct {
	TargetValues map[string]interface{}
}

// ValidateTargetValuesOutput defines the response for validating targets
type ValidateTargetValuesOutput struct {
	Tier wrathglory.Tier
	// Targets is keyed by canonical property name
	Targets map[string]int
}

// ListTargetValuesInput defines the request for listing target values
type ListTargetValuesInput struct{}

// ListTargetValuesOutput lists every accepted target-values key
type ListTargetValuesOutput struct {
	Tier       *TargetDescriptor
	Attributes []*TargetDescriptor
	Skills     []*TargetDescriptor
	Traits     []*TargetDescriptor
}

// TargetDescriptor describes one accepted key and its valid range
type TargetDescriptor struct {
	Name string
	// Aliases are alternative keys that resolve to the same property
	Aliases []string
	Bounds  wrathglory.RatingBounds
	// Attribute is the related attribute of a skill or trait
	Attribute string
	Optional  bool
	// Default applies when the key is absent; only Tier has one
	Default *int
}
