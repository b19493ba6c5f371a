package wrathglory

// Tier is the campaign power tier of a run
type Tier int

const (
	// TierKey is the target-values key that selects the tier
	TierKey = "Tier"

	// DefaultTier is used when a target-values map carries no Tier
	DefaultTier Tier = 1

	// RulesVersion is the Wrath & Glory core rules version the catalogues follow
	RulesVersion = "2.1"
)

var tierBounds = NewRatingBounds(1, 5)

// TierBounds returns the valid tier range
func TierBounds() RatingBounds {
	return tierBounds
}

// Valid reports whether the tier is inside TierBounds
func (t Tier) Valid() bool {
	return tierBounds.Contains(int(t))
}

// Tiers lists every valid tier in ascending order
func Tiers() []Tier {
	values := tierBounds.Values()
	tiers := make([]Tier, len(values))
	for i, v := range values {
		tiers[i] = Tier(v)
	}
	return tiers
}
