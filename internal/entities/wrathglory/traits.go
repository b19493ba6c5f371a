package wrathglory

// TraitID is the canonical identifier of a trait
type TraitID string

// Trait identifiers
const (
	Conviction    TraitID = "Conviction"
	Defence       TraitID = "Defence"
	Determination TraitID = "Determination"
	Influence     TraitID = "Influence"
	MaxShock      TraitID = "MaxShock"
	MaxWounds     TraitID = "MaxWounds"
	Resilience    TraitID = "Resilience"
	Resolve       TraitID = "Resolve"
)

// Trait is a rating derived from one attribute. It is never bought directly.
type Trait struct {
	ID              TraitID
	FullName        string
	Attribute       AttributeID
	AttributeOffset int
	TierModifier    int
}

// Offset returns what the trait adds to its attribute at the given tier
func (t Trait) Offset(tier Tier) int {
	return t.AttributeOffset + t.TierModifier*int(tier)
}

// Rating returns the trait rating for an attribute rating at the given tier
func (t Trait) Rating(attribute int, tier Tier) int {
	return attribute + t.Offset(tier)
}

// Bounds returns the reachable trait ratings at the given tier
func (t Trait) Bounds(tier Tier) RatingBounds {
	related, _ := GetAttribute(t.Attribute)
	return related.RatingBounds.Translate(t.Offset(tier))
}

// BoundsAcrossTiers spans the lowest rating at the lowest tier to the highest
// rating at the highest tier.
func (t Trait) BoundsAcrossTiers() RatingBounds {
	lowTier, _ := tierBounds.Min()
	highTier, _ := tierBounds.Max()
	lo, _ := t.Bounds(Tier(lowTier)).Min()
	hi, _ := t.Bounds(Tier(highTier)).Max()
	return NewRatingBounds(lo, hi)
}

var traits = []Trait{
	{ID: Conviction, FullName: "Conviction", Attribute: Willpower},
	{ID: Defence, FullName: "Defence", Attribute: Initiative, AttributeOffset: -1},
	{ID: Determination, FullName: "Determination", Attribute: Toughness},
	{ID: Influence, FullName: "Influence", Attribute: Fellowship, AttributeOffset: -1},
	{ID: MaxShock, FullName: "Max Shock", Attribute: Willpower, TierModifier: 1},
	{ID: MaxWounds, FullName: "Max Wounds", Attribute: Toughness, TierModifier: 2},
	{ID: Resilience, FullName: "Resilience", Attribute: Toughness, AttributeOffset: 1},
	{ID: Resolve, FullName: "Resolve", Attribute: Willpower, AttributeOffset: -1},
}

var traitsByKey = func() map[string]Trait {
	m := make(map[string]Trait, 2*len(traits))
	for _, t := range traits {
		m[string(t.ID)] = t
		m[t.FullName] = t
	}
	return m
}()

// Traits returns the trait catalogue in alphabetical order
func Traits() []Trait {
	out := make([]Trait, len(traits))
	copy(out, traits)
	return out
}

// LookupTrait resolves an identifier or full name such as "Max Wounds"
func LookupTrait(key string) (Trait, bool) {
	t, ok := traitsByKey[key]
	return t, ok
}

// GetTrait returns the trait with the given identifier
func GetTrait(id TraitID) (Trait, bool) {
	return LookupTrait(string(id))
}
