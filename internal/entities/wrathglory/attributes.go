package wrathglory

// AttributeID is the canonical identifier of an attribute
type AttributeID string

// Attribute identifiers
const (
	Strength   AttributeID = "Strength"
	Toughness  AttributeID = "Toughness"
	Agility    AttributeID = "Agility"
	Initiative AttributeID = "Initiative"
	Willpower  AttributeID = "Willpower"
	Intellect  AttributeID = "Intellect"
	Fellowship AttributeID = "Fellowship"
)

var attributeBounds = NewRatingBounds(1, 12)

// Attribute is a purchasable core rating
type Attribute struct {
	RatingBounds
	ID        AttributeID
	ShortName string
}

// Name returns the display name of the attribute
func (a Attribute) Name() string {
	return string(a.ID)
}

var attributes = []Attribute{
	{RatingBounds: attributeBounds, ID: Strength, ShortName: "S"},
	{RatingBounds: attributeBounds, ID: Toughness, ShortName: "T"},
	{RatingBounds: attributeBounds, ID: Agility, ShortName: "A"},
	{RatingBounds: attributeBounds, ID: Initiative, ShortName: "I"},
	{RatingBounds: attributeBounds, ID: Willpower, ShortName: "Wil"},
	{RatingBounds: attributeBounds, ID: Intellect, ShortName: "Int"},
	{RatingBounds: attributeBounds, ID: Fellowship, ShortName: "Fel"},
}

var attributesByKey = func() map[string]Attribute {
	m := make(map[string]Attribute, 2*len(attributes))
	for _, a := range attributes {
		m[string(a.ID)] = a
		m[a.ShortName] = a
	}
	return m
}()

// Attributes returns the attribute catalogue in rulebook order
func Attributes() []Attribute {
	out := make([]Attribute, len(attributes))
	copy(out, attributes)
	return out
}

// LookupAttribute resolves an identifier or short name such as "Int"
func LookupAttribute(key string) (Attribute, bool) {
	a, ok := attributesByKey[key]
	return a, ok
}

// GetAttribute returns the attribute with the given identifier
func GetAttribute(id AttributeID) (Attribute, bool) {
	return LookupAttribute(string(id))
}

// AttributeBounds returns the rating range shared by all attributes
func AttributeBounds() RatingBounds {
	return attributeBounds
}
