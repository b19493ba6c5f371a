package dice

// RollTargetValuesInput defines the request for rolling a target-values document
type RollTargetValuesInput struct {
	// Tier is rolled with 1d5 when zero
	Tier int
	// Skills is how many distinct skills get a target
	Skills int
	// AttributeNotation rolls each attribute rating. Defaults to 1d6.
	AttributeNotation string
	// RankNotation rolls the ranks added on top of a skill's attribute.
	// Defaults to 1d4.
	RankNotation string
}

// RollTargetValuesOutput defines the response for rolling a target-values document
type RollTargetValuesOutput struct {
	ID           string
	Tier         int
	TargetValues map[string]interface{}
	Rolls        []*Roll
}

// Roll is one die roll that went into the document
type Roll struct {
	Key      string
	Notation string
	Value    int
}
