package wrathglory

// attributeDiscountCap is the rating up to which attribute ranks are cheap
const attributeDiscountCap = 3

// AttributeCost is the total XP needed to raise an attribute from 1 to rating.
// Rank r costs 2r up to rank 3 and 5(r-2) above it.
func AttributeCost(rating int) int {
	k := rating
	if k > attributeDiscountCap {
		k = attributeDiscountCap
	}
	// (a-k)(a+k-3) is always even
	return (k-1)*(k+2) + 5*(rating-k)*(rating+k-3)/2
}

// SkillCost is the total XP needed to raise a skill from 0 to rank. Rank r
// costs 2r.
func SkillCost(rank int) int {
	return rank * (rank + 1)
}
