package wrathglory

import (
	"encoding/json"
	"fmt"
)

// RatingBounds is an inclusive integer range whose endpoints may be absent.
// A bounds value with a missing endpoint contains nothing.
type RatingBounds struct {
	min    int
	max    int
	hasMin bool
	hasMax bool
}

// NewRatingBounds returns the closed range between a and b, in either order.
func NewRatingBounds(a, b int) RatingBounds {
	if a > b {
		a, b = b, a
	}
	return RatingBounds{min: a, max: b, hasMin: true, hasMax: true}
}

// NewPartialRatingBounds builds bounds where either endpoint may be nil.
// Endpoints are only reordered when both are present.
func NewPartialRatingBounds(minValue, maxValue *int) RatingBounds {
	if minValue != nil && maxValue != nil {
		return NewRatingBounds(*minValue, *maxValue)
	}

	var b RatingBounds
	if minValue != nil {
		b.min, b.hasMin = *minValue, true
	}
	if maxValue != nil {
		b.max, b.hasMax = *maxValue, true
	}
	return b
}

// UnboundedRatingBounds returns bounds with neither endpoint.
func UnboundedRatingBounds() RatingBounds {
	return RatingBounds{}
}

// Min returns the lower endpoint and whether it is present.
func (b RatingBounds) Min() (int, bool) {
	return b.min, b.hasMin
}

// Max returns the upper endpoint and whether it is present.
func (b RatingBounds) Max() (int, bool) {
	return b.max, b.hasMax
}

// IsBounded reports whether both endpoints are present.
func (b RatingBounds) IsBounded() bool {
	return b.hasMin && b.hasMax
}

// Contains reports whether v lies inside the bounds.
func (b RatingBounds) Contains(v int) bool {
	return b.IsBounded() && v >= b.min && v <= b.max
}

// Translate shifts both endpoints by delta.
func (b RatingBounds) Translate(delta int) RatingBounds {
	return b.Add(NewRatingBounds(delta, delta))
}

// Add sums the bounds component-wise. An endpoint missing on either side is
// missing in the result.
func (b RatingBounds) Add(other RatingBounds) RatingBounds {
	var out RatingBounds
	if b.hasMin && other.hasMin {
		out.min, out.hasMin = b.min+other.min, true
	}
	if b.hasMax && other.hasMax {
		out.max, out.hasMax = b.max+other.max, true
	}
	if out.IsBounded() && out.min > out.max {
		out.min, out.max = out.max, out.min
	}
	return out
}

// Values enumerates the members in ascending order. Unbounded ranges are empty.
func (b RatingBounds) Values() []int {
	if !b.IsBounded() {
		return nil
	}
	values := make([]int, 0, b.max-b.min+1)
	for v := b.min; v <= b.max; v++ {
		values = append(values, v)
	}
	return values
}

// Clip clamps v into the bounds. It panics when an endpoint is missing.
func (b RatingBounds) Clip(v int) int {
	if !b.IsBounded() {
		panic(fmt.Sprintf("wrathglory: cannot clip %d to %s", v, b))
	}
	if v < b.min {
		return b.min
	}
	if v > b.max {
		return b.max
	}
	return v
}

// String renders the bounds as "[min, max]" with "?" for a missing endpoint.
func (b RatingBounds) String() string {
	return fmt.Sprintf("[%s, %s]", endpoint(b.min, b.hasMin), endpoint(b.max, b.hasMax))
}

// MarshalJSON encodes the bounds as {"min": x, "max": y}, null when absent.
func (b RatingBounds) MarshalJSON() ([]byte, error) {
	out := struct {
		Min *int `json:"min"`
		Max *int `json:"max"`
	}{}
	if b.hasMin {
		v := b.min
		out.Min = &v
	}
	if b.hasMax {
		v := b.max
		out.Max = &v
	}
	return json.Marshal(out)
}

func endpoint(v int, ok bool) string {
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%d", v)
}
