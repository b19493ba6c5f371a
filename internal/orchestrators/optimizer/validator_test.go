package optimizer_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"
	"github.com/KirkDiggler/xp-optimizer/internal/testutils"
	"github.com/KirkDiggler/xp-optimizer/internal/testutils/builders"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) reasons(err error) []string {
	s.Require().Error(err)
	s.Require().True(errors.IsInvalidArgument(err), "expected invalid argument, got %v", err)
	reasons, ok := errors.GetMeta(err)[errors.MetaReasons].([]string)
	s.Require().True(ok)
	return reasons
}

func (s *ValidatorTestSuite) TestEmptyMapDefaultsToTierOne() {
	targets, err := optimizer.ValidateTargetValues(map[string]interface{}{})

	s.Require().NoError(err)
	s.Equal(wrathglory.DefaultTier, targets.Tier)
	s.Zero(targets.Len())
	s.Empty(targets.Canonical())
}

func (s *ValidatorTestSuite) TestNilMap() {
	targets, err := optimizer.ValidateTargetValues(nil)

	s.Require().NoError(err)
	s.Equal(wrathglory.DefaultTier, targets.Tier)
}

func (s *ValidatorTestSuite) TestResolvesEveryCategory() {
	targets, err := optimizer.ValidateTargetValues(testutils.ScholarTargets())

	s.Require().NoError(err)
	s.Equal(wrathglory.Tier(2), targets.Tier)
	s.Equal(map[wrathglory.AttributeID]int{wrathglory.Intellect: 5}, targets.Attributes)
	s.Equal(map[wrathglory.SkillID]int{
		wrathglory.Investigation: 10,
		wrathglory.Medicae:       10,
		wrathglory.Scholar:       15,
		wrathglory.Tech:          10,
	}, targets.Skills)
	s.Equal(map[wrathglory.TraitID]int{wrathglory.MaxWounds: 7}, targets.Traits)
	s.Equal(6, targets.Len())
	s.NotContains(targets.Canonical(), wrathglory.TierKey)
}

func (s *ValidatorTestSuite) TestAliasesResolveToCanonicalNames() {
	raw := map[string]interface{}{
		"Int":             4,
		"Ballistic Skill": 6,
		"Max Shock":       5,
	}

	targets, err := optimizer.ValidateTargetValues(raw)

	s.Require().NoError(err)
	s.Equal(map[string]int{
		"Intellect":      4,
		"BallisticSkill": 6,
		"MaxShock":       5,
	}, targets.Canonical())
}

func (s *ValidatorTestSuite) TestUnknownKeyRejectsWholeMap() {
	raw := builders.NewTargetValuesBuilder().
		WithTier(1).
		WithAttribute(wrathglory.Strength, 3).
		WithRaw("Luck", 3).
		Build()

	_, err := optimizer.ValidateTargetValues(raw)

	s.Equal([]string{"Luck: unknown target value"}, s.reasons(err))
	s.Equal(raw, errors.GetMeta(err)[errors.MetaTargetValues])
}

func (s *ValidatorTestSuite) TestTierOutsideRange() {
	for _, tier := range []int{0, 6, -1} {
		_, err := optimizer.ValidateTargetValues(builders.NewTargetValuesBuilder().WithTier(tier).Build())

		s.Equal([]string{"Tier: must be within [1, 5]"}, s.reasons(err), "tier %d", tier)
	}
}

func (s *ValidatorTestSuite) TestNonIntegerValues() {
	testCases := []struct {
		name  string
		value interface{}
	}{
		{name: "string", value: "3"},
		{name: "float", value: 3.0},
		{name: "bool", value: true},
		{name: "json fraction", value: json.Number("3.0")},
		{name: "json exponent", value: json.Number("3e0")},
		{name: "nil", value: nil},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := optimizer.ValidateTargetValues(map[string]interface{}{"Strength": tc.value})

			s.Equal([]string{"Strength: must be an integer"}, s.reasons(err))
		})
	}
}

func (s *ValidatorTestSuite) TestIntegerTypes() {
	for _, value := range []interface{}{int64(3), int32(3), uint8(3), json.Number("3")} {
		targets, err := optimizer.ValidateTargetValues(map[string]interface{}{"Strength": value})

		s.Require().NoError(err, "value %#v", value)
		s.Equal(3, targets.Attributes[wrathglory.Strength])
	}
}

func (s *ValidatorTestSuite) TestValueOutsideBounds() {
	testCases := []struct {
		name   string
		raw    map[string]interface{}
		reason string
	}{
		{
			name:   "attribute",
			raw:    map[string]interface{}{"Intellect": 13},
			reason: "Intellect: must be within [1, 12]",
		},
		{
			name:   "skill total",
			raw:    map[string]interface{}{"Scholar": 21},
			reason: "Scholar: must be within [1, 20]",
		},
		{
			name:   "skill total below related attribute minimum",
			raw:    map[string]interface{}{"Scholar": 0},
			reason: "Scholar: must be within [1, 20]",
		},
		{
			name:   "trait at tier one",
			raw:    map[string]interface{}{"MaxWounds": 15},
			reason: "MaxWounds: must be within [3, 14]",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := optimizer.ValidateTargetValues(tc.raw)

			s.Equal([]string{tc.reason}, s.reasons(err))
		})
	}
}

func (s *ValidatorTestSuite) TestTraitBoundsFollowTier() {
	raw := builders.NewTargetValuesBuilder().
		WithTier(5).
		WithTrait(wrathglory.MaxWounds, 15).
		Build()

	targets, err := optimizer.ValidateTargetValues(raw)

	s.Require().NoError(err)
	s.Equal(wrathglory.Tier(5), targets.Tier)
	s.Equal(15, targets.Traits[wrathglory.MaxWounds])
}

func (s *ValidatorTestSuite) TestInvalidTierSkipsTraitBounds() {
	raw := map[string]interface{}{"Tier": 9, "MaxWounds": 40}

	_, err := optimizer.ValidateTargetValues(raw)

	s.Equal([]string{"Tier: must be within [1, 5]"}, s.reasons(err))
}

func (s *ValidatorTestSuite) TestDuplicatePropertyRejected() {
	raw := map[string]interface{}{"Int": 4, "Intellect": 4}

	_, err := optimizer.ValidateTargetValues(raw)

	s.Equal([]string{`Intellect: names the same property as "Int"`}, s.reasons(err))
}

func (s *ValidatorTestSuite) TestReportsEveryOffendingKeySorted() {
	raw := map[string]interface{}{
		"Tier":      2,
		"Luck":      1,
		"Agility":   "high",
		"Willpower": 30,
		"Stealth":   5,
	}

	_, err := optimizer.ValidateTargetValues(raw)

	s.Equal([]string{
		"Agility: must be an integer",
		"Luck: unknown target value",
		"Willpower: must be within [1, 12]",
	}, s.reasons(err))
}
