package optimization_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/optimization"
)

func sampleResult() *optimization.Result {
	r := optimization.NewResult(2)
	r.Attributes.Set("Strength", 1)
	r.Attributes.Set("Intellect", 8)
	r.Attributes.SetTarget("Intellect", 5)
	r.Skills.SetSkill("Athletics", 0, 1)
	r.Skills.SetSkill("Scholar", 7, 15)
	r.Skills.SetTarget("Scholar", 15)
	r.Skills.SetSkill("Tech", 2, 10)
	r.Skills.SetTarget("Tech", 11)
	r.Traits.Set("MaxWounds", 7)
	r.Traits.SetTarget("MaxWounds", 7)
	r.XPCost = optimization.XPCost{Attributes: 120, Skills: 80}
	return r
}

func TestMissedOnlyWhenBelowTarget(t *testing.T) {
	r := sampleResult()

	assert.Empty(t, r.Attributes.Missed(), "exceeding a target is not a miss")
	assert.Equal(t, []string{"Tech"}, r.Skills.Missed())
	assert.Empty(t, r.Traits.Missed())
	assert.True(t, r.Skills.IsMissed("Tech"))
	assert.False(t, r.Skills.IsMissed("Athletics"))
	assert.True(t, r.HasMisses())
}

func TestSetKeepsInsertionOrder(t *testing.T) {
	p := optimization.NewPropertyResults()
	p.Set("Toughness", 3)
	p.Set("Agility", 1)
	p.Set("Toughness", 4)

	assert.Equal(t, []string{"Toughness", "Agility"}, p.Names)
	assert.Equal(t, 4, p.Total["Toughness"])
}

func TestXPCostTotal(t *testing.T) {
	c := optimization.XPCost{Attributes: 94, Skills: 30}
	assert.Equal(t, 124, c.Total())
}

func TestAsJSON(t *testing.T) {
	out, err := sampleResult().AsJSON()
	require.NoError(t, err)

	expected := `{
  "Tier": 2,
  "Attributes": {
    "Total": {"Strength": 1, "Intellect": 8},
    "Target": {"Intellect": 5},
    "Missed": []
  },
  "Skills": {
    "Rank": {"Athletics": 0, "Scholar": 7, "Tech": 2},
    "Total": {"Athletics": 1, "Scholar": 15, "Tech": 10},
    "Target": {"Scholar": 15, "Tech": 11},
    "Missed": ["Tech"]
  },
  "Traits": {
    "Total": {"MaxWounds": 7},
    "Target": {"MaxWounds": 7},
    "Missed": []
  },
  "XPCost": {"Attributes": 120, "Skills": 80, "Total": 200}
}`
	assert.JSONEq(t, expected, out)
	assert.True(t, strings.HasPrefix(out, "{\n  \"Tier\": 2,"))
	// row order survives encoding
	assert.Less(t, strings.Index(out, `"Strength"`), strings.Index(out, `"Intellect"`))
	skills := out[strings.Index(out, `"Skills"`):]
	assert.Less(t, strings.Index(skills, `"Rank"`), strings.Index(skills, `"Total"`))
}

func TestJSONDecodeKeepsOrder(t *testing.T) {
	raw, err := json.Marshal(sampleResult())
	require.NoError(t, err)

	var decoded optimization.Result
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, sampleResult(), &decoded)
	assert.Equal(t, []string{"Athletics", "Scholar", "Tech"}, decoded.Skills.Names)
}

func TestRunEntity(t *testing.T) {
	run := &optimization.Run{ID: "run-1"}

	assert.Equal(t, "run-1", run.GetID())
	assert.Equal(t, optimization.EntityTypeRun, run.GetType())
}
