// Package dice rolls random target-values documents for trying out the optimizer
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/xp-optimizer/internal/orchestrators/dice Service

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/idgen"
)

const (
	// DefaultAttributeNotation rolls attribute ratings
	DefaultAttributeNotation = "1d6"

	// DefaultRankNotation rolls skill ranks above the related attribute
	DefaultRankNotation = "1d4"

	// tierNotation rolls a tier when none is given
	tierNotation = "1d5"
)

var (
	// Regex for parsing simple dice notation like "2d6", "1d20", "3d8"
	diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)$`)
)

// RollFunc rolls count dice of the given size and returns the sum
type RollFunc func(count, size int) (int, error)

// Service defines the interface for dice operations
type Service interface {
	RollTargetValues(ctx context.Context, input *RollTargetValuesInput) (*RollTargetValuesOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	IDGenerator idgen.Generator
	// Roll defaults to the rpg-toolkit dice roller
	Roll RollFunc
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	idGen idgen.Generator
	roll  RollFunc
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roll := cfg.Roll
	if roll == nil {
		roll = rollWithToolkit
	}

	return &orchestrator{
		idGen: cfg.IDGenerator,
		roll:  roll,
	}, nil
}

// rollWithToolkit uses rpg-toolkit to roll dice
func rollWithToolkit(count, size int) (int, error) {
	roll, err := dice.NewRoll(count, size)
	if err != nil {
		return 0, err
	}
	return roll.GetValue(), nil
}

// parseDiceNotation parses simple dice notation like "2d6" and returns count and size
func parseDiceNotation(notation string) (count, size int, err error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(notation))
	if len(matches) != 3 {
		return 0, 0, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY)", notation)
	}

	count, err = strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}

	size, err = strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}

	if count <= 0 || size <= 0 {
		return 0, 0, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}

	return count, size, nil
}

// roller records every roll of one request
type roller struct {
	roll  RollFunc
	rolls []*Roll
}

func (r *roller) rollNotation(key, notation string) (int, error) {
	count, size, err := parseDiceNotation(notation)
	if err != nil {
		return 0, err
	}

	value, err := r.roll(count, size)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll %s for %s", notation, key)
	}

	r.rolls = append(r.rolls, &Roll{Key: key, Notation: notation, Value: value})
	return value, nil
}

func (r *roller) rollDie(key string, size int) (int, error) {
	return r.rollNotation(key, "1d"+strconv.Itoa(size))
}

// RollTargetValues rolls a tier, every attribute and a handful of skill
// totals. Ratings are clipped into their bounds, so the document always
// validates and always has a solution.
func (o *orchestrator) RollTargetValues(_ context.Context, input *RollTargetValuesInput) (*RollTargetValuesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Tier != 0 && !wrathglory.Tier(input.Tier).Valid() {
		vb.Field("tier", "must be between 1 and 5")
	}
	if input.Skills < 0 || input.Skills > len(wrathglory.Skills()) {
		vb.Fieldf("skills", "must be between 0 and %d", len(wrathglory.Skills()))
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	attributeNotation := input.AttributeNotation
	if attributeNotation == "" {
		attributeNotation = DefaultAttributeNotation
	}
	rankNotation := input.RankNotation
	if rankNotation == "" {
		rankNotation = DefaultRankNotation
	}

	r := &roller{roll: o.roll}

	tier := input.Tier
	if tier == 0 {
		rolled, err := r.rollNotation("Tier", tierNotation)
		if err != nil {
			return nil, err
		}
		tier = wrathglory.TierBounds().Clip(rolled)
	}

	values := map[string]interface{}{"Tier": tier}
	ratings := make(map[wrathglory.AttributeID]int)
	for _, attr := range wrathglory.Attributes() {
		rolled, err := r.rollNotation(string(attr.ID), attributeNotation)
		if err != nil {
			return nil, err
		}
		rating := wrathglory.AttributeBounds().Clip(rolled)
		ratings[attr.ID] = rating
		values[string(attr.ID)] = rating
	}

	remaining := wrathglory.Skills()
	for i := 0; i < input.Skills; i++ {
		pick, err := r.rollDie("skill", len(remaining))
		if err != nil {
			return nil, err
		}
		skill := remaining[wrathglory.NewRatingBounds(1, len(remaining)).Clip(pick)-1]
		remaining = removeSkill(remaining, skill.ID)

		rank, err := r.rollNotation(string(skill.ID), rankNotation)
		if err != nil {
			return nil, err
		}
		values[string(skill.ID)] = skill.Total(wrathglory.SkillRankBounds().Clip(rank), ratings[skill.Attribute])
	}

	out := &RollTargetValuesOutput{
		ID:           o.idGen.Generate(),
		Tier:         tier,
		TargetValues: values,
		Rolls:        r.rolls,
	}

	slog.Info("Target values rolled",
		"roll_id", out.ID,
		"tier", tier,
		"skills", input.Skills,
		"rolls_count", len(r.rolls),
	)

	return out, nil
}

func removeSkill(skills []wrathglory.Skill, id wrathglory.SkillID) []wrathglory.Skill {
	out := make([]wrathglory.Skill, 0, len(skills))
	for _, s := range skills {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
