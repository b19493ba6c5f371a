package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/dice"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/idgen"
)

// FormatYAML is accepted by roll -o in addition to json
const FormatYAML = "yaml"

type rollOptions struct {
	tier              int
	skills            int
	attributeNotation string
	rankNotation      string
	output            string
	verbose           bool
}

func newRollCmd() *cobra.Command {
	opts := &rollOptions{}

	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Roll a random target-values document",
		Long: `Rolls a tier, every attribute and a number of skill totals with dice. The
document is printed as JSON or YAML and can be fed straight to optimize.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoll(cmd, opts, nil)
		},
	}

	cmd.Flags().IntVar(&opts.tier, "tier", 0, "Tier of the document (0 rolls 1d5)")
	cmd.Flags().IntVar(&opts.skills, "skills", 3, "Number of skills to give a target")
	cmd.Flags().StringVar(&opts.attributeNotation, "attribute-dice", dice.DefaultAttributeNotation,
		"Dice rolled for each attribute")
	cmd.Flags().StringVar(&opts.rankNotation, "rank-dice", dice.DefaultRankNotation,
		"Dice rolled for the ranks on top of a skill's attribute")
	cmd.Flags().StringVarP(&opts.output, "output-format", "o", FormatJSON, "json or yaml")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "List every roll on stderr")

	return cmd
}

// runRoll rolls with svc, or the rpg-toolkit roller when svc is nil
func runRoll(cmd *cobra.Command, opts *rollOptions, svc dice.Service) error {
	format := strings.ToLower(opts.output)
	if format != FormatJSON && format != FormatYAML {
		return errors.InvalidArgumentf("invalid output format %q (expected json or yaml)", opts.output)
	}

	if svc == nil {
		var err error
		svc, err = dice.NewOrchestrator(&dice.Config{IDGenerator: idgen.NewUUID("roll")})
		if err != nil {
			return err
		}
	}

	out, err := svc.RollTargetValues(cmd.Context(), &dice.RollTargetValuesInput{
		Tier:              opts.tier,
		Skills:            opts.skills,
		AttributeNotation: opts.attributeNotation,
		RankNotation:      opts.rankNotation,
	})
	if err != nil {
		return err
	}

	if opts.verbose {
		for _, roll := range out.Rolls {
			fmt.Fprintf(cmd.ErrOrStderr(), "%-16s %-5s %d\n", roll.Key, roll.Notation, roll.Value)
		}
	}

	var doc []byte
	if format == FormatYAML {
		doc, err = yaml.Marshal(out.TargetValues)
	} else {
		doc, err = json.MarshalIndent(out.TargetValues, "", "  ")
		doc = append(doc, '\n')
	}
	if err != nil {
		return errors.Wrap(err, "failed to encode target values")
	}

	_, err = cmd.OutOrStdout().Write(doc)
	return err
}
