package main

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/xp-optimizer/internal/config"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"
)

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "Show the possible target values",
		Args:  cobra.NoArgs,
		RunE:  runTargets,
	}
}

func runTargets(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	svc, err := newOptimizerService(cfg, events.NewBus(), nil)
	if err != nil {
		return err
	}

	out, err := svc.ListTargetValues(cmd.Context(), &optimizer.ListTargetValuesInput{})
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), xp.NewListTargetValuesResponse(out).AsText())
	return err
}
