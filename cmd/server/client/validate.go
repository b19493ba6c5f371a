package client

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp"
)

func newValidateCmd(clientOpts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a target-values file without solving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], clientOpts)
		},
	}
}

func runValidate(cmd *cobra.Command, path string, clientOpts *clientOptions) error {
	values, err := xp.ReadTargetValuesFile(path)
	if err != nil {
		return err
	}

	req, err := xp.ToStruct(values)
	if err != nil {
		return err
	}

	client, cleanup, err := createOptimizerClient(clientOpts)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), clientOpts.timeout)
	defer cancel()

	respStruct, err := client.ValidateTargetValues(ctx, req)
	if err != nil {
		return xp.Describe(errors.FromGRPCError(err))
	}

	var resp xp.ValidateTargetValuesResponse
	if err := xp.FromStruct(respStruct, &resp); err != nil {
		return err
	}

	names := make([]string, 0, len(resp.Targets))
	for name := range resp.Targets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tier: %d\n", resp.Tier)
	for _, name := range names {
		fmt.Fprintf(out, "%s: %d\n", name, resp.Targets[name])
	}
	return nil
}
