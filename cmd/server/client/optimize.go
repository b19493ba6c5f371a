package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp"
)

type optimizeOptions struct {
	output    string
	maxNodes  int
	skipCache bool
}

func newOptimizeCmd(clientOpts *clientOptions) *cobra.Command {
	opts := &optimizeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize FILE",
		Short: "Optimize a target-values file on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, args[0], clientOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output-format", "o", "markdown", "json, or a Markdown table (markdown/md)")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", 0, "Solver node cap (0 uses the server default)")
	cmd.Flags().BoolVar(&opts.skipCache, "skip-cache", false, "Solve even when a cached result exists")

	return cmd
}

func runOptimize(cmd *cobra.Command, path string, clientOpts *clientOptions, opts *optimizeOptions) error {
	format := strings.ToLower(opts.output)
	if format != "json" && format != "md" && format != "markdown" {
		return errors.InvalidArgumentf("invalid output format %q (expected md, markdown or json)", opts.output)
	}

	values, err := xp.ReadTargetValuesFile(path)
	if err != nil {
		return err
	}

	req, err := xp.ToStruct(&xp.OptimizeXPRequest{
		TargetValues: values,
		MaxNodes:     opts.maxNodes,
		SkipCache:    opts.skipCache,
	})
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

	respStruct, err := client.OptimizeXP(ctx, req)
	if err != nil {
		return xp.Describe(errors.FromGRPCError(err))
	}

	var resp xp.OptimizeXPResponse
	if err := xp.FromStruct(respStruct, &resp); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(cmd.ErrOrStderr(), "run %s: cached=%t nodes=%d duration=%.3fms\n",
		resp.RunID, resp.Cached, resp.Nodes, resp.DurationMS)

	if format == "json" {
		doc, err := resp.Result.AsJSON()
		if err != nil {
			return errors.Wrap(err, "failed to render result")
		}
		_, err = fmt.Fprintln(out, doc)
		return err
	}

	_, err = fmt.Fprint(out, resp.Result.AsMarkdown())
	return err
}
