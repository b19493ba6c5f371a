package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/xp-optimizer/internal/config"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/optimization"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"
	optimizationresult "github.com/KirkDiggler/xp-optimizer/internal/repositories/optimization_result"
)

// Output formats accepted by -o
const (
	FormatMD       = "md"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

type optimizeOptions struct {
	output   string
	verbose  bool
	maxNodes int
}

func newOptimizeCmd() *cobra.Command {
	opts := &optimizeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize FILE",
		Short: "Optimize the XP spend for a target-values file",
		Long: `Reads name-value pairs for attributes, skills and traits from FILE (JSON, or
YAML when the name ends in .yaml or .yml) and prints the cheapest ratings that
meet every target. Tier defaults to 1 when FILE does not set it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output-format", "o", FormatMarkdown,
		"Type of the printed result: json, or a Markdown table (markdown/md)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show diagnostic output")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", 0, "Solver node cap (0 uses the configured default)")

	return cmd
}

func runOptimize(cmd *cobra.Command, path string, opts *optimizeOptions) error {
	format := strings.ToLower(opts.output)
	switch format {
	case FormatMD, FormatMarkdown, FormatJSON:
	default:
		return errors.InvalidArgumentf("invalid output format %q (expected md, markdown or json)", opts.output)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-nodes") {
		cfg.MaxNodes = opts.maxNodes
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	setupLogging(cmd.ErrOrStderr(), level)

	out := cmd.OutOrStdout()
	if opts.verbose {
		fmt.Fprintf(out, "optimize(file='%s', output_format='%s', verbose=%t)\n\n", path, format, opts.verbose)
	}

	values, err := xp.ReadTargetValuesFile(path)
	if err != nil {
		return err
	}

	svc, err := newOptimizerService(cfg, events.NewBus(), optimizationresult.NewInMemory(nil))
	if err != nil {
		return err
	}

	result, err := svc.OptimizeXP(cmd.Context(), &optimizer.OptimizeXPInput{TargetValues: values})
	if err != nil {
		return xp.Describe(err)
	}

	slog.Debug("Optimization finished",
		"run_id", result.RunID,
		"nodes", result.Nodes,
		"duration", result.Duration,
	)

	return writeResult(out, result.Result, format)
}

func writeResult(w io.Writer, result *optimization.Result, format string) error {
	if format == FormatJSON {
		doc, err := result.AsJSON()
		if err != nil {
			return errors.Wrap(err, "failed to render result")
		}
		_, err = fmt.Fprintln(w, doc)
		return err
	}

	_, err := fmt.Fprint(w, result.AsMarkdown())
	return err
}
