// Package optimizer implements the XP optimization orchestrator: it validates
// target values, builds the integer model, drives a solver session and
// compiles the result.
package optimizer

//go:generate mockgen -destination=mock/mock_service.go -package=optimizermock github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/xp-optimizer/internal/engine"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/optimization"
	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/clock"
	"github.com/KirkDiggler/xp-optimizer/internal/pkg/idgen"
	optimizationresult "github.com/KirkDiggler/xp-optimizer/internal/repositories/optimization_result"
)

const tracerName = "github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"

// Service defines the interface for XP optimization operations
type Service interface {
	// OptimizeXP finds the cheapest ratings meeting every target
	OptimizeXP(ctx context.Context, input *OptimizeXPInput) (*OptimizeXPOutput, error)

	// ValidateTargetValues checks and normalises a target-values map without solving
	ValidateTargetValues(ctx context.Context, input *ValidateTargetValuesInput) (*ValidateTargetValuesOutput, error)

	// ListTargetValues describes every accepted key and its range
	ListTargetValues(ctx context.Context, input *ListTargetValuesInput) (*ListTargetValuesOutput, error)
}

// Config holds the dependencies for the optimizer orchestrator
type Config struct {
	Solver        engine.Solver
	SolverOptions engine.Options
	EventBus      events.EventBus
	IDGenerator   idgen.Generator
	Clock         clock.Clock

	// ResultRepo is optional. Without it every run solves.
	ResultRepo optimizationresult.Repository
	// CacheTTL of zero uses the repository default
	CacheTTL time.Duration

	// Tracer defaults to the global tracer provider
	Tracer trace.Tracer
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Solver == nil {
		vb.RequiredField("Solver")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SolverOptions.MaxNodes < 0 {
		vb.Field("SolverOptions.MaxNodes", "must not be negative")
	}
	if c.CacheTTL < 0 {
		vb.Field("CacheTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	solver        engine.Solver
	solverOptions engine.Options
	eventBus      events.EventBus
	idGen         idgen.Generator
	clock         clock.Clock
	resultRepo    optimizationresult.Repository
	cacheTTL      time.Duration
	tracer        trace.Tracer
}

// NewOrchestrator creates a new optimizer orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &orchestrator{
		solver:        cfg.Solver,
		solverOptions: cfg.SolverOptions,
		eventBus:      cfg.EventBus,
		idGen:         cfg.IDGenerator,
		clock:         clk,
		resultRepo:    cfg.ResultRepo,
		cacheTTL:      cfg.CacheTTL,
		tracer:        tracer,
	}, nil
}

// OptimizeXP runs validate, build, solve and compile for one target set
func (o *orchestrator) OptimizeXP(ctx context.Context, input *OptimizeXPInput) (*OptimizeXPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ctx, span := o.tracer.Start(ctx, "optimizer.OptimizeXP")
	defer span.End()

	targets, err := o.validate(ctx, input.TargetValues)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	run := &optimization.Run{
		ID:        o.idGen.Generate(),
		Tier:      targets.Tier,
		Targets:   targets.Canonical(),
		StartedAt: o.clock.Now(),
	}
	span.SetAttributes(
		attribute.String("run.id", run.ID),
		attribute.Int("run.tier", int(run.Tier)),
		attribute.Int("run.targets", targets.Len()),
	)

	fingerprint := optimization.Fingerprint(run.Tier, run.Targets)
	if !input.SkipCache {
		if cached := o.lookupCache(ctx, fingerprint); cached != nil {
			run.State = optimization.RunStateCompiled
			run.Cached = true
			run.Result = cached
			run.Duration = o.clock.Since(run.StartedAt)
			o.publish(ctx, optimization.EventRunCompiled, run)
			span.SetAttributes(attribute.Bool("run.cached", true))

			slog.Info("Served optimization from cache",
				"run_id", run.ID,
				"fingerprint", fingerprint,
				"xp_total", cached.XPCost.Total(),
			)
			return &OptimizeXPOutput{RunID: run.ID, Result: cached, Cached: true, Duration: run.Duration}, nil
		}
	}

	result, err := o.execute(ctx, run, targets, input.MaxNodes)
	run.Duration = o.clock.Since(run.StartedAt)
	if err != nil {
		run.State = optimization.RunStateFailed
		run.Err = err
		o.publish(ctx, optimization.EventRunFailed, run)
		recordSpanError(span, err)

		slog.Warn("Optimization run failed",
			"run_id", run.ID,
			"tier", int(run.Tier),
			"nodes", run.Nodes,
			"error", err,
		)
		return nil, err
	}

	o.storeCache(ctx, fingerprint, result)

	slog.Info("Optimization run compiled",
		"run_id", run.ID,
		"tier", int(run.Tier),
		"targets", targets.Len(),
		"nodes", run.Nodes,
		"xp_total", result.XPCost.Total(),
		"missed", result.HasMisses(),
		"duration", run.Duration,
	)

	return &OptimizeXPOutput{
		RunID:    run.ID,
		Result:   result,
		Nodes:    run.Nodes,
		Duration: run.Duration,
	}, nil
}

// execute moves the run through Built, Solved and Compiled. Any error is
// terminal for the run.
func (o *orchestrator) execute(
	ctx context.Context, run *optimization.Run, targets *TargetSet, maxNodes int,
) (*optimization.Result, error) {
	_, buildSpan := o.tracer.Start(ctx, "optimizer.build")
	problem := BuildProblem(targets)
	buildSpan.SetAttributes(
		attribute.Int("model.variables", len(problem.Model.Variables)),
		attribute.Int("model.constraints", len(problem.Model.Constraints)),
	)
	buildSpan.End()

	run.State = optimization.RunStateBuilt
	o.publish(ctx, optimization.EventRunBuilt, run)

	solution, err := o.solve(ctx, problem, maxNodes)
	if err != nil {
		return nil, err
	}
	run.State = optimization.RunStateSolved
	run.Nodes = solution.Nodes
	o.publish(ctx, optimization.EventRunSolved, run)

	_, compileSpan := o.tracer.Start(ctx, "optimizer.compile")
	result, err := CompileResult(problem, solution)
	if err != nil {
		recordSpanError(compileSpan, err)
		compileSpan.End()
		return nil, err
	}
	compileSpan.End()

	run.State = optimization.RunStateCompiled
	run.Result = result
	o.publish(ctx, optimization.EventRunCompiled, run)

	return result, nil
}

func (o *orchestrator) solve(ctx context.Context, problem *Problem, maxNodes int) (*engine.Solution, error) {
	ctx, span := o.tracer.Start(ctx, "optimizer.solve")
	defer span.End()

	session, err := o.solver.NewSession(ctx, &engine.NewSessionInput{Model: problem.Model})
	if err != nil {
		recordSpanError(span, err)
		return nil, solveError(err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			slog.Warn("Failed to close solver session", "error", closeErr)
		}
	}()

	options := o.solverOptions
	if maxNodes > 0 {
		options.MaxNodes = maxNodes
	}

	out, err := session.Solve(ctx, &engine.SolveInput{Options: options})
	if err != nil {
		recordSpanError(span, err)
		return nil, solveError(err)
	}
	if out == nil || out.Solution == nil {
		return nil, errors.Internal("solver returned no solution")
	}

	span.SetAttributes(
		attribute.Int("solver.nodes", out.Solution.Nodes),
		attribute.Float64("solver.objective", out.Solution.Objective),
	)
	return out.Solution, nil
}

// solveError maps solver outcomes onto service error codes
func solveError(err error) error {
	switch {
	case errors.Is(err, engine.ErrInfeasible):
		return errors.WrapWithCode(err, errors.CodeFailedPrecondition, "targets cannot all be met")
	case errors.Is(err, engine.ErrNotConverged):
		return errors.WrapWithCode(err, errors.CodeAborted, "solver did not converge")
	case errors.Is(err, context.Canceled):
		return errors.WrapWithCode(err, errors.CodeCanceled, "optimization canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return errors.WrapWithCode(err, errors.CodeDeadlineExceeded, "optimization deadline exceeded")
	default:
		return errors.WrapWithCode(err, errors.CodeInternal, "solver failed")
	}
}

// ValidateTargetValues checks a target-values map without solving
func (o *orchestrator) ValidateTargetValues(
	ctx context.Context, input *ValidateTargetValuesInput,
) (*ValidateTargetValuesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	targets, err := o.validate(ctx, input.TargetValues)
	if err != nil {
		return nil, err
	}

	return &ValidateTargetValuesOutput{
		Tier:    targets.Tier,
		Targets: targets.Canonical(),
	}, nil
}

func (o *orchestrator) validate(ctx context.Context, raw map[string]interface{}) (*TargetSet, error) {
	_, span := o.tracer.Start(ctx, "optimizer.validate")
	defer span.End()

	targets, err := ValidateTargetValues(raw)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return targets, nil
}

// ListTargetValues describes every key the validator accepts
func (o *orchestrator) ListTargetValues(
	_ context.Context, _ *ListTargetValuesInput,
) (*ListTargetValuesOutput, error) {
	defaultTier := int(wrathglory.DefaultTier)
	out := &ListTargetValuesOutput{
		Tier: &TargetDescriptor{
			Name:     wrathglory.TierKey,
			Bounds:   wrathglory.TierBounds(),
			Optional: true,
			Default:  &defaultTier,
		},
	}

	for _, attr := range wrathglory.Attributes() {
		out.Attributes = append(out.Attributes, &TargetDescriptor{
			Name:     string(attr.ID),
			Aliases:  []string{attr.ShortName},
			Bounds:   attr.RatingBounds,
			Optional: true,
		})
	}
	for _, skill := range wrathglory.Skills() {
		out.Skills = append(out.Skills, &TargetDescriptor{
			Name:      string(skill.ID),
			Aliases:   aliases(string(skill.ID), skill.FullName),
			Bounds:    skill.TotalBounds(),
			Attribute: string(skill.Attribute),
			Optional:  true,
		})
	}
	for _, trait := range wrathglory.Traits() {
		out.Traits = append(out.Traits, &TargetDescriptor{
			Name:      string(trait.ID),
			Aliases:   aliases(string(trait.ID), trait.FullName),
			Bounds:    trait.BoundsAcrossTiers(),
			Attribute: string(trait.Attribute),
			Optional:  true,
		})
	}

	return out, nil
}

func aliases(id, fullName string) []string {
	if fullName == id {
		return nil
	}
	return []string{fullName}
}

func (o *orchestrator) lookupCache(ctx context.Context, fingerprint string) *optimization.Result {
	if o.resultRepo == nil {
		return nil
	}

	out, err := o.resultRepo.Get(ctx, optimizationresult.GetInput{Fingerprint: fingerprint})
	if err != nil {
		if !errors.IsNotFound(err) {
			slog.Warn("Result cache lookup failed", "fingerprint", fingerprint, "error", err)
		}
		return nil
	}
	return out.Result
}

func (o *orchestrator) storeCache(ctx context.Context, fingerprint string, result *optimization.Result) {
	if o.resultRepo == nil {
		return
	}

	_, err := o.resultRepo.Put(ctx, optimizationresult.PutInput{
		Fingerprint: fingerprint,
		Result:      result,
		TTL:         o.cacheTTL,
	})
	if err != nil {
		slog.Warn("Failed to cache optimization result", "fingerprint", fingerprint, "error", err)
	}
}

// publish announces a run transition. Subscribers never fail a run.
func (o *orchestrator) publish(ctx context.Context, eventType string, run *optimization.Run) {
	if err := o.eventBus.Publish(ctx, events.NewGameEvent(eventType, run, nil)); err != nil {
		slog.Warn("Failed to publish run event",
			"event", eventType,
			"run_id", run.ID,
			"error", err,
		)
	}
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
}
