// Package metrics records optimization run outcomes as Prometheus metrics by
// listening to run events.
package metrics

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/optimization"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
)

const namespace = "xp_optimizer"

// Run outcomes used as the outcome label
const (
	OutcomeCompiled = "compiled"
	OutcomeCached   = "cached"
	OutcomeFailed   = "failed"
)

// subscriberPriority runs metrics after any rule handlers on the same bus
const subscriberPriority = 100

// Recorder owns the run metrics
type Recorder struct {
	runs     *prometheus.CounterVec
	nodes    prometheus.Histogram
	xpTotal  prometheus.Histogram
	duration *prometheus.HistogramVec
	missed   prometheus.Counter

	subscriptions []string
}

// NewRecorder registers the run metrics with reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "runs",
			Name:      "total",
			Help:      "Optimization runs by outcome and error code",
		}, []string{"outcome", "code"}),
		nodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "nodes",
			Help:      "Search nodes explored per solved run",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		xpTotal: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "runs",
			Name:      "xp_total",
			Help:      "Total XP cost of compiled results",
			Buckets:   []float64{0, 25, 50, 100, 150, 200, 300, 500, 800, 1200},
		}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "runs",
			Name:      "duration_seconds",
			Help:      "Wall time of optimization runs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		missed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "runs",
			Name:      "missed_targets_total",
			Help:      "Compiled results with at least one missed target",
		}),
	}
}

// Subscribe attaches the recorder to a run event bus
func (r *Recorder) Subscribe(bus events.EventBus) {
	r.subscriptions = append(r.subscriptions,
		bus.SubscribeFunc(optimization.EventRunCompiled, subscriberPriority, r.onCompiled),
		bus.SubscribeFunc(optimization.EventRunFailed, subscriberPriority, r.onFailed),
	)
}

// Unsubscribe detaches the recorder from the bus it was subscribed to
func (r *Recorder) Unsubscribe(bus events.EventBus) error {
	for _, id := range r.subscriptions {
		if err := bus.Unsubscribe(id); err != nil {
			return errors.Wrapf(err, "failed to unsubscribe %s", id)
		}
	}
	r.subscriptions = nil
	return nil
}

func (r *Recorder) onCompiled(_ context.Context, e events.Event) error {
	run, ok := e.Source().(*optimization.Run)
	if !ok || run.Result == nil {
		return nil
	}

	outcome := OutcomeCompiled
	if run.Cached {
		outcome = OutcomeCached
	} else {
		r.nodes.Observe(float64(run.Nodes))
	}

	r.runs.WithLabelValues(outcome, string(errors.CodeOK)).Inc()
	r.duration.WithLabelValues(outcome).Observe(run.Duration.Seconds())
	r.xpTotal.Observe(float64(run.Result.XPCost.Total()))
	if run.Result.HasMisses() {
		r.missed.Inc()
	}
	return nil
}

func (r *Recorder) onFailed(_ context.Context, e events.Event) error {
	run, ok := e.Source().(*optimization.Run)
	if !ok {
		return nil
	}

	r.runs.WithLabelValues(OutcomeFailed, string(errors.GetCode(run.Err))).Inc()
	r.duration.WithLabelValues(OutcomeFailed).Observe(run.Duration.Seconds())
	return nil
}
