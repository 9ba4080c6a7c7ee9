package experiments

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"propnet/engine"
	"propnet/game"
	"propnet/machine"
	"propnet/metrics"
	"propnet/optimize"
)

// Record is the outcome of one throughput run.
type Record struct {
	Config
	Components        int
	Playouts          int64
	PlayoutsPerSecond float64
	Evaluation        metrics.EvaluationMetric // Duration is the wall time of the run
}

// NewMachine builds the configured game and compiles it.
func NewMachine(cfg Config, collector metrics.Collector) (*machine.Machine, error) {
	build, err := game.Lookup(cfg.Game)
	if err != nil {
		return nil, err
	}
	strategy, err := machine.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	net, err := build()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s", cfg.Game)
	}

	var passes []optimize.Pass
	if cfg.Prune {
		passes = append(passes, optimize.Prune)
	}
	if cfg.Factor {
		passes = append(passes, optimize.FactorDisjunctions)
	}
	return machine.New(net,
		machine.WithStrategy(strategy),
		machine.WithPasses(passes...),
		machine.WithMetrics(collector),
	)
}

// Run plays random matches on cfg.Goroutines goroutines, each with its own forked
// machine, until the duration elapses or the playout budget is spent.
func Run(ctx context.Context, cfg Config) (Record, error) {
	cfg = cfg.withDefaults()
	collector := metrics.NewCollector()
	m, err := NewMachine(cfg, collector)
	if err != nil {
		return Record{}, err
	}

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	var claimed, completed atomic.Int64
	budget := int64(cfg.Playouts)
	roles := m.Roles()

	collector.Start()
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Goroutines; i++ {
		fork := m.Fork()
		agents := make([]engine.Agent, len(roles))
		for j := range agents {
			agents[j] = engine.NewRandomAgent(cfg.Seed + uint64(i*len(roles)+j))
		}
		e := engine.LocalEngine(fork, agents)

		g.Go(func() error {
			for ctx.Err() == nil {
				if budget > 0 && claimed.Add(1) > budget {
					return nil
				}
				if _, err := e.Run(); err != nil {
					return err
				}
				completed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Record{}, errors.Wrapf(err, "run %d", cfg.ID)
	}
	evaluation := collector.Complete()

	record := Record{
		Config:     cfg,
		Components: m.Network().Len(),
		Playouts:   completed.Load(),
		Evaluation: evaluation,
	}
	if evaluation.Duration > 0 {
		record.PlayoutsPerSecond = float64(record.Playouts) / evaluation.Duration.Seconds()
	}
	return record, nil
}

// RunAll executes every run in order and stores configs and records with w.
func RunAll(ctx context.Context, configs []Config, w *Writer) ([]Record, error) {
	configs = slices.Clone(configs)
	for i := range configs {
		configs[i] = configs[i].withDefaults()
	}
	if err := w.WriteConfigs(configs); err != nil {
		return nil, err
	}
	log.Info().Msg("stored run configs")

	records := make([]Record, 0, len(configs))
	for i, cfg := range configs {
		log.Info().Msgf("starting run %d of %d: %+v", i+1, len(configs), cfg)
		record, err := Run(ctx, cfg)
		if err != nil {
			return records, err
		}
		records = append(records, record)
		log.Info().Msgf("completed run %d of %d: %d playouts, %.1f playouts/s", i+1, len(configs), record.Playouts, record.PlayoutsPerSecond)
	}

	if err := w.WriteRecords(records); err != nil {
		return records, err
	}
	log.Info().Msg("stored run records")
	return records, nil
}
