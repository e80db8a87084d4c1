// Package bench measures generator throughput and verifies uniqueness under load.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/anthanhphan/timeshard/pkg/idgen"
	"github.com/anthanhphan/timeshard/pkg/resilience"
)

// Source issues one ID.
type Source func(ctx context.Context) (idgen.ID, error)

// SnowflakeSource adapts a local generator.
func SnowflakeSource(sf *idgen.Snowflake) Source {
	return func(context.Context) (idgen.ID, error) {
		return sf.Next()
	}
}

type Options struct {
	Workers   int
	PerWorker int
	Warmup    int
}

type Result struct {
	Name      string        `json:"name"`
	Workers   int           `json:"workers"`
	Generated int           `json:"generated"`
	Unique    int           `json:"unique"`
	Duration  time.Duration `json:"duration"`
}

func (r Result) AllUnique() bool {
	return r.Generated == r.Unique
}

// Throughput returns IDs per second.
func (r Result) Throughput() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Generated) / r.Duration.Seconds()
}

// AvgPerID returns the mean wall time per ID across all workers.
func (r Result) AvgPerID() time.Duration {
	if r.Generated == 0 {
		return 0
	}
	return r.Duration / time.Duration(r.Generated)
}

// Run issues opts.Workers*opts.PerWorker IDs from src on a worker pool and counts distinct values.
func Run(ctx context.Context, name string, src Source, opts Options) (Result, error) {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.PerWorker <= 0 {
		return Result{}, fmt.Errorf("per-worker count must be positive, got %d", opts.PerWorker)
	}

	for i := 0; i < opts.Warmup; i++ {
		if _, err := src(ctx); err != nil {
			return Result{}, fmt.Errorf("warmup failed: %w", err)
		}
	}

	batches := make([][]idgen.ID, opts.Workers)
	pool := resilience.NewWorkerPool(ctx, opts.Workers, opts.Workers)

	start := time.Now()
	for i := 0; i < opts.Workers; i++ {
		batch := i
		err := pool.Submit(ctx, func(ctx context.Context, _ int) error {
			ids := make([]idgen.ID, 0, opts.PerWorker)
			for j := 0; j < opts.PerWorker; j++ {
				id, err := src(ctx)
				if err != nil {
					return fmt.Errorf("batch %d: %w", batch, err)
				}
				ids = append(ids, id)
			}
			batches[batch] = ids
			return nil
		})
		if err != nil {
			if werr := pool.Wait(); werr != nil {
				return Result{}, werr
			}
			return Result{}, fmt.Errorf("failed to submit batch %d: %w", i, err)
		}
	}
	if err := pool.Wait(); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	seen := make(map[idgen.ID]struct{}, opts.Workers*opts.PerWorker)
	generated := 0
	for _, ids := range batches {
		generated += len(ids)
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}

	return Result{
		Name:      name,
		Workers:   opts.Workers,
		Generated: generated,
		Unique:    len(seen),
		Duration:  elapsed,
	}, nil
}

// RunLayouts runs the same load against a fresh generator for each node width.
func RunLayouts(ctx context.Context, nodeBits []int, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(nodeBits))
	for _, bits := range nodeBits {
		sf, err := idgen.New(idgen.Config{NodeID: 1, NodeBits: bits, CustomEpoch: idgen.DefaultCustomEpoch})
		if err != nil {
			return nil, err
		}
		layout := sf.Layout()
		name := fmt.Sprintf("%d-%d-%d", idgen.EpochBits, layout.NodeBits, layout.SequenceBits)

		res, err := Run(ctx, name, SnowflakeSource(sf), opts)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", name, err)
		}
		results = append(results, res)
	}
	return results, nil
}
