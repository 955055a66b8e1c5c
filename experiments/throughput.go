package experiments

import (
	"context"
	"fmt"

	"cfrtree/mapping"
	"cfrtree/metrics"
	"cfrtree/tree"

	"github.com/rs/zerolog/log"
)

type ThroughputConfig struct {
	Hands      int // Per run
	Goroutines []int
	Seed       uint64
	Scheme     string
	Buckets    []float64
	OutputDir  string
}

// RunThroughputExperiment grows fresh trees once per goroutine count and
// stores one run record per count, plus the census of the last trees.
func RunThroughputExperiment(ctx context.Context, config ThroughputConfig) ([]metrics.RunRecord, error) {
	factory, err := mapping.Lookup(config.Scheme, config.Buckets)
	if err != nil {
		return nil, err
	}

	writer, err := metrics.NewWriter(config.OutputDir, "throughput")
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	log.Info().Msg("starting throughput experiment...")

	records := []metrics.RunRecord{}
	var runner *Runner
	for i, goroutines := range config.Goroutines {
		log.Info().Msgf("starting run %d of %d with goroutines=%d...", i+1, len(config.Goroutines), goroutines)

		runner = NewRunner(
			WithHands(config.Hands),
			WithGoroutines(goroutines),
			WithSeed(config.Seed),
			WithMapping(config.Scheme, factory),
			WithMetrics(metrics.NewCollector()),
		)
		metric, err := runner.Run(ctx)
		if err != nil {
			return records, err
		}

		records = append(records, metrics.RunRecord{
			ID:        i + 1,
			TreeSize:  runner.Size(),
			RunMetric: metric,
		})

		log.Info().Msgf("completed run %d of %d: %.2f hands/s, %d nodes", i+1, len(config.Goroutines), metric.HandsPerSecond(), runner.Size())
	}

	log.Info().Msg("completed throughput experiment")

	err = writer.WriteRunRecords(records)
	if err != nil {
		return records, fmt.Errorf("failed to write run records: %w", err)
	}
	log.Info().Msg("stored run records")

	if runner != nil {
		censuses := []map[string]int{}
		for _, arena := range runner.Arenas() {
			censuses = append(censuses, CensusByName(arena))
		}
		err = writer.WriteCensus(censuses)
		if err != nil {
			return records, fmt.Errorf("failed to write census: %w", err)
		}
		log.Info().Msg("stored census")
	}

	return records, nil
}

// CensusByName keys the arena census by node kind name.
func CensusByName(arena *tree.Arena) map[string]int {
	census := map[string]int{}
	for kind, n := range arena.Census() {
		census[kind.String()] = n
	}
	return census
}
