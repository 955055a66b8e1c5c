package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"time"

	"cfrtree/config"
	"cfrtree/experiments"
	"cfrtree/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	cfg        *config.Config
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cfrtree",
		Short:         "Grow a shared CFR game tree from recorded poker hands",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			level, err := cfg.Level()
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newSimulateCmd(), newThroughputCmd())
	return root
}

func newSimulateCmd() *cobra.Command {
	var (
		hands       int
		goroutines  int
		seed        uint64
		scheme      string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Record synthetic hands into one tree per seat and print their census",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("hands") {
				cfg.Hands = hands
			}
			if flags.Changed("goroutines") {
				cfg.Goroutines = goroutines
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}
			if flags.Changed("scheme") {
				cfg.Scheme = scheme
			}
			if flags.Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}
			err := cfg.Validate()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return simulate(ctx, cmd, cfg)
		},
	}

	cmd.Flags().IntVar(&hands, "hands", 0, "number of hands to play")
	cmd.Flags().IntVar(&goroutines, "goroutines", 0, "number of goroutines recording hands")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed of the first hand")
	cmd.Flags().StringVar(&scheme, "scheme", "", "action mapping scheme (basic, bucket)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	return cmd
}

func simulate(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	factory, err := cfg.Mapping()
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		collector = metrics.NewPrometheusCollector(reg)

		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			err := srv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Str("addr", cfg.MetricsAddr).Msg("metrics server stopped")
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Info().Msgf("serving metrics on %s", cfg.MetricsAddr)
	}

	runner := experiments.NewRunner(
		experiments.WithHands(cfg.Hands),
		experiments.WithGoroutines(cfg.Goroutines),
		experiments.WithSeed(cfg.Seed),
		experiments.WithMapping(cfg.Scheme, factory),
		experiments.WithMetrics(collector),
	)

	log.Info().Msgf("starting simulation of %d hands with goroutines=%d...", cfg.Hands, cfg.Goroutines)
	metric, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation interrupted after %d hands: %w", metric.Hands, err)
	}
	log.Info().
		Int("hands", metric.Hands).
		Int("events", metric.Events).
		Int("faults", metric.Faults).
		Int("nodes", runner.Size()).
		Dur("duration", metric.Duration).
		Msgf("completed simulation at %.2f hands/s", metric.HandsPerSecond())

	out := cmd.OutOrStdout()
	for seat, arena := range runner.Arenas() {
		census := experiments.CensusByName(arena)
		kinds := make([]string, 0, len(census))
		for kind := range census {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)

		fmt.Fprintf(out, "seat %d\n", seat)
		for _, kind := range kinds {
			fmt.Fprintf(out, "  %-9s %d\n", kind, census[kind])
		}
	}
	return nil
}

func newThroughputCmd() *cobra.Command {
	var (
		hands      int
		goroutines []int
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "throughput",
		Short: "Measure recording throughput across goroutine counts and store CSV records",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("hands") {
				cfg.Hands = hands
			}
			if flags.Changed("goroutines") {
				cfg.ThroughputGoroutines = goroutines
			}
			if flags.Changed("output-dir") {
				cfg.OutputDir = outputDir
			}
			err := cfg.Validate()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			_, err = experiments.RunThroughputExperiment(ctx, experiments.ThroughputConfig{
				Hands:      cfg.Hands,
				Goroutines: cfg.ThroughputGoroutines,
				Seed:       cfg.Seed,
				Scheme:     cfg.Scheme,
				Buckets:    cfg.Buckets,
				OutputDir:  cfg.OutputDir,
			})
			return err
		},
	}

	cmd.Flags().IntVar(&hands, "hands", 0, "number of hands per run")
	cmd.Flags().IntSliceVar(&goroutines, "goroutines", nil, "goroutine counts to compare")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for the CSV records")
	return cmd
}
