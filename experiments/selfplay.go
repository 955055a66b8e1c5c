package experiments

import (
	"context"

	"cfrtree/mapping"
	"cfrtree/metrics"
	"cfrtree/recorder"
	"cfrtree/tree"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Option func(r *Runner)

func WithHands(hands int) Option {
	return func(r *Runner) {
		if hands >= 0 {
			r.hands = hands
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(r *Runner) {
		if goroutines > 0 {
			r.goroutines = goroutines
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(r *Runner) {
		r.seed = seed
	}
}

// WithMapping sets the action mapping used by every recorder. The scheme
// name is only reported in the run metric.
func WithMapping(scheme string, factory mapping.Factory) Option {
	return func(r *Runner) {
		if factory != nil {
			r.scheme = scheme
			r.newMapper = factory
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(r *Runner) {
		if collector != nil {
			r.metrics = collector
		}
	}
}

func WithDealerOptions(options ...DealerOption) Option {
	return func(r *Runner) {
		r.dealerOptions = append(r.dealerOptions, options...)
	}
}

// Runner plays hands in parallel and records each of them from both seats.
// Every seat grows its own arena: the same public path means different
// information sets for the player acting first and the one acting second.
type Runner struct {
	arenas        [numSeats]*tree.Arena
	hands         int
	goroutines    int
	seed          uint64
	scheme        string
	newMapper     mapping.Factory
	metrics       metrics.Collector
	logger        zerolog.Logger
	dealerOptions []DealerOption
}

func NewRunner(options ...Option) *Runner {
	basic, _ := mapping.Lookup(mapping.SchemeBasic, nil)
	r := &Runner{ // Default values
		arenas:     [numSeats]*tree.Arena{tree.NewArena(), tree.NewArena()},
		hands:      1000,
		goroutines: 1,
		scheme:     mapping.SchemeBasic,
		newMapper:  basic,
		metrics:    metrics.NewDummyCollector(),
		logger:     log.Logger,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Arenas returns the tree of every seat, indexed by seat.
func (r *Runner) Arenas() []*tree.Arena {
	return r.arenas[:]
}

// Size is the node count over all seats' trees.
func (r *Runner) Size() int {
	size := 0
	for _, arena := range r.arenas {
		size += arena.Len()
	}
	return size
}

// Run plays the configured number of hands and returns the run metric. A
// faulted recording is logged and counted but does not stop the run; only a
// cancelled context does.
func (r *Runner) Run(ctx context.Context) (metrics.RunMetric, error) {
	r.metrics.Start(r.goroutines, r.scheme)

	var g errgroup.Group
	g.SetLimit(r.goroutines)

loop:
	for i := 0; i < r.hands; i++ {
		select {
		case <-ctx.Done():
			break loop
		default:
		}

		// Hands are seeded by number so a run is reproducible at any parallelism
		seed := r.seed + uint64(i)
		g.Go(func() error {
			r.play(seed)
			return nil
		})
	}

	err := g.Wait()
	metric := r.metrics.Complete()
	if err == nil {
		err = ctx.Err()
	}
	return metric, err
}

func (r *Runner) play(seed uint64) {
	id := uuid.New()
	err := NewDealer(seed, r.dealerOptions...).Play(id, r.historians()...)
	if err != nil {
		r.logger.Debug().Err(err).Str("hand", id.String()).Msg("hand recorded with faults")
	}
	r.metrics.AddHand()
}

// historians builds the recorders of one hand, each on its seat's arena.
func (r *Runner) historians() []recorder.Historian {
	hs := make([]recorder.Historian, numSeats)
	for seat := range hs {
		hs[seat] = recorder.New(r.arenas[seat], seat,
			recorder.WithMapping(r.newMapper),
			recorder.WithMetrics(r.metrics),
			recorder.WithLogger(r.logger),
		)
	}
	return hs
}
