package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cfrtree/mapping"
	"cfrtree/metrics"
	"cfrtree/poker"
	"cfrtree/recorder"
	"cfrtree/tree"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRunnerRun(t *testing.T) {
	t.Run("every hand recorded from both seats", func(t *testing.T) {
		runner := NewRunner(
			WithHands(200),
			WithGoroutines(8),
			WithSeed(1),
			WithMetrics(metrics.NewCollector()),
		)

		metric, err := runner.Run(context.Background())
		require.NoError(t, err)

		require.Equal(t, 200, metric.Hands)
		require.Equal(t, 8, metric.Goroutines)
		require.Equal(t, mapping.SchemeBasic, metric.Scheme)
		require.Zero(t, metric.Faults, "Synthetic hands should record cleanly")
		require.Equal(t, runner.Size()-numSeats, metric.NodesCreated, "Every node but the roots should be counted")

		require.Len(t, runner.Arenas(), numSeats)
		for seat, arena := range runner.Arenas() {
			root, ok := arena.Get(tree.RootIdx)
			require.True(t, ok)
			require.Equal(t, uint64(200), root.TotalCount(), "Seat %d should cross one root edge per hand", seat)
			require.LessOrEqual(t, len(root.Children()), len(LeducDeck), "Root edges are keyed by hole card")

			census := arena.Census()
			require.Equal(t, 1, census[tree.KindRoot])
			require.Positive(t, census[tree.KindChance])
			require.Positive(t, census[tree.KindPlayer])
			require.Positive(t, census[tree.KindTerminal])
		}
	})

	t.Run("topology independent of parallelism", func(t *testing.T) {
		sequential := NewRunner(WithHands(150), WithSeed(9))
		parallel := NewRunner(WithHands(150), WithSeed(9), WithGoroutines(16))

		_, err := sequential.Run(context.Background())
		require.NoError(t, err)
		_, err = parallel.Run(context.Background())
		require.NoError(t, err)

		require.Equal(t, sequential.Size(), parallel.Size())
		for seat := range sequential.Arenas() {
			require.Equal(t, sequential.Arenas()[seat].Census(), parallel.Arenas()[seat].Census())
		}
	})

	t.Run("bucket mapping", func(t *testing.T) {
		factory, err := mapping.Lookup(mapping.SchemeBucket, []float64{0.5, 1})
		require.NoError(t, err)

		metric, err := NewRunner(
			WithHands(50),
			WithMapping(mapping.SchemeBucket, factory),
			WithMetrics(metrics.NewCollector()),
		).Run(context.Background())
		require.NoError(t, err)

		require.Equal(t, mapping.SchemeBucket, metric.Scheme)
		require.Zero(t, metric.Faults)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		runner := NewRunner(WithHands(100), WithMetrics(metrics.NewCollector()))
		metric, err := runner.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, metric.Hands, "No hand should start after cancellation")
		require.Equal(t, numSeats, runner.Size(), "Only the roots should exist")
	})
}

// playBetFold feeds a hand where seat 0 bets and seat 1 folds.
func playBetFold(t *testing.T, hs []recorder.Historian, holes [numSeats]poker.Card) {
	t.Helper()
	id := uuid.New()
	state := poker.NewGameState([]float64{100, 100}, 2)

	events := []poker.Event{
		poker.GameStart{BigBlind: 2},
		poker.DealStartingHand{Idx: 0, Card: holes[0]},
		poker.DealStartingHand{Idx: 1, Card: holes[1]},
		poker.PlayedAction{Idx: 0, Action: poker.BetAction(2)},
		poker.PlayedAction{Idx: 1, Action: poker.FoldAction()},
	}
	for _, ev := range events {
		for _, h := range hs {
			require.NoError(t, h.Record(id, state, ev))
		}
	}

	state.Round = poker.Complete
	state.PlayerWinnings = []float64{1, -1}
	for _, h := range hs {
		require.NoError(t, h.Record(id, state, poker.RoundAdvance{Round: poker.Complete}))
	}
}

// betFoldTerminal follows hole card, bet and fold from the root.
func betFoldTerminal(t *testing.T, arena *tree.Arena, hole poker.Card) *tree.Node {
	t.Helper()
	idx := tree.RootIdx
	for _, slot := range []int{hole.Index(), hole.Index(), 2, 0} {
		child, ok := arena.ChildOf(idx, slot)
		require.True(t, ok, "Node %d should have a child at slot %d", idx, slot)
		idx = child
	}
	n, ok := arena.Get(idx)
	require.True(t, ok)
	require.Equal(t, tree.KindTerminal, n.Kind())
	return n
}

func TestRunnerSeatsKeepSeparateTrees(t *testing.T) {
	runner := NewRunner()
	jack := poker.NewCard(poker.Jack, poker.Spade)
	queen := poker.NewCard(poker.Queen, poker.Spade)

	// The jack bets and wins in the first hand, faces the bet and folds in the second
	playBetFold(t, runner.historians(), [numSeats]poker.Card{jack, queen})
	playBetFold(t, runner.historians(), [numSeats]poker.Card{queen, jack})

	arenas := runner.Arenas()
	bettor := betFoldTerminal(t, arenas[0], jack)
	folder := betFoldTerminal(t, arenas[1], jack)

	require.Equal(t, uint64(1), bettor.Count(0), "Terminal should only see the bettor's hand")
	utility, _ := bettor.Utility()
	require.Equal(t, 1.0, utility)

	require.Equal(t, uint64(1), folder.Count(0), "Terminal should only see the folder's hand")
	utility, _ = folder.Utility()
	require.Equal(t, -1.0, utility)
}

func TestRunThroughputExperiment(t *testing.T) {
	dir := t.TempDir()
	records, err := RunThroughputExperiment(context.Background(), ThroughputConfig{
		Hands:      20,
		Goroutines: []int{1, 4},
		Seed:       5,
		OutputDir:  dir,
	})
	require.NoError(t, err)

	require.Len(t, records, 2)
	require.Equal(t, 1, records[0].Goroutines)
	require.Equal(t, 4, records[1].Goroutines)
	require.Equal(t, records[0].TreeSize, records[1].TreeSize, "Same hands should grow the same tree")

	matches, err := filepath.Glob(filepath.Join(dir, "throughput", "*", "*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 2, "Run records and census should be written")
	for _, m := range matches {
		info, err := os.Stat(m)
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}

	t.Run("unknown scheme", func(t *testing.T) {
		_, err := RunThroughputExperiment(context.Background(), ThroughputConfig{Scheme: "nope", OutputDir: dir})
		require.Error(t, err)
	})
}

func TestCensusByName(t *testing.T) {
	arena := tree.NewArena()
	require.Equal(t, map[string]int{"root": 1}, CensusByName(arena))
}
