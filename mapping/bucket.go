package mapping

import (
	"errors"
	"math"
	"sort"

	"cfrtree/poker"
)

var ErrNoBuckets = errors.New("mapping: bucket scheme needs at least one positive pot fraction")

// Bucket sizes raises by pot fraction: fold, check/call, one edge per
// bucket, then all-in.
type Bucket struct {
	fractions []float64
}

// NewBucket sorts and deduplicates the pot fractions.
func NewBucket(fractions []float64) (*Bucket, error) {
	fs := make([]float64, 0, len(fractions))
	for _, f := range fractions {
		if f > 0 {
			fs = append(fs, f)
		}
	}
	if len(fs) == 0 {
		return nil, ErrNoBuckets
	}
	sort.Float64s(fs)

	uniq := fs[:1]
	for _, f := range fs[1:] {
		if f != uniq[len(uniq)-1] {
			uniq = append(uniq, f)
		}
	}
	return &Bucket{fractions: uniq}, nil
}

func (b *Bucket) Fractions() []float64 {
	return append([]float64(nil), b.fractions...)
}

func (b *Bucket) ToEdgeSlot(state *poker.GameState, action poker.Action) int {
	switch action.Kind {
	case poker.Fold:
		return slotFold
	case poker.Call:
		return slotCall
	case poker.AllIn:
		return b.allInSlot()
	}

	if action.Amount <= state.CurrentBet {
		return slotCall
	}
	if reach := state.Reach(); reach > 0 && action.Amount >= reach {
		return b.allInSlot()
	}
	return slotRaise + b.nearest(b.potFraction(state, action.Amount))
}

func (b *Bucket) LegalEdgeCount(*poker.GameState) int {
	return slotRaise + len(b.fractions) + 1
}

func (b *Bucket) allInSlot() int {
	return slotRaise + len(b.fractions)
}

// potFraction measures the raise on top of the call against the pot after
// calling.
func (b *Bucket) potFraction(state *poker.GameState, amount float64) float64 {
	pot := state.Pot + state.ToCall()
	if pot <= 0 {
		pot = state.BigBlind
	}
	if pot <= 0 {
		return b.fractions[0]
	}
	return (amount - state.CurrentBet) / pot
}

// nearest picks the closest bucket, the smaller one on ties.
func (b *Bucket) nearest(f float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, bf := range b.fractions {
		if d := math.Abs(bf - f); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
