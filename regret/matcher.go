package regret

import (
	"errors"
	"sync"

	"gonum.org/v1/gonum/floats"
)

var ErrNoExperts = errors.New("regret: matcher needs at least one expert")

// Matcher is the learning state attached to a decision node. The tree only
// constructs matchers; reading and updating them belongs to training, which
// must go through these methods so concurrent growth stays safe.
type Matcher interface {
	NumExperts() int
	Update(rewards []float64)
	Strategy() []float64
	AverageStrategy() []float64
}

// Factory builds a matcher for a node with n legal edges.
type Factory func(n int) (Matcher, error)

type matcher struct {
	sync.Mutex
	regrets     []float64
	strategySum []float64
	scratch     []float64
}

// New is the default Factory: plain regret matching with a running
// strategy sum.
func New(n int) (Matcher, error) {
	if n <= 0 {
		return nil, ErrNoExperts
	}
	return &matcher{
		regrets:     make([]float64, n),
		strategySum: make([]float64, n),
		scratch:     make([]float64, n),
	}, nil
}

func (m *matcher) NumExperts() int {
	return len(m.regrets)
}

// Update adds the instantaneous regret of each expert against the current
// strategy's expected reward. Extra rewards are ignored, missing ones count
// as zero.
func (m *matcher) Update(rewards []float64) {
	m.Lock()
	defer m.Unlock()

	n := len(m.regrets)
	r := m.scratch
	for i := range r {
		r[i] = 0
	}
	copy(r, rewards[:min(n, len(rewards))])

	strategy := m.strategy()
	expected := floats.Dot(strategy, r)
	floats.AddConst(-expected, r)
	floats.Add(m.regrets, r)
	floats.Add(m.strategySum, strategy)
}

func (m *matcher) Strategy() []float64 {
	m.Lock()
	defer m.Unlock()

	return m.strategy()
}

func (m *matcher) AverageStrategy() []float64 {
	m.Lock()
	defer m.Unlock()

	total := floats.Sum(m.strategySum)
	if total <= 0 {
		return uniform(len(m.strategySum))
	}
	avg := make([]float64, len(m.strategySum))
	floats.ScaleTo(avg, 1/total, m.strategySum)
	return avg
}

// strategy is proportional to positive regret, uniform when none is positive.
func (m *matcher) strategy() []float64 {
	s := make([]float64, len(m.regrets))
	for i, r := range m.regrets {
		if r > 0 {
			s[i] = r
		}
	}
	total := floats.Sum(s)
	if total <= 0 {
		return uniform(len(s))
	}
	floats.Scale(1/total, s)
	return s
}

func uniform(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1 / float64(n)
	}
	return s
}
