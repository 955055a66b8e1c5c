package experiments

import (
	"errors"

	"cfrtree/poker"
	"cfrtree/recorder"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

const numSeats = 2

// LeducDeck is the six card deck of Leduc hold'em.
var LeducDeck = []poker.Card{
	poker.NewCard(poker.Jack, poker.Spade), poker.NewCard(poker.Jack, poker.Heart),
	poker.NewCard(poker.Queen, poker.Spade), poker.NewCard(poker.Queen, poker.Heart),
	poker.NewCard(poker.King, poker.Spade), poker.NewCard(poker.King, poker.Heart),
}

type DealerOption func(d *Dealer)

func WithDeck(deck []poker.Card) DealerOption {
	return func(d *Dealer) {
		if len(deck) >= numSeats+1 {
			d.deck = append([]poker.Card(nil), deck...)
		}
	}
}

func WithStack(stack float64) DealerOption {
	return func(d *Dealer) {
		if stack > 0 {
			d.stack = stack
		}
	}
}

func WithMaxRaises(raises int) DealerOption {
	return func(d *Dealer) {
		if raises >= 0 {
			d.maxRaises = raises
		}
	}
}

// Dealer plays random heads-up hands of a Leduc style game (one hole card,
// one board card, fixed raise sizes) and reports every event to historians.
// It stands in for a real table when exercising the tree; a Dealer is not
// safe for concurrent use.
type Dealer struct {
	rng       *rand.Rand
	deck      []poker.Card
	stack     float64
	ante      float64
	raiseSize [2]float64
	maxRaises int
}

func NewDealer(seed uint64, options ...DealerOption) *Dealer {
	d := &Dealer{ // Default values
		rng:       rand.New(rand.NewSource(seed)),
		deck:      append([]poker.Card(nil), LeducDeck...),
		stack:     100,
		ante:      1,
		raiseSize: [2]float64{2, 4},
		maxRaises: 2,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// hand is the table of one deal. A historian that fails is dropped for the
// rest of the hand; the others keep receiving events.
type hand struct {
	id     uuid.UUID
	state  *poker.GameState
	hs     []recorder.Historian
	failed []bool
	errs   []error
}

func (h *hand) emit(ev poker.Event) {
	for i, hist := range h.hs {
		if h.failed[i] {
			continue
		}
		if err := hist.Record(h.id, h.state, ev); err != nil {
			h.failed[i] = true
			h.errs = append(h.errs, err)
		}
	}
}

func (h *hand) advance(round poker.Round) {
	h.state.Round = round
	h.emit(poker.RoundAdvance{Round: round})
}

// Play deals one hand and returns the joined faults of the historians.
func (d *Dealer) Play(id uuid.UUID, hs ...recorder.Historian) error {
	h := &hand{
		id:     id,
		state:  poker.NewGameState([]float64{d.stack, d.stack}, d.raiseSize[0]),
		hs:     hs,
		failed: make([]bool, len(hs)),
	}

	h.emit(poker.GameStart{BigBlind: d.raiseSize[0]})
	for seat := 0; seat < numSeats; seat++ {
		h.emit(poker.PlayerSit{Idx: seat, Stack: d.stack})
	}

	h.advance(poker.Ante)
	for seat := 0; seat < numSeats; seat++ {
		h.state.Stacks[seat] -= d.ante
		h.state.Pot += d.ante
		h.emit(poker.ForcedBet{Idx: seat, Amount: d.ante})
	}

	d.rng.Shuffle(len(d.deck), func(i, j int) { d.deck[i], d.deck[j] = d.deck[j], d.deck[i] })
	hole := d.deck[:numSeats]
	board := d.deck[numSeats]

	h.advance(poker.DealPreflop)
	for seat, card := range hole {
		h.emit(poker.DealStartingHand{Idx: seat, Card: card})
	}

	h.advance(poker.Preflop)
	folded := d.betting(h, d.raiseSize[0])

	if folded < 0 {
		h.advance(poker.DealFlop)
		h.state.Board = append(h.state.Board, board)
		h.emit(poker.DealCommunity{Card: board})

		h.advance(poker.Flop)
		folded = d.betting(h, d.raiseSize[1])
	}

	if folded < 0 {
		h.advance(poker.Showdown)
	}
	d.settle(h, hole, board, folded)
	h.advance(poker.Complete)

	return errors.Join(h.errs...)
}

// betting runs one round with a uniformly random policy and returns the seat
// that folded, or -1.
func (d *Dealer) betting(h *hand, raiseSize float64) int {
	s := h.state
	s.CurrentBet = 0
	s.RoundBets = make([]float64, numSeats)
	s.ToAct = 0

	acted, raises := 0, 0
	for {
		seat := s.ToAct
		action := d.pick(s, raises, raiseSize)
		h.emit(poker.PlayedAction{Idx: seat, Action: action})

		switch action.Kind {
		case poker.Fold:
			return seat
		case poker.Call:
			d.put(s, seat, s.ToCall())
		case poker.Bet:
			d.put(s, seat, action.Amount-s.RoundBets[seat])
			s.CurrentBet = action.Amount
			raises++
		}

		acted++
		if acted >= numSeats && s.RoundBets[0] == s.RoundBets[1] {
			return -1
		}
		s.ToAct = 1 - seat
	}
}

func (d *Dealer) pick(s *poker.GameState, raises int, raiseSize float64) poker.Action {
	options := []poker.Action{poker.CallAction()}
	if s.ToCall() > 0 {
		options = append(options, poker.FoldAction())
	}
	if raises < d.maxRaises && s.Reach() >= s.CurrentBet+raiseSize {
		options = append(options, poker.BetAction(s.CurrentBet+raiseSize))
	}
	return options[d.rng.Intn(len(options))]
}

func (d *Dealer) put(s *poker.GameState, seat int, amount float64) {
	amount = min(amount, s.Stacks[seat])
	s.Stacks[seat] -= amount
	s.RoundBets[seat] += amount
	s.Pot += amount
}

// settle pays the pot out and fills in every seat's net result.
func (d *Dealer) settle(h *hand, hole []poker.Card, board poker.Card, folded int) {
	s := h.state
	var winners []int
	switch {
	case folded >= 0:
		winners = []int{1 - folded}
	default:
		switch cmp := strength(hole[0], board) - strength(hole[1], board); {
		case cmp > 0:
			winners = []int{0}
		case cmp < 0:
			winners = []int{1}
		default:
			winners = []int{0, 1}
		}
	}

	share := s.Pot / float64(len(winners))
	for _, seat := range winners {
		s.Stacks[seat] += share
		h.emit(poker.Award{Idx: seat, Amount: share})
	}
	s.Pot = 0
	for seat := range s.PlayerWinnings {
		s.PlayerWinnings[seat] = s.Stacks[seat] - d.stack
	}
}

// strength ranks a Leduc hand: pairing the board beats any high card.
func strength(hole, board poker.Card) int {
	if hole.Value() == board.Value() {
		return 100 + int(hole.Value())
	}
	return int(hole.Value())
}
