package recorder

import (
	"errors"
	"fmt"

	"cfrtree/mapping"
	"cfrtree/metrics"
	"cfrtree/poker"
	"cfrtree/regret"
	"cfrtree/tree"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrAbandoned is returned for every event after a recording faulted.
var ErrAbandoned = errors.New("recorder: hand recording abandoned")

// Historian consumes the events of one hand as they happen.
type Historian interface {
	Record(id uuid.UUID, state *poker.GameState, ev poker.Event) error
}

type Option func(r *Recorder)

func WithMapping(factory mapping.Factory) Option {
	return func(r *Recorder) {
		if factory != nil {
			r.newMapper = factory
		}
	}
}

func WithRegret(factory regret.Factory) Option {
	return func(r *Recorder) {
		if factory != nil {
			r.newRegret = factory
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(r *Recorder) {
		if collector != nil {
			r.metrics = collector
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// Recorder grows a shared arena along the path of one hand, seen from one
// seat. A Recorder is not safe for concurrent use; run one per hand and share
// the arena instead.
type Recorder struct {
	arena     *tree.Arena
	cursor    tree.Cursor
	mapper    mapping.Mapper
	newMapper mapping.Factory
	newRegret regret.Factory
	metrics   metrics.Collector
	logger    zerolog.Logger
	fault     error
}

func New(arena *tree.Arena, seat int, options ...Option) *Recorder {
	r := &Recorder{ // Default values
		arena:     arena,
		cursor:    tree.NewCursor(seat),
		newMapper: func(*tree.Arena, tree.Cursor) mapping.Mapper { return mapping.Basic{} },
		newRegret: regret.New,
		metrics:   metrics.NewDummyCollector(),
		logger:    log.Logger,
	}
	for _, option := range options {
		option(r)
	}
	r.mapper = r.newMapper(r.arena, r.cursor)
	return r
}

func (r *Recorder) Cursor() tree.Cursor {
	return r.cursor
}

// Err returns the fault that abandoned the recording, if any.
func (r *Recorder) Err() error {
	return r.fault
}

// Record applies one event. Events must arrive in play order; the first
// fault abandons the hand but leaves the arena usable by others.
func (r *Recorder) Record(id uuid.UUID, state *poker.GameState, ev poker.Event) error {
	if r.fault != nil {
		return fmt.Errorf("%w: %w", ErrAbandoned, r.fault)
	}

	r.metrics.AddEvent()
	err := r.dispatch(state, ev)
	if err != nil {
		r.fail(id, ev, err)
	}
	return err
}

func (r *Recorder) dispatch(state *poker.GameState, ev poker.Event) error {
	switch ev := ev.(type) {
	// Implied by the root
	case poker.GameStart, poker.ForcedBet, poker.PlayerSit:
		return nil
	case poker.RoundAdvance:
		if ev.Round == poker.Complete {
			return r.recordTerminal(state)
		}
		return r.handleRoundTransition(ev.Round)
	// Awards can be side pots; the net result is taken at the terminal
	case poker.Award:
		return nil
	case poker.DealStartingHand:
		// Opponents' cards stay hidden so the tree is shared across deals
		if ev.Idx != r.cursor.Seat() {
			return nil
		}
		return r.recordCard(state, ev.Card)
	case poker.DealCommunity:
		return r.recordCard(state, ev.Card)
	case poker.PlayedAction:
		return r.recordAction(state, ev.Action)
	case poker.FailedAction:
		return r.recordAction(state, ev.Result)
	default:
		panic(fmt.Sprintf("unexpected event type %T", ev))
	}
}

// ensureTargetNode counts the visit of the cursor's edge and returns the
// child behind it, creating it from build if the edge is new.
func (r *Recorder) ensureTargetNode(build func() (tree.Data, error)) (int, error) {
	idx, created, err := r.arena.EnsureFunc(r.cursor.Node(), r.cursor.Slot(), build)
	if err != nil {
		return 0, err
	}
	if created {
		if n, ok := r.arena.Get(idx); ok {
			r.metrics.AddNode(n.Kind().String())
		}
	}
	return idx, nil
}

func (r *Recorder) recordCard(state *poker.GameState, card poker.Card) error {
	slot := card.Index()
	// The first card of a hand picks the root edge
	if !r.cursor.HasEdge() {
		r.cursor.Choose(slot)
	}

	chanceIdx, err := r.ensureTargetNode(chanceData)
	if err != nil {
		return err
	}
	r.cursor.MoveTo(chanceIdx, slot)

	// Pre-create the decision node reached through this card
	_, err = r.ensureTargetNode(r.playerData(state))
	if err != nil {
		return err
	}

	// Stay on the chance node; the next action descends from here
	r.cursor.MoveTo(chanceIdx, slot)
	return nil
}

func (r *Recorder) recordAction(state *poker.GameState, action poker.Action) error {
	slot := r.mapper.ToEdgeSlot(state, action)

	node, ok := r.arena.Get(r.cursor.Node())
	if !ok {
		return tree.ErrNodeNotFound
	}

	if node.Kind() == tree.KindChance {
		child, ok := node.Child(r.cursor.Slot())
		if !ok {
			return &tree.UnexpectedNodeError{Msg: "expected existing child node for chance node"}
		}
		r.cursor.MoveTo(child, slot)
		return nil
	}

	to, err := r.ensureTargetNode(r.playerData(state))
	if err != nil {
		return err
	}
	r.cursor.MoveTo(to, slot)
	return nil
}

func (r *Recorder) recordTerminal(state *poker.GameState) error {
	// Checked first so a visit is never counted without its utility
	seat := r.cursor.Seat()
	if seat < 0 || seat >= len(state.PlayerWinnings) {
		return fmt.Errorf("no winnings for seat %d in a %d seat hand", seat, len(state.PlayerWinnings))
	}

	to, err := r.ensureTargetNode(terminalData)
	if err != nil {
		return err
	}
	r.cursor.MoveTo(to, 0)

	node, ok := r.arena.Get(to)
	if !ok {
		return tree.ErrNodeNotFound
	}
	return node.Accumulate(state.PlayerWinnings[seat])
}

// The whole hand is one path: a new round neither resets the cursor nor
// starts a subtree.
func (r *Recorder) handleRoundTransition(round poker.Round) error {
	return nil
}

func (r *Recorder) playerData(state *poker.GameState) func() (tree.Data, error) {
	return func() (tree.Data, error) {
		m, err := r.newRegret(r.mapper.LegalEdgeCount(state))
		if err != nil {
			return nil, fmt.Errorf("failed to create regret matcher: %w", err)
		}
		return &tree.Player{Regret: m}, nil
	}
}

func chanceData() (tree.Data, error) {
	return tree.Chance{}, nil
}

func terminalData() (tree.Data, error) {
	return &tree.Terminal{}, nil
}

func (r *Recorder) fail(id uuid.UUID, ev poker.Event, err error) {
	r.fault = err
	r.metrics.AddFault(faultKind(err))

	var e *zerolog.Event
	if errors.Is(err, tree.ErrUnexpectedNode) {
		e = r.logger.Warn()
	} else {
		e = r.logger.Error()
	}
	e.Err(err).
		Str("hand", id.String()).
		Int("seat", r.cursor.Seat()).
		Int("node", r.cursor.Node()).
		Int("slot", r.cursor.Slot()).
		Str("event", fmt.Sprintf("%T", ev)).
		Msg("abandoning hand recording")
}

func faultKind(err error) string {
	switch {
	case errors.Is(err, tree.ErrUnexpectedNode):
		return "unexpected_node"
	case errors.Is(err, tree.ErrNodeNotFound):
		return "node_not_found"
	default:
		return "other"
	}
}
