package poker

// Event is one thing that happened at the table. The set of events is closed:
// consumers switch over the concrete types below.
type Event interface {
	event()
}

type GameStart struct {
	BigBlind float64
}

type PlayerSit struct {
	Idx   int
	Stack float64
}

type ForcedBet struct {
	Idx    int
	Amount float64
}

type RoundAdvance struct {
	Round Round
}

type DealStartingHand struct {
	Idx  int
	Card Card
}

type DealCommunity struct {
	Card Card
}

type PlayedAction struct {
	Idx    int
	Action Action
}

// FailedAction reports an action the table rejected and the action it
// applied in its place.
type FailedAction struct {
	Idx       int
	Attempted Action
	Result    Action
}

// Award is a pot (or side pot) payout, not the seat's net result.
type Award struct {
	Idx    int
	Amount float64
}

func (GameStart) event()        {}
func (PlayerSit) event()        {}
func (ForcedBet) event()        {}
func (RoundAdvance) event()     {}
func (DealStartingHand) event() {}
func (DealCommunity) event()    {}
func (PlayedAction) event()     {}
func (FailedAction) event()     {}
func (Award) event()            {}
