package poker

import "fmt"

type ActionKind uint8

const (
	Fold ActionKind = iota
	Call
	Bet
	AllIn
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case AllIn:
		return "allin"
	default:
		return "unknown"
	}
}

// Action is what an agent asks the table to do. For Bet, Amount is the
// seat's total bet for the round, not the increment.
type Action struct {
	Kind   ActionKind
	Amount float64
}

func FoldAction() Action { return Action{Kind: Fold} }

func CallAction() Action { return Action{Kind: Call} }

func BetAction(amount float64) Action { return Action{Kind: Bet, Amount: amount} }

func AllInAction() Action { return Action{Kind: AllIn} }

func (a Action) String() string {
	if a.Kind == Bet {
		return fmt.Sprintf("bet(%g)", a.Amount)
	}
	return a.Kind.String()
}

type Round uint8

const (
	Starting Round = iota
	Ante
	DealPreflop
	Preflop
	DealFlop
	Flop
	DealTurn
	Turn
	DealRiver
	River
	Showdown
	Complete
)

var roundNames = [...]string{
	"starting", "ante", "deal_preflop", "preflop", "deal_flop", "flop",
	"deal_turn", "turn", "deal_river", "river", "showdown", "complete",
}

func (r Round) String() string {
	if int(r) < len(roundNames) {
		return roundNames[r]
	}
	return "unknown"
}
