package mapping

import "cfrtree/poker"

const (
	slotFold = iota
	slotCall
	slotRaise
)

// Basic keeps three edges: fold, check/call and any aggression.
type Basic struct{}

func (Basic) ToEdgeSlot(state *poker.GameState, action poker.Action) int {
	switch action.Kind {
	case poker.Fold:
		return slotFold
	case poker.Call:
		return slotCall
	case poker.Bet:
		if action.Amount <= state.CurrentBet {
			return slotCall
		}
		return slotRaise
	default:
		return slotRaise
	}
}

func (Basic) LegalEdgeCount(*poker.GameState) int {
	return 3
}
