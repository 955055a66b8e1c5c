package poker

// GameState is the snapshot of a hand that accompanies every event. It is
// produced by whatever runs the hand; the tree only reads it.
type GameState struct {
	Round          Round
	NumPlayers     int
	ToAct          int
	BigBlind       float64
	Pot            float64
	CurrentBet     float64   // highest total bet this round
	Stacks         []float64 // chips behind, per seat
	RoundBets      []float64 // chips put in this round, per seat
	PlayerWinnings []float64 // net result per seat, final once the hand completes
	Board          []Card
}

func NewGameState(stacks []float64, bigBlind float64) *GameState {
	n := len(stacks)
	s := &GameState{
		Round:          Starting,
		NumPlayers:     n,
		BigBlind:       bigBlind,
		Stacks:         append([]float64(nil), stacks...),
		RoundBets:      make([]float64, n),
		PlayerWinnings: make([]float64, n),
	}
	return s
}

func (s *GameState) Copy() *GameState {
	c := *s
	c.Stacks = append([]float64(nil), s.Stacks...)
	c.RoundBets = append([]float64(nil), s.RoundBets...)
	c.PlayerWinnings = append([]float64(nil), s.PlayerWinnings...)
	c.Board = append([]Card(nil), s.Board...)
	return &c
}

// ToCall is what the seat to act must add to match the current bet.
func (s *GameState) ToCall() float64 {
	if s.ToAct < 0 || s.ToAct >= len(s.RoundBets) {
		return 0
	}
	return s.CurrentBet - s.RoundBets[s.ToAct]
}

// Reach is the largest total round bet the seat to act can make.
func (s *GameState) Reach() float64 {
	if s.ToAct < 0 || s.ToAct >= len(s.Stacks) {
		return 0
	}
	return s.Stacks[s.ToAct] + s.RoundBets[s.ToAct]
}
