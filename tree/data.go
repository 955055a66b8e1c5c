package tree

import "cfrtree/regret"

type Kind uint8

const (
	KindRoot Kind = iota
	KindChance
	KindPlayer
	KindTerminal
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindChance:
		return "chance"
	case KindPlayer:
		return "player"
	case KindTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Data is the per-node payload. Mutable payloads are pointers so they can be
// updated in place under the owning node's lock.
type Data interface {
	Kind() Kind
}

type Root struct{}

func (Root) Kind() Kind { return KindRoot }

type Chance struct{}

func (Chance) Kind() Kind { return KindChance }

// Player is a decision point. Regret is sized to the legal edges at creation.
type Player struct {
	Regret regret.Matcher
}

func (*Player) Kind() Kind { return KindPlayer }

type Terminal struct {
	TotalUtility float64
}

func (*Terminal) Kind() Kind { return KindTerminal }
