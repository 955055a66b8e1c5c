package tree

// Cursor is where one in-flight hand sits in the tree: the current node, the
// edge chosen out of it and the seat whose view the hand records. It is a
// plain value owned by a single recorder.
type Cursor struct {
	node   int
	slot   int
	chosen bool
	seat   int
}

// NewCursor starts at the root with no edge chosen yet.
func NewCursor(seat int) Cursor {
	return Cursor{node: RootIdx, seat: seat}
}

func (c Cursor) Node() int { return c.node }

// Slot is the chosen edge, 0 until one is chosen.
func (c Cursor) Slot() int { return c.slot }

func (c Cursor) HasEdge() bool { return c.chosen }

func (c Cursor) Seat() int { return c.seat }

func (c *Cursor) MoveTo(node, slot int) {
	c.node = node
	c.slot = slot
	c.chosen = true
}

// Choose picks the outgoing edge without moving.
func (c *Cursor) Choose(slot int) {
	c.slot = slot
	c.chosen = true
}
