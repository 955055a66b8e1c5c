package tree

import "sync"

// RootIdx is the index of the root node in every arena.
const RootIdx = 0

// Arena stores every node of one game tree. Nodes refer to each other by
// index only, and are never removed.
//
// Slice growth is guarded by the arena lock; counters, bindings and node
// data by each node's own lock. When both are needed the node lock is taken
// first.
type Arena struct {
	mu    sync.RWMutex
	nodes []*Node
}

func NewArena() *Arena {
	return &Arena{
		nodes: []*Node{newNode(RootIdx, noParent, 0, Root{})},
	}
}

func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.nodes)
}

func (a *Arena) Get(idx int) (*Node, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if idx < 0 || idx >= len(a.nodes) {
		return nil, false
	}
	return a.nodes[idx], true
}

func (a *Arena) ChildOf(idx, slot int) (int, bool) {
	node, ok := a.Get(idx)
	if !ok {
		return 0, false
	}
	return node.Child(slot)
}

// Add creates a node bound at parent's slot without touching any counter.
// It refuses to rebind a slot.
func (a *Arena) Add(parent, slot int, data Data) (int, error) {
	p, ok := a.Get(parent)
	if !ok {
		return 0, ErrNodeNotFound
	}

	p.Lock()
	defer p.Unlock()

	if _, bound := p.children[slot]; bound {
		return 0, ErrSlotBound
	}
	return a.bind(p, slot, data), nil
}

// Ensure is EnsureFunc with eagerly built data.
func (a *Arena) Ensure(parent, slot int, data Data) (idx int, created bool, err error) {
	return a.EnsureFunc(parent, slot, func() (Data, error) { return data, nil })
}

// EnsureFunc counts a visit of parent's slot and returns the child bound
// there, creating it from build when the slot is empty. The increment,
// lookup and creation happen under the parent's lock, so racing callers on
// the same edge always agree on one child. build runs only on creation; if it
// fails nothing is bound but the visit stays counted.
func (a *Arena) EnsureFunc(parent, slot int, build func() (Data, error)) (idx int, created bool, err error) {
	p, ok := a.Get(parent)
	if !ok {
		return 0, false, ErrNodeNotFound
	}

	p.Lock()
	defer p.Unlock()

	p.counts[slot]++
	if child, bound := p.children[slot]; bound {
		return child, false, nil
	}

	data, err := build()
	if err != nil {
		return 0, false, err
	}
	return a.bind(p, slot, data), true, nil
}

// bind appends a fully built node and then publishes it in p. The caller
// holds p's lock.
func (a *Arena) bind(p *Node, slot int, data Data) int {
	a.mu.Lock()
	idx := len(a.nodes)
	a.nodes = append(a.nodes, newNode(idx, p.idx, slot, data))
	a.mu.Unlock()

	p.children[slot] = idx
	return idx
}

// Walk visits nodes in index order until fn returns false. Nodes added
// during the walk may be skipped.
func (a *Arena) Walk(fn func(n *Node) bool) {
	a.mu.RLock()
	nodes := a.nodes[:len(a.nodes):len(a.nodes)]
	a.mu.RUnlock()

	for _, n := range nodes {
		if !fn(n) {
			return
		}
	}
}

// Census counts nodes per kind.
func (a *Arena) Census() map[Kind]int {
	out := make(map[Kind]int)
	a.Walk(func(n *Node) bool {
		out[n.Kind()]++
		return true
	})
	return out
}
