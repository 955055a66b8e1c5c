package tree

import (
	"sync"

	"cfrtree/regret"
)

const noParent = -1

// Node is owned by an Arena and only reachable through its index. Every
// accessor takes the node's lock, so a *Node can be shared freely.
type Node struct {
	sync.RWMutex
	idx      int
	parent   int
	slot     int
	data     Data
	children map[int]int
	counts   map[int]uint64
}

func newNode(idx, parent, slot int, data Data) *Node {
	return &Node{
		idx:      idx,
		parent:   parent,
		slot:     slot,
		data:     data,
		children: make(map[int]int),
		counts:   make(map[int]uint64),
	}
}

func (n *Node) Index() int {
	return n.idx
}

// Parent returns the parent index and the slot this node is bound to. The
// root has no parent.
func (n *Node) Parent() (idx int, slot int, ok bool) {
	if n.parent == noParent {
		return 0, 0, false
	}
	return n.parent, n.slot, true
}

func (n *Node) Kind() Kind {
	n.RLock()
	defer n.RUnlock()

	return n.data.Kind()
}

func (n *Node) Child(slot int) (int, bool) {
	n.RLock()
	defer n.RUnlock()

	idx, ok := n.children[slot]
	return idx, ok
}

// Children returns a copy of the slot to child bindings.
func (n *Node) Children() map[int]int {
	n.RLock()
	defer n.RUnlock()

	out := make(map[int]int, len(n.children))
	for slot, idx := range n.children {
		out[slot] = idx
	}
	return out
}

func (n *Node) Count(slot int) uint64 {
	n.RLock()
	defer n.RUnlock()

	return n.counts[slot]
}

// TotalCount sums the visit counters over every slot.
func (n *Node) TotalCount() uint64 {
	n.RLock()
	defer n.RUnlock()

	var total uint64
	for _, c := range n.counts {
		total += c
	}
	return total
}

// Utility returns the accumulated utility of a terminal node.
func (n *Node) Utility() (float64, bool) {
	n.RLock()
	defer n.RUnlock()

	td, ok := n.data.(*Terminal)
	if !ok {
		return 0, false
	}
	return td.TotalUtility, true
}

// Regret returns the matcher of a player node.
func (n *Node) Regret() (regret.Matcher, bool) {
	n.RLock()
	defer n.RUnlock()

	pd, ok := n.data.(*Player)
	if !ok || pd.Regret == nil {
		return nil, false
	}
	return pd.Regret, true
}

// Accumulate records one visit of a terminal node: slot 0 doubles as the
// visit counter since terminals have no children.
func (n *Node) Accumulate(utility float64) error {
	n.Lock()
	defer n.Unlock()

	td, ok := n.data.(*Terminal)
	if !ok {
		return unexpected("expected terminal node, found " + n.data.Kind().String())
	}
	n.counts[0]++
	td.TotalUtility += utility
	return nil
}
