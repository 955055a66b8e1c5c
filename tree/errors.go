package tree

import "errors"

var (
	// ErrNodeNotFound means an index outside the arena: a cursor bug, not a
	// runtime condition.
	ErrNodeNotFound = errors.New("tree: node not found")
	// ErrSlotBound is returned by Add when the edge already has a child.
	ErrSlotBound = errors.New("tree: edge slot already bound")
	// ErrUnexpectedNode matches every UnexpectedNodeError.
	ErrUnexpectedNode = errors.New("tree: unexpected node")
)

// UnexpectedNodeError reports a node whose kind does not fit the event being
// recorded, usually an out of order event stream.
type UnexpectedNodeError struct {
	Msg string
}

func (e *UnexpectedNodeError) Error() string {
	return "tree: unexpected node: " + e.Msg
}

func (e *UnexpectedNodeError) Is(target error) bool {
	return target == ErrUnexpectedNode
}

func unexpected(msg string) error {
	return &UnexpectedNodeError{Msg: msg}
}
