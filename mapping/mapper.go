package mapping

import (
	"fmt"

	"cfrtree/poker"
	"cfrtree/tree"
)

// Mapper collapses table actions onto tree edges. ToEdgeSlot must depend only
// on the abstracted action so equivalent actions in different hands share an
// edge, and LegalEdgeCount must equal the number of slots ToEdgeSlot can
// return at that point.
type Mapper interface {
	ToEdgeSlot(state *poker.GameState, action poker.Action) int
	LegalEdgeCount(state *poker.GameState) int
}

// Factory builds the mapper for one hand, given where the hand starts.
type Factory func(arena *tree.Arena, cursor tree.Cursor) Mapper

const (
	SchemeBasic  = "basic"
	SchemeBucket = "bucket"
)

// Lookup returns the factory for a named scheme. Buckets are only used by
// the bucket scheme.
func Lookup(scheme string, buckets []float64) (Factory, error) {
	switch scheme {
	case SchemeBasic, "":
		return func(*tree.Arena, tree.Cursor) Mapper { return Basic{} }, nil
	case SchemeBucket:
		m, err := NewBucket(buckets)
		if err != nil {
			return nil, err
		}
		return func(*tree.Arena, tree.Cursor) Mapper { return m }, nil
	default:
		return nil, fmt.Errorf("unknown action mapping scheme %q", scheme)
	}
}

// Schemes lists the names Lookup accepts.
func Schemes() []string {
	return []string{SchemeBasic, SchemeBucket}
}
