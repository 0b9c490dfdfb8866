package seed

import (
	"fmt"

	"github.com/stockseed/stockseed/internal/db"
)

// Pair wires one assignee to the target it was cycled onto.
type Pair[A, T any] struct {
	Assignee A
	Target   T
}

// Assign pairs every assignee with a target, cycling the target list
// when it is shorter: pair i gets targets[i mod len(targets)], assignee
// order preserved. An empty target list is an exhaustion error; there
// is nothing valid to assign.
func Assign[A, T any](assignees []A, targets []T) ([]Pair[A, T], error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: %d assignees and no targets", db.ErrExhaustion, len(assignees))
	}

	pairs := make([]Pair[A, T], len(assignees))
	for i, a := range assignees {
		pairs[i] = Pair[A, T]{Assignee: a, Target: targets[i%len(targets)]}
	}
	return pairs, nil
}
