package knapsack

import (
	"errors"

	"github.com/guimove/reqfit/internal/model"
)

// ErrCapacity is returned when the exact table cannot be allocated.
var ErrCapacity = errors.New("insufficient memory for exact solver")

// Solver selects requirements whose total cost fits the budget.
type Solver interface {
	// Solve returns the chosen subset. It does not modify reqs.
	Solve(reqs []model.Requirement, budget int) (model.Selection, error)

	// Algorithm returns the tag recorded on selections.
	Algorithm() model.Algorithm
}

// newSelection builds a selection from input indices.
func newSelection(alg model.Algorithm, reqs []model.Requirement, budget int, indices []int) model.Selection {
	items := make([]model.Requirement, len(indices))
	for i, idx := range indices {
		items[i] = reqs[idx]
	}
	return model.Selection{
		Algorithm: alg,
		Budget:    budget,
		Items:     items,
		Indices:   indices,
	}
}
