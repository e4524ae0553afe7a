package knapsack

import (
	"math/bits"
	"sort"

	"github.com/guimove/reqfit/internal/model"
)

// Greedy selects requirements in descending profit/cost order, taking each one
// that still fits. It never reconsiders a skipped requirement.
type Greedy struct{}

// NewGreedy creates a greedy solver.
func NewGreedy() *Greedy { return &Greedy{} }

// Algorithm returns "greedy".
func (g *Greedy) Algorithm() model.Algorithm { return model.AlgorithmGreedy }

// Solve ranks requirements by ratio and fills the budget in a single pass.
// Selected items are reported in ranking order.
func (g *Greedy) Solve(reqs []model.Requirement, budget int) (model.Selection, error) {
	if err := model.ValidateInput(reqs, budget); err != nil {
		return model.Selection{}, err
	}

	order := RankByRatio(reqs)

	var chosen []int
	total := 0
	for i := 0; i < len(order) && total <= budget; i++ {
		cost := reqs[order[i]].Cost
		if cost <= budget-total {
			chosen = append(chosen, order[i])
			total += cost
		}
	}

	return newSelection(model.AlgorithmGreedy, reqs, budget, chosen), nil
}

// RankByRatio returns input indices sorted by profit/cost descending.
// Zero-cost requirements come first, by profit. Equal ratios keep input order.
func RankByRatio(reqs []model.Requirement) []int {
	order := make([]int, len(reqs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return ratioGreater(reqs[order[i]], reqs[order[j]])
	})
	return order
}

// ratioGreater reports whether a.Profit/a.Cost > b.Profit/b.Cost.
func ratioGreater(a, b model.Requirement) bool {
	switch {
	case a.Cost == 0 && b.Cost == 0:
		return a.Profit > b.Profit
	case a.Cost == 0:
		return true
	case b.Cost == 0:
		return false
	}
	// a.Profit*b.Cost > b.Profit*a.Cost, in 128 bits. Inputs are validated non-negative.
	ahi, alo := bits.Mul64(uint64(a.Profit), uint64(b.Cost))
	bhi, blo := bits.Mul64(uint64(b.Profit), uint64(a.Cost))
	if ahi != bhi {
		return ahi > bhi
	}
	return alo > blo
}
