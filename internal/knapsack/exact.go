package knapsack

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/go-logr/logr"

	"github.com/guimove/reqfit/internal/model"
)

// SpaceChecker predicts whether a table for n items and the given budget fits.
type SpaceChecker interface {
	HasEnoughSpace(n, budget int) bool
}

// Exact solves the 0-1 knapsack problem with dynamic programming.
type Exact struct {
	Space SpaceChecker

	// MaxCells caps the table size. 0 means no cap.
	MaxCells int

	Log logr.Logger
}

// NewExact creates an exact solver gated by the given space checker.
func NewExact(space SpaceChecker) *Exact {
	return &Exact{Space: space, Log: logr.Discard()}
}

// Algorithm returns "exact".
func (e *Exact) Algorithm() model.Algorithm { return model.AlgorithmExact }

// Solve fills maxValue[i][c] for i in 0..n and c in 0..budget and backtracks
// the optimal subset. Items are reported from the last input item to the first.
func (e *Exact) Solve(reqs []model.Requirement, budget int) (model.Selection, error) {
	if err := model.ValidateInput(reqs, budget); err != nil {
		return model.Selection{}, err
	}

	n := len(reqs)
	if e.Space != nil && !e.Space.HasEnoughSpace(n, budget) {
		return model.Selection{}, fmt.Errorf("%w: table for %d requirements and budget %d", ErrCapacity, n, budget)
	}

	t, err := newTable(n+1, budget+1, e.MaxCells)
	if err != nil {
		return model.Selection{}, err
	}
	e.Log.V(1).Info("Allocated exact table", "rows", t.rows, "cols", t.cols)

	// Row i corresponds to reqs[i-1]; row 0 stays zero.
	for i := 1; i <= n; i++ {
		cost, profit := reqs[i-1].Cost, reqs[i-1].Profit
		prev, cur := t.row(i-1), t.row(i)

		fit := min(cost, budget+1)
		copy(cur[:fit], prev[:fit])
		for c := fit; c <= budget; c++ {
			cur[c] = max(prev[c], prev[c-cost]+profit)
		}
	}

	var chosen []int
	k := budget
	for i := n; i > 0; i-- {
		// Exclusion wins ties.
		if t.row(i)[k] != t.row(i - 1)[k] {
			chosen = append(chosen, i-1)
			k -= reqs[i-1].Cost
		}
	}

	sel := newSelection(model.AlgorithmExact, reqs, budget, chosen)
	e.Log.V(1).Info("Exact solver finished", "optimalProfit", t.row(n)[budget], "selected", len(chosen))
	return sel, nil
}

// maxTableBytes stays below the largest slice the runtime will allocate
// (2^48 bytes on 64-bit platforms).
const maxTableBytes = uint64(1) << (min(bits.UintSize, 48) - 1)

// cellBytes is the size of one table cell.
const cellBytes = bits.UintSize / 8

// table is a row-major (rows x cols) matrix backed by a single allocation.
type table struct {
	rows, cols int
	cells      []int
}

// newTable sizes the DP table, returning ErrCapacity instead of attempting
// an allocation that overflows, exceeds maxCells or exceeds what the runtime
// can allocate.
func newTable(rows, cols, maxCells int) (*table, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: invalid table shape %dx%d", ErrCapacity, rows, cols)
	}
	if rows > math.MaxInt/cols {
		return nil, fmt.Errorf("%w: table %dx%d overflows", ErrCapacity, rows, cols)
	}
	size := rows * cols
	if uint64(size) > maxTableBytes/cellBytes {
		return nil, fmt.Errorf("%w: table needs %d cells, more than can be allocated", ErrCapacity, size)
	}
	if maxCells > 0 && size > maxCells {
		return nil, fmt.Errorf("%w: table needs %d cells, limit is %d", ErrCapacity, size, maxCells)
	}
	return &table{rows: rows, cols: cols, cells: make([]int, size)}, nil
}

func (t *table) row(i int) []int {
	return t.cells[i*t.cols : (i+1)*t.cols]
}
