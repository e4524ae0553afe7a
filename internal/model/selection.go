package model

// Algorithm identifies the solver that produced a selection.
type Algorithm string

const (
	AlgorithmExact  Algorithm = "exact"
	AlgorithmGreedy Algorithm = "greedy"
)

// DisplayName returns the name shown in reports.
func (a Algorithm) DisplayName() string {
	switch a {
	case AlgorithmExact:
		return "Dynamic"
	case AlgorithmGreedy:
		return "Greedy"
	default:
		return string(a)
	}
}

// Selection is the subset of requirements chosen under a budget.
type Selection struct {
	Algorithm Algorithm     `json:"algorithm"`
	Budget    int           `json:"budget"`
	Items     []Requirement `json:"items"`

	// Indices[i] is the position of Items[i] in the input slice.
	Indices []int `json:"indices"`

	// Fallback is set when the exact solver was attempted but could not run.
	Fallback bool `json:"fallback,omitempty"`
}

// TotalCost returns the summed cost of the selected items.
func (s Selection) TotalCost() int {
	return TotalCost(s.Items)
}

// TotalProfit returns the summed profit of the selected items.
func (s Selection) TotalProfit() int {
	return TotalProfit(s.Items)
}

// Len returns the number of selected items.
func (s Selection) Len() int {
	return len(s.Items)
}

// RemainingBudget returns the unspent part of the budget.
func (s Selection) RemainingBudget() int {
	return s.Budget - s.TotalCost()
}

// Comparison holds the result of running both solvers on the same input.
type Comparison struct {
	Budget int        `json:"budget"`
	Greedy Selection  `json:"greedy"`
	Exact  *Selection `json:"exact,omitempty"`

	// ExactSkipped explains why Exact is nil.
	ExactSkipped string `json:"exact_skipped,omitempty"`
}

// ProfitGap returns how much profit greedy leaves on the table versus exact.
// It returns 0 when the exact result is unavailable.
func (c Comparison) ProfitGap() int {
	if c.Exact == nil {
		return 0
	}
	return c.Exact.TotalProfit() - c.Greedy.TotalProfit()
}
