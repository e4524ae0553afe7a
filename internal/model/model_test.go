package model

import (
	"errors"
	"math"
	"testing"
)

func TestRequirement_Validate(t *testing.T) {
	tests := []struct {
		name    string
		r       Requirement
		wantErr bool
	}{
		{"valid", Requirement{Cost: 3, Profit: 4}, false},
		{"zero cost and profit", Requirement{}, false},
		{"negative cost", Requirement{Cost: -1, Profit: 4}, true},
		{"negative profit", Requirement{Cost: 1, Profit: -4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRequirement) {
				t.Errorf("expected ErrInvalidRequirement, got %v", err)
			}
		})
	}
}

func TestValidateInput(t *testing.T) {
	if err := ValidateInput(nil, 0); err != nil {
		t.Errorf("empty input with zero budget should be valid: %v", err)
	}
	if err := ValidateInput(nil, -1); !errors.Is(err, ErrInvalidBudget) {
		t.Errorf("expected ErrInvalidBudget, got %v", err)
	}
	reqs := []Requirement{{Cost: 1, Profit: 1}, {Cost: -5, Profit: 1}}
	if err := ValidateInput(reqs, 10); !errors.Is(err, ErrInvalidRequirement) {
		t.Errorf("expected ErrInvalidRequirement, got %v", err)
	}
}

func TestValidateInput_ProfitOverflow(t *testing.T) {
	fits := []Requirement{{Cost: 1, Profit: math.MaxInt - 1}, {Cost: 1, Profit: 1}}
	if err := ValidateInput(fits, 2); err != nil {
		t.Errorf("profit summing to MaxInt should be valid: %v", err)
	}

	overflows := append(fits, Requirement{Cost: 1, Profit: 1})
	if err := ValidateInput(overflows, 3); !errors.Is(err, ErrInvalidRequirement) {
		t.Errorf("expected ErrInvalidRequirement for overflowing profit, got %v", err)
	}
}

func TestRequirement_Label(t *testing.T) {
	tests := []struct {
		r    Requirement
		want string
	}{
		{Requirement{ID: "R1", Name: "Login"}, "Login (R1)"},
		{Requirement{Name: "Login"}, "Login"},
		{Requirement{ID: "R1"}, "R1"},
		{Requirement{Cost: 2, Profit: 3}, "cost=2 profit=3"},
	}
	for _, tt := range tests {
		if got := tt.r.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestSelection_Totals(t *testing.T) {
	sel := Selection{
		Algorithm: AlgorithmExact,
		Budget:    10,
		Items:     []Requirement{{Cost: 3, Profit: 5}, {Cost: 4, Profit: 7}},
		Indices:   []int{2, 0},
	}
	if sel.TotalCost() != 7 {
		t.Errorf("TotalCost = %d, want 7", sel.TotalCost())
	}
	if sel.TotalProfit() != 12 {
		t.Errorf("TotalProfit = %d, want 12", sel.TotalProfit())
	}
	if sel.RemainingBudget() != 3 {
		t.Errorf("RemainingBudget = %d, want 3", sel.RemainingBudget())
	}
	if sel.Len() != 2 {
		t.Errorf("Len = %d, want 2", sel.Len())
	}
}

func TestAlgorithm_DisplayName(t *testing.T) {
	if AlgorithmExact.DisplayName() != "Dynamic" {
		t.Errorf("exact display name = %q", AlgorithmExact.DisplayName())
	}
	if AlgorithmGreedy.DisplayName() != "Greedy" {
		t.Errorf("greedy display name = %q", AlgorithmGreedy.DisplayName())
	}
	if Algorithm("other").DisplayName() != "other" {
		t.Error("unknown algorithms should display as-is")
	}
}

func TestComparison_ProfitGap(t *testing.T) {
	greedy := Selection{Items: []Requirement{{Cost: 1, Profit: 5}}}
	exact := Selection{Items: []Requirement{{Cost: 1, Profit: 5}, {Cost: 2, Profit: 4}}}

	if gap := (Comparison{Greedy: greedy, Exact: &exact}).ProfitGap(); gap != 4 {
		t.Errorf("ProfitGap = %d, want 4", gap)
	}
	if gap := (Comparison{Greedy: greedy}).ProfitGap(); gap != 0 {
		t.Errorf("ProfitGap without exact = %d, want 0", gap)
	}
}
