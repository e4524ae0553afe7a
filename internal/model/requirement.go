package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidRequirement = errors.New("invalid requirement")
	ErrInvalidBudget      = errors.New("invalid budget")
)

// Requirement is a candidate item with a cost and a perceived profit.
type Requirement struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Cost   int    `json:"cost" yaml:"cost"`
	Profit int    `json:"profit" yaml:"profit"`
}

// Label returns a human-readable identifier for the requirement.
func (r Requirement) Label() string {
	switch {
	case r.Name != "" && r.ID != "":
		return fmt.Sprintf("%s (%s)", r.Name, r.ID)
	case r.Name != "":
		return r.Name
	case r.ID != "":
		return r.ID
	default:
		return fmt.Sprintf("cost=%d profit=%d", r.Cost, r.Profit)
	}
}

// Validate rejects negative cost or profit.
func (r Requirement) Validate() error {
	if r.Cost < 0 {
		return fmt.Errorf("%w: %s has negative cost %d", ErrInvalidRequirement, r.Label(), r.Cost)
	}
	if r.Profit < 0 {
		return fmt.Errorf("%w: %s has negative profit %d", ErrInvalidRequirement, r.Label(), r.Profit)
	}
	return nil
}

// ValidateInput checks a requirement set and budget before optimization.
// The summed profit must fit in an int so no subset total can overflow.
func ValidateInput(reqs []Requirement, budget int) error {
	if budget < 0 {
		return fmt.Errorf("%w: must be non-negative, got %d", ErrInvalidBudget, budget)
	}
	var profit int
	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			return fmt.Errorf("requirement %d: %w", i, err)
		}
		if reqs[i].Profit > math.MaxInt-profit {
			return fmt.Errorf("requirement %d: %w: total profit overflows int", i, ErrInvalidRequirement)
		}
		profit += reqs[i].Profit
	}
	return nil
}

// TotalCost returns the summed cost of all requirements.
func TotalCost(reqs []Requirement) int {
	var total int
	for i := range reqs {
		total += reqs[i].Cost
	}
	return total
}

// TotalProfit returns the summed profit of all requirements.
func TotalProfit(reqs []Requirement) int {
	var total int
	for i := range reqs {
		total += reqs[i].Profit
	}
	return total
}
