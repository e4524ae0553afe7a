package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/guimove/reqfit/internal/capacity"
	"github.com/guimove/reqfit/internal/config"
	"github.com/guimove/reqfit/internal/knapsack"
	"github.com/guimove/reqfit/internal/metrics"
	"github.com/guimove/reqfit/internal/model"
)

// Orchestrator picks between the exact and greedy solvers and falls back
// to greedy when the exact table does not fit in memory.
type Orchestrator struct {
	Exact    knapsack.Solver
	Greedy   knapsack.Solver
	Recorder *metrics.Recorder // optional
	Writer   io.Writer
	Log      logr.Logger
}

// New creates an orchestrator whose exact solver is gated by host memory.
func New(cfg config.Config, mem capacity.MemoryReader, log logr.Logger) *Orchestrator {
	est := capacity.NewEstimator(mem)
	est.Threshold = cfg.Capacity.Threshold
	est.Log = log.WithName("capacity")

	exact := knapsack.NewExact(est)
	exact.MaxCells = cfg.Capacity.MaxTableCells
	exact.Log = log.WithName("exact")

	return &Orchestrator{
		Exact:  exact,
		Greedy: knapsack.NewGreedy(),
		Writer: os.Stdout,
		Log:    log,
	}
}

// Optimize selects the profit-maximizing requirements within budget.
// With forceGreedy the greedy solver is used directly; otherwise the exact
// solver runs first and capacity failures fall back to greedy.
func (o *Orchestrator) Optimize(ctx context.Context, reqs []model.Requirement, budget int, forceGreedy bool) (model.Selection, error) {
	_, _ = fmt.Fprintf(o.Writer, "Selecting profit maximizing requirements given fixed cost of %d...\n", budget)

	if err := model.ValidateInput(reqs, budget); err != nil {
		return model.Selection{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Selection{}, err
	}

	start := time.Now()
	sel, err := o.run(reqs, budget, forceGreedy)
	if err != nil {
		return model.Selection{}, err
	}
	elapsed := time.Since(start)

	o.Log.Info("Selection complete",
		"algorithm", sel.Algorithm,
		"fallback", sel.Fallback,
		"selected", sel.Len(),
		"cost", sel.TotalCost(),
		"profit", sel.TotalProfit(),
		"duration", elapsed)

	if o.Recorder != nil {
		o.Recorder.ObserveSelection(sel, elapsed)
	}
	return sel, nil
}

func (o *Orchestrator) run(reqs []model.Requirement, budget int, forceGreedy bool) (model.Selection, error) {
	if forceGreedy {
		return o.solve(o.Greedy, reqs, budget)
	}

	sel, err := o.solve(o.Exact, reqs, budget)
	if err == nil {
		return sel, nil
	}
	if !errors.Is(err, knapsack.ErrCapacity) {
		return model.Selection{}, err
	}

	o.Log.V(1).Info("Exact solver unavailable, falling back to greedy", "reason", err.Error())
	sel, err = o.solve(o.Greedy, reqs, budget)
	if err != nil {
		return model.Selection{}, err
	}
	sel.Fallback = true
	return sel, nil
}

func (o *Orchestrator) solve(s knapsack.Solver, reqs []model.Requirement, budget int) (model.Selection, error) {
	sel, err := s.Solve(reqs, budget)
	if err != nil {
		return model.Selection{}, fmt.Errorf("running %s solver: %w", s.Algorithm(), err)
	}
	return sel, nil
}

// Compare runs both solvers on the same input. When the exact solver lacks
// capacity the comparison carries only the greedy result.
func (o *Orchestrator) Compare(ctx context.Context, reqs []model.Requirement, budget int) (model.Comparison, error) {
	_, _ = fmt.Fprintf(o.Writer, "Comparing exact and greedy selections given fixed cost of %d...\n", budget)

	if err := model.ValidateInput(reqs, budget); err != nil {
		return model.Comparison{}, err
	}

	greedy, err := o.solve(o.Greedy, reqs, budget)
	if err != nil {
		return model.Comparison{}, err
	}
	cmp := model.Comparison{Budget: budget, Greedy: greedy}

	if err := ctx.Err(); err != nil {
		return model.Comparison{}, err
	}

	exact, err := o.solve(o.Exact, reqs, budget)
	switch {
	case errors.Is(err, knapsack.ErrCapacity):
		cmp.ExactSkipped = err.Error()
	case err != nil:
		return model.Comparison{}, err
	default:
		cmp.Exact = &exact
	}

	o.Log.Info("Comparison complete", "greedyProfit", greedy.TotalProfit(), "profitGap", cmp.ProfitGap())
	return cmp, nil
}
