package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guimove/reqfit/internal/capacity"
	"github.com/guimove/reqfit/internal/config"
	"github.com/guimove/reqfit/internal/knapsack"
	"github.com/guimove/reqfit/internal/metrics"
	"github.com/guimove/reqfit/internal/model"
)

var (
	ample  = capacity.StaticMemory{Stats: capacity.MemoryStats{Total: 1 << 40}}
	scarce = capacity.StaticMemory{Stats: capacity.MemoryStats{Total: 1 << 20, Used: 1<<20 - 64}}
)

func suboptimalForGreedy() []model.Requirement {
	return []model.Requirement{
		{ID: "R1", Cost: 10, Profit: 60},
		{ID: "R2", Cost: 20, Profit: 100},
		{ID: "R3", Cost: 30, Profit: 120},
	}
}

func newTestOrchestrator(t *testing.T, mem capacity.MemoryReader) (*Orchestrator, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	o := New(config.Default(), mem, testr.New(t))
	o.Writer = out
	o.Recorder = metrics.NewRecorder()
	return o, out
}

func metricsText(t *testing.T, r *metrics.Recorder) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	return buf.String()
}

// failingSolver returns a fixed error.
type failingSolver struct{ err error }

func (f failingSolver) Solve([]model.Requirement, int) (model.Selection, error) {
	return model.Selection{}, f.err
}

func (f failingSolver) Algorithm() model.Algorithm { return model.AlgorithmExact }

func TestOptimize_ExactWhenMemoryAvailable(t *testing.T) {
	o, out := newTestOrchestrator(t, ample)

	sel, err := o.Optimize(context.Background(), suboptimalForGreedy(), 50, false)
	require.NoError(t, err)

	assert.Equal(t, model.AlgorithmExact, sel.Algorithm)
	assert.False(t, sel.Fallback)
	assert.Equal(t, 220, sel.TotalProfit())
	assert.Equal(t, 1, strings.Count(out.String(), "\n"), "expected a single status line")
	assert.Contains(t, out.String(), "fixed cost of 50")
	assert.Contains(t, metricsText(t, o.Recorder), `reqfit_selections_total{algorithm="exact",fallback="false"} 1`)
}

func TestOptimize_ForceGreedy(t *testing.T) {
	o, _ := newTestOrchestrator(t, ample)

	sel, err := o.Optimize(context.Background(), suboptimalForGreedy(), 50, true)
	require.NoError(t, err)

	assert.Equal(t, model.AlgorithmGreedy, sel.Algorithm)
	assert.False(t, sel.Fallback)
	assert.Equal(t, 160, sel.TotalProfit())
}

func TestOptimize_FallbackOnLowMemory(t *testing.T) {
	o, _ := newTestOrchestrator(t, scarce)

	sel, err := o.Optimize(context.Background(), suboptimalForGreedy(), 50, false)
	require.NoError(t, err)

	assert.Equal(t, model.AlgorithmGreedy, sel.Algorithm)
	assert.True(t, sel.Fallback)
	assert.LessOrEqual(t, sel.TotalCost(), 50)
	assert.Contains(t, metricsText(t, o.Recorder), `reqfit_selections_total{algorithm="greedy",fallback="true"} 1`)
}

func TestOptimize_FallbackOnTableCap(t *testing.T) {
	cfg := config.Default()
	cfg.Capacity.MaxTableCells = 10

	o := New(cfg, ample, logr.Discard())
	o.Writer = &bytes.Buffer{}

	sel, err := o.Optimize(context.Background(), suboptimalForGreedy(), 50, false)
	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmGreedy, sel.Algorithm)
	assert.True(t, sel.Fallback)
}

func TestOptimize_FallbackWhenHostLimitUnknown(t *testing.T) {
	// An empty root has no cgroup or procfs files; with GOMEMLIMIT set the
	// runtime limit is far below the table size, so greedy is used either way.
	o, _ := newTestOrchestrator(t, capacity.HostMemory{Root: t.TempDir()})

	var sel model.Selection
	require.NotPanics(t, func() {
		var err error
		sel, err = o.Optimize(context.Background(), []model.Requirement{{Cost: 1, Profit: 1}}, 1<<45, false)
		require.NoError(t, err)
	})
	assert.Equal(t, model.AlgorithmGreedy, sel.Algorithm)
	assert.True(t, sel.Fallback)
	assert.Equal(t, 1, sel.TotalProfit())
}

func TestOptimize_FallbackWhenTableCannotBeAllocated(t *testing.T) {
	// Reported memory approves the table, but it exceeds any possible allocation.
	unbounded := capacity.StaticMemory{Stats: capacity.MemoryStats{Total: math.MaxInt64}}
	o, _ := newTestOrchestrator(t, unbounded)

	sel, err := o.Optimize(context.Background(), []model.Requirement{{Cost: 1, Profit: 1}}, 1<<45, false)
	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmGreedy, sel.Algorithm)
	assert.True(t, sel.Fallback)
}

func TestOptimize_InvalidInput(t *testing.T) {
	o, _ := newTestOrchestrator(t, ample)

	_, err := o.Optimize(context.Background(), suboptimalForGreedy(), -1, false)
	require.ErrorIs(t, err, model.ErrInvalidBudget)

	bad := []model.Requirement{{ID: "neg", Cost: -2, Profit: 1}}
	_, err = o.Optimize(context.Background(), bad, 10, true)
	require.ErrorIs(t, err, model.ErrInvalidRequirement)
}

func TestOptimize_OtherExactErrorsSurface(t *testing.T) {
	o, _ := newTestOrchestrator(t, ample)
	boom := errors.New("boom")
	o.Exact = failingSolver{err: boom}

	_, err := o.Optimize(context.Background(), suboptimalForGreedy(), 50, false)
	require.ErrorIs(t, err, boom)
}

func TestOptimize_CancelledContext(t *testing.T) {
	o, _ := newTestOrchestrator(t, ample)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Optimize(ctx, suboptimalForGreedy(), 50, false)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptimize_EmptyInput(t *testing.T) {
	o, _ := newTestOrchestrator(t, ample)

	sel, err := o.Optimize(context.Background(), nil, 100, false)
	require.NoError(t, err)
	assert.Zero(t, sel.Len())
	assert.Equal(t, model.AlgorithmExact, sel.Algorithm)
}

func TestCompare(t *testing.T) {
	o, _ := newTestOrchestrator(t, ample)

	cmp, err := o.Compare(context.Background(), suboptimalForGreedy(), 50)
	require.NoError(t, err)
	require.NotNil(t, cmp.Exact)

	assert.Equal(t, 220, cmp.Exact.TotalProfit())
	assert.Equal(t, 160, cmp.Greedy.TotalProfit())
	assert.Equal(t, 60, cmp.ProfitGap())
	assert.Empty(t, cmp.ExactSkipped)
}

func TestCompare_ExactSkippedOnLowMemory(t *testing.T) {
	o, _ := newTestOrchestrator(t, scarce)

	cmp, err := o.Compare(context.Background(), suboptimalForGreedy(), 50)
	require.NoError(t, err)

	assert.Nil(t, cmp.Exact)
	assert.Contains(t, cmp.ExactSkipped, knapsack.ErrCapacity.Error())
	assert.Zero(t, cmp.ProfitGap())
}
