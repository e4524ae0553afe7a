package capacity

import (
	"math/bits"

	"github.com/go-logr/logr"
)

// DefaultThreshold is the minimum fraction of total memory that must remain
// free after the DP table is allocated.
const DefaultThreshold = 0.02

// CellSize is the size in bytes of one DP table cell.
const CellSize = bits.UintSize / 8

// Estimator predicts whether the exact solver's table fits in memory.
type Estimator struct {
	Memory    MemoryReader
	Threshold float64
	Log       logr.Logger
}

// NewEstimator creates an estimator with the default threshold.
func NewEstimator(mem MemoryReader) *Estimator {
	return &Estimator{
		Memory:    mem,
		Threshold: DefaultThreshold,
		Log:       logr.Discard(),
	}
}

// TableBytes returns the projected size of an (n+1) x (budget+1) table.
func TableBytes(n, budget int) float64 {
	return float64(CellSize) * (float64(budget) + 1) * (float64(n) + 1)
}

// HasEnoughSpace reports whether allocating the table for n requirements
// and the given budget keeps the free-memory ratio at or above the threshold.
// The result is advisory; memory is re-read on every call.
func (e *Estimator) HasEnoughSpace(n, budget int) bool {
	stats, err := e.Memory.ReadMemory()
	if err != nil {
		e.Log.V(1).Info("Memory query failed, assuming insufficient space", "error", err.Error())
		return false
	}
	if stats.Total <= 0 {
		e.Log.V(1).Info("Total memory unknown, assuming insufficient space")
		return false
	}

	expected := TableBytes(n, budget)
	total := float64(stats.Total)
	ratio := (total - float64(stats.Used) - expected) / total

	e.Log.V(1).Info("Estimated free memory after table allocation",
		"requirements", n,
		"budget", budget,
		"tableBytes", expected,
		"totalBytes", stats.Total,
		"usedBytes", stats.Used,
		"ratio", ratio,
		"threshold", e.Threshold)

	return ratio >= e.Threshold
}
