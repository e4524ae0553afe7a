package knapsack

import (
	"math/rand"
	"slices"

	"github.com/guimove/reqfit/internal/capacity"
	"github.com/guimove/reqfit/internal/model"
)

func reqs(pairs ...[2]int) []model.Requirement {
	out := make([]model.Requirement, len(pairs))
	for i, p := range pairs {
		out[i] = model.Requirement{Cost: p[0], Profit: p[1]}
	}
	return out
}

// bruteForce returns the best achievable profit by enumerating all subsets.
func bruteForce(rs []model.Requirement, budget int) int {
	best := 0
	for mask := 0; mask < 1<<len(rs); mask++ {
		cost, profit := 0, 0
		for i := range rs {
			if mask&(1<<i) != 0 {
				cost += rs[i].Cost
				profit += rs[i].Profit
			}
		}
		if cost <= budget && profit > best {
			best = profit
		}
	}
	return best
}

func randomRequirements(rng *rand.Rand, n, maxCost, maxProfit int) []model.Requirement {
	out := make([]model.Requirement, n)
	for i := range out {
		out[i] = model.Requirement{Cost: rng.Intn(maxCost + 1), Profit: rng.Intn(maxProfit + 1)}
	}
	return out
}

func plentyOfMemory() *capacity.Estimator {
	return capacity.NewEstimator(capacity.StaticMemory{Stats: capacity.MemoryStats{Total: 1 << 40}})
}

func distinct(indices []int) bool {
	s := slices.Clone(indices)
	slices.Sort(s)
	return len(slices.Compact(s)) == len(indices)
}
