// Package knapsack implements the 0-1 knapsack solvers used to select
// requirements under a fixed cost budget.
//
// Two solvers are provided:
//
//   - Exact: dynamic programming over an (n+1) x (budget+1) table.
//     Optimal, O(n·budget) time and space. Gated by a capacity estimate.
//   - Greedy: ranks requirements by profit/cost ratio and takes them in a
//     single forward pass. O(n log n), no optimality guarantee.
//
// Neither solver modifies the caller's slice. Greedy sorts an internal index
// permutation and Exact reads the input through 1-based row indices, so the
// input order observed after a call is the order passed in.
//
// Exact returns an error wrapping ErrCapacity when the table is predicted not
// to fit or cannot be sized; callers are expected to fall back to Greedy.
package knapsack
