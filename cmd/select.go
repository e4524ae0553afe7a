package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/guimove/reqfit/internal/capacity"
	"github.com/guimove/reqfit/internal/metrics"
	"github.com/guimove/reqfit/internal/orchestrator"
	"github.com/guimove/reqfit/internal/report"
	"github.com/guimove/reqfit/internal/requirements"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select the profit-maximizing requirements within the budget",
	Long: `Loads requirements from a JSON, YAML, or CSV file and selects the subset
with the highest total profit whose total cost fits the budget.

The exact solver is used unless --greedy is set or the estimated memory is
insufficient, in which case the greedy solver is used instead.`,
	Example: `  reqfit select --input requirements.yaml --budget 120
  reqfit select --input backlog.csv --budget 40 --greedy --output json`,
	RunE: runSelect,
}

func init() {
	f := selectCmd.Flags()
	f.String("input", "", "path to requirements file: .json, .yaml, .yml, or .csv (required)")
	f.Bool("greedy", false, "force the greedy solver")
	f.String("simulate-memory", "", "pretend only this much memory is available, e.g. 1Mi")

	_ = selectCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if g, _ := cmd.Flags().GetBool("greedy"); cmd.Flags().Changed("greedy") {
		cfg.Solver.ForceGreedy = g
	}

	inputPath, _ := cmd.Flags().GetString("input")
	reqs, err := requirements.Load(inputPath)
	if err != nil {
		return err
	}

	orch, err := newOrchestrator(cmd)
	if err != nil {
		return err
	}

	sel, err := orch.Optimize(ctx, reqs, cfg.Solver.Budget, cfg.Solver.ForceGreedy)
	if err != nil {
		return err
	}

	if err := writeMetrics(orch.Recorder); err != nil {
		return err
	}

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	return report.NewReporter(cfg.Output.Format, w).Report(ctx, sel, report.NewMeta(inputPath, reqs))
}

// newOrchestrator wires the solvers to host memory, or to a fixed amount
// when --simulate-memory is given.
func newOrchestrator(cmd *cobra.Command) (*orchestrator.Orchestrator, error) {
	limit, err := cfg.MemoryLimitBytes()
	if err != nil {
		return nil, err
	}
	var mem capacity.MemoryReader = capacity.HostMemory{Limit: limit}

	if sim, _ := cmd.Flags().GetString("simulate-memory"); sim != "" {
		q, err := resource.ParseQuantity(sim)
		if err != nil {
			return nil, fmt.Errorf("parsing --simulate-memory: %w", err)
		}
		mem = capacity.StaticMemory{Stats: capacity.MemoryStats{Total: q.Value()}}
	}

	orch := orchestrator.New(cfg, mem, logger)
	orch.Writer = cmd.ErrOrStderr()
	if cfg.Metrics.Textfile != "" {
		orch.Recorder = metrics.NewRecorder()
	}
	return orch, nil
}

func writeMetrics(rec *metrics.Recorder) error {
	if rec == nil {
		return nil
	}
	if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	logger.V(1).Info("Wrote metrics textfile", "path", cfg.Metrics.Textfile)
	return nil
}

func openOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	if cfg.Output.File == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(cfg.Output.File)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
