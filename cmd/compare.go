package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/guimove/reqfit/internal/report"
	"github.com/guimove/reqfit/internal/requirements"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run both solvers and report how far greedy is from optimal",
	RunE:  runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.String("input", "", "path to requirements file: .json, .yaml, .yml, or .csv (required)")
	f.String("simulate-memory", "", "pretend only this much memory is available, e.g. 1Mi")

	_ = compareCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	inputPath, _ := cmd.Flags().GetString("input")
	reqs, err := requirements.Load(inputPath)
	if err != nil {
		return err
	}

	orch, err := newOrchestrator(cmd)
	if err != nil {
		return err
	}

	cmp, err := orch.Compare(ctx, reqs, cfg.Solver.Budget)
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	return report.NewReporter(cfg.Output.Format, w).ReportComparison(ctx, cmp, report.NewMeta(inputPath, reqs))
}
