package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/guimove/reqfit/internal/model"
)

// TableReporter outputs selections as a formatted terminal table.
type TableReporter struct {
	w io.Writer
}

func (r *TableReporter) Report(ctx context.Context, sel model.Selection, meta ReportMeta) error {
	r.header(meta, sel.Budget)

	algorithm := sel.Algorithm.DisplayName()
	if sel.Fallback {
		algorithm += " (fallback: insufficient memory for Dynamic)"
	}
	fmt.Fprintf(r.w, "Algorithm:     %s\n", algorithm)
	fmt.Fprintf(r.w, "%s\n\n", strings.Repeat("=", 60))

	if sel.Len() == 0 {
		fmt.Fprintf(r.w, "No requirements fit within the budget.\n\n")
		return nil
	}

	r.items(sel)

	fmt.Fprintf(r.w, "\nSelected:      %d of %d requirements\n", sel.Len(), meta.TotalRequirements)
	fmt.Fprintf(r.w, "Total cost:    %d (%.1f%% of budget)\n", sel.TotalCost(), percent(sel.TotalCost(), sel.Budget))
	fmt.Fprintf(r.w, "Total profit:  %d (%.1f%% of available)\n", sel.TotalProfit(), percent(sel.TotalProfit(), meta.TotalProfit))
	fmt.Fprintf(r.w, "Unspent:       %d\n\n", sel.RemainingBudget())
	return nil
}

func (r *TableReporter) ReportComparison(ctx context.Context, cmp model.Comparison, meta ReportMeta) error {
	r.header(meta, cmp.Budget)
	fmt.Fprintf(r.w, "%s\n\n", strings.Repeat("=", 60))

	fmt.Fprintf(r.w, "%-10s %8s %8s %8s\n", "Algorithm", "Items", "Cost", "Profit")
	fmt.Fprintf(r.w, "%s\n", strings.Repeat("-", 40))
	if cmp.Exact != nil {
		r.summaryRow(*cmp.Exact)
	} else {
		fmt.Fprintf(r.w, "%-10s %s\n", model.AlgorithmExact.DisplayName(), "skipped")
	}
	r.summaryRow(cmp.Greedy)
	fmt.Fprintf(r.w, "%s\n", strings.Repeat("-", 40))

	if cmp.Exact == nil {
		fmt.Fprintf(r.w, "\nDynamic skipped: %s\n\n", cmp.ExactSkipped)
		return nil
	}
	if gap := cmp.ProfitGap(); gap > 0 {
		fmt.Fprintf(r.w, "\nGreedy is %d profit (%.1f%%) below optimal.\n\n", gap, percent(gap, cmp.Exact.TotalProfit()))
	} else {
		fmt.Fprintf(r.w, "\nGreedy matches the optimal profit.\n\n")
	}
	return nil
}

func (r *TableReporter) header(meta ReportMeta, budget int) {
	fmt.Fprintf(r.w, "\n")
	fmt.Fprintf(r.w, "Requirement Selection\n")
	fmt.Fprintf(r.w, "%s\n", strings.Repeat("=", 60))
	if meta.Source != "" {
		fmt.Fprintf(r.w, "Source:        %s\n", meta.Source)
	}
	fmt.Fprintf(r.w, "Requirements:  %d (cost %d, profit %d)\n", meta.TotalRequirements, meta.TotalCost, meta.TotalProfit)
	fmt.Fprintf(r.w, "Budget:        %d\n", budget)
}

func (r *TableReporter) items(sel model.Selection) {
	fmt.Fprintf(r.w, "%-4s %-40s %8s %8s %7s\n", "#", "Requirement", "Cost", "Profit", "Ratio")
	fmt.Fprintf(r.w, "%s\n", strings.Repeat("-", 71))

	for i, req := range sel.Items {
		label := req.Label()
		if len(label) > 40 {
			label = label[:37] + "..."
		}
		fmt.Fprintf(r.w, "%-4d %-40s %8d %8d %7s\n", i+1, label, req.Cost, req.Profit, ratio(req))
	}

	fmt.Fprintf(r.w, "%s\n", strings.Repeat("-", 71))
}

func (r *TableReporter) summaryRow(sel model.Selection) {
	fmt.Fprintf(r.w, "%-10s %8d %8d %8d\n", sel.Algorithm.DisplayName(), sel.Len(), sel.TotalCost(), sel.TotalProfit())
}

func ratio(req model.Requirement) string {
	if req.Cost == 0 {
		return "free"
	}
	return fmt.Sprintf("%.2f", float64(req.Profit)/float64(req.Cost))
}
