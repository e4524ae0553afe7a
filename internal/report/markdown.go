package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/guimove/reqfit/internal/model"
)

// MarkdownReporter outputs selections as GitHub-flavored markdown.
type MarkdownReporter struct {
	w io.Writer
}

func (r *MarkdownReporter) Report(ctx context.Context, sel model.Selection, meta ReportMeta) error {
	fmt.Fprintf(r.w, "## Requirement Selection\n\n")
	r.meta(meta, sel.Budget)
	fmt.Fprintf(r.w, "- **Algorithm:** %s", sel.Algorithm.DisplayName())
	if sel.Fallback {
		fmt.Fprintf(r.w, " (fallback)")
	}
	fmt.Fprintf(r.w, "\n")
	fmt.Fprintf(r.w, "- **Selected:** %d, cost %d, profit %d\n\n", sel.Len(), sel.TotalCost(), sel.TotalProfit())

	if sel.Len() == 0 {
		fmt.Fprintf(r.w, "_No requirements fit within the budget._\n")
		return nil
	}

	fmt.Fprintf(r.w, "| # | Requirement | Cost | Profit | Ratio |\n")
	fmt.Fprintf(r.w, "|---|---|---:|---:|---:|\n")
	for i, req := range sel.Items {
		fmt.Fprintf(r.w, "| %d | %s | %d | %d | %s |\n", i+1, escape(req.Label()), req.Cost, req.Profit, ratio(req))
	}
	return nil
}

func (r *MarkdownReporter) ReportComparison(ctx context.Context, cmp model.Comparison, meta ReportMeta) error {
	fmt.Fprintf(r.w, "## Algorithm Comparison\n\n")
	r.meta(meta, cmp.Budget)
	fmt.Fprintf(r.w, "\n| Algorithm | Items | Cost | Profit |\n")
	fmt.Fprintf(r.w, "|---|---:|---:|---:|\n")
	if cmp.Exact != nil {
		r.row(*cmp.Exact)
	}
	r.row(cmp.Greedy)

	if cmp.Exact == nil {
		fmt.Fprintf(r.w, "\n_Dynamic skipped: %s_\n", cmp.ExactSkipped)
		return nil
	}
	fmt.Fprintf(r.w, "\nProfit gap: **%d**\n", cmp.ProfitGap())
	return nil
}

func (r *MarkdownReporter) meta(meta ReportMeta, budget int) {
	if meta.Source != "" {
		fmt.Fprintf(r.w, "- **Source:** `%s`\n", meta.Source)
	}
	fmt.Fprintf(r.w, "- **Requirements:** %d\n", meta.TotalRequirements)
	fmt.Fprintf(r.w, "- **Budget:** %d\n", budget)
}

func (r *MarkdownReporter) row(sel model.Selection) {
	fmt.Fprintf(r.w, "| %s | %d | %d | %d |\n", sel.Algorithm.DisplayName(), sel.Len(), sel.TotalCost(), sel.TotalProfit())
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
