package report

import (
	"context"
	"io"
	"time"

	"github.com/guimove/reqfit/internal/model"
)

// Reporter formats and writes selections to an output destination.
type Reporter interface {
	Report(ctx context.Context, sel model.Selection, meta ReportMeta) error
	ReportComparison(ctx context.Context, cmp model.Comparison, meta ReportMeta) error
}

// ReportMeta contains contextual metadata for the report.
type ReportMeta struct {
	Source            string    `json:"source"`
	GeneratedAt       time.Time `json:"generated_at"`
	TotalRequirements int       `json:"total_requirements"`
	TotalCost         int       `json:"total_cost"`
	TotalProfit       int       `json:"total_profit"`
}

// NewMeta builds report metadata for an input set.
func NewMeta(source string, reqs []model.Requirement) ReportMeta {
	return ReportMeta{
		Source:            source,
		GeneratedAt:       time.Now(),
		TotalRequirements: len(reqs),
		TotalCost:         model.TotalCost(reqs),
		TotalProfit:       model.TotalProfit(reqs),
	}
}

// NewReporter creates a reporter for the given format writing to w.
func NewReporter(format string, w io.Writer) Reporter {
	switch format {
	case "json":
		return &JSONReporter{w: w}
	case "markdown":
		return &MarkdownReporter{w: w}
	default:
		return &TableReporter{w: w}
	}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
