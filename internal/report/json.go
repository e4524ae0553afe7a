package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/guimove/reqfit/internal/model"
)

// JSONReporter outputs selections as JSON.
type JSONReporter struct {
	w io.Writer
}

type jsonSelection struct {
	model.Selection
	Cost   int `json:"total_cost"`
	Profit int `json:"total_profit"`
}

type jsonOutput struct {
	Meta      ReportMeta    `json:"meta"`
	Selection jsonSelection `json:"selection"`
}

type jsonComparison struct {
	Meta         ReportMeta     `json:"meta"`
	Budget       int            `json:"budget"`
	Greedy       jsonSelection  `json:"greedy"`
	Exact        *jsonSelection `json:"exact,omitempty"`
	ExactSkipped string         `json:"exact_skipped,omitempty"`
	ProfitGap    int            `json:"profit_gap"`
}

func newJSONSelection(sel model.Selection) jsonSelection {
	return jsonSelection{Selection: sel, Cost: sel.TotalCost(), Profit: sel.TotalProfit()}
}

func (r *JSONReporter) Report(ctx context.Context, sel model.Selection, meta ReportMeta) error {
	return r.encode(jsonOutput{Meta: meta, Selection: newJSONSelection(sel)})
}

func (r *JSONReporter) ReportComparison(ctx context.Context, cmp model.Comparison, meta ReportMeta) error {
	out := jsonComparison{
		Meta:         meta,
		Budget:       cmp.Budget,
		Greedy:       newJSONSelection(cmp.Greedy),
		ExactSkipped: cmp.ExactSkipped,
		ProfitGap:    cmp.ProfitGap(),
	}
	if cmp.Exact != nil {
		exact := newJSONSelection(*cmp.Exact)
		out.Exact = &exact
	}
	return r.encode(out)
}

func (r *JSONReporter) encode(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
