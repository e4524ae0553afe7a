package metrics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/guimove/reqfit/internal/model"
)

const namespace = "reqfit"

// Recorder tracks solver runs in a private Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	selections *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	profit     *prometheus.GaugeVec
	cost       *prometheus.GaugeVec
	budget     prometheus.Gauge
}

// NewRecorder creates a recorder with all metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Number of completed selections by algorithm and whether the exact solver fell back.",
		}, []string{"algorithm", "fallback"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "selection_duration_seconds",
			Help:      "Time spent selecting requirements.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
		profit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selected_profit",
			Help:      "Total perceived profit of the last selection.",
		}, []string{"algorithm"}),
		cost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selected_cost",
			Help:      "Total cost of the last selection.",
		}, []string{"algorithm"}),
		budget: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "budget",
			Help:      "Cost budget of the last selection.",
		}),
	}

	r.registry.MustRegister(r.selections, r.duration, r.profit, r.cost, r.budget)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveSelection records the outcome of one optimization run.
func (r *Recorder) ObserveSelection(sel model.Selection, elapsed time.Duration) {
	alg := string(sel.Algorithm)
	r.selections.WithLabelValues(alg, strconv.FormatBool(sel.Fallback)).Inc()
	r.duration.WithLabelValues(alg).Observe(elapsed.Seconds())
	r.profit.WithLabelValues(alg).Set(float64(sel.TotalProfit()))
	r.cost.WithLabelValues(alg).Set(float64(sel.TotalCost()))
	r.budget.Set(float64(sel.Budget))
}

// WriteText writes all metrics in the Prometheus text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	mfs, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encoding metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteTextfile atomically writes metrics to path, for the node_exporter
// textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("creating metrics file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := r.WriteText(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing metrics file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("setting metrics file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming metrics file: %w", err)
	}
	return nil
}
