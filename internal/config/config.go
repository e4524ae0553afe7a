package config

import (
	"fmt"

	"k8s.io/apimachinery/pkg/api/resource"
)

// Config is the top-level configuration for reqfit.
type Config struct {
	Solver   SolverConfig   `yaml:"solver" mapstructure:"solver"`
	Capacity CapacityConfig `yaml:"capacity" mapstructure:"capacity"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Metrics  MetricsConfig  `yaml:"metrics" mapstructure:"metrics"`
}

type SolverConfig struct {
	Budget      int  `yaml:"budget" mapstructure:"budget"`
	ForceGreedy bool `yaml:"force_greedy" mapstructure:"force_greedy"`
}

type CapacityConfig struct {
	// Minimum free-memory ratio that must remain after allocating the exact table
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`

	// Overrides detected memory, as a quantity such as "512Mi" (empty = detect)
	MemoryLimit string `yaml:"memory_limit" mapstructure:"memory_limit"`

	// Hard cap on exact table cells (0 = unlimited)
	MaxTableCells int `yaml:"max_table_cells" mapstructure:"max_table_cells"`
}

type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

type MetricsConfig struct {
	// Path of a Prometheus textfile to write after each run (empty = disabled)
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Capacity: CapacityConfig{
			Threshold: 0.02,
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// Validate checks the config for consistency.
func (c *Config) Validate() error {
	if c.Solver.Budget < 0 {
		return fmt.Errorf("budget must be non-negative, got %d", c.Solver.Budget)
	}
	if c.Capacity.Threshold < 0 || c.Capacity.Threshold >= 1.0 {
		return fmt.Errorf("capacity threshold must be in [0, 1), got %v", c.Capacity.Threshold)
	}
	if c.Capacity.MaxTableCells < 0 {
		return fmt.Errorf("max_table_cells must be non-negative, got %d", c.Capacity.MaxTableCells)
	}
	if _, err := c.MemoryLimitBytes(); err != nil {
		return err
	}
	validFormats := map[string]bool{"table": true, "json": true, "markdown": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("output format must be table, json, or markdown, got %q", c.Output.Format)
	}
	return nil
}

// MemoryLimitBytes parses the memory limit override. It returns 0 when unset.
func (c *Config) MemoryLimitBytes() (int64, error) {
	if c.Capacity.MemoryLimit == "" {
		return 0, nil
	}
	q, err := resource.ParseQuantity(c.Capacity.MemoryLimit)
	if err != nil {
		return 0, fmt.Errorf("parsing memory_limit %q: %w", c.Capacity.MemoryLimit, err)
	}
	if q.Sign() <= 0 {
		return 0, fmt.Errorf("memory_limit must be positive, got %q", c.Capacity.MemoryLimit)
	}
	return q.Value(), nil
}
