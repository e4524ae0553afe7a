package cmd

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/guimove/reqfit/internal/config"
)

var (
	cfgFile string
	cfg     config.Config
	verbose bool
	logger  = logr.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "reqfit",
	Short: "Select the most profitable requirements within a cost budget",
	Long: `reqfit picks the subset of requirements that maximizes total perceived
profit without exceeding a fixed cost budget (0-1 knapsack).

It runs an exact dynamic-programming solver when the table fits in memory
and falls back to a greedy profit/cost ratio solver otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogger(); err != nil {
			return err
		}
		return loadConfig()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: reqfit.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Global flags that map to config
	rootCmd.PersistentFlags().Int("budget", 0, "fixed cost budget the selection may not exceed")
	rootCmd.PersistentFlags().String("memory-limit", "", "memory available to the exact solver, e.g. 512Mi (default: detect; required where no limit can be detected)")
	rootCmd.PersistentFlags().Float64("threshold", 0.02, "minimum free-memory ratio required after allocating the exact table")
	rootCmd.PersistentFlags().Int("max-table-cells", 0, "hard cap on exact table cells (0 = unlimited)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, markdown")
	rootCmd.PersistentFlags().String("output-file", "", "write output to file")
	rootCmd.PersistentFlags().String("metrics-textfile", "", "write Prometheus metrics to this file after the run")

	_ = viper.BindPFlag("solver.budget", rootCmd.PersistentFlags().Lookup("budget"))
	_ = viper.BindPFlag("capacity.memory_limit", rootCmd.PersistentFlags().Lookup("memory-limit"))
	_ = viper.BindPFlag("capacity.threshold", rootCmd.PersistentFlags().Lookup("threshold"))
	_ = viper.BindPFlag("capacity.max_table_cells", rootCmd.PersistentFlags().Lookup("max-table-cells"))
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("output.file", rootCmd.PersistentFlags().Lookup("output-file"))
	_ = viper.BindPFlag("metrics.textfile", rootCmd.PersistentFlags().Lookup("metrics-textfile"))
}

func loadConfig() error {
	// Start with defaults
	cfg = config.Default()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("reqfit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.reqfit")
	}

	// Environment variable overrides
	viper.SetEnvPrefix("REQFIT")
	viper.AutomaticEnv()

	// Read config file (not an error if missing)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return fmt.Errorf("reading config file: %w", err)
		}
	} else {
		logger.V(1).Info("Loaded config file", "path", viper.ConfigFileUsed())
	}

	// Unmarshal into config struct
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return cfg.Validate()
}

// setupLogger builds the diagnostic logger. Diagnostics go to stderr so
// reports on stdout stay machine-readable.
func setupLogger() error {
	zc := zap.NewDevelopmentConfig()
	zc.DisableStacktrace = true
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	zl, err := zc.Build()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	logger = zapr.NewLogger(zl)
	return nil
}
