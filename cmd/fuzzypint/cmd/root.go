package cmd

import (
	"fmt"
	"log/slog"

	"github.com/govalues/fuzzy/unit"
	"github.com/spf13/cobra"
)

var (
	unitsFile string
	verbose   bool

	registry *unit.Registry
	logger   = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "fuzzypint",
	Short: "Measured values with asymmetric errors",
	Long: `fuzzypint computes with physical quantities that carry an asymmetric
error interval and prints them rounded to their significant digits.

Values are written as a magnitude, an optional unit expression and optional
error bounds:

  2.73 V [±0.13]
  21.97 ampere [+0.3, -0.4]
  9.81 m/s^2

Commands:
  demo     - Demonstration of arithmetic, conversion and rounding
  calc     - Evaluate an expression over values
  convert  - Convert a value to another unit
  round    - Round a value to its significant digits`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&unitsFile, "units", "", "TOML unit definitions file (default: built-in SI definitions)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// setup configures logging and loads the unit registry before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	var err error
	if unitsFile == "" {
		registry, err = unit.NewRegistry()
	} else {
		registry, err = unit.LoadRegistryFile(unitsFile)
	}
	if err != nil {
		return fmt.Errorf("loading units: %w", err)
	}
	logger.Debug("unit registry loaded", "file", unitsFile)
	return nil
}
