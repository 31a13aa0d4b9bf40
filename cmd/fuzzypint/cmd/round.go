package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/govalues/fuzzy"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	roundGuard  int
	roundFormat string
)

var roundCmd = &cobra.Command{
	Use:   "round VALUE",
	Short: "Round a value to its significant digits",
	Long: `Rounds the magnitude of a value to the digits that are not swamped by its
error bounds. With --format json or yaml the serialized record is printed,
which keeps --guard additional digits.

Examples:
  fuzzypint round "1234.5678 V [+0.1, -0.01]"
  fuzzypint round "2.551212121212 V [±0.13]" --format json
  fuzzypint round "2.551212121212 V [±0.13]" --format yaml --guard 1`,
	Args: cobra.ExactArgs(1),
	RunE: runRound,
}

func init() {
	rootCmd.AddCommand(roundCmd)

	roundCmd.Flags().IntVar(&roundGuard, "guard", fuzzy.DefaultGuardDigits, "Guard digits kept in the serialized record")
	roundCmd.Flags().StringVarP(&roundFormat, "format", "f", "text", "Output format (text, json, yaml)")
}

func runRound(cmd *cobra.Command, args []string) error {
	v, err := fuzzy.Parse(registry, args[0])
	if err != nil {
		return err
	}
	m, digits := v.SignificantMagnitude(roundGuard)
	logger.Debug("rounded",
		"magnitude", v.Magnitude(),
		"err_p", v.ErrP(),
		"err_n", v.ErrN(),
		"guard", roundGuard,
		"rounded", m,
		"digits", digits,
	)

	out := cmd.OutOrStdout()
	switch roundFormat {
	case "text":
		fmt.Fprintln(out, v.Significant())
	case "json":
		data, err := json.MarshalIndent(v.Record(roundGuard), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(v.Record(roundGuard))
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		fmt.Fprint(out, string(data))
	default:
		return fmt.Errorf("unknown format %q", roundFormat)
	}
	return nil
}
