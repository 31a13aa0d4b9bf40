package cmd

import (
	"github.com/govalues/fuzzy"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert VALUE UNIT",
	Short: "Convert a value to another unit",
	Long: `Converts a value and its error bounds to another unit of the same
dimension. Offset units such as degC cannot be converted because an offset
does not apply to an error bound.

Examples:
  fuzzypint convert "1.23456 V [±0.0001]" mV
  fuzzypint convert "1.23 A·V [±0.01]" watt`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	v, err := fuzzy.Parse(registry, args[0])
	if err != nil {
		return err
	}
	w, err := v.ToUnits(registry, args[1])
	if err != nil {
		return err
	}
	logger.Debug("converted", "from", v.String(), "to", w.String())
	printValue(cmd, w)
	return nil
}
