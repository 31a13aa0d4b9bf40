package cmd

import (
	"fmt"

	"github.com/govalues/fuzzy"
	"github.com/govalues/fuzzy/unit"
	"github.com/spf13/cobra"
)

var calcTo string

var calcCmd = &cobra.Command{
	Use:   "calc VALUE [OP VALUE]...",
	Short: "Evaluate an expression over values",
	Long: `Evaluates an expression from left to right, without operator precedence.
Each value is a single argument; quote it if it contains spaces.

Operators:
  +      - Addition, the result is in the unit of the left operand
  -      - Subtraction
  * x    - Multiplication
  /      - Division
  ^ **   - Power, the exponent must be dimensionless

Examples:
  fuzzypint calc "2.73 V [±0.13]" + "9.77 V [±0.13]"
  fuzzypint calc "2.73 V [+0.1, -0.2]" x "21.97 A [+0.3, -0.4]" --to W
  fuzzypint calc -- "-12.73 V [±0.1]" ^ 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVar(&calcTo, "to", "", "Convert the result to this unit")
}

func runCalc(cmd *cobra.Command, args []string) error {
	v, err := evaluate(registry, args)
	if err != nil {
		return err
	}
	if calcTo != "" {
		v, err = v.ToUnits(registry, calcTo)
		if err != nil {
			return err
		}
	}
	printValue(cmd, v)
	return nil
}

// evaluate applies the operators in args from left to right.
func evaluate(reg *unit.Registry, args []string) (fuzzy.Value, error) {
	if len(args)%2 == 0 {
		return fuzzy.Value{}, fmt.Errorf("expected VALUE [OP VALUE]..., got %v arguments", len(args))
	}
	v, err := fuzzy.Parse(reg, args[0])
	if err != nil {
		return fuzzy.Value{}, err
	}
	for i := 1; i < len(args); i += 2 {
		w, err := fuzzy.Parse(reg, args[i+1])
		if err != nil {
			return fuzzy.Value{}, err
		}
		v, err = apply(v, args[i], w)
		if err != nil {
			return fuzzy.Value{}, err
		}
		logger.Debug("evaluated", "op", args[i], "result", v.String())
	}
	return v, nil
}

func apply(v fuzzy.Value, op string, w fuzzy.Value) (fuzzy.Value, error) {
	switch op {
	case "+":
		return v.Add(w)
	case "-":
		return v.Sub(w)
	case "*", "x":
		return v.Mul(w)
	case "/":
		return v.Quo(w)
	case "^", "**":
		return v.Pow(w)
	default:
		return fuzzy.Value{}, fmt.Errorf("unknown operator %q", op)
	}
}

// printValue writes the full, pretty and significant renderings of v.
func printValue(cmd *cobra.Command, v fuzzy.Value) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "value:       %v\n", v)
	fmt.Fprintf(out, "pretty:      %v\n", v.Pretty())
	fmt.Fprintf(out, "significant: %v\n", v.Significant())
}
