package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/govalues/fuzzy"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Demonstration of arithmetic, conversion and rounding",
	Long: `Prints a fixed sequence of examples: the renderings of a value, unit
conversion, the four arithmetic operations and power with their propagated
errors, prefix conversion, the significant digit rules and serialization.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

const indent = "    "

func runDemo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	val := func(m float64, units string, errP, errN float64) fuzzy.Value {
		return fuzzy.MustNewFromUnits(registry, m, units, errP, errN)
	}

	v1 := val(2.73, "volt", 0.13, -0.13)
	v2 := val(9.77, "volt", 0.13, -0.13)
	w1 := val(1.23, "ampere*volt", 0.01, -0.01)

	fmt.Fprintln(out, "Renderings:")
	fmt.Fprintf(out, "%vString:      %v\n", indent, v1)
	fmt.Fprintf(out, "%vPretty:      %v\n", indent, v1.Pretty())
	fmt.Fprintf(out, "%vSignificant: %v\n", indent, v1.Significant())
	fmt.Fprintln(out, "Dimensionless:")
	fmt.Fprintf(out, "%vd1: %v\n", indent, fuzzy.Scalar(123.4))
	fmt.Fprintln(out, "Conversion:")
	fmt.Fprintf(out, "%vw1: %v\n", indent, w1)
	fmt.Fprintf(out, "%vw1 to watt: %v\n", indent, w1.MustTo(registry.MustParse("watt")))

	section(out, "Add:", "+", v1, v2, v1.MustAdd(v2))
	section(out, "Subtract:", "-", v1, v2, v1.MustSub(v2))

	v1 = val(2.73, "volt", 0.1, -0.2)
	i1 := val(21.97, "ampere", 0.3, -0.4)
	section(out, "Multiply:", "*", v1, i1, v1.MustMul(i1))

	v1 = val(12.73, "volt", 0.1, -0.2)
	r1 := val(1234, "ohm", 50, -50)
	section(out, "Divide:", "/", v1, r1, v1.MustQuo(r1))

	two := fuzzy.Scalar(2)
	section(out, "Exponent:", "**", v1, two, v1.MustPow(two))

	v1 = val(2.73, "volt", 0.1, -0.2)
	section(out, "Dimensionless Multiply:", "*", v1, two, v1.MustMul(two))

	fmt.Fprintln(out, "Prefix Scale Conversion: 1.23456 from V to mV:")
	v1 = val(1.23456, "volt", 0.0001, -0.0001)
	mv := v1.MustTo(registry.MustParse("millivolt"))
	fmt.Fprintf(out, "%vv1: %v\n", indent, v1)
	fmt.Fprintf(out, "%vv1 to millivolt: %v\n", indent, mv)
	fmt.Fprintf(out, "%vpretty: %v\n", indent, mv.Pretty())
	fmt.Fprintf(out, "%vsignificant: %v\n", indent, mv.Significant())

	for _, group := range significanceTable {
		fmt.Fprintln(out, group.heading)
		for _, e := range group.errs {
			v := val(group.m, "volt", e[0], e[1])
			fmt.Fprintf(out, "%v%v -> %v\n", indent, v, v.Significant())
		}
	}

	fmt.Fprintln(out, "Serialization:")
	v1 = val(2.551212121212, "volt", 0.13, -0.13)
	data, err := json.Marshal(v1)
	if err != nil {
		return fmt.Errorf("encoding %v: %w", v1, err)
	}
	fmt.Fprintf(out, "%vv1: %v\n", indent, v1)
	fmt.Fprintf(out, "%vsignificant: %v\n", indent, v1.Significant())
	fmt.Fprintf(out, "%vjson: %s\n", indent, data)
	return nil
}

func section(out io.Writer, heading, op string, v, w, result fuzzy.Value) {
	fmt.Fprintln(out, heading)
	fmt.Fprintf(out, "%v%v\n", indent, v)
	fmt.Fprintf(out, "%v%v %v\n", indent, op, w)
	fmt.Fprintf(out, "%v= %v\n", indent, result)
	fmt.Fprintf(out, "%vpretty: %v\n", indent, result.Pretty())
	fmt.Fprintf(out, "%vsignificant: %v\n", indent, result.Significant())
}

var significanceTable = []struct {
	heading string
	m       float64
	errs    [][2]float64
}{
	{
		heading: "Significance Precedence with Asymmetric Error:",
		m:       1234.5678,
		errs: [][2]float64{
			{0.1, -0.1},
			{0.1, -0.01},
			{0.1, -0.001},
			{0.01, -0.1},
			{0.001, -0.1},
		},
	},
	{
		heading: "Significance:",
		m:       1234.5678,
		errs: [][2]float64{
			{2000, -2000},
			{200, -200},
			{20, -0.2},
			{2, -2},
			{0.1, -0.1},
			{0.12, -0.12},
			{0.01, -0.01},
			{0.009, -0.009},
			{0.0009, -0.0009},
			{0.00009, -0.00009},
		},
	},
	{
		heading: "Significance, Zero Padding:",
		m:       1,
		errs: [][2]float64{
			{0.1, -0.1},
			{0.01, -0.01},
			{0.001, -0.001},
		},
	},
}
