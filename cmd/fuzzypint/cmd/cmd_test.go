package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/govalues/fuzzy"
	"github.com/govalues/fuzzy/unit"
)

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	unitsFile, verbose = "", false
	calcTo = ""
	roundGuard, roundFormat = fuzzy.DefaultGuardDigits, "text"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvaluate(t *testing.T) {
	reg := unit.MustNewRegistry()

	t.Run("success", func(t *testing.T) {
		tests := []struct {
			args []string
			want string
		}{
			{[]string{"2.73 V [±0.13]"}, "2.73 V [+0.13, -0.13]"},
			{[]string{"2.73 V [±0.13]", "+", "9.77 V [±0.13]"}, "12.5 V [+0.26, -0.26]"},
			{[]string{"2.73 V [±0.13]", "-", "9.77 V [±0.13]"}, "-7.04 V [+0.26, -0.26]"},
			{[]string{"2.73 V [+0.1, -0.2]", "x", "21.97 A [+0.3, -0.4]"}, "59.9781 A·V [+3.046, -5.406]"},
			{[]string{"12.73 V [+0.1, -0.2]", "/", "1234 ohm [±50]"}, "0.010316 V/Ω [+0.000520103, -0.000557478]"},
			{[]string{"12.73 V [+0.1, -0.2]", "^", "2"}, "162.053 V² [+2.556, -5.052]"},
			{[]string{"1.23 V [±0.01]", "+", "4.56 V [±0.01]", "*", "10"}, "57.9 V [+0.2, -0.2]"},
		}
		for _, tt := range tests {
			got, err := evaluate(reg, tt.args)
			if err != nil {
				t.Errorf("evaluate(%q) failed: %v", tt.args, err)
				continue
			}
			if got.Pretty() != tt.want {
				t.Errorf("evaluate(%q) = %q, want %q", tt.args, got.Pretty(), tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string][]string{
			"arity":    {"2 V", "+"},
			"operator": {"2 V", "%", "3 V"},
			"operand":  {"2 V", "+", "three"},
			"first":    {"volt"},
			"mismatch": {"2 V", "+", "3 A"},
		}
		for name, args := range tests {
			if _, err := evaluate(reg, args); err == nil {
				t.Errorf("%v: evaluate(%q) did not fail", name, args)
			}
		}
	})
}

func TestCalcCmd(t *testing.T) {
	got, err := execute(t, "calc", "2.73 V [+0.1, -0.2]", "x", "21.97 A [+0.3, -0.4]", "--to", "W")
	if err != nil {
		t.Fatalf("calc failed: %v", err)
	}
	if !strings.Contains(got, "significant: 60 W\n") {
		t.Errorf("calc = %q, missing significant rendering", got)
	}
}

func TestConvertCmd(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		got, err := execute(t, "convert", "1.23456 V [±0.0001]", "mV")
		if err != nil {
			t.Fatalf("convert failed: %v", err)
		}
		for _, want := range []string{"pretty:      1234.56 mV [+0.1, -0.1]\n", "significant: 1234.6 mV\n"} {
			if !strings.Contains(got, want) {
				t.Errorf("convert = %q, missing %q", got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		if _, err := execute(t, "convert", "25 degC [±0.5]", "kelvin"); err == nil {
			t.Errorf("convert degC to kelvin did not fail")
		}
	})
}

func TestRoundCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"round", "1234.5678 V [+0.1, -0.01]"}, "1234.6 V\n"},
		{[]string{"round", "1 V [±0.01]"}, "1.00 V\n"},
		{[]string{"round", "2.551212121212 V [±0.13]", "--format", "json"}, "{\n  \"value\": 2.5512,\n  \"units\": \"volt\",\n  \"err_p\": 0.13,\n  \"err_n\": -0.13\n}\n"},
		{[]string{"round", "2.551212121212 V [±0.13]", "--format", "yaml", "--guard", "1"}, "value: 2.55\nunits: volt\nerr_p: 0.13\nerr_n: -0.13\n"},
	}
	for _, tt := range tests {
		got, err := execute(t, tt.args...)
		if err != nil {
			t.Errorf("%q failed: %v", tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q = %q, want %q", tt.args, got, tt.want)
		}
	}

	if _, err := execute(t, "round", "2 V", "--format", "xml"); err == nil {
		t.Errorf("round --format xml did not fail")
	}
}

func TestDemoCmd(t *testing.T) {
	got, err := execute(t, "demo")
	if err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	for _, want := range []string{
		"Pretty:      2.73 V [+0.13, -0.13]",
		"significant: 12.5 V",
		"significant: 1234.6 mV",
		"1234.5678 volt [+20, -0.2] -> 1230 V",
		"1 volt [+0.01, -0.01] -> 1.00 V",
		`json: {"value":2.5512,"units":"volt","err_p":0.13,"err_n":-0.13}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("demo output is missing %q", want)
		}
	}
}

func TestUnitsFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.toml")
	data := "[[base]]\nname = \"byte\"\nsymbol = \"B\"\ndimension = \"substance\"\n\n[[unit]]\nname = \"bit\"\nsymbol = \"b\"\ndefinition = \"byte\"\nfactor = 0.125\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := execute(t, "--units", path, "convert", "16 bit [±8]", "B")
	if err != nil {
		t.Fatalf("convert with --units failed: %v", err)
	}
	if !strings.Contains(got, "pretty:      2 B [+1, -1]\n") {
		t.Errorf("convert with --units = %q", got)
	}

	if _, err := execute(t, "--units", filepath.Join(t.TempDir(), "missing.toml"), "version"); err == nil {
		t.Errorf("--units with a missing file did not fail")
	}
}
