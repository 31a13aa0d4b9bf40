package unit

import (
	"errors"
	"math"
	"testing"
)

func TestQuantity_ZeroValue(t *testing.T) {
	var q Quantity
	if got, want := q.String(), "0"; got != want {
		t.Errorf("Quantity{}.String() = %q, want %q", got, want)
	}
}

func TestQuantity_To(t *testing.T) {
	reg := MustNewRegistry()

	t.Run("success", func(t *testing.T) {
		tests := []struct {
			m    float64
			u, v string
			want float64
		}{
			{2, "volt", "millivolt", 2000},
			{1500, "mV", "V", 1.5},
			{6, "volt * ampere", "watt", 6},
			{2, "hour", "second", 7200},
			{25, "degC", "kelvin", 298.15},
			{298.15, "kelvin", "degC", 25},
			{212, "degF", "degC", 100},
			{0, "degC", "degF", 32},
			{50, "percent", "", 0.5},
		}
		for _, tt := range tests {
			q := New(tt.m, reg.MustParse(tt.u))
			got, err := q.To(reg.MustParse(tt.v))
			if err != nil {
				t.Errorf("%v.To(%q) failed: %v", q, tt.v, err)
				continue
			}
			if math.Abs(got.Magnitude-tt.want) > 1e-9 {
				t.Errorf("%v.To(%q) = %v, want %v", q, tt.v, got.Magnitude, tt.want)
			}
			if !got.Unit.Equal(reg.MustParse(tt.v)) {
				t.Errorf("%v.To(%q) unit = %q", q, tt.v, got.Unit)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			u, v string
			want error
		}{
			"mismatch 1": {"volt", "meter", ErrDimensionMismatch},
			"mismatch 2": {"degC", "second", ErrDimensionMismatch},
			"compound 1": {"degC / second", "kelvin / second", ErrAffineConversion},
			"compound 2": {"degC ** 2", "kelvin ** 2", ErrAffineConversion},
		}
		for name, tt := range tests {
			q := New(1, reg.MustParse(tt.u))
			_, err := q.To(reg.MustParse(tt.v))
			if !errors.Is(err, tt.want) {
				t.Errorf("%v: %v.To(%q) = %v, want %v", name, q, tt.v, err, tt.want)
			}
		}
	})
}

func TestQuantity_Add(t *testing.T) {
	reg := MustNewRegistry()

	t.Run("success", func(t *testing.T) {
		tests := []struct {
			m    float64
			u    string
			n    float64
			v    string
			want float64
		}{
			{2, "V", 3, "V", 5},
			{2, "V", 500, "mV", 2.5},
			{1, "km", 250, "m", 1.25},
			{0.5, "", 50, "percent", 1},
		}
		for _, tt := range tests {
			q, r := New(tt.m, reg.MustParse(tt.u)), New(tt.n, reg.MustParse(tt.v))
			got, err := q.Add(r)
			if err != nil {
				t.Errorf("%v.Add(%v) failed: %v", q, r, err)
				continue
			}
			if math.Abs(got.Magnitude-tt.want) > 1e-12 || !got.Unit.Equal(q.Unit) {
				t.Errorf("%v.Add(%v) = %v, want %v %v", q, r, got, tt.want, q.Unit)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			u, v string
			want error
		}{
			"mismatch": {"volt", "ampere", ErrDimensionMismatch},
			"offset 1": {"degC", "degC", ErrOffsetUnit},
			"offset 2": {"kelvin", "degC", ErrOffsetUnit},
		}
		for name, tt := range tests {
			q, r := New(1, reg.MustParse(tt.u)), New(1, reg.MustParse(tt.v))
			if _, err := q.Add(r); !errors.Is(err, tt.want) {
				t.Errorf("%v: %v.Add(%v) = %v, want %v", name, q, r, err, tt.want)
			}
			if _, err := q.Sub(r); !errors.Is(err, tt.want) {
				t.Errorf("%v: %v.Sub(%v) = %v, want %v", name, q, r, err, tt.want)
			}
		}
	})
}

func TestQuantity_Sub(t *testing.T) {
	reg := MustNewRegistry()
	q := New(2, reg.MustParse("V"))
	r := New(500, reg.MustParse("mV"))
	got, err := q.Sub(r)
	if err != nil {
		t.Fatalf("%v.Sub(%v) failed: %v", q, r, err)
	}
	if got.Magnitude != 1.5 || got.Unit.String() != "volt" {
		t.Errorf("%v.Sub(%v) = %v, want 1.5 volt", q, r, got)
	}
}

func TestQuantity_Mul(t *testing.T) {
	reg := MustNewRegistry()

	t.Run("success", func(t *testing.T) {
		tests := []struct {
			m    float64
			u    string
			n    float64
			v    string
			want string
		}{
			{2, "volt", 3, "ampere", "6 ampere * volt"},
			{2, "meter", 3, "meter", "6 meter ** 2"},
			{2, "volt", 3, "", "6 volt"},
			{2, "meter", 3, "1 / meter", "6"},
		}
		for _, tt := range tests {
			q, r := New(tt.m, reg.MustParse(tt.u)), New(tt.n, reg.MustParse(tt.v))
			got, err := q.Mul(r)
			if err != nil {
				t.Errorf("%v.Mul(%v) failed: %v", q, r, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("%v.Mul(%v) = %q, want %q", q, r, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		q, r := New(2, reg.MustParse("degC")), New(3, reg.MustParse("second"))
		if _, err := q.Mul(r); !errors.Is(err, ErrOffsetUnit) {
			t.Errorf("%v.Mul(%v) = %v, want %v", q, r, err, ErrOffsetUnit)
		}
		if _, err := r.Quo(q); !errors.Is(err, ErrOffsetUnit) {
			t.Errorf("%v.Quo(%v) = %v, want %v", r, q, err, ErrOffsetUnit)
		}
	})
}

func TestQuantity_Quo(t *testing.T) {
	reg := MustNewRegistry()
	tests := []struct {
		m    float64
		u    string
		n    float64
		v    string
		want string
	}{
		{6, "meter", 2, "second", "3 meter / second"},
		{6, "volt", 2, "volt", "3"},
		{1, "", 4, "second", "0.25 1 / second"},
	}
	for _, tt := range tests {
		q, r := New(tt.m, reg.MustParse(tt.u)), New(tt.n, reg.MustParse(tt.v))
		got, err := q.Quo(r)
		if err != nil {
			t.Errorf("%v.Quo(%v) failed: %v", q, r, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("%v.Quo(%v) = %q, want %q", q, r, got, tt.want)
		}
	}
}

func TestQuantity_Pow(t *testing.T) {
	reg := MustNewRegistry()

	t.Run("success", func(t *testing.T) {
		tests := []struct {
			m    float64
			u    string
			n    float64
			v    string
			want string
		}{
			{3, "meter", 2, "", "9 meter ** 2"},
			{2, "second", -1, "", "0.5 1 / second"},
			{4, "", 0.5, "", "2"},
			{50, "percent", 2, "", "0.25"},
			{2, "meter", 300, "percent", "8 meter ** 3"},
		}
		for _, tt := range tests {
			q, r := New(tt.m, reg.MustParse(tt.u)), New(tt.n, reg.MustParse(tt.v))
			got, err := q.Pow(r)
			if err != nil {
				t.Errorf("%v.Pow(%v) failed: %v", q, r, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("%v.Pow(%v) = %q, want %q", q, r, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			u    string
			n    float64
			v    string
			want error
		}{
			"non-integer": {"meter", 0.5, "", ErrNonIntegerPower},
			"dimensioned": {"", 2, "meter", ErrDimensionMismatch},
			"offset":      {"degC", 2, "", ErrOffsetUnit},
		}
		for name, tt := range tests {
			q, r := New(2, reg.MustParse(tt.u)), New(tt.n, reg.MustParse(tt.v))
			if _, err := q.Pow(r); !errors.Is(err, tt.want) {
				t.Errorf("%v: %v.Pow(%v) = %v, want %v", name, q, r, err, tt.want)
			}
		}
	})
}

func TestQuantity_Text(t *testing.T) {
	reg := MustNewRegistry()
	tests := []struct {
		m      float64
		u      string
		format byte
		prec   int
		abbrev bool
		want   string
	}{
		{1.5, "millivolt", 'f', 2, true, "1.50 mV"},
		{1.5, "millivolt", 'f', 2, false, "1.50 millivolt"},
		{1.5, "millivolt", 'g', -1, false, "1.5 millivolt"},
		{59.9781, "volt * ampere", 'g', 3, true, "60 A·V"},
		{9.81, "m / s ** 2", 'f', 1, true, "9.8 m/s²"},
		{2, "", 'f', 1, true, "2.0"},
	}
	for _, tt := range tests {
		q := New(tt.m, reg.MustParse(tt.u))
		if got := q.Text(tt.format, tt.prec, tt.abbrev); got != tt.want {
			t.Errorf("%v.Text(%q, %v, %v) = %q, want %q", q, tt.format, tt.prec, tt.abbrev, got, tt.want)
		}
	}
}
