package fuzzy

import (
	"fmt"
	"math"

	"github.com/govalues/fuzzy/unit"
)

func add(x, y float64) float64 { return x + y }
func sub(x, y float64) float64 { return x - y }
func mul(x, y float64) float64 { return x * y }
func quo(x, y float64) float64 { return x / y }

// propagate returns the worst-case deviation of f(a, b) from f at the
// nominal magnitudes, evaluated at the four corners of the error rectangle
// of a and b.
// The corners bound the image of f only if f is monotonic in each argument
// over the rectangle; callers check this before calling propagate.
func propagate(a, b Value, f func(x, y float64) float64) (errP, errN float64) {
	x, y := a.q.Magnitude, b.q.Magnitude
	nominal := f(x, y)
	corners := [...][2]float64{
		{x + a.errP, y + b.errP},
		{x + a.errN, y + b.errP},
		{x + a.errP, y + b.errN},
		{x + a.errN, y + b.errN},
	}
	errP, errN = math.Inf(-1), math.Inf(1)
	for _, c := range corners {
		d := f(c[0], c[1]) - nominal
		errP = math.Max(errP, d)
		errN = math.Min(errN, d)
	}
	return errP, errN
}

// combine builds the result of an arithmetic operation from the nominal
// quantity q and the errors propagated through f.
func combine(op string, a, b Value, q unit.Quantity, f func(x, y float64) float64) (Value, error) {
	errP, errN := propagate(a, b, f)
	v, err := newValue(q, errP, errN)
	if err != nil {
		return Value{}, fmt.Errorf("computing [%v %v %v]: %w", a, op, b, err)
	}
	return v, nil
}

// Add returns the sum v + w expressed in the unit of v.
// The errors of w are converted to the unit of v before propagation.
//
// Add returns an error if:
//   - v and w have different dimensions;
//   - either unit is affine;
//   - the result is not finite.
func (v Value) Add(w Value) (Value, error) {
	u, err := w.To(v.q.Unit)
	if err != nil {
		return Value{}, fmt.Errorf("computing [%v + %v]: %w", v, w, err)
	}
	q, err := v.q.Add(u.q)
	if err != nil {
		return Value{}, err
	}
	return combine("+", v, u, q, add)
}

// Sub returns the difference v - w expressed in the unit of v.
// See [Value.Add] for the error conditions.
func (v Value) Sub(w Value) (Value, error) {
	u, err := w.To(v.q.Unit)
	if err != nil {
		return Value{}, fmt.Errorf("computing [%v - %v]: %w", v, w, err)
	}
	q, err := v.q.Sub(u.q)
	if err != nil {
		return Value{}, err
	}
	return combine("-", v, u, q, sub)
}

// Mul returns the product v * w.
// The unit of the product combines the units of v and w without reducing
// them, so volt times ampere is "ampere * volt", which converts to watt.
//
// Mul returns an error if:
//   - either unit is affine;
//   - the result is not finite.
func (v Value) Mul(w Value) (Value, error) {
	q, err := v.q.Mul(w.q)
	if err != nil {
		return Value{}, err
	}
	return combine("*", v, w, q, mul)
}

// Quo returns the quotient v / w.
//
// Quo returns an error if:
//   - the interval of w contains zero;
//   - either unit is affine;
//   - the result is not finite.
func (v Value) Quo(w Value) (Value, error) {
	if lo, hi := w.Bounds(); lo <= 0 && hi >= 0 {
		return Value{}, fmt.Errorf("computing [%v / %v]: divisor interval [%v, %v] contains zero: %w", v, w, lo, hi, ErrDivisionByZero)
	}
	q, err := v.q.Quo(w.q)
	if err != nil {
		return Value{}, err
	}
	return combine("/", v, w, q, quo)
}

// Pow returns v raised to the power w.
// The exponent must be dimensionless.
//
// The errors are only propagated where v ** w is monotonic in both
// arguments over the error rectangle, so Pow returns an error if:
//   - w is not dimensionless;
//   - v is dimensioned and w is not an exact integer;
//   - the interval of v is negative and w is not an exact integer;
//   - the interval of v contains zero and w is not an exact non-negative
//     odd integer or exact zero;
//   - either unit is affine;
//   - the result is not finite.
func (v Value) Pow(w Value) (Value, error) {
	e, err := w.To(unit.Unit{})
	if err != nil {
		return Value{}, fmt.Errorf("computing [%v ** %v]: %w", v, w, err)
	}
	b := v
	if v.q.Unit.IsDimensionless() {
		b, err = v.To(unit.Unit{})
		if err != nil {
			return Value{}, fmt.Errorf("computing [%v ** %v]: %w", v, w, err)
		}
	}
	if err := checkPow(b, e); err != nil {
		return Value{}, fmt.Errorf("computing [%v ** %v]: %w", v, w, err)
	}
	q, err := b.q.Pow(e.q)
	if err != nil {
		return Value{}, err
	}
	return combine("**", b, e, q, math.Pow)
}

// checkPow verifies that x ** y is monotonic in x and in y over the error
// rectangle of base and exp.
func checkPow(base, exp Value) error {
	n := exp.q.Magnitude
	integer := exp.IsExact() && n == math.Trunc(n)
	lo, hi := base.Bounds()
	switch {
	case !base.q.Unit.IsDimensionless() && !integer:
		return fmt.Errorf("dimensioned base needs an exact integer exponent: %w", ErrInvalidPower)
	case lo > 0:
		return nil
	case hi < 0:
		if !integer {
			return fmt.Errorf("negative base interval [%v, %v] needs an exact integer exponent: %w", lo, hi, ErrInvalidPower)
		}
		return nil
	case integer && (n == 0 || (n > 0 && math.Mod(n, 2) == 1)):
		return nil
	default:
		return fmt.Errorf("base interval [%v, %v] contains zero: %w", lo, hi, ErrInvalidPower)
	}
}
