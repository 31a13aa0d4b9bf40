package unit

import (
	"fmt"
	"math"
	"strconv"
)

// Quantity is a magnitude expressed in a unit.
// The zero value is a dimensionless 0.
type Quantity struct {
	Magnitude float64
	Unit      Unit
}

// New returns the quantity m * u.
func New(m float64, u Unit) Quantity {
	return Quantity{Magnitude: m, Unit: u}
}

// To converts q to unit u.
// Affine conversions, such as degree Celsius to kelvin, are supported
// between single-term units.
//
// To returns an error if:
//   - q.Unit and u have different dimensions;
//   - an affine unit is part of a compound unit or raised to a power.
func (q Quantity) To(u Unit) (Quantity, error) {
	if q.Unit.Equal(u) {
		return New(q.Magnitude, u), nil
	}
	if !q.Unit.IsAffine() && !u.IsAffine() {
		k, err := q.Unit.ConversionFactor(u)
		if err != nil {
			return Quantity{}, err
		}
		return New(q.Magnitude*k, u), nil
	}
	if !q.Unit.Compatible(u) {
		return Quantity{}, fmt.Errorf("converting %q to %q: %w", q.Unit, u, ErrDimensionMismatch)
	}
	src, ok1 := q.Unit.simple()
	dst, ok2 := u.simple()
	if !ok1 || !ok2 {
		return Quantity{}, fmt.Errorf("converting %q to %q: %w", q.Unit, u, ErrAffineConversion)
	}
	ref := q.Magnitude*src.factor() + src.def.offset
	return New((ref-dst.def.offset)/dst.factor(), u), nil
}

// Add returns the sum q + r expressed in the unit of q.
//
// Add returns an error if:
//   - q and r have different dimensions;
//   - either unit is affine.
func (q Quantity) Add(r Quantity) (Quantity, error) {
	s, err := q.operand(r)
	if err != nil {
		return Quantity{}, fmt.Errorf("computing [%v + %v]: %w", q, r, err)
	}
	return New(q.Magnitude+s.Magnitude, q.Unit), nil
}

// Sub returns the difference q - r expressed in the unit of q.
// See [Quantity.Add] for the error conditions.
func (q Quantity) Sub(r Quantity) (Quantity, error) {
	s, err := q.operand(r)
	if err != nil {
		return Quantity{}, fmt.Errorf("computing [%v - %v]: %w", q, r, err)
	}
	return New(q.Magnitude-s.Magnitude, q.Unit), nil
}

// operand converts r to the unit of q for addition or subtraction.
func (q Quantity) operand(r Quantity) (Quantity, error) {
	if q.Unit.IsAffine() || r.Unit.IsAffine() {
		return Quantity{}, ErrOffsetUnit
	}
	return r.To(q.Unit)
}

// Mul returns the product q * r.
// Terms of the two units are combined but not reduced, so volt times ampere
// is "ampere * volt" and can be converted to watt with [Quantity.To].
//
// Mul returns an error if either unit is affine.
func (q Quantity) Mul(r Quantity) (Quantity, error) {
	if q.Unit.IsAffine() || r.Unit.IsAffine() {
		return Quantity{}, fmt.Errorf("computing [%v * %v]: %w", q, r, ErrOffsetUnit)
	}
	return New(q.Magnitude*r.Magnitude, q.Unit.Mul(r.Unit)), nil
}

// Quo returns the quotient q / r.
// Division by zero follows IEEE 754 and yields an infinite or NaN magnitude.
//
// Quo returns an error if either unit is affine.
func (q Quantity) Quo(r Quantity) (Quantity, error) {
	if q.Unit.IsAffine() || r.Unit.IsAffine() {
		return Quantity{}, fmt.Errorf("computing [%v / %v]: %w", q, r, ErrOffsetUnit)
	}
	return New(q.Magnitude/r.Magnitude, q.Unit.Quo(r.Unit)), nil
}

// Pow returns q raised to the power r.
// The exponent must be dimensionless.
// A dimensioned base can only be raised to integer powers.
//
// Pow returns an error if:
//   - r is not dimensionless;
//   - q is dimensioned and r is not an integer;
//   - q is affine.
func (q Quantity) Pow(r Quantity) (Quantity, error) {
	if q.Unit.IsAffine() {
		return Quantity{}, fmt.Errorf("computing [%v ** %v]: %w", q, r, ErrOffsetUnit)
	}
	exp, err := r.To(Unit{})
	if err != nil {
		return Quantity{}, fmt.Errorf("computing [%v ** %v]: %w", q, r, err)
	}
	e := exp.Magnitude
	if q.Unit.IsDimensionless() {
		base, err := q.To(Unit{})
		if err != nil {
			return Quantity{}, fmt.Errorf("computing [%v ** %v]: %w", q, r, err)
		}
		return New(math.Pow(base.Magnitude, e), Unit{}), nil
	}
	if e != math.Trunc(e) || math.Abs(e) > math.MaxInt32 {
		return Quantity{}, fmt.Errorf("computing [%v ** %v]: %w", q, r, ErrNonIntegerPower)
	}
	return New(math.Pow(q.Magnitude, e), q.Unit.Pow(int(e))), nil
}

// Text converts q to a string in the manner of [strconv.FormatFloat] with
// the given format and precision, followed by the unit.
// If abbrev is true the unit is rendered with [Unit.Symbol], otherwise with
// [Unit.String].
// Dimensionless quantities are rendered without a unit.
func (q Quantity) Text(format byte, prec int, abbrev bool) string {
	s := strconv.FormatFloat(q.Magnitude, format, prec, 64)
	if len(q.Unit.terms) == 0 {
		return s
	}
	u := q.Unit.String()
	if abbrev {
		u = q.Unit.Symbol()
	}
	return s + " " + u
}

// String implements the [fmt.Stringer] interface and returns the shortest
// decimal representation of the magnitude followed by the long unit name.
func (q Quantity) String() string {
	return q.Text('g', -1, false)
}
