package fuzzy

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/govalues/fuzzy/unit"
)

// Value type is a representation of a measured physical quantity with an
// asymmetric uncertainty interval.
// The zero value is the exact dimensionless number 0.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// A value is a struct with three parameters:
//
//   - Quantity: the nominal magnitude together with its [unit.Unit].
//   - Positive error: a non-negative bound on how much larger the true
//     value may be, in the same unit as the magnitude.
//   - Negative error: a non-positive bound on how much smaller the true
//     value may be, in the same unit as the magnitude.
//
// For example, a value with magnitude 2.73, unit volt, positive error 0.1
// and negative error -0.2 describes a voltage somewhere between 2.53 V and
// 2.83 V, most likely 2.73 V.
//
// Values are never modified after construction.
// Arithmetic operations and conversions always return new values.
type Value struct {
	q    unit.Quantity // nominal quantity
	errP float64       // upper bound of the additive error, >= 0
	errN float64       // lower bound of the additive error, <= 0
}

var (
	ErrInvalidErrorBound = errors.New("invalid error bound")
	ErrNotFinite         = errors.New("not a finite number")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInvalidPower      = errors.New("power outside monotonic domain")
	ErrInvalidSyntax     = errors.New("invalid syntax")
	ErrDimensionMismatch = unit.ErrDimensionMismatch
	ErrAffineConversion  = unit.ErrAffineConversion
)

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func newValue(q unit.Quantity, errP, errN float64) (Value, error) {
	switch {
	case !isFinite(q.Magnitude):
		return Value{}, fmt.Errorf("magnitude %v: %w", q.Magnitude, ErrNotFinite)
	case !isFinite(errP) || !isFinite(errN):
		return Value{}, fmt.Errorf("error bounds [+%v, %v]: %w", errP, errN, ErrNotFinite)
	case errP < 0:
		return Value{}, fmt.Errorf("positive error %v is negative: %w", errP, ErrInvalidErrorBound)
	case errN > 0:
		return Value{}, fmt.Errorf("negative error %v is positive: %w", errN, ErrInvalidErrorBound)
	}
	// Drop negative zeros
	if errP == 0 {
		errP = 0
	}
	if errN == 0 {
		errN = 0
	}
	return Value{q: q, errP: errP, errN: errN}, nil
}

// New returns a value with magnitude m in unit u and the error bounds errP
// and errN.
//
// New returns an error if:
//   - errP is less than 0 or errN is greater than 0;
//   - m, errP or errN is NaN or infinite.
func New(m float64, u unit.Unit, errP, errN float64) (Value, error) {
	v, err := newValue(unit.New(m, u), errP, errN)
	if err != nil {
		return Value{}, fmt.Errorf("constructing %v %v: %w", m, u, err)
	}
	return v, nil
}

// NewFromQuantity is like [New] but takes the nominal value as a quantity.
func NewFromQuantity(q unit.Quantity, errP, errN float64) (Value, error) {
	return New(q.Magnitude, q.Unit, errP, errN)
}

// NewFromUnits is like [New] but resolves the unit expression units with
// reg. See [unit.Registry.Parse] for the accepted expressions.
// An empty expression denotes the dimensionless unit.
func NewFromUnits(reg *unit.Registry, m float64, units string, errP, errN float64) (Value, error) {
	u, err := reg.Parse(units)
	if err != nil {
		return Value{}, err
	}
	return New(m, u, errP, errN)
}

// Scalar returns the exact dimensionless value f.
// Use it to combine bare numbers with values:
//
//	v.Mul(fuzzy.Scalar(2))
//
// Scalar never fails; arithmetic involving a NaN or infinite scalar returns
// [ErrNotFinite].
func Scalar(f float64) Value {
	return Value{q: unit.New(f, unit.Unit{})}
}

// Parse converts a string to a value.
// The input string must be in one of the following formats:
//
//	2.73
//	2.73 volt
//	2.73 V [±0.13]
//	2.73 volt [+0.1, -0.2]
//	-1.5e3 meter / second ** 2 [+0, -20]
//
// The formal EBNF grammar for the supported format is as follows:
//
//	value  ::= number [units] [ '[' bounds ']' ]
//	bounds ::= '±' number | number ',' number
//
// where number is a floating-point literal as accepted by [strconv.ParseFloat]
// and units is a unit expression as accepted by [unit.Registry.Parse].
// Parse accepts the output of [Value.String], [Value.Pretty],
// [Value.Significant] and [Value.Format], including abbreviated units with
// superscript exponents such as "m/s²".
func Parse(reg *unit.Registry, s string) (Value, error) {
	v, err := parse(reg, s)
	if err != nil {
		return Value{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return v, nil
}

func parse(reg *unit.Registry, s string) (Value, error) {
	var (
		errP, errN float64
		err        error
	)
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "]") {
		i := strings.LastIndexByte(s, '[')
		if i < 0 {
			return Value{}, fmt.Errorf("unbalanced ']': %w", ErrInvalidSyntax)
		}
		errP, errN, err = parseBounds(s[i+1 : len(s)-1])
		if err != nil {
			return Value{}, err
		}
		s = strings.TrimSpace(s[:i])
	}
	n := numberPrefix(s)
	if n == 0 {
		return Value{}, fmt.Errorf("missing magnitude: %w", ErrInvalidSyntax)
	}
	m, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		return Value{}, fmt.Errorf("magnitude %q: %w", s[:n], ErrInvalidSyntax)
	}
	u, err := reg.Parse(s[n:])
	if err != nil {
		return Value{}, err
	}
	return New(m, u, errP, errN)
}

func parseBounds(s string) (errP, errN float64, err error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "±"); ok {
		e, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			return 0, 0, fmt.Errorf("error bound %q: %w", rest, ErrInvalidSyntax)
		}
		return e, -e, nil
	}
	p, n, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("error bounds %q: %w", s, ErrInvalidSyntax)
	}
	errP, err = strconv.ParseFloat(strings.TrimSpace(p), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("positive error %q: %w", p, ErrInvalidSyntax)
	}
	errN, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("negative error %q: %w", n, ErrInvalidSyntax)
	}
	return errP, errN, nil
}

// numberPrefix returns the length of the floating-point literal at the
// start of s, or 0 if there is none.
func numberPrefix(s string) int {
	isDigit := func(i int) bool { return i < len(s) && '0' <= s[i] && s[i] <= '9' }
	pos := 0
	if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
		pos++
	}
	digits := 0
	for isDigit(pos) {
		pos++
		digits++
	}
	if pos < len(s) && s[pos] == '.' {
		pos++
		for isDigit(pos) {
			pos++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	// Exponent is only consumed if digits follow, so that "2eV" keeps its unit.
	if pos < len(s) && (s[pos] == 'e' || s[pos] == 'E') {
		end := pos + 1
		if end < len(s) && (s[end] == '+' || s[end] == '-') {
			end++
		}
		if isDigit(end) {
			for isDigit(end) {
				end++
			}
			pos = end
		}
	}
	return pos
}

// Quantity returns the nominal quantity of v.
func (v Value) Quantity() unit.Quantity {
	return v.q
}

// Magnitude returns the nominal magnitude of v in the unit of v.
func (v Value) Magnitude() float64 {
	return v.q.Magnitude
}

// Unit returns the unit of v.
func (v Value) Unit() unit.Unit {
	return v.q.Unit
}

// ErrP returns the positive error bound of v, which is never negative.
func (v Value) ErrP() float64 {
	return v.errP
}

// ErrN returns the negative error bound of v, which is never positive.
func (v Value) ErrN() float64 {
	return v.errN
}

// Bounds returns the smallest and the largest magnitude v may take.
func (v Value) Bounds() (lo, hi float64) {
	return v.q.Magnitude + v.errN, v.q.Magnitude + v.errP
}

// IsExact returns true if both error bounds of v are zero.
func (v Value) IsExact() bool {
	return v.errP == 0 && v.errN == 0
}

// Equal returns true if v and w have the same magnitude, unit and error bounds.
func (v Value) Equal(w Value) bool {
	return v.q.Magnitude == w.q.Magnitude &&
		v.q.Unit.Equal(w.q.Unit) &&
		v.errP == w.errP &&
		v.errN == w.errN
}

// To converts v to unit u.
// Both error bounds are scaled by the same linear factor as the magnitude,
// so that volt to millivolt multiplies the magnitude and the errors by 1000.
//
// To returns an error if:
//   - v and u have different dimensions;
//   - the conversion is affine, as between degree Celsius and kelvin,
//     because an offset cannot be applied to an error bound.
func (v Value) To(u unit.Unit) (Value, error) {
	k, err := v.q.Unit.ConversionFactor(u)
	if err != nil {
		return Value{}, fmt.Errorf("converting %v: %w", v, err)
	}
	q, err := v.q.To(u)
	if err != nil {
		return Value{}, fmt.Errorf("converting %v: %w", v, err)
	}
	w, err := newValue(q, v.errP*k, v.errN*k)
	if err != nil {
		return Value{}, fmt.Errorf("converting %v to %q: %w", v, u, err)
	}
	return w, nil
}

// ToUnits is like [Value.To] but resolves the unit expression units with reg.
func (v Value) ToUnits(reg *unit.Registry, units string) (Value, error) {
	u, err := reg.Parse(units)
	if err != nil {
		return Value{}, err
	}
	return v.To(u)
}

// String implements the [fmt.Stringer] interface and returns the full
// precision representation of v, for example:
//
//	2.73 volt [+0.13, -0.13]
//
// The result can be converted back with [Parse].
func (v Value) String() string {
	return v.q.String() + " [+" + formatFloat(v.errP) + ", " + formatFloat(v.errN) + "]"
}

// GoString implements the [fmt.GoStringer] interface and returns a Go
// expression that reconstructs v from a registry named reg.
func (v Value) GoString() string {
	return "fuzzy.MustParse(reg, " + strconv.Quote(v.String()) + ")"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Pretty returns a compact representation of v with the magnitude and the
// error bounds limited to 6 significant digits and an abbreviated unit:
//
//	59.9781 A·V [+3.046, -5.406]
//
// Unlike [Value.Significant], the magnitude is not truncated by the errors.
func (v Value) Pretty() string {
	return v.pretty(6)
}

// pretty renders v with prec significant digits, see [Value.Pretty].
func (v Value) pretty(prec int) string {
	return v.q.Text('g', prec, true) + " [+" + strconv.FormatFloat(v.errP, 'g', prec, 64) + ", " + strconv.FormatFloat(v.errN, 'g', prec, 64) + "]"
}

// Significant returns v rounded to its significant digits with an
// abbreviated unit and without error bounds:
//
//	1234.6 V
//
// The number of digits after the decimal point is set by the leading digit
// of the larger error bound and trailing zeros are kept, so 1 V with an error
// of 0.01 V is rendered as "1.00 V".
// See [RoundSignificant] for details.
func (v Value) Significant() string {
	m, digits := v.SignificantMagnitude(0)
	return unit.New(m, v.q.Unit).Text('f', digits, true)
}

// Format implements [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%s, %v: 2.73 volt [+0.13, -0.13]
//	%#v:    fuzzy.MustParse(reg, "2.73 volt [+0.13, -0.13]")
//	%q:    "2.73 volt [+0.13, -0.13]"
//	%g:     2.73 V [+0.13, -0.13]
//	%f:     2.7 V
//
// Precision is supported for %f and %g verbs.
// For %f verb, the default precision is the number of significant decimal
// digits of the value, whereas an explicit precision sets the number of
// digits after the decimal point.
// For %g verb, the precision is the number of significant digits of the
// magnitude and the errors, which defaults to 6.
//
// Width and the '-' flag pad the result with spaces.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (v Value) Format(state fmt.State, verb rune) {
	var s string
	prec, hasPrec := state.Precision()

	switch verb {
	case 'v', 'V':
		if state.Flag('#') {
			s = v.GoString()
		} else {
			s = v.String()
		}
	case 's', 'S':
		s = v.String()
	case 'q', 'Q':
		s = strconv.Quote(v.String())
	case 'g', 'G':
		if !hasPrec {
			prec = 6
		}
		s = v.pretty(prec)
	case 'f', 'F':
		if !hasPrec {
			s = v.Significant()
		} else {
			s = v.q.Text('f', prec, true)
		}
	default:
		s = "%!" + string(verb) + "(fuzzy.Value=" + v.String() + ")"
	}

	// Padding
	if w, ok := state.Width(); ok {
		if pad := w - utf8.RuneCountInString(s); pad > 0 {
			if state.Flag('-') {
				s += strings.Repeat(" ", pad)
			} else {
				s = strings.Repeat(" ", pad) + s
			}
		}
	}

	state.Write([]byte(s))
}
