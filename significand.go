package fuzzy

import (
	"math"
	"strconv"
	"strings"
)

// scientific is a decomposition of a non-zero finite number into
// ±sig × 10^exp, where 1 <= sig < 10.
type scientific struct {
	sig float64
	exp int
	neg bool
}

// newScientific returns false if f is zero, NaN or infinite.
func newScientific(f float64) (scientific, bool) {
	if f == 0 || !isFinite(f) {
		return scientific{}, false
	}
	a := math.Abs(f)
	exp := int(math.Floor(math.Log10(a)))
	sig := scalePow10(a, -exp)
	// Log10 may be off by one next to exact powers of ten.
	switch {
	case sig >= 10:
		exp++
		sig = scalePow10(a, -exp)
	case sig < 1:
		exp--
		sig = scalePow10(a, -exp)
	}
	return scientific{sig: sig, exp: exp, neg: f < 0}, true
}

func (s scientific) float64() float64 {
	f := scalePow10(s.sig, s.exp)
	if s.neg {
		return -f
	}
	return f
}

// scalePow10 returns f × 10^n without overflowing the intermediate power
// for subnormal and very large numbers.
func scalePow10(f float64, n int) float64 {
	for n > 300 {
		f *= 1e300
		n -= 300
	}
	for n < -300 {
		f *= 1e-300
		n += 300
	}
	return f * math.Pow10(n)
}

// RoundSignificant rounds magnitude to the digits that are not swamped by
// the error bounds errP and errN.
// It returns the rounded magnitude and the number of digits after the
// decimal point needed to display it.
//
// The larger error bound, whichever side it is on, sets the position of the
// last significant digit: it is the position of the leading digit of that
// error.
// For example, with errors +0.1 and -0.01 the magnitude 1234.5678 is
// rounded to 1234.6 with 1 decimal digit, and with errors +20 and -0.2
// it is rounded to 1230 with 0 decimal digits.
// An error larger than the magnitude may round the magnitude to 0.
//
// The guard argument keeps that many additional digits beyond the last
// significant one. It is used when the rounded value will feed further
// computation rather than be displayed. Negative guard is treated as 0.
//
// Rounding uses half-to-even, first on the scaled significand and then on
// the decimal digits to strip residual floating-point noise.
//
// An error bound of exactly zero places no constraint on the magnitude.
// If both errors are zero, the magnitude is returned unchanged together with
// the number of digits in its shortest decimal representation.
func RoundSignificant(magnitude, errP, errN float64, guard int) (float64, int) {
	if guard < 0 {
		guard = 0
	}

	// Error exponent
	var errExp int
	ep, okP := newScientific(errP / math.Pow10(guard))
	en, okN := newScientific(errN / math.Pow10(guard))
	switch {
	case okP && okN:
		errExp = max(ep.exp, en.exp)
	case okP:
		errExp = ep.exp
	case okN:
		errExp = en.exp
	default:
		return magnitude, decimalDigits(magnitude)
	}
	digits := 0
	if errExp < 0 {
		digits = -errExp
	}

	// Special case: zero or non-finite magnitude
	m, ok := newScientific(magnitude)
	if !ok {
		if magnitude == 0 {
			return 0, digits
		}
		return magnitude, digits
	}

	// Rounding of the significand.
	// A float64 holds at most 17 significant digits, so a larger shift
	// leaves the magnitude unchanged.
	shift := m.exp - errExp
	if shift > 17 {
		return roundDecimal(magnitude, digits), digits
	}
	m.sig = scalePow10(math.RoundToEven(scalePow10(m.sig, shift)), -shift)

	return roundDecimal(m.float64(), digits), digits
}

// roundDecimal returns f rounded half-to-even to the given number of digits
// after the decimal point.
func roundDecimal(f float64, digits int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', digits, 64), 64)
	if err != nil {
		return f
	}
	if r == 0 {
		return 0
	}
	return r
}

// decimalDigits returns the number of digits after the decimal point in
// the shortest decimal representation of f.
func decimalDigits(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return len(s) - i - 1
}

// SignificantMagnitude returns the magnitude of v rounded to its
// significant digits plus guard additional digits, and the number of
// digits after the decimal point.
// See [RoundSignificant] for details.
func (v Value) SignificantMagnitude(guard int) (float64, int) {
	return RoundSignificant(v.q.Magnitude, v.errP, v.errN, guard)
}
