// Package unit implements physical units and quantities for the fuzzy package.
//
// A [Unit] is a product of named unit terms raised to integer powers,
// for example "kilogram * meter / second ** 2".
// Units are resolved against a [Registry], which is built from a TOML
// definitions document and passed explicitly wherever unit names are parsed.
// A [Quantity] pairs a float64 magnitude with a unit and supports
// dimensional arithmetic and conversion.
//
// The zero value of [Unit] is the dimensionless unit and the zero value of
// [Quantity] is a dimensionless 0.
// Units, quantities and registries are immutable and safe for concurrent use.
package unit

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrAffineConversion  = errors.New("affine unit conversion")
	ErrOffsetUnit        = errors.New("arithmetic on offset unit")
	ErrNonIntegerPower   = errors.New("non-integer power of dimensioned unit")
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrInvalidExpression = errors.New("invalid unit expression")
	ErrInvalidDefinition = errors.New("invalid unit definition")
)

// Dimension holds the exponents of the seven SI base dimensions in the
// order length, mass, time, current, temperature, substance, luminosity.
type Dimension [7]int

var dimensionNames = [...]string{
	"length",
	"mass",
	"time",
	"current",
	"temperature",
	"substance",
	"luminosity",
}

func dimensionIndex(name string) (int, bool) {
	for i, n := range dimensionNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func (d Dimension) add(e Dimension, sign int) Dimension {
	for i := range d {
		d[i] += sign * e[i]
	}
	return d
}

func (d Dimension) scale(n int) Dimension {
	for i := range d {
		d[i] *= n
	}
	return d
}

// IsZero returns true if d describes a dimensionless quantity.
func (d Dimension) IsZero() bool {
	return d == Dimension{}
}

// String returns d in the form "[length] * [mass] / [time] ** 2".
func (d Dimension) String() string {
	var num, den []string
	for i, e := range d {
		switch {
		case e > 0:
			num = append(num, powerString("["+dimensionNames[i]+"]", e))
		case e < 0:
			den = append(den, powerString("["+dimensionNames[i]+"]", -e))
		}
	}
	return joinLong(num, den, "dimensionless")
}

// prefix is a decimal scale applied to a unit name or symbol.
type prefix struct {
	name   string
	symbol string
	factor float64

	// units whose prefixed symbol resolves to something else, such as
	// milli + inch spelling "min"
	ambiguous map[*definition]bool
}

// definition is a named unit resolved to the reference units of its
// registry: value in reference units = magnitude * factor + offset.
type definition struct {
	name   string
	symbol string
	factor float64
	offset float64
	dim    Dimension
}

func (d *definition) affine() bool {
	return d.offset != 0
}

// term is a possibly prefixed unit raised to a non-zero integer power.
type term struct {
	pre *prefix
	def *definition
	exp int
}

func (t term) name() string {
	if t.pre == nil {
		return t.def.name
	}
	return t.pre.name + t.def.name
}

// symbol falls back to the long name if the abbreviation is missing or
// does not parse back to t.
func (t term) symbol() string {
	switch {
	case t.def.symbol == "":
		return t.name()
	case t.pre == nil:
		return t.def.symbol
	case t.pre.symbol == "" || t.pre.ambiguous[t.def]:
		return t.name()
	}
	return t.pre.symbol + t.def.symbol
}

func (t term) factor() float64 {
	f := t.def.factor
	if t.pre != nil {
		f *= t.pre.factor
	}
	if t.exp == 1 {
		return f
	}
	return math.Pow(f, float64(t.exp))
}

// Unit is a product of unit terms.
// The zero value is the dimensionless unit.
type Unit struct {
	terms []term // sorted by name, exponents are non-zero
}

func newUnit(terms []term) Unit {
	merged := make(map[string]term, len(terms))
	for _, t := range terms {
		key := t.name()
		if m, ok := merged[key]; ok {
			t.exp += m.exp
		}
		merged[key] = t
	}
	u := Unit{}
	for _, t := range merged {
		if t.exp != 0 {
			u.terms = append(u.terms, t)
		}
	}
	sort.Slice(u.terms, func(i, j int) bool {
		return u.terms[i].name() < u.terms[j].name()
	})
	return u
}

// Mul returns the product u * v.
func (u Unit) Mul(v Unit) Unit {
	terms := make([]term, 0, len(u.terms)+len(v.terms))
	terms = append(terms, u.terms...)
	terms = append(terms, v.terms...)
	return newUnit(terms)
}

// Quo returns the quotient u / v.
func (u Unit) Quo(v Unit) Unit {
	return u.Mul(v.Pow(-1))
}

// Pow returns u raised to the integer power n.
func (u Unit) Pow(n int) Unit {
	terms := make([]term, len(u.terms))
	for i, t := range u.terms {
		t.exp *= n
		terms[i] = t
	}
	return newUnit(terms)
}

// Dimension returns the physical dimension of u.
func (u Unit) Dimension() Dimension {
	var d Dimension
	for _, t := range u.terms {
		d = d.add(t.def.dim.scale(t.exp), 1)
	}
	return d
}

// Factor returns the multiplier that converts a magnitude in u to the
// reference units of the registry u was parsed with.
// Offsets of affine units are not included.
func (u Unit) Factor() float64 {
	f := 1.0
	for _, t := range u.terms {
		f *= t.factor()
	}
	return f
}

// IsDimensionless returns true if u has no physical dimension.
// Units such as percent or radian are dimensionless but still scale.
func (u Unit) IsDimensionless() bool {
	return u.Dimension().IsZero()
}

// IsAffine returns true if any term of u carries an offset, as degree Celsius does.
func (u Unit) IsAffine() bool {
	for _, t := range u.terms {
		if t.def.affine() {
			return true
		}
	}
	return false
}

// Compatible returns true if u and v have the same dimension.
func (u Unit) Compatible(v Unit) bool {
	return u.Dimension() == v.Dimension()
}

// Equal returns true if u and v consist of the same terms.
func (u Unit) Equal(v Unit) bool {
	if len(u.terms) != len(v.terms) {
		return false
	}
	for i := range u.terms {
		if u.terms[i].name() != v.terms[i].name() || u.terms[i].exp != v.terms[i].exp {
			return false
		}
	}
	return true
}

// simple returns the single term of u if u is one unprefixed-or-prefixed
// term with exponent 1.
func (u Unit) simple() (term, bool) {
	if len(u.terms) != 1 || u.terms[0].exp != 1 {
		return term{}, false
	}
	return u.terms[0], true
}

// ConversionFactor returns the linear factor k such that a magnitude x in u
// equals k * x in v.
//
// ConversionFactor returns an error if:
//   - u and v have different dimensions;
//   - u and v are different units and at least one of them is affine.
func (u Unit) ConversionFactor(v Unit) (float64, error) {
	if !u.Compatible(v) {
		return 0, fmt.Errorf("converting %q to %q: %w", u, v, ErrDimensionMismatch)
	}
	if u.Equal(v) {
		return 1, nil
	}
	if u.IsAffine() || v.IsAffine() {
		return 0, fmt.Errorf("converting %q to %q: %w", u, v, ErrAffineConversion)
	}
	return u.Factor() / v.Factor(), nil
}

// String returns the canonical long form of u, such as "ampere * volt" or
// "meter / second ** 2".
// The dimensionless unit is rendered as "dimensionless".
// The result can be parsed back with [Registry.Parse].
func (u Unit) String() string {
	var num, den []string
	for _, t := range u.terms {
		switch {
		case t.exp > 0:
			num = append(num, powerString(t.name(), t.exp))
		case t.exp < 0:
			den = append(den, powerString(t.name(), -t.exp))
		}
	}
	return joinLong(num, den, "dimensionless")
}

// Symbol returns the abbreviated form of u, such as "A·V" or "m/s²".
// Terms without an unambiguous abbreviation keep their long name.
// The dimensionless unit is rendered as an empty string.
// The result can be parsed back with [Registry.Parse].
func (u Unit) Symbol() string {
	var num, den []string
	for _, t := range u.terms {
		switch {
		case t.exp > 0:
			num = append(num, t.symbol()+superscript(t.exp))
		case t.exp < 0:
			den = append(den, t.symbol()+superscript(-t.exp))
		}
	}
	if len(num) == 0 && len(den) == 0 {
		return ""
	}
	s := strings.Join(num, "·")
	if s == "" {
		s = "1"
	}
	for _, d := range den {
		s += "/" + d
	}
	return s
}

func powerString(name string, exp int) string {
	if exp == 1 {
		return name
	}
	return fmt.Sprintf("%v ** %v", name, exp)
}

func joinLong(num, den []string, empty string) string {
	if len(num) == 0 && len(den) == 0 {
		return empty
	}
	s := strings.Join(num, " * ")
	if s == "" {
		s = "1"
	}
	for _, d := range den {
		s += " / " + d
	}
	return s
}

var superscripts = [...]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

// superscriptDigit returns the value of a superscript digit, or -1.
func superscriptDigit(c rune) int {
	for i, s := range superscripts {
		if s == c {
			return i
		}
	}
	return -1
}

func superscript(n int) string {
	if n == 1 {
		return ""
	}
	var b strings.Builder
	for _, c := range fmt.Sprint(n) {
		b.WriteRune(superscripts[c-'0'])
	}
	return b.String()
}
