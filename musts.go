package fuzzy

import (
	"fmt"

	"github.com/govalues/fuzzy/unit"
)

// MustNew is like [New] but panics if the value cannot be constructed.
// It simplifies safe initialization of global variables holding values.
func MustNew(m float64, u unit.Unit, errP, errN float64) Value {
	v, err := New(m, u, errP, errN)
	if err != nil {
		panic(fmt.Sprintf("MustNew(%v, %q, %v, %v) failed: %v", m, u, errP, errN, err))
	}
	return v
}

// MustNewFromUnits is like [NewFromUnits] but panics if the value cannot be
// constructed.
func MustNewFromUnits(reg *unit.Registry, m float64, units string, errP, errN float64) Value {
	v, err := NewFromUnits(reg, m, units, errP, errN)
	if err != nil {
		panic(fmt.Sprintf("MustNewFromUnits(%v, %q, %v, %v) failed: %v", m, units, errP, errN, err))
	}
	return v
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
func MustParse(reg *unit.Registry, s string) Value {
	v, err := Parse(reg, s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return v
}

// MustAdd is like [Value.Add] but panics if computing error.
func (v Value) MustAdd(w Value) Value {
	u, err := v.Add(w)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", w, err))
	}
	return u
}

// MustSub is like [Value.Sub] but panics if computing error.
func (v Value) MustSub(w Value) Value {
	u, err := v.Sub(w)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", w, err))
	}
	return u
}

// MustMul is like [Value.Mul] but panics if computing error.
func (v Value) MustMul(w Value) Value {
	u, err := v.Mul(w)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", w, err))
	}
	return u
}

// MustQuo is like [Value.Quo] but panics if computing error.
func (v Value) MustQuo(w Value) Value {
	u, err := v.Quo(w)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", w, err))
	}
	return u
}

// MustPow is like [Value.Pow] but panics if computing error.
func (v Value) MustPow(w Value) Value {
	u, err := v.Pow(w)
	if err != nil {
		panic(fmt.Sprintf("MustPow(%v) failed: %v", w, err))
	}
	return u
}

// MustTo is like [Value.To] but panics if the conversion fails.
func (v Value) MustTo(u unit.Unit) Value {
	w, err := v.To(u)
	if err != nil {
		panic(fmt.Sprintf("MustTo(%q) failed: %v", u, err))
	}
	return w
}
