package unit

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

//go:embed units.toml
var defaultDefinitions []byte

// Registry resolves unit names and symbols to units.
// A registry is immutable once loaded and safe for concurrent use.
type Registry struct {
	byName   map[string]*definition // names and aliases
	bySymbol map[string]*definition
	prefixes []*prefix       // longest name first
	symbols  []prefixSymbol // longest symbol first
}

type prefixSymbol struct {
	symbol string
	pre    *prefix
}

type definitionsFile struct {
	Prefixes []prefixEntry `toml:"prefix"`
	Bases    []baseEntry   `toml:"base"`
	Units    []unitEntry   `toml:"unit"`
}

type prefixEntry struct {
	Name    string   `toml:"name"`
	Symbol  string   `toml:"symbol"`
	Aliases []string `toml:"aliases"`
	Factor  float64  `toml:"factor"`
}

type baseEntry struct {
	Name      string   `toml:"name"`
	Symbol    string   `toml:"symbol"`
	Aliases   []string `toml:"aliases"`
	Dimension string   `toml:"dimension"`
}

type unitEntry struct {
	Name       string   `toml:"name"`
	Symbol     string   `toml:"symbol"`
	Aliases    []string `toml:"aliases"`
	Definition string   `toml:"definition"`
	Factor     float64  `toml:"factor"`
	Offset     float64  `toml:"offset"`
}

// NewRegistry returns a registry loaded with the built-in SI definitions:
// the seven base units, common derived units, decimal prefixes, and the
// Celsius and Fahrenheit temperature scales.
func NewRegistry() (*Registry, error) {
	return LoadRegistry(defaultDefinitions)
}

// MustNewRegistry is like [NewRegistry] but panics if the built-in
// definitions cannot be loaded.
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(fmt.Sprintf("MustNewRegistry() failed: %v", err))
	}
	return r
}

// LoadRegistryFile reads a TOML definitions file and returns the registry it
// describes. See [LoadRegistry] for the file format.
func LoadRegistryFile(path string) (*Registry, error) {
	var file definitionsFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("decoding %v: %w", path, err)
	}
	return newRegistry(file)
}

// LoadRegistry parses a TOML definitions document.
// The document consists of three arrays of tables:
//
//	[[prefix]]  name, symbol, aliases (alternative symbols), factor
//	[[base]]    name, symbol, aliases, dimension
//	[[unit]]    name, symbol, aliases, definition, factor, offset
//
// Each base unit defines one of the dimensions length, mass, time, current,
// temperature, substance or luminosity.
// Each unit is factor times the unit expression in definition, which may
// only refer to units defined earlier in the document.
// A missing factor means 1.
// The offset, expressed in base units, makes a unit affine.
func LoadRegistry(data []byte) (*Registry, error) {
	var file definitionsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding definitions: %w", err)
	}
	return newRegistry(file)
}

func newRegistry(file definitionsFile) (*Registry, error) {
	r := &Registry{
		byName:   make(map[string]*definition),
		bySymbol: make(map[string]*definition),
	}
	for _, e := range file.Prefixes {
		if e.Name == "" || e.Factor <= 0 {
			return nil, fmt.Errorf("prefix %q: %w", e.Name, ErrInvalidDefinition)
		}
		p := &prefix{name: e.Name, symbol: e.Symbol, factor: e.Factor}
		r.prefixes = append(r.prefixes, p)
		for _, s := range append([]string{e.Symbol}, e.Aliases...) {
			if s != "" {
				r.symbols = append(r.symbols, prefixSymbol{symbol: s, pre: p})
			}
		}
	}
	sort.SliceStable(r.prefixes, func(i, j int) bool {
		return len(r.prefixes[i].name) > len(r.prefixes[j].name)
	})
	sort.SliceStable(r.symbols, func(i, j int) bool {
		return len(r.symbols[i].symbol) > len(r.symbols[j].symbol)
	})
	for _, e := range file.Bases {
		i, ok := dimensionIndex(e.Dimension)
		if !ok {
			return nil, fmt.Errorf("base unit %q: unknown dimension %q: %w", e.Name, e.Dimension, ErrInvalidDefinition)
		}
		d := &definition{name: e.Name, symbol: e.Symbol, factor: 1}
		d.dim[i] = 1
		if err := r.add(d, e.Aliases); err != nil {
			return nil, err
		}
	}
	for _, e := range file.Units {
		u, err := r.Parse(e.Definition)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", e.Name, err)
		}
		if u.IsAffine() {
			return nil, fmt.Errorf("unit %q: defined in terms of an offset unit: %w", e.Name, ErrInvalidDefinition)
		}
		factor := e.Factor
		if factor == 0 {
			factor = 1
		}
		if factor < 0 {
			return nil, fmt.Errorf("unit %q: negative factor: %w", e.Name, ErrInvalidDefinition)
		}
		d := &definition{
			name:   e.Name,
			symbol: e.Symbol,
			factor: factor * u.Factor(),
			offset: e.Offset,
			dim:    u.Dimension(),
		}
		if err := r.add(d, e.Aliases); err != nil {
			return nil, err
		}
	}
	r.markAmbiguous()
	return r, nil
}

// markAmbiguous records the prefix and unit pairs whose concatenated
// symbols resolve to a different unit.
func (r *Registry) markAmbiguous() {
	for _, p := range r.prefixes {
		if p.symbol == "" {
			continue
		}
		for _, d := range r.bySymbol {
			if d.affine() {
				continue
			}
			if t, ok := r.lookup(p.symbol + d.symbol); !ok || t.pre != p || t.def != d {
				if p.ambiguous == nil {
					p.ambiguous = make(map[*definition]bool)
				}
				p.ambiguous[d] = true
			}
		}
	}
}

func (r *Registry) add(d *definition, aliases []string) error {
	if d.name == "" {
		return fmt.Errorf("unit without name: %w", ErrInvalidDefinition)
	}
	for _, n := range append([]string{d.name}, aliases...) {
		if _, ok := r.byName[n]; ok {
			return fmt.Errorf("unit %q: duplicate name %q: %w", d.name, n, ErrInvalidDefinition)
		}
		r.byName[n] = d
	}
	if d.symbol != "" {
		if _, ok := r.bySymbol[d.symbol]; ok {
			return fmt.Errorf("unit %q: duplicate symbol %q: %w", d.name, d.symbol, ErrInvalidDefinition)
		}
		r.bySymbol[d.symbol] = d
	}
	return nil
}

// lookup resolves a single unit name in the following order:
// exact name, alias or symbol; plural name; prefix name followed by a unit
// name; prefix symbol followed by a unit symbol.
func (r *Registry) lookup(name string) (term, bool) {
	if d, ok := r.byName[name]; ok {
		return term{def: d, exp: 1}, true
	}
	if d, ok := r.bySymbol[name]; ok {
		return term{def: d, exp: 1}, true
	}
	if d, ok := r.plural(name); ok {
		return term{def: d, exp: 1}, true
	}
	for _, p := range r.prefixes {
		rest, ok := strings.CutPrefix(name, p.name)
		if !ok || rest == "" {
			continue
		}
		d, ok := r.byName[rest]
		if !ok {
			d, ok = r.plural(rest)
		}
		if ok && !d.affine() {
			return term{pre: p, def: d, exp: 1}, true
		}
	}
	for _, ps := range r.symbols {
		rest, ok := strings.CutPrefix(name, ps.symbol)
		if !ok || rest == "" {
			continue
		}
		if d, ok := r.bySymbol[rest]; ok && !d.affine() {
			return term{pre: ps.pre, def: d, exp: 1}, true
		}
	}
	return term{}, false
}

func (r *Registry) plural(name string) (*definition, bool) {
	stem, ok := strings.CutSuffix(name, "s")
	if !ok || stem == "" {
		return nil, false
	}
	d, ok := r.byName[stem]
	return d, ok
}

// Parse converts a unit expression to a unit.
// The expression must follow the grammar:
//
//	expr ::= power { ('*' | '·' | '/') power }
//	power ::= atom [ ('**' | '^') integer | superscript ]
//	atom ::= name | '1' | '(' expr ')'
//
// where superscript is an integer written with superscript digits and an
// optional '⁻', as produced by [Unit.Symbol], for example "m/s²".
//
// Names may be unit names, aliases, symbols, plurals, or any of those
// preceded by a decimal prefix, for example "millivolt", "mV" or "volts".
// The empty string and "dimensionless" denote the dimensionless unit.
func (r *Registry) Parse(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "dimensionless" {
		return Unit{}, nil
	}
	toks, err := tokenize(s)
	if err != nil {
		return Unit{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	p := parser{reg: r, toks: toks}
	u, err := p.expr()
	if err != nil {
		return Unit{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	if p.peek().kind != tokEOF {
		return Unit{}, fmt.Errorf("parsing %q: unexpected %q: %w", s, p.peek().text, ErrInvalidExpression)
	}
	return u, nil
}

// MustParse is like [Registry.Parse] but panics if the expression cannot be parsed.
func (r *Registry) MustParse(s string) Unit {
	u, err := r.Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return u
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokNumber
	tokMul
	tokQuo
	tokPow
	tokOpen
	tokClose
)

type token struct {
	kind tokenKind
	text string
}

func isNameRune(c rune) bool {
	return unicode.IsLetter(c) || c == '_' || c == '°' || c == '%'
}

func tokenize(s string) ([]token, error) {
	var toks []token
	runes := []rune(s)
	for i := 0; i < len(runes); {
		c := runes[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '*' && i+1 < len(runes) && runes[i+1] == '*':
			toks = append(toks, token{tokPow, "**"})
			i += 2
		case c == '^':
			toks = append(toks, token{tokPow, "^"})
			i++
		case c == '*' || c == '·':
			toks = append(toks, token{tokMul, string(c)})
			i++
		case c == '/':
			toks = append(toks, token{tokQuo, "/"})
			i++
		case c == '(':
			toks = append(toks, token{tokOpen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokClose, ")"})
			i++
		case c == '-' || c == '+' || unicode.IsDigit(c):
			j := i + 1
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			toks = append(toks, token{tokNumber, string(runes[i:j])})
			i = j
		case c == '⁻' || superscriptDigit(c) >= 0:
			var b strings.Builder
			j := i
			if c == '⁻' {
				b.WriteByte('-')
				j++
			}
			digits := 0
			for ; j < len(runes) && superscriptDigit(runes[j]) >= 0; j++ {
				b.WriteByte(byte('0' + superscriptDigit(runes[j])))
				digits++
			}
			if digits == 0 {
				return nil, fmt.Errorf("unexpected character %q: %w", c, ErrInvalidExpression)
			}
			toks = append(toks, token{tokPow, "^"}, token{tokNumber, b.String()})
			i = j
		case isNameRune(c):
			j := i + 1
			for j < len(runes) && isNameRune(runes[j]) {
				j++
			}
			toks = append(toks, token{tokName, string(runes[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q: %w", c, ErrInvalidExpression)
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

type parser struct {
	reg  *Registry
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expr() (Unit, error) {
	u, err := p.power()
	if err != nil {
		return Unit{}, err
	}
	for {
		switch p.peek().kind {
		case tokMul:
			p.next()
			v, err := p.power()
			if err != nil {
				return Unit{}, err
			}
			u = u.Mul(v)
		case tokQuo:
			p.next()
			v, err := p.power()
			if err != nil {
				return Unit{}, err
			}
			u = u.Quo(v)
		default:
			return u, nil
		}
	}
}

func (p *parser) power() (Unit, error) {
	u, err := p.atom()
	if err != nil {
		return Unit{}, err
	}
	if p.peek().kind != tokPow {
		return u, nil
	}
	p.next()
	t := p.next()
	if t.kind != tokNumber {
		return Unit{}, fmt.Errorf("exponent %q: %w", t.text, ErrInvalidExpression)
	}
	n, err := strconv.Atoi(t.text)
	if err != nil {
		return Unit{}, fmt.Errorf("exponent %q: %w", t.text, ErrInvalidExpression)
	}
	return u.Pow(n), nil
}

func (p *parser) atom() (Unit, error) {
	t := p.next()
	switch t.kind {
	case tokName:
		if t.text == "dimensionless" {
			return Unit{}, nil
		}
		tm, ok := p.reg.lookup(t.text)
		if !ok {
			return Unit{}, fmt.Errorf("%q: %w", t.text, ErrUnknownUnit)
		}
		return Unit{terms: []term{tm}}, nil
	case tokNumber:
		if t.text != "1" {
			return Unit{}, fmt.Errorf("unexpected number %q: %w", t.text, ErrInvalidExpression)
		}
		return Unit{}, nil
	case tokOpen:
		u, err := p.expr()
		if err != nil {
			return Unit{}, err
		}
		if p.next().kind != tokClose {
			return Unit{}, fmt.Errorf("missing ')': %w", ErrInvalidExpression)
		}
		return u, nil
	case tokEOF:
		return Unit{}, fmt.Errorf("unexpected end: %w", ErrInvalidExpression)
	default:
		return Unit{}, fmt.Errorf("unexpected %q: %w", t.text, ErrInvalidExpression)
	}
}
