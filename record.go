package fuzzy

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/govalues/fuzzy/unit"
	"gopkg.in/yaml.v3"
)

// DefaultGuardDigits is the number of digits kept beyond the significant
// ones when a value is serialized.
const DefaultGuardDigits = 3

// Record is the serialized form of a value, suitable for JSON or YAML
// storage.
// Only the magnitude is rounded; the error bounds are stored as they are,
// so that a round trip does not compound rounding errors.
type Record struct {
	Value float64 `json:"value" yaml:"value"`
	Units string  `json:"units" yaml:"units"`
	ErrP  float64 `json:"err_p" yaml:"err_p"`
	ErrN  float64 `json:"err_n" yaml:"err_n"`
}

// Record returns the serialized form of v.
// The magnitude is rounded to its significant digits plus guard additional
// digits, see [RoundSignificant].
// The unit is rendered with [unit.Unit.String].
func (v Value) Record(guard int) Record {
	m, _ := v.SignificantMagnitude(guard)
	return Record{
		Value: m,
		Units: v.q.Unit.String(),
		ErrP:  v.errP,
		ErrN:  v.errN,
	}
}

// FromRecord converts a serialized record back to a value, resolving its
// units with reg.
// FromRecord applies the same checks as [New].
func FromRecord(reg *unit.Registry, r Record) (Value, error) {
	return NewFromUnits(reg, r.Value, r.Units, r.ErrP, r.ErrN)
}

// MarshalJSON implements the [json.Marshaler] interface.
// The value is encoded as a [Record] with [DefaultGuardDigits] guard digits.
// Decoding needs a unit registry, so use [ParseJSON] instead of
// [json.Unmarshal].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Record(DefaultGuardDigits))
}

// MarshalYAML implements the [yaml.Marshaler] interface.
// The value is encoded as a [Record] with [DefaultGuardDigits] guard digits.
// Decoding needs a unit registry, so use [ParseYAML] instead of
// [yaml.Unmarshal].
//
// [yaml.Marshaler]: https://pkg.go.dev/gopkg.in/yaml.v3#Marshaler
func (v Value) MarshalYAML() (any, error) {
	return v.Record(DefaultGuardDigits), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// It always fails with [errors.ErrUnsupported] because units cannot be
// resolved without a registry; use [ParseJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (v *Value) UnmarshalJSON([]byte) error {
	return fmt.Errorf("decoding value: units need a registry, use fuzzy.ParseJSON: %w", errors.ErrUnsupported)
}

// UnmarshalYAML implements the [yaml.Unmarshaler] interface.
// It always fails with [errors.ErrUnsupported] because units cannot be
// resolved without a registry; use [ParseYAML].
//
// [yaml.Unmarshaler]: https://pkg.go.dev/gopkg.in/yaml.v3#Unmarshaler
func (v *Value) UnmarshalYAML(*yaml.Node) error {
	return fmt.Errorf("decoding value: units need a registry, use fuzzy.ParseYAML: %w", errors.ErrUnsupported)
}

// ParseJSON decodes a JSON [Record] and converts it to a value.
func ParseJSON(reg *unit.Registry, data []byte) (Value, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Value{}, fmt.Errorf("decoding record: %w", err)
	}
	return FromRecord(reg, r)
}

// ParseYAML decodes a YAML [Record] and converts it to a value.
func ParseYAML(reg *unit.Registry, data []byte) (Value, error) {
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Value{}, fmt.Errorf("decoding record: %w", err)
	}
	return FromRecord(reg, r)
}
