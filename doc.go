/*
Package fuzzy implements immutable measured values with asymmetric
uncertainty.
It is specifically designed for laboratory and instrumentation code, where
every reading carries an error and results must only show the digits that
the error leaves meaningful.

# Representation

[Value] is a struct with three fields:

  - Quantity: a float64 magnitude together with a [unit.Unit], such as
    2.73 volt.
  - Positive error: a non-negative float64, the largest amount by which
    the true value may exceed the magnitude.
  - Negative error: a non-positive float64, the largest amount by which
    the true value may fall short of the magnitude.

Both errors are expressed in the unit of the magnitude.
They are independent of each other, so a reading of 2.73 V that may be
0.1 V too low or 0.2 V too high is written as

	2.73 volt [+0.2, -0.1]

Values are constructed with [New], [NewFromUnits], [NewFromQuantity],
[Parse] or [FromRecord].
Bare numbers are promoted to exact dimensionless values with [Scalar].
A value is never modified after construction.

# Units

Units are provided by the [unit] subpackage.
Unit names are resolved by a [unit.Registry], which is loaded from a TOML
definitions document and passed explicitly wherever names are parsed:

	reg := unit.MustNewRegistry()
	v := fuzzy.MustNewFromUnits(reg, 2.73, "volt", 0.13, -0.13)

There is no global registry.
Once resolved, units do not need the registry any more, so arithmetic and
formatting take no registry argument.

# Operations

Each arithmetic operation is carried out in two steps:

 1. The nominal result, including its unit, is computed by the [unit]
    package from the two nominal quantities.

 2. The errors of the result are computed by evaluating the same operation
    on the raw magnitudes at the four corners of the error rectangle:
    (a+errP, b+errP), (a+errN, b+errP), (a+errP, b+errN) and
    (a+errN, b+errN).
    The largest deviation from the nominal result becomes the positive
    error and the smallest deviation becomes the negative error.

This is a worst-case, not a statistical, propagation: errors are never
combined by root-sum-square.
The four corners bound the result only where the operation is monotonic in
each argument over the error rectangle.
This holds for [Value.Add], [Value.Sub] and [Value.Mul] everywhere, for
[Value.Quo] when the divisor interval excludes zero, and for [Value.Pow]
under the restrictions listed in its documentation.
Operations outside that domain return an error instead of a wrong interval.

[Value.Add] and [Value.Sub] convert the right operand, errors included, to
the unit of the left operand before propagating.
[Value.To] converts a value to another unit and scales both errors by the
same factor as the magnitude.

# Rounding

[Value.Significant] renders a value with only its significant digits.
The position of the last significant digit is the position of the leading
digit of the larger error bound:

	| Value                            | Significant |
	| -------------------------------- | ----------- |
	| 1234.5678 volt [+0.1, -0.1]      | 1234.6 V    |
	| 1234.5678 volt [+0.1, -0.001]    | 1234.6 V    |
	| 1234.5678 volt [+20, -0.2]       | 1230 V      |
	| 1234.5678 volt [+0.009, -0.009]  | 1234.568 V  |
	| 1 volt [+0.01, -0.01]            | 1.00 V      |

Rounding is half-to-even.
Trailing zeros up to the last significant digit are kept.
[RoundSignificant] exposes the algorithm for bare numbers.

# Serialization

[Value.Record] returns a [Record] with the rounded magnitude, the unit name
and the raw error bounds.
Extra guard digits, [DefaultGuardDigits] by default, keep the magnitude
precise enough for further computation.
Values implement [json.Marshaler] and [yaml.Marshaler]; [ParseJSON],
[ParseYAML] and [FromRecord] convert records back.

# Errors

All arithmetic methods are panic-free and pure.
Errors are returned in the following cases:

  - Invalid error bound.
    A positive error less than 0 or a negative error greater than 0
    returns [ErrInvalidErrorBound].

  - Not finite.
    NaN or infinite magnitudes, errors or results return [ErrNotFinite].

  - Dimension mismatch.
    Adding, subtracting or converting between incompatible units returns
    [ErrDimensionMismatch].

  - Affine conversion.
    Converting between offset units, such as degree Celsius and kelvin,
    returns [ErrAffineConversion], because an offset cannot be applied to
    an error bound.

  - Offset unit.
    Arithmetic on offset units, such as adding two temperatures in
    degree Celsius, returns [unit.ErrOffsetUnit].

  - Division by zero.
    [Value.Quo] returns [ErrDivisionByZero] if the divisor interval
    contains zero.

  - Invalid power.
    [Value.Pow] returns [ErrInvalidPower] outside its monotonic domain.

  - Invalid syntax.
    [Parse] returns [ErrInvalidSyntax] for malformed magnitudes or error
    bounds, and the errors of [unit.Registry.Parse] for malformed units.

Errors wrap these sentinels and can be checked with [errors.Is].
The Must variants, such as [MustNew] and [Value.MustAdd], panic instead.

[json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
[yaml.Marshaler]: https://pkg.go.dev/gopkg.in/yaml.v3#Marshaler
*/
package fuzzy
