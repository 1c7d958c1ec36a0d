// Package money normalizes the numeric literals found in Colombian and US financial
// documents ("$ 1.225.000", "336.050,42", "24,300.00") into exact decimal values.
//
// Separator roles are decided by position, never by a locale flag: whichever of '.' and ','
// appears last is the decimal candidate, and the digit count after a trailing comma settles
// whether that comma groups thousands or marks cents.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnparsableNumber is returned when a literal carries no digits or cannot be read
// under the requested convention.
var ErrUnparsableNumber = errors.New("unparsable number")

// Format pins a literal to a single separator convention.
type Format int

const (
	// PointDecimal is "1,234.56": '.' decimal, ',' thousands.
	PointDecimal Format = iota
	// CommaDecimal is "1.234,56": ',' decimal, '.' thousands.
	CommaDecimal
)

var monetaryShape = regexp.MustCompile(`^\(?\s*[-+]?\s*(?:US\$|\$|COP|USD)?\s*[-+]?\s*\d[\d.,\s]*\)?\s*-?$`)

// Value is a normalized monetary amount. Integral is set when the literal had no
// fractional part or only zeros after the decimal separator; otherwise Amount keeps
// exactly the precision written in the literal.
type Value struct {
	Amount   decimal.Decimal
	Integral bool
}

// Normalize parses a literal whose separator convention is unknown.
func Normalize(s string) (Value, error) {
	neg, body := stripLiteral(s)
	if !hasDigit(body) {
		return Value{}, fmt.Errorf("%w: %q", ErrUnparsableNumber, s)
	}

	lastDot := strings.LastIndex(body, ".")
	lastComma := strings.LastIndex(body, ",")

	var canonical string
	switch {
	case lastDot == -1 && lastComma == -1:
		canonical = body
	case lastDot > lastComma:
		if lastComma == -1 && strings.Count(body, ".") >= 2 {
			// "1.225.000": several dots and no comma only ever group thousands.
			canonical = strings.ReplaceAll(body, ".", "")
		} else {
			canonical = joinParts(body[:lastDot], body[lastDot+1:])
		}
	default:
		frac := body[lastComma+1:]
		switch len(frac) {
		case 1, 2:
			canonical = joinParts(body[:lastComma], frac)
		default:
			// three digits after the comma group thousands; zero or more than three
			// cannot be cents either.
			canonical = dropSeparators(body)
		}
	}

	return build(canonical, neg, s)
}

// ParseFormat parses a literal under a known convention, as the text grammars require.
func ParseFormat(s string, f Format) (Value, error) {
	neg, body := stripLiteral(s)
	if !hasDigit(body) {
		return Value{}, fmt.Errorf("%w: %q", ErrUnparsableNumber, s)
	}

	decimalSep, groupSep := ".", ","
	if f == CommaDecimal {
		decimalSep, groupSep = ",", "."
	}
	body = strings.ReplaceAll(body, groupSep, "")
	if strings.Count(body, decimalSep) > 1 {
		return Value{}, fmt.Errorf("%w: %q has more than one decimal separator", ErrUnparsableNumber, s)
	}
	canonical := body
	if i := strings.Index(body, decimalSep); i >= 0 {
		canonical = joinParts(body[:i], body[i+1:])
	}
	return build(canonical, neg, s)
}

// ParseRate parses a percentage literal such as "12,5%" or "0.522 %". Rates never carry
// thousands grouping, so either separator is read as the decimal point.
func ParseRate(s string) (Value, error) {
	t := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	t = strings.ReplaceAll(t, " ", "")
	t = strings.ReplaceAll(t, ",", ".")
	if !hasDigit(t) {
		return Value{}, fmt.Errorf("%w: rate %q", ErrUnparsableNumber, s)
	}
	return build(t, false, s)
}

// LooksMonetary reports whether a cell holds nothing but an amount: an optional currency
// marker and sign, digits and separators. Dates and free text fail this test even though
// Normalize would happily pull digits out of them.
func LooksMonetary(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	return monetaryShape.MatchString(t)
}

// FromInt builds an integral value.
func FromInt(n int64) Value {
	return Value{Amount: decimal.NewFromInt(n), Integral: true}
}

// String renders the value so that Normalize(v.String()) == v.
func (v Value) String() string {
	if v.Integral {
		return v.Amount.String()
	}
	return v.Amount.StringFixed(-v.Amount.Exponent())
}

// MarshalJSON encodes the value as a bare JSON number.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalJSON accepts a JSON number or string literal.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Normalize(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Sum adds values. The result is integral whenever the total has no fractional part.
func Sum(values ...Value) Value {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.Amount)
	}
	if total.IsInteger() {
		return Value{Amount: total.Truncate(0), Integral: true}
	}
	return Value{Amount: total}
}

func (v Value) IsNegative() bool { return v.Amount.IsNegative() }

func (v Value) IsZero() bool { return v.Amount.IsZero() }

// Abs drops the sign, keeping the representation.
func (v Value) Abs() Value {
	return Value{Amount: v.Amount.Abs(), Integral: v.Integral}
}

// Equal compares amounts and representation.
func (v Value) Equal(o Value) bool {
	return v.Integral == o.Integral && v.Amount.Equal(o.Amount)
}

// Float64 is for display and spreadsheet cells only.
func (v Value) Float64() float64 {
	return v.Amount.InexactFloat64()
}

func build(canonical string, neg bool, original string) (Value, error) {
	d, err := decimal.NewFromString(canonical)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrUnparsableNumber, original)
	}
	if neg {
		d = d.Neg()
	}
	if d.IsInteger() {
		return Value{Amount: d.Truncate(0), Integral: true}, nil
	}
	return Value{Amount: d}, nil
}

// stripLiteral keeps digits and separators and reports a leading/trailing minus or an
// accounting-style parenthesized amount.
func stripLiteral(s string) (bool, string) {
	t := strings.TrimSpace(s)
	neg := strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")")

	var b strings.Builder
	for _, r := range t {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	body := b.String()
	if strings.HasPrefix(body, "-") || strings.HasSuffix(body, "-") {
		neg = true
	}
	return neg, strings.ReplaceAll(body, "-", "")
}

func joinParts(intPart, frac string) string {
	intPart = dropSeparators(intPart)
	if intPart == "" {
		intPart = "0"
	}
	if frac == "" {
		return intPart
	}
	return intPart + "." + frac
}

func dropSeparators(s string) string {
	return strings.NewReplacer(".", "", ",", "").Replace(s)
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
