package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExamples(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		integral bool
	}{
		{"$ 1.225.000", "1225000", true},
		{"$ 336.050,42", "336050.42", false},
		{"$212,700", "212700", true},
		{"24,300.00", "24300", true},
		{"1225000", "1225000", true},
		{"1.234,5", "1234.5", false},
		{"12.50", "12.50", false},
		{"-1,234.56", "-1234.56", false},
		{"1.500,00-", "-1500", true},
		{"(2.000,10)", "-2000.10", false},
		{"$ -45.000,00", "-45000", true},
		{"COP 7.000.000", "7000000", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
			assert.Equal(t, tt.integral, v.Integral)
		})
	}
}

func TestNormalizeSingleDotIsDecimal(t *testing.T) {
	v, err := Normalize("24.300")
	require.NoError(t, err)
	assert.False(t, v.Integral)
	assert.True(t, v.Amount.Equal(decimal.RequireFromString("24.3")))
}

func TestNormalizeFailures(t *testing.T) {
	for _, in := range []string{"", "   ", "$", "N/A", ".,"} {
		_, err := Normalize(in)
		assert.ErrorIs(t, err, ErrUnparsableNumber, in)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	literals := []string{
		"$ 1.225.000", "$ 336.050,42", "$212,700", "24,300.00", "0,5", "-1,234.56",
		"(2.000,10)", "1.234.567,89", "99.999", "7", "12.50", "1,5",
	}
	for _, in := range literals {
		first, err := Normalize(in)
		require.NoError(t, err, in)

		second, err := Normalize(first.String())
		require.NoError(t, err, in)
		assert.True(t, first.Equal(second), "%s: %s != %s", in, first, second)
	}
}

func TestParseFormat(t *testing.T) {
	v, err := ParseFormat("1.234", CommaDecimal)
	require.NoError(t, err)
	assert.Equal(t, "1234", v.String())

	v, err = ParseFormat("1.234", PointDecimal)
	require.NoError(t, err)
	assert.Equal(t, "1.234", v.String())

	v, err = ParseFormat("-2,500.75", PointDecimal)
	require.NoError(t, err)
	assert.Equal(t, "-2500.75", v.String())

	v, err = ParseFormat("$ 50.000,00", CommaDecimal)
	require.NoError(t, err)
	assert.True(t, v.Integral)
	assert.Equal(t, "50000", v.String())

	_, err = ParseFormat("1,2,3", CommaDecimal)
	assert.ErrorIs(t, err, ErrUnparsableNumber)
}

func TestParseRate(t *testing.T) {
	r, err := ParseRate("12,5%")
	require.NoError(t, err)
	assert.True(t, r.Amount.Equal(decimal.RequireFromString("12.5")))

	r, err = ParseRate(" 0.522 % ")
	require.NoError(t, err)
	assert.True(t, r.Amount.Equal(decimal.RequireFromString("0.522")))

	_, err = ParseRate("%")
	assert.ErrorIs(t, err, ErrUnparsableNumber)
}

func TestLooksMonetary(t *testing.T) {
	assert.True(t, LooksMonetary("$ 1.225.000"))
	assert.True(t, LooksMonetary("-1,234.56"))
	assert.True(t, LooksMonetary("(2.000,10)"))
	assert.False(t, LooksMonetary("15/01/2024"))
	assert.False(t, LooksMonetary("2024-01-15"))
	assert.False(t, LooksMonetary("PAGO PSE 123"))
	assert.False(t, LooksMonetary(""))
}

func TestValueJSON(t *testing.T) {
	v, err := Normalize("$ 336.050,42")
	require.NoError(t, err)

	out, err := json.Marshal(struct {
		Amount Value `json:"amount"`
	}{v})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":336050.42}`, string(out))

	var back Value
	require.NoError(t, json.Unmarshal([]byte("336050.42"), &back))
	assert.True(t, back.Equal(v))
}

func TestSum(t *testing.T) {
	a, _ := Normalize("1.000,50")
	b, _ := Normalize("999,50")
	c, _ := Normalize("0,25")

	total := Sum(a, b)
	assert.True(t, total.Integral)
	assert.Equal(t, "2000", total.String())

	assert.Equal(t, "2000.25", Sum(a, b, c).String())
	assert.Equal(t, "0", Sum().String())
}
