package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htn0810/Bill-Sharing/internal/calculator"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0 ₫"},
		{"1", "1 ₫"},
		{"999", "999 ₫"},
		{"1000", "1.000 ₫"},
		{"1000000", "1.000.000 ₫"},
		{"999999.4", "1.000.000 ₫"},
		{"0.01", "1 ₫"},
		{"-50.3", "-50 ₫"},
		{"-33333.3333333333333333", "-33.333 ₫"},
		{"1234567890", "1.234.567.890 ₫"},
		{"10000000000000000000", "10.000.000.000.000.000.000\u00a0₫"},
		{"1000000000000000000000000000000", "1.000.000.000.000.000.000.000.000.000.000\u00a0₫"},
		{"-9223372036854775809", "-9.223.372.036.854.775.809\u00a0₫"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseCurrency(t *testing.T) {
	got, err := ParseCurrency("1.250.000 ₫")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(1250000)))

	got, err = ParseCurrency("-50\u00a0₫")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(-50)))

	_, err = ParseCurrency("₫")
	assert.ErrorIs(t, err, calculator.ErrInvalidAmount)
}

func TestCurrencyRoundTrip(t *testing.T) {
	for _, v := range []string{"0", "1", "1000000", "999999.4", "-12345.6", "10000000000000000000.2"} {
		t.Run(v, func(t *testing.T) {
			shown := Currency(decimal.RequireFromString(v))
			parsed, err := ParseCurrency(shown)
			require.NoError(t, err)
			assert.Equal(t, shown, Currency(parsed))
		})
	}
}

func TestFormatter(t *testing.T) {
	f, err := LoadFormatter("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	// 07:05 UTC is 14:05 in Ho Chi Minh City.
	ts := time.Date(2026, time.October, 19, 7, 5, 0, 0, time.UTC)
	assert.Equal(t, "19 tháng 10, 2026", f.Date(ts))
	assert.Equal(t, "14:05 - 19 tháng 10, 2026", f.DateTime(ts))

	// 20:00 UTC on the 19th is already the 20th locally.
	late := time.Date(2026, time.October, 19, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "20 tháng 10, 2026", f.Date(late))
	assert.Equal(t, "19 tháng 10, 2026", f.CalendarDate(late))
}

func TestNewFormatter_NilLocation(t *testing.T) {
	f := NewFormatter(nil)
	assert.Equal(t, time.UTC, f.Location())
	assert.Equal(t, "00:00 - 1 tháng 1, 2026", f.DateTime(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestLoadFormatter_Unknown(t *testing.T) {
	_, err := LoadFormatter("Mars/Olympus_Mons")
	assert.Error(t, err)
}
