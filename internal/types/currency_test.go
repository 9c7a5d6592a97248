package types

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"zero", 0, "$0.00"},
		{"cents only", 5, "$0.05"},
		{"whole dollars", 4200, "$42.00"},
		{"thousands separator", 123456, "$1,234.56"},
		{"millions", 123456789, "$1,234,567.89"},
		{"negative", -4250, "-$42.50"},
		{"beyond float precision", 900719925474099312, "$9,007,199,254,740,993.12"},
		{"largest", math.MaxInt64, "$92,233,720,368,547,758.07"},
		{"smallest", math.MinInt64, "-$92,233,720,368,547,758.08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.cents))
		})
	}
}

func TestDollarsToCents(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"42.50", 4250},
		{"42.5", 4250},
		{"0", 0},
		{"0.005", 1},
		{"0.004", 0},
		{"19.999", 2000},
		{"1000000", 100000000},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, DollarsToCents(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatDollarsRounds(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatDollars(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$20.00", FormatDollars(decimal.RequireFromString("19.999")))
	assert.Equal(t, "$0.01", FormatDollars(decimal.RequireFromString("0.005")))
}

func TestMaxDollars(t *testing.T) {
	assert.Equal(t, int64(math.MaxInt64), DollarsToCents(MaxDollars))
	assert.Equal(t, "$92,233,720,368,547,758.07", FormatDollars(MaxDollars))
}

func TestCentsToDollarsRoundTrip(t *testing.T) {
	assert.Equal(t, "42.5", CentsToDollars(4250).String())
	assert.Equal(t, int64(4250), DollarsToCents(CentsToDollars(4250)))
}

func TestPageWindow(t *testing.T) {
	assert.Equal(t, PageWindow{Offset: 0, Limit: 6}, NewPageWindow(1))
	assert.Equal(t, PageWindow{Offset: 12, Limit: 6}, NewPageWindow(3))
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 1},
		{6, 1},
		{7, 2},
		{13, 3},
		{18, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.count), "count %d", tt.count)
	}
}

func TestFormatDate(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	assert.Equal(t, "2024-03-15", FormatDate(time.Date(2024, 3, 14, 22, 30, 0, 0, est)))
	assert.Equal(t, "2024-03-14", FormatDate(time.Date(2024, 3, 14, 22, 30, 0, 0, time.UTC)))
}
