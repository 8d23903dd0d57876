package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(hour int, open, close float64) HourlyEntry {
	return HourlyEntry{
		Hour:  hour,
		Open:  decimal.NewFromFloat(open),
		High:  decimal.NewFromFloat(close),
		Low:   decimal.NewFromFloat(open),
		Close: decimal.NewFromFloat(close),
	}
}

func TestHourlyLedgerAppend(t *testing.T) {
	ledger := HourlyLedger{}

	updated, err := ledger.Append(entry(0, 100, 101), entry(1, 101, 102))
	require.NoError(t, err)
	assert.Len(t, updated, 2)

	// Il ledger originale non viene modificato
	assert.Len(t, ledger, 0)

	last, ok := updated.LastSavedHour()
	assert.True(t, ok)
	assert.Equal(t, 1, last)
}

func TestHourlyLedgerAppendRejectsDuplicateHour(t *testing.T) {
	ledger, err := HourlyLedger{}.Append(entry(5, 100, 101))
	require.NoError(t, err)

	_, err = ledger.Append(entry(5, 200, 201))
	assert.ErrorIs(t, err, ErrDuplicateHour)

	// Anche i duplicati all'interno dello stesso batch vengono respinti
	_, err = HourlyLedger{}.Append(entry(7, 1, 2), entry(7, 3, 4))
	assert.ErrorIs(t, err, ErrDuplicateHour)
}

func TestHourlyLedgerAppendRejectsInvalidHour(t *testing.T) {
	_, err := HourlyLedger{}.Append(entry(24, 100, 101))
	assert.ErrorIs(t, err, ErrInvalidHour)

	_, err = HourlyLedger{}.Append(entry(-1, 100, 101))
	assert.ErrorIs(t, err, ErrInvalidHour)
}

func TestHourlyLedgerAppendRejectsFullDay(t *testing.T) {
	ledger := HourlyLedger{}
	for hour := 0; hour < 24; hour++ {
		var err error
		ledger, err = ledger.Append(entry(hour, 100, 101))
		require.NoError(t, err)
	}

	_, err := ledger.Append(HourlyEntry{Hour: 0})
	assert.ErrorIs(t, err, ErrDuplicateHour)
}

func TestHourlyLedgerLastSavedHour(t *testing.T) {
	_, ok := HourlyLedger{}.LastSavedHour()
	assert.False(t, ok)

	ledger, err := HourlyLedger{}.Append(entry(3, 1, 2), entry(7, 2, 3), entry(5, 3, 4))
	require.NoError(t, err)

	last, ok := ledger.LastSavedHour()
	assert.True(t, ok)
	assert.Equal(t, 7, last)
}

func TestHourlyLedgerScanRoundTrip(t *testing.T) {
	ledger, err := HourlyLedger{}.Append(entry(0, 100, 101), entry(1, 101, 99.5))
	require.NoError(t, err)

	value, err := ledger.Value()
	require.NoError(t, err)

	var loaded HourlyLedger
	require.NoError(t, loaded.Scan(value))
	require.Len(t, loaded, 2)
	assert.Equal(t, 1, loaded[1].Hour)
	assert.True(t, loaded[1].Close.Equal(decimal.NewFromFloat(99.5)))
}

func TestHourlyLedgerScanNil(t *testing.T) {
	var ledger HourlyLedger
	require.NoError(t, ledger.Scan(nil))
	assert.Len(t, ledger, 0)

	assert.Error(t, ledger.Scan(42))
}

func TestCoinHistoricIsPlaceholder(t *testing.T) {
	historic := &CoinHistoric{CoinID: 1, Timestamp: 1700000000}
	assert.True(t, historic.IsPlaceholder())

	historic.Close = decimal.NewFromInt(100)
	assert.False(t, historic.IsPlaceholder())
}

func TestPercentageChange(t *testing.T) {
	change := PercentageChange(decimal.NewFromInt(100), decimal.NewFromInt(110))
	assert.Equal(t, "10.00", change.StringFixed(2))

	change = PercentageChange(decimal.NewFromInt(100), decimal.NewFromInt(85))
	assert.Equal(t, "-15.00", change.StringFixed(2))

	// Apertura zero: nessuna divisione per zero, variazione zero
	change = PercentageChange(decimal.Zero, decimal.NewFromInt(50))
	assert.True(t, change.IsZero())
}

func TestPricePointIsZero(t *testing.T) {
	assert.True(t, PricePoint{Time: 1600000000}.IsZero())
	assert.False(t, PricePoint{Time: 1600000000, Close: decimal.NewFromInt(1)}.IsZero())
}
