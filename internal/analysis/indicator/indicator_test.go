package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpilot/internal/market"
)

func flatCandles(n int, price float64) []market.Candle {
	candles := make([]market.Candle, n)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range candles {
		candles[i] = market.Candle{
			Time:  base.AddDate(0, 0, i),
			Open:  price,
			High:  price + 1,
			Low:   price - 1,
			Close: price,
		}
	}
	return candles
}

func TestComputeEmptySeries(t *testing.T) {
	rep := Compute(nil)
	assert.False(t, rep.SMA200Deviation.Available())
	assert.False(t, rep.RSI14.Available())
	assert.False(t, rep.RangePosition.Available())
}

func TestComputeShortSeries(t *testing.T) {
	// 50 bars: enough for RSI and range position, not for SMA200.
	rep := Compute(flatCandles(50, 100))
	assert.False(t, rep.SMA200Deviation.Available())
	assert.True(t, rep.RSI14.Available())
	assert.True(t, rep.RangePosition.Available())
}

func TestComputeFullSeries(t *testing.T) {
	candles := flatCandles(250, 100)
	// Last close sits 10% above the flat history.
	last := &candles[len(candles)-1]
	last.Close = 110
	last.High = 111

	rep := Compute(candles)
	require.True(t, rep.SMA200Deviation.Available())
	dev, _ := rep.SMA200Deviation.Float64()
	// SMA200 includes the bumped close itself, so the reference is 100.05.
	assert.InDelta(t, 9.94, dev, 0.05)

	require.True(t, rep.RangePosition.Available())
	pos, _ := rep.RangePosition.Float64()
	assert.InDelta(t, 91.7, pos, 0.5, "110 against a 99..111 range")
}

func TestComputeDegenerateRange(t *testing.T) {
	// All highs equal all lows: no range to position in.
	candles := flatCandles(20, 100)
	for i := range candles {
		candles[i].High = 100
		candles[i].Low = 100
	}
	rep := Compute(candles)
	assert.False(t, rep.RangePosition.Available())
}
