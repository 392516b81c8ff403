package indicator

import (
	talib "github.com/markcheno/go-talib"

	"stockpilot/internal/market"
)

// Report carries the derived technical metrics blended into the decision
// prompt. Each value is a market.Metric so a too-short history degrades to
// the unavailable marker instead of a fake zero.
type Report struct {
	SMA200Deviation market.Metric // percent distance of last close from SMA200
	RSI14           market.Metric
	RangePosition   market.Metric // 0..100 position of last close inside the observed range
}

const (
	smaPeriod = 200
	rsiPeriod = 14
)

// Compute derives the report from daily candles. Any indicator whose lookback
// exceeds the series stays unavailable; Compute itself never fails.
func Compute(candles []market.Candle) Report {
	var rep Report
	if len(candles) == 0 {
		return rep
	}
	closes := market.Closes(candles)
	last := closes[len(closes)-1]

	if len(closes) >= smaPeriod {
		sma := talib.Sma(closes, smaPeriod)
		ref := sma[len(sma)-1]
		if ref > 0 {
			rep.SMA200Deviation = market.MetricOf((last - ref) / ref * 100)
		}
	}
	if len(closes) > rsiPeriod {
		rsi := talib.Rsi(closes, rsiPeriod)
		rep.RSI14 = market.MetricOf(rsi[len(rsi)-1])
	}

	lo, hi := rangeBounds(candles)
	if hi > lo {
		rep.RangePosition = market.MetricOf((last - lo) / (hi - lo) * 100)
	}
	return rep
}

func rangeBounds(candles []market.Candle) (lo, hi float64) {
	lo = candles[0].Low
	hi = candles[0].High
	for _, c := range candles[1:] {
		if c.Low < lo {
			lo = c.Low
		}
		if c.High > hi {
			hi = c.High
		}
	}
	return lo, hi
}
