package market

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Metric is a financial value that is either present or explicitly
// unavailable. The zero value is the unavailable marker; a missing or
// unparseable provider field must never surface as a numeric zero.
type Metric struct {
	val decimal.Decimal
	ok  bool
}

func MetricOf(v float64) Metric {
	return Metric{val: decimal.NewFromFloat(v), ok: true}
}

func MetricFromDecimal(d decimal.Decimal) Metric {
	return Metric{val: d, ok: true}
}

// MetricFromString parses a numeric string; anything that does not parse
// yields the unavailable marker.
func MetricFromString(s string) Metric {
	s = strings.TrimSpace(s)
	if s == "" {
		return Metric{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Metric{}
	}
	return Metric{val: d, ok: true}
}

func (m Metric) Available() bool { return m.ok }

func (m Metric) Decimal() (decimal.Decimal, bool) {
	return m.val, m.ok
}

func (m Metric) Float64() (float64, bool) {
	if !m.ok {
		return 0, false
	}
	f, _ := m.val.Float64()
	return f, true
}

// Format renders the value with the given decimal places, or the fallback
// text when the metric is unavailable.
func (m Metric) Format(places int32, fallback string) string {
	if !m.ok {
		return fallback
	}
	return m.val.Round(places).String()
}

// FormatPercent renders a raw fraction (0.0123) as a percentage ("1.23"),
// or the fallback text when unavailable.
func (m Metric) FormatPercent(places int32, fallback string) string {
	if !m.ok {
		return fallback
	}
	return m.val.Mul(decimal.NewFromInt(100)).Round(places).String()
}

func (m Metric) String() string {
	return m.Format(4, "n/a")
}
