package market

import (
	"time"

	"github.com/tidwall/gjson"
)

// Snapshot is a point-in-time read of valuation metrics for one ticker.
// Every numeric field is a Metric so "missing" stays distinguishable from
// zero all the way into the prompt.
type Snapshot struct {
	Ticker   string
	Company  string
	Sector   string
	Industry string

	Price   Metric
	High52w Metric
	Low52w  Metric

	TrailingPE Metric
	MarketCap  Metric

	DividendYield Metric
	ROE           Metric

	AsOf time.Time
}

// NormalizeSnapshot maps a raw quoteSummary document onto the fixed schema.
// Provider responses are loosely typed (numbers, {raw,fmt} objects, strings,
// absent keys); every field resolves to a value or the unavailable marker and
// no field error ever propagates.
func NormalizeSnapshot(ticker string, raw []byte, asOf time.Time) Snapshot {
	doc := gjson.ParseBytes(raw)
	return Snapshot{
		Ticker:   ticker,
		Company:  doc.Get("price.longName").String(),
		Sector:   doc.Get("summaryProfile.sector").String(),
		Industry: doc.Get("summaryProfile.industry").String(),

		Price:   metricAt(doc, "price.regularMarketPrice"),
		High52w: metricAt(doc, "summaryDetail.fiftyTwoWeekHigh"),
		Low52w:  metricAt(doc, "summaryDetail.fiftyTwoWeekLow"),

		TrailingPE: metricAt(doc, "summaryDetail.trailingPE"),
		MarketCap:  metricAt(doc, "price.marketCap"),

		DividendYield: metricAt(doc, "summaryDetail.dividendYield"),
		ROE:           metricAt(doc, "financialData.returnOnEquity"),

		AsOf: asOf,
	}
}

// metricAt resolves one provider field. Yahoo wraps most numbers as
// {"raw": 1.23, "fmt": "1.23"}; older fields are plain numbers, and some
// providers hand back numeric strings.
func metricAt(doc gjson.Result, path string) Metric {
	r := doc.Get(path)
	if r.IsObject() {
		r = r.Get("raw")
	}
	switch r.Type {
	case gjson.Number:
		return MetricOf(r.Num)
	case gjson.String:
		return MetricFromString(r.Str)
	default:
		return Metric{}
	}
}
