package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"stockpilot/internal/market"
)

// RenderPricePage writes an HTML page with a candlestick chart and a volume
// bar chart for the given daily candles.
func RenderPricePage(w io.Writer, ticker string, candles []market.Candle) error {
	if len(candles) == 0 {
		return fmt.Errorf("no candles for %s", ticker)
	}
	xAxis := make([]string, 0, len(candles))
	klineData := make([]opts.KlineData, 0, len(candles))
	volumeData := make([]opts.BarData, 0, len(candles))
	for _, c := range candles {
		xAxis = append(xAxis, c.Time.Format("2006-01-02"))
		klineData = append(klineData, opts.KlineData{Value: [4]float64{c.Open, c.Close, c.Low, c.High}})
		volumeData = append(volumeData, opts.BarData{Value: c.Volume})
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s Price Movement", ticker),
			Subtitle: "daily",
			Left:     "left",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale:     opts.Bool(true),
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
	)
	kline.SetXAxis(xAxis)
	kline.AddSeries("Price", klineData)

	volume := charts.NewBar()
	volume.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s Trading Volume", ticker), Left: "left"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(false)},
		}),
	)
	volume.SetXAxis(xAxis)
	volume.AddSeries("Volume", volumeData)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(kline, volume)
	return page.Render(w)
}
