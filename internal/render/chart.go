// Package render turns a chart model into a standalone HTML page so the
// equity curve can be shared outside the dashboard SPA.
package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"deriverse-dashboard/internal/analytics"
)

// WriteHTML renders the chart model as an echarts line chart. Daily models
// plot cumulative PnL plus the equity line; bucketed models plot PnL per
// bucket with fees as a second series.
func WriteHTML(w io.Writer, model analytics.Model, periodLabel string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Deriverse Performance",
			Width:     "1100px",
			Height:    "480px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Deriverse Performance",
			Subtitle: periodLabel,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(model.Points))
	lineData := make([]opts.LineData, 0, len(model.Points))
	areaData := make([]opts.LineData, 0, len(model.Points))
	secondaryData := make([]opts.LineData, 0, len(model.Points))
	for _, point := range model.Points {
		labels = append(labels, point.Label)
		lineData = append(lineData, opts.LineData{Value: point.LineValue})
		areaData = append(areaData, opts.LineData{Value: point.AreaValue})
		secondaryData = append(secondaryData, opts.LineData{Value: point.SecondaryLineValue})
	}

	line.SetXAxis(labels).
		AddSeries(model.LineLegend, lineData).
		AddSeries(model.AreaLegend, areaData)
	if model.Granularity == analytics.GranularityDaily {
		line.AddSeries(model.SecondLineLegend, secondaryData)
	}
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)

	return line.Render(w)
}
