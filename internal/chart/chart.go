// Package chart renders derived metrics as PNG images for the dashboard
// and the CLI chart command.
package chart

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/moneymap-dev/moneymap/internal/metrics"
	"github.com/moneymap-dev/moneymap/internal/model"
)

// RenderNetWorth renders the monthly net-worth series as a PNG line chart.
func RenderNetWorth(points []metrics.NetWorthPoint, base model.Currency) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	xValues := make([]time.Time, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		t, err := time.Parse(model.MonthFormat, p.Month)
		if err != nil {
			return nil, fmt.Errorf("bad month key %q: %w", p.Month, err)
		}
		xValues[i] = t
		yValues[i], _ = p.Value.Float64()
	}

	series := chart.TimeSeries{
		Name: "Net Worth",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Net Worth (%s)", base),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return chart.TimeFromFloat64(f).Format("Jan 06")
				}
				return ""
			},
		},
		Series: []chart.Series{series},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderAllocation renders the actual allocation as a PNG pie chart.
// Asset types at zero percent are omitted.
func RenderAllocation(allocation map[model.AssetType]model.Percent) ([]byte, error) {
	var values []chart.Value
	for _, at := range model.AssetTypes() {
		pct := allocation[at]
		if pct <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", at, float64(pct)),
			Value: float64(pct),
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no allocation to chart")
	}

	graph := chart.PieChart{
		Title:  "Allocation",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
