// Package charts renders simulation summaries as interactive HTML charts.
package charts

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string
	Subtitle   string
	XAxisLabel string
	YAxisLabel string
	Width      string
	Height     string
	Theme      string
	ShowLegend bool
	Smooth     bool // line charts only
	Horizontal bool // bar charts only; long labels read better on the Y axis
	Colors     []string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Smooth:     true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

// DataPoint represents a single data point in a chart.
type DataPoint struct {
	Label string
	Value float64
}

// SeriesData represents a data series for multi-series charts.
type SeriesData struct {
	Name   string
	Points []DataPoint
}

func globalOptions(config ChartConfig) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: config.XAxisLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: config.YAxisLabel}),
		charts.WithColorsOpts(opts.Colors(config.Colors)),
	}
}

// NewBarChart builds a single-series bar chart.
func NewBarChart(name string, data []DataPoint, config ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(config)...)

	labels := make([]string, len(data))
	values := make([]opts.BarData, len(data))
	for i, point := range data {
		labels[i] = point.Label
		values[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(labels).
		AddSeries(name, values).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)
	if config.Horizontal {
		bar.XYReversal()
	}

	return bar
}

// NewLineChart builds a multi-series line chart. Every series is aligned
// on the union of labels in first-seen order; missing points are zero.
func NewLineChart(series []SeriesData, config ChartConfig) (*charts.Line, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no data series provided")
	}

	var labels []string
	seen := make(map[string]bool)
	for _, s := range series {
		for _, point := range s.Points {
			if !seen[point.Label] {
				seen[point.Label] = true
				labels = append(labels, point.Label)
			}
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(config)...)
	line.SetXAxis(labels)

	for _, s := range series {
		byLabel := make(map[string]float64, len(s.Points))
		for _, point := range s.Points {
			byLabel[point.Label] = point.Value
		}

		values := make([]opts.LineData, len(labels))
		for i, label := range labels {
			values[i] = opts.LineData{Value: byLabel[label]}
		}
		line.AddSeries(s.Name, values)
	}

	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{
			Smooth: opts.Bool(config.Smooth),
		}),
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)

	return line, nil
}

// RenderToFile writes the output of render into an HTML file, creating
// the parent directory. Pass a page's or chart's Render method.
func RenderToFile(render func(io.Writer) error, outputPath string) (err error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
