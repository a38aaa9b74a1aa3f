package charts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/samber/lo"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft/analytics"
)

// metricTitles names the batch-wide metrics in report order.
var metricTitles = []struct {
	metric string
	title  string
	xAxis  string
}{
	{analytics.MetricColorDistribution, "Color Distribution", "Colors"},
	{analytics.MetricTypeDistribution, "Card Type Distribution", "Type"},
	{analytics.MetricRarityDistribution, "Rarity Distribution", "Rarity"},
	{analytics.MetricArchetypeDistribution, "Archetype Distribution", "Archetype"},
}

// Report lays out every chart of a summary on one page.
type Report struct {
	SetCode string
	Config  ChartConfig
	// Names maps archetype codes to display names; missing codes print as-is.
	Names func(code string) string
}

// NewReport creates a report for a set with the default chart config.
func NewReport(setCode string) *Report {
	return &Report{SetCode: setCode, Config: DefaultChartConfig()}
}

// Page builds the HTML page for a summary.
func (r *Report) Page(summary analytics.Summary) (*components.Page, error) {
	if len(summary) == 0 {
		return nil, fmt.Errorf("summary has no metrics")
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Draft Simulation Report - %s", strings.ToUpper(r.SetCode))

	if counts := summary.ByManaValue(analytics.MetricManaCurve); len(counts) > 0 {
		page.AddCharts(NewBarChart("Cards", toPoints(counts), r.config("Mana Curve", "Mana Value", false)))
	}

	if counts := summary.Sorted(analytics.MetricMostCommonCards); len(counts) > 0 {
		page.AddCharts(NewBarChart("Decks", toPoints(counts),
			r.config(fmt.Sprintf("Top %d Most Common Cards", len(counts)), "", true)))
	}

	for _, m := range metricTitles {
		counts := summary.Sorted(m.metric)
		if len(counts) == 0 {
			continue
		}
		if m.metric == analytics.MetricArchetypeDistribution {
			counts = lo.Map(counts, func(c analytics.Count, _ int) analytics.Count {
				return analytics.Count{Label: r.name(c.Label), Count: c.Count}
			})
		}
		page.AddCharts(NewBarChart("Cards", toPoints(counts), r.config(m.title, m.xAxis, false)))
	}

	archetypes := lo.Keys(summary[analytics.MetricArchetypeDistribution])
	sort.Strings(archetypes)

	if len(archetypes) > 0 {
		series := lo.Map(archetypes, func(code string, _ int) SeriesData {
			return SeriesData{Name: r.name(code), Points: toPoints(summary.ByManaValue(analytics.ManaCurveMetric(code)))}
		})
		// Labels must start from the batch-wide curve so the X axis stays ordered.
		series = append([]SeriesData{{Name: "All Decks", Points: toPoints(summary.ByManaValue(analytics.MetricManaCurve))}}, series...)
		line, err := NewLineChart(series, r.config("Mana Curves by Archetype", "Mana Value", false))
		if err != nil {
			return nil, err
		}
		page.AddCharts(line)
	}

	for _, code := range archetypes {
		counts := summary.Sorted(analytics.TopCardsMetric(code))
		if len(counts) == 0 {
			continue
		}
		page.AddCharts(NewBarChart("Decks", toPoints(counts),
			r.config(fmt.Sprintf("Top Cards - %s", r.name(code)), "", true)))
	}

	return page, nil
}

// Render writes the report for a summary to outputPath.
func (r *Report) Render(summary analytics.Summary, outputPath string) error {
	page, err := r.Page(summary)
	if err != nil {
		return err
	}
	return RenderToFile(page.Render, outputPath)
}

func (r *Report) config(title, xAxis string, horizontal bool) ChartConfig {
	c := r.Config
	c.Title = title
	c.Subtitle = strings.ToUpper(r.SetCode)
	c.XAxisLabel = xAxis
	c.YAxisLabel = "Count"
	c.Horizontal = horizontal
	if horizontal {
		c.XAxisLabel, c.YAxisLabel = "Count", xAxis
		c.Height = "700px"
	}
	return c
}

func (r *Report) name(code string) string {
	if r.Names == nil {
		return code
	}
	return r.Names(code)
}

func toPoints(counts []analytics.Count) []DataPoint {
	return lo.Map(counts, func(c analytics.Count, _ int) DataPoint {
		return DataPoint{Label: c.Label, Value: float64(c.Count)}
	})
}
