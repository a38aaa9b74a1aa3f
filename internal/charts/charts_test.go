package charts

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft/analytics"
)

func testSummary() analytics.Summary {
	return analytics.Summary{
		analytics.MetricMostCommonCards:       {"Shock": 4, "Opt": 2},
		analytics.MetricColorDistribution:     {"R": 5, "U": 3},
		analytics.MetricTypeDistribution:      {"Instant": 6, "Creature": 2},
		analytics.MetricManaCurve:             {"1": 6, "2": 1, "10": 1},
		analytics.MetricRarityDistribution:    {"common": 8},
		analytics.MetricArchetypeDistribution: {"UR": 1, "MONO_R": 1},
		analytics.ManaCurveMetric("UR"):       {"1": 3, "10": 1},
		analytics.ManaCurveMetric("MONO_R"):   {"1": 3, "2": 1},
		analytics.TopCardsMetric("UR"):        {"Shock": 2, "Opt": 2},
		analytics.TopCardsMetric("MONO_R"):    {"Shock": 2},
	}
}

func TestNewLineChart_AlignsSeries(t *testing.T) {
	line, err := NewLineChart([]SeriesData{
		{Name: "a", Points: []DataPoint{{"1", 1}, {"2", 2}}},
		{Name: "b", Points: []DataPoint{{"2", 5}, {"3", 7}}},
	}, DefaultChartConfig())
	require.NoError(t, err)
	require.Len(t, line.MultiSeries, 2)

	assert.Equal(t, []string{"1", "2", "3"}, line.XAxisList[0].Data)

	values, ok := line.MultiSeries[1].Data.([]opts.LineData)
	require.True(t, ok)
	assert.Equal(t, []any{0.0, 5.0, 7.0}, []any{values[0].Value, values[1].Value, values[2].Value})
}

func TestNewLineChart_NoSeries(t *testing.T) {
	_, err := NewLineChart(nil, DefaultChartConfig())
	assert.Error(t, err)
}

func TestReport_Render(t *testing.T) {
	report := NewReport("tdm")
	report.Names = func(code string) string {
		if code == "UR" {
			return "Izzet (Blue-Red)"
		}
		return code
	}

	path := filepath.Join(t.TempDir(), "out", "draft_report_tdm.html")
	require.NoError(t, report.Render(testSummary(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(content)

	assert.Contains(t, html, "Draft Simulation Report - TDM")
	for _, title := range []string{
		"Mana Curve", "Top 2 Most Common Cards", "Color Distribution", "Card Type Distribution",
		"Rarity Distribution", "Archetype Distribution", "Mana Curves by Archetype", "Top Cards - Izzet (Blue-Red)",
	} {
		assert.Contains(t, html, title)
	}
}

func TestReport_PageChartCount(t *testing.T) {
	page, err := NewReport("tdm").Page(testSummary())
	require.NoError(t, err)
	// curve, top cards, four distributions, combined curves, two per-archetype top cards
	assert.Len(t, page.Charts, 9)
}

func TestReport_SingleArchetype(t *testing.T) {
	summary := testSummary()
	delete(summary, analytics.MetricArchetypeDistribution)

	page, err := NewReport("tdm").Page(summary)
	require.NoError(t, err)
	assert.Len(t, page.Charts, 5)
}

func TestReport_EmptySummary(t *testing.T) {
	_, err := NewReport("tdm").Page(analytics.Summary{})
	assert.Error(t, err)
}

func TestReport_ConfigHorizontalSwapsAxes(t *testing.T) {
	c := NewReport("fdn").config("Top", "Card", true)
	assert.Equal(t, "Count", c.XAxisLabel)
	assert.Equal(t, "Card", c.YAxisLabel)
	assert.True(t, strings.EqualFold(c.Subtitle, "FDN"))
}

func TestRenderToFile(t *testing.T) {
	dir := t.TempDir()

	bar := NewBarChart("Colors", []DataPoint{{"R", 5}, {"U", 3}}, DefaultChartConfig())
	barPath := filepath.Join(dir, "nested", "bar.html")
	require.NoError(t, RenderToFile(func(w io.Writer) error { return bar.Render(w) }, barPath))
	content, err := os.ReadFile(barPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<html")

	page, err := NewReport("tdm").Page(testSummary())
	require.NoError(t, err)
	pagePath := filepath.Join(dir, "page.html")
	require.NoError(t, RenderToFile(page.Render, pagePath))
	assert.FileExists(t, pagePath)

	errRender := errors.New("boom")
	err = RenderToFile(func(io.Writer) error { return errRender }, filepath.Join(dir, "fail.html"))
	assert.ErrorIs(t, err, errRender)
}
