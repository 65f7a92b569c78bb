package console

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const chartHeight = "320px"

// StatusChart renders the bookings-by-status breakdown as a server-side
// ECharts pie, memoized through a RenderCache.
type StatusChart struct {
	cache RenderCache
	theme string
}

// StatusChartOption customizes chart rendering.
type StatusChartOption func(*StatusChart)

// WithStatusChartCache injects a render cache.
func WithStatusChartCache(cache RenderCache) StatusChartOption {
	return func(c *StatusChart) {
		c.cache = cache
	}
}

// WithStatusChartTheme overrides the chart theme.
func WithStatusChartTheme(theme string) StatusChartOption {
	return func(c *StatusChart) {
		c.theme = theme
	}
}

// NewStatusChart builds a chart renderer.
func NewStatusChart(options ...StatusChartOption) *StatusChart {
	chart := &StatusChart{
		cache: NewChartCache(5 * time.Minute),
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(chart)
	}
	return chart
}

// Render produces the chart HTML for the given per-status counts. Counts are
// rendered in statuses order so the legend is stable.
func (c *StatusChart) Render(statuses []string, counts map[string]int) (string, error) {
	render := func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Bookings by Status"}),
			charts.WithInitializationOpts(opts.Initialization{
				Theme:  c.theme,
				Width:  "100%",
				Height: chartHeight,
			}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		)
		data := make([]opts.PieData, 0, len(statuses))
		for _, status := range statuses {
			data = append(data, opts.PieData{Name: status, Value: counts[status]})
		}
		pie.AddSeries("bookings", data)
		return renderChart(pie)
	}
	if c.cache == nil {
		return render()
	}
	return c.cache.GetOrRender(chartKey(statuses, counts), render)
}

func chartKey(statuses []string, counts map[string]int) string {
	var buf bytes.Buffer
	buf.WriteString("status-chart")
	for _, status := range statuses {
		fmt.Fprintf(&buf, ":%s=%d", status, counts[status])
	}
	return buf.String()
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
