package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/halewood/loansim/internal/tui/tuistyles"
)

// DataSeries represents a single line in a chart.
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart displays monthly time series as a step chart: each value is
// held until the next point, matching the monthly resolution of the
// simulation history.
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels, one per point
	Width      int
	Height     int
	ShowLegend bool
	YAxisLabel string
	XAxisLabel string
}

// NewASCIIChart creates a new ASCII chart.
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     15,
		ShowLegend: true,
	}
}

// AddSeries adds a data series to the chart.
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels.
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions.
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithAxisLabels sets axis labels.
func (c *ASCIIChart) WithAxisLabels(xLabel, yLabel string) *ASCIIChart {
	c.XAxisLabel = xLabel
	c.YAxisLabel = yLabel
	return c
}

// Render returns the styled chart, or an informational message when no
// series carry data.
func (c *ASCIIChart) Render() string {
	if !c.hasData() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder

	if c.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(c.Title))
		content.WriteString("\n")
	}

	minVal, maxVal := c.valueRange()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Render(c.XAxisLabel))
	}

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

func (c *ASCIIChart) hasData() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// valueRange finds the global min/max across all series, padded by 5% so
// extremes do not sit on the chart border.
func (c *ASCIIChart) valueRange() (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)

	for _, series := range c.Series {
		for _, p := range series.Points {
			minVal = math.Min(minVal, p)
			maxVal = math.Max(maxVal, p)
		}
	}

	padding := (maxVal - minVal) * 0.05
	if padding == 0 {
		padding = 1
	}
	return minVal - padding, maxVal + padding
}

// sampleAt returns the series value held at column x of plotWidth: the value
// of the latest point whose position is at or before the column.
func sampleAt(points []float64, x, plotWidth int) float64 {
	idx := x * len(points) / plotWidth
	if idx >= len(points) {
		idx = len(points) - 1
	}
	return points[idx]
}

func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	yAxisWidth := 10
	plotWidth := c.Width - yAxisWidth - 3
	if plotWidth < 10 {
		plotWidth = 10
	}

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = make([]rune, plotWidth)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	// Step rendering: every column holds the most recent monthly value, so
	// flat stretches show as horizontal runs rather than sparse points.
	for seriesIdx, series := range c.Series {
		if len(series.Points) == 0 {
			continue
		}
		ch := seriesChar(seriesIdx)
		for x := 0; x < plotWidth; x++ {
			value := sampleAt(series.Points, x, plotWidth)
			y := c.Height - 1 - int((value-minVal)/(maxVal-minVal)*float64(c.Height-1))
			if y >= 0 && y < c.Height && grid[y][x] == ' ' {
				grid[y][x] = ch
			}
		}
	}

	axisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(yAxisWidth).
		Align(lipgloss.Right)

	var out strings.Builder
	span := maxVal - minVal
	for i, row := range grid {
		yValue := maxVal - (float64(i)/float64(c.Height-1))*span
		out.WriteString(axisStyle.Render(formatChartValue(yValue)))
		out.WriteString(" │ ")
		out.WriteString(string(row))
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", plotWidth+1))
	out.WriteString("\n")

	if len(c.Labels) > 0 {
		out.WriteString(c.renderXAxisLabels(yAxisWidth, plotWidth))
	}

	return out.String()
}

// renderXAxisLabels places up to four labels under the plot, sampled the
// same way as the data columns so they line up with the steps above.
func (c *ASCIIChart) renderXAxisLabels(yAxisWidth, plotWidth int) string {
	maxLabels := 4
	spacing := plotWidth / maxLabels

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	var out strings.Builder
	out.WriteString(strings.Repeat(" ", yAxisWidth+3))
	for i := 0; i < maxLabels; i++ {
		x := i * spacing
		idx := x * len(c.Labels) / plotWidth
		if idx >= len(c.Labels) {
			idx = len(c.Labels) - 1
		}
		label := c.Labels[idx]
		out.WriteString(labelStyle.Render(label))
		if pad := spacing - len(label); pad > 0 && i < maxLabels-1 {
			out.WriteString(strings.Repeat(" ", pad))
		}
	}
	return out.String()
}

func (c *ASCIIChart) renderLegend() string {
	var parts []string
	for i, series := range c.Series {
		marker := lipgloss.NewStyle().Foreground(series.Color).Render(string(seriesChar(i)))
		parts = append(parts, fmt.Sprintf("%s %s", marker, series.Name))
	}
	return tuistyles.SubtitleStyle.Render(strings.Join(parts, "   "))
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// formatChartValue compacts large monetary values for the Y axis.
func formatChartValue(v float64) string {
	switch {
	case math.Abs(v) >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case math.Abs(v) >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
