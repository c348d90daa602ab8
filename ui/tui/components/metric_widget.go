package components

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hwmonitor/ui/tui/styles"
)

// WidgetSamples is how many polls a chart shows.
const WidgetSamples = 31

// MetricWidget charts one metric over the last WidgetSamples polls.
type MetricWidget struct {
	Title   string
	Unit    string
	Chart   linechart.Model
	History []float64
	Width   int
	Height  int
}

var _ Component = (*MetricWidget)(nil)

// NewMetricWidget builds a chart with a fixed Y range of [0, maxY].
func NewMetricWidget(title, unit string, width, height int, maxY float64) *MetricWidget {
	// width, height, minX, maxX, minY, maxY
	lc := linechart.New(width, height, 0, WidgetSamples-1, 0, maxY)
	return &MetricWidget{
		Title:   title,
		Unit:    unit,
		Chart:   lc,
		History: make([]float64, 0, WidgetSamples),
		Width:   width,
		Height:  height,
	}
}

func (c *MetricWidget) Init() tea.Cmd {
	return nil
}

func (c *MetricWidget) Push(value float64) {
	c.History = append(c.History, value)
	if len(c.History) > WidgetSamples {
		c.History = c.History[1:]
	}
}

// Reset drops the plotted history.
func (c *MetricWidget) Reset() {
	c.History = c.History[:0]
}

// Last returns the newest sample, 0 when empty.
func (c *MetricWidget) Last() float64 {
	if len(c.History) == 0 {
		return 0
	}
	return c.History[len(c.History)-1]
}

func (c *MetricWidget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return c, nil
}

func (c *MetricWidget) Resize(w, h int) {
	if w < 10 || h < 3 {
		return
	}
	c.Width = w
	c.Height = h
	c.Chart.Resize(w, h)
}

func (c *MetricWidget) View() string {
	c.Chart.Clear()
	for i := 0; i < len(c.History)-1; i++ {
		c.Chart.DrawBrailleLine(
			canvas.Float64Point{X: float64(i), Y: c.History[i]},
			canvas.Float64Point{X: float64(i + 1), Y: c.History[i+1]},
		)
	}
	c.Chart.DrawXYAxisAndLabel()

	title := fmt.Sprintf("%s  %.1f%s", c.Title, c.Last(), c.Unit)
	return styles.CardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render(title),
			c.Chart.View(),
		),
	)
}
