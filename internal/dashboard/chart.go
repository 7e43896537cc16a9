package dashboard

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// Palette is cycled by stock index.
var Palette = []string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#FF6384", "#C9CBCF", "#4BC0C0", "#FF6384",
}

// ColorFor returns the palette color for the i-th stock.
func ColorFor(i int) string {
	return Palette[i%len(Palette)]
}

// NoHoldingsText replaces the chart when nothing is held.
const NoHoldingsText = "No active holdings"

// Segment is one slice of the holdings chart.
type Segment struct {
	Label  string
	Shares int
	Color  string
}

// Chart is a rendered holdings proportion chart. It is owned by a ChartHost
// and must be destroyed before another one is created.
type Chart struct {
	Segments  []Segment
	total     float64
	destroyed bool
}

func newChart(holdings []Holding) *Chart {
	c := &Chart{Segments: make([]Segment, len(holdings))}
	shares := make([]float64, len(holdings))
	for i, h := range holdings {
		c.Segments[i] = Segment{Label: h.Stock, Shares: h.Shares, Color: ColorFor(i)}
		shares[i] = float64(h.Shares)
	}
	c.total = floats.Sum(shares)
	return c
}

// Total is the sum of visible shares.
func (c *Chart) Total() int { return int(c.total) }

// Fraction is segment i's share of the visible total, in [0, 1].
func (c *Chart) Fraction(i int) float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.Segments[i].Shares) / c.total
}

// Percent is segment i's percentage with one decimal place.
func (c *Chart) Percent(i int) string {
	return strconv.FormatFloat(c.Fraction(i)*100, 'f', 1, 64)
}

// Legend returns one "<label> (<n> shares - <p>%)" entry per segment.
func (c *Chart) Legend() []string {
	out := make([]string, len(c.Segments))
	for i, s := range c.Segments {
		out[i] = fmt.Sprintf("%s (%d shares - %s%%)", s.Label, s.Shares, c.Percent(i))
	}
	return out
}

// Tooltip is the hover text for segment i.
func (c *Chart) Tooltip(i int) string {
	s := c.Segments[i]
	return fmt.Sprintf("%s: %d shares (%s%%)", s.Label, s.Shares, c.Percent(i))
}

func (c *Chart) Destroy()        { c.destroyed = true }
func (c *Chart) Destroyed() bool { return c.destroyed }

// ChartHost owns at most one live chart.
type ChartHost struct {
	current   *Chart
	created   int
	destroyed int
}

// Render tears down the current chart and builds a new one from holdings.
// It returns nil when there are no holdings; the caller shows NoHoldingsText.
func (h *ChartHost) Render(holdings []Holding) *Chart {
	if h.current != nil {
		h.current.Destroy()
		h.destroyed++
		h.current = nil
	}
	if len(holdings) == 0 {
		return nil
	}
	h.current = newChart(holdings)
	h.created++
	return h.current
}

// Current is the live chart, or nil.
func (h *ChartHost) Current() *Chart { return h.current }

// Live counts charts created and not yet destroyed.
func (h *ChartHost) Live() int { return h.created - h.destroyed }

// Teardown destroys the live chart, if any.
func (h *ChartHost) Teardown() {
	h.Render(nil)
}
