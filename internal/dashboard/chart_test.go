package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tradebook/internal/domain"
)

func TestGroupHoldings(t *testing.T) {
	holdings := GroupHoldings([]domain.Transaction{
		tx("TCS", 10, 0),
		tx("HDFC", 0, 5),
		tx("RELIANCE", 5, 0),
		tx("TCS", 15, 0),
		tx("INFY", -2, 0),
	})

	assert.Equal(t, []Holding{
		{Stock: "TCS", Shares: 25},
		{Stock: "RELIANCE", Shares: 5},
	}, holdings)
}

func TestGroupHoldings_NothingHeld(t *testing.T) {
	assert.Empty(t, GroupHoldings([]domain.Transaction{tx("A", 0, 0), tx("B", -1, 0)}))
	assert.Empty(t, GroupHoldings(nil))
}

func TestColorFor_CyclesPalette(t *testing.T) {
	for i := 0; i < 3*len(Palette); i++ {
		assert.Equal(t, Palette[i%len(Palette)], ColorFor(i))
	}
	assert.Equal(t, "#FF6384", ColorFor(10))
	assert.Equal(t, "#36A2EB", ColorFor(11))
}

func TestChart_LegendAndTooltip(t *testing.T) {
	var host ChartHost
	chart := host.Render([]Holding{{"TCS", 25}, {"RELIANCE", 5}, {"ITC", 3}})
	require.NotNil(t, chart)

	assert.Equal(t, 33, chart.Total())
	assert.Equal(t, []string{
		"TCS (25 shares - 75.8%)",
		"RELIANCE (5 shares - 15.2%)",
		"ITC (3 shares - 9.1%)",
	}, chart.Legend())
	assert.Equal(t, "RELIANCE: 5 shares (15.2%)", chart.Tooltip(1))
	assert.Equal(t, "#FFCE56", chart.Segments[2].Color)
}

func TestChartHost_EmptyRendersPlaceholder(t *testing.T) {
	var host ChartHost
	assert.Nil(t, host.Render(nil))
	assert.Equal(t, 0, host.Live())
}

func TestChartHost_DestroysPreviousBeforeCreating(t *testing.T) {
	var host ChartHost

	first := host.Render([]Holding{{"TCS", 1}})
	second := host.Render([]Holding{{"TCS", 2}})

	assert.True(t, first.Destroyed())
	assert.False(t, second.Destroyed())
	assert.Same(t, second, host.Current())
	assert.Equal(t, 1, host.Live())

	// going empty tears the last chart down too
	assert.Nil(t, host.Render(nil))
	assert.True(t, second.Destroyed())
	assert.Equal(t, 0, host.Live())
}
