package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tradebook/internal/dashboard"
)

var at = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func TestMarkdown(t *testing.T) {
	var host dashboard.ChartHost
	view := dashboard.View{
		Loaded: true,
		Summary: dashboard.Summary{
			TotalTransactions: "4",
			TotalInvestment:   "₹1,000.00",
			TotalReturns:      "₹880.00",
			NetProfitLoss:     "₹120.00",
			NetTrend:          dashboard.Down,
			ActiveStocks:      "2",
		},
		Metrics: &dashboard.MetricsView{AvgProfitLoss: "1.30%", TotalShares: "30", ProfitablePositions: "2"},
		Chart: host.Render([]dashboard.Holding{
			{Stock: "RELIANCE", Shares: 5},
			{Stock: "TCS", Shares: 25},
		}),
	}

	md := Markdown(view, at)

	assert.Contains(t, md, "# Portfolio Summary on 2024-05-01 09:30")
	assert.Contains(t, md, "| Net Profit/Loss | ▼ -₹120.00 |")
	assert.Contains(t, md, "- Shares held: **30**")
	assert.Contains(t, md, "| RELIANCE | 5 | 16.7% |")
	assert.Contains(t, md, "| TCS | 25 | 83.3% |")
}

func TestMarkdown_NoHoldings(t *testing.T) {
	md := Markdown(dashboard.View{Loaded: true, NoHoldings: true}, at)
	assert.Contains(t, md, "_No active holdings_")
	assert.NotContains(t, md, "## Positions")
}

func TestMarkdown_EscapesPipes(t *testing.T) {
	var host dashboard.ChartHost
	md := Markdown(dashboard.View{Chart: host.Render([]dashboard.Holding{{Stock: "A|B", Shares: 1}})}, at)
	assert.Contains(t, md, `| A\|B | 1 | 100.0% |`)
}

func TestRender(t *testing.T) {
	out, err := Render("# Title\n\nbody text\n", 0)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body text")
}
