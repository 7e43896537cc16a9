// Package report renders the dashboard as a markdown document for the terminal.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/aristath/tradebook/internal/dashboard"
)

// DefaultWidth is the word wrap used when the terminal width is unknown.
const DefaultWidth = 80

// Markdown builds the summary report for view.
func Markdown(view dashboard.View, at time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Summary on %s\n\n", at.Format("2006-01-02 15:04"))

	s := view.Summary
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total Transactions | %s |\n", s.TotalTransactions)
	fmt.Fprintf(&b, "| Total Investment | %s |\n", s.TotalInvestment)
	fmt.Fprintf(&b, "| Total Returns | %s |\n", s.TotalReturns)
	fmt.Fprintf(&b, "| Net Profit/Loss | %s |\n", netText(s))
	fmt.Fprintf(&b, "| Active Stocks | %s |\n", s.ActiveStocks)

	if m := view.Metrics; m != nil {
		b.WriteString("\n## Positions\n\n")
		fmt.Fprintf(&b, "- Average P/L: **%s**\n", m.AvgProfitLoss)
		fmt.Fprintf(&b, "- Shares held: **%s**\n", m.TotalShares)
		fmt.Fprintf(&b, "- Profitable positions: **%s**\n", m.ProfitablePositions)
	}

	b.WriteString("\n## Holdings\n\n")
	switch {
	case view.Chart != nil:
		b.WriteString("| Stock | Shares | Share |\n|---|--:|--:|\n")
		for i, seg := range view.Chart.Segments {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", escape(seg.Label), seg.Shares, view.Chart.Percent(i)+"%")
		}
	case view.NoHoldings:
		fmt.Fprintf(&b, "_%s_\n", dashboard.NoHoldingsText)
	default:
		b.WriteString("_Holdings unavailable_\n")
	}

	return b.String()
}

func netText(s dashboard.Summary) string {
	switch s.NetTrend {
	case dashboard.Up:
		return "▲ " + s.NetProfitLoss
	case dashboard.Down:
		return "▼ -" + s.NetProfitLoss
	}
	return s.NetProfitLoss
}

// escape keeps stock names from breaking table cells.
func escape(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

// Render styles md for a terminal of the given width.
func Render(md string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
