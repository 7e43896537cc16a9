package dashboard

import (
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/tradebook/internal/domain"
	"github.com/aristath/tradebook/internal/format"
)

// Metrics are derived client-side from the full transaction list.
type Metrics struct {
	// AvgProfitLoss is the mean profit/loss percentage over transactions whose
	// percentage is non-zero. Zero percentages mean "untracked" and are skipped.
	AvgProfitLoss       float64
	TotalShares         int
	ProfitablePositions int
}

// ComputeMetrics derives Metrics. An empty or all-zero set has a mean of 0.
func ComputeMetrics(txs []domain.Transaction) Metrics {
	var m Metrics
	tracked := make([]float64, 0, len(txs))
	for _, t := range txs {
		m.TotalShares += t.RemainingQuantity
		if t.ProfitLossPercentage != 0 {
			tracked = append(tracked, t.ProfitLossPercentage)
			if t.ProfitLossPercentage > 0 {
				m.ProfitablePositions++
			}
		}
	}
	if len(tracked) > 0 {
		m.AvgProfitLoss = stat.Mean(tracked, nil)
	}
	return m
}

// MetricsView is Metrics formatted for display.
type MetricsView struct {
	AvgProfitLoss       string
	TotalShares         string
	ProfitablePositions string
}

func (m Metrics) View() MetricsView {
	return MetricsView{
		AvgProfitLoss:       format.Percent(m.AvgProfitLoss),
		TotalShares:         format.Integer(m.TotalShares),
		ProfitablePositions: format.Integer(m.ProfitablePositions),
	}
}
