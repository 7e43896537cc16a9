package dashboard

import (
	"math"

	"github.com/aristath/tradebook/internal/domain"
	"github.com/aristath/tradebook/internal/format"
)

// Trend is the visual treatment of a signed amount.
type Trend int

const (
	Flat Trend = iota
	Up
	Down
)

// Summary is the five summary cards, formatted.
type Summary struct {
	TotalTransactions string
	TotalInvestment   string
	TotalReturns      string
	NetProfitLoss     string
	NetTrend          Trend
	ActiveStocks      string
}

// NewSummary formats stats. A gain shows an explicit "+"; a loss shows only
// its magnitude and relies on the Down trend for its sign.
func NewSummary(s domain.DashboardStats, f format.Formatter) Summary {
	sum := Summary{
		TotalTransactions: format.Integer(s.TotalTransactions),
		TotalInvestment:   f.Currency(s.TotalInvestment),
		TotalReturns:      f.Currency(s.TotalReturns),
		NetProfitLoss:     f.Currency(math.Abs(s.NetProfitLoss)),
		ActiveStocks:      format.Integer(s.ActiveStocks),
	}
	switch {
	case s.NetProfitLoss > 0:
		sum.NetTrend = Up
		sum.NetProfitLoss = "+" + sum.NetProfitLoss
	case s.NetProfitLoss < 0:
		sum.NetTrend = Down
	}
	return sum
}
