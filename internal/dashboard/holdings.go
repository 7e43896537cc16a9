package dashboard

import "github.com/aristath/tradebook/internal/domain"

// Holding is the number of shares still held for one stock.
type Holding struct {
	Stock  string
	Shares int
}

// GroupHoldings sums remaining quantity per stock name. Transactions with no
// remaining shares are left out. Stocks keep the order of their first
// appearance so colors stay stable across refreshes.
func GroupHoldings(txs []domain.Transaction) []Holding {
	index := make(map[string]int)
	var out []Holding
	for _, t := range txs {
		if t.RemainingQuantity <= 0 {
			continue
		}
		if i, ok := index[t.StockName]; ok {
			out[i].Shares += t.RemainingQuantity
			continue
		}
		index[t.StockName] = len(out)
		out = append(out, Holding{Stock: t.StockName, Shares: t.RemainingQuantity})
	}
	return out
}
