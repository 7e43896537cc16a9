// Package domain provides the backend's data shapes as the client sees them.
package domain

import (
	"errors"
	"time"
)

// ErrValidation marks client-side validation failures. These never reach the network.
var ErrValidation = errors.New("validation failed")

// Transaction is a single buy (and optional partial or full sell) of one stock.
// Derived fields are computed by the backend and are read-only here.
type Transaction struct {
	ID                ID      `json:"id"`
	StockName         string  `json:"stock_name"`
	BuyQuantity       int     `json:"buy_quantity"`
	BuyPricePerStock  float64 `json:"buy_price_per_stock"`
	BuyDate           Date    `json:"buy_date"`
	SellQuantity      int     `json:"sell_quantity"`
	SellPricePerStock float64 `json:"sell_price_per_stock"`
	SellDate          Date    `json:"sell_date"`

	TotalCost            float64 `json:"total_cost"`
	TotalSellingCost     float64 `json:"total_selling_cost"`
	RemainingQuantity    int     `json:"remaining_quantity"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Sold reports whether the transaction has a sell date.
func (t Transaction) Sold() bool {
	return !t.SellDate.IsZero()
}

// TransactionInput is the create/update payload. A zero SellDate encodes as null,
// which the backend reads as an open position.
type TransactionInput struct {
	StockName         string  `json:"stock_name"`
	BuyQuantity       int     `json:"buy_quantity"`
	BuyPricePerStock  float64 `json:"buy_price_per_stock"`
	BuyDate           Date    `json:"buy_date"`
	SellQuantity      int     `json:"sell_quantity"`
	SellPricePerStock float64 `json:"sell_price_per_stock"`
	SellDate          Date    `json:"sell_date"`
}

// TransactionList is the list endpoint envelope.
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Pages        int           `json:"pages"`
	CurrentPage  int           `json:"current_page"`
}

// DashboardStats is the backend-computed aggregate.
type DashboardStats struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalInvestment   float64 `json:"total_investment"`
	TotalReturns      float64 `json:"total_returns"`
	NetProfitLoss     float64 `json:"net_profit_loss"`
	ActiveStocks      int     `json:"active_stocks"`
}

// ImportResult is the bulk import response. Errors lists rejected rows; the
// remaining rows were inserted.
type ImportResult struct {
	Message           string   `json:"message"`
	Errors            []string `json:"errors,omitempty"`
	Warning           string   `json:"warning,omitempty"`
	SuccessfulImports int      `json:"successful_imports,omitempty"`
	TotalRows         int      `json:"total_rows,omitempty"`
}

// Partial reports whether some rows were rejected.
func (r ImportResult) Partial() bool {
	return len(r.Errors) > 0
}
