package testing

import (
	"time"

	"github.com/aristath/tradebook/internal/domain"
)

func mustDate(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewTransactionFixtures returns the sample portfolio used across tests:
// a partially sold position, an open position, a fully sold position at a
// profit and a fully sold position at a loss.
func NewTransactionFixtures() []domain.TransactionInput {
	return []domain.TransactionInput{
		{
			StockName:         "RELIANCE",
			BuyQuantity:       10,
			BuyPricePerStock:  2500.50,
			BuyDate:           mustDate("2024-01-15"),
			SellQuantity:      5,
			SellPricePerStock: 2650.75,
			SellDate:          mustDate("2024-02-20"),
		},
		{
			StockName:        "TCS",
			BuyQuantity:      25,
			BuyPricePerStock: 3200.00,
			BuyDate:          mustDate("2024-01-10"),
		},
		{
			StockName:         "HDFC",
			BuyQuantity:       15,
			BuyPricePerStock:  1650.25,
			BuyDate:           mustDate("2024-01-20"),
			SellQuantity:      15,
			SellPricePerStock: 1725.50,
			SellDate:          mustDate("2024-03-15"),
		},
		{
			StockName:         "INFY",
			BuyQuantity:       20,
			BuyPricePerStock:  1500,
			BuyDate:           mustDate("2024-02-01"),
			SellQuantity:      20,
			SellPricePerStock: 1400,
			SellDate:          mustDate("2024-04-01"),
		},
	}
}

// Build derives the backend-computed fields the way the backend does.
func Build(id domain.ID, in domain.TransactionInput) domain.Transaction {
	t := domain.Transaction{
		ID:                id,
		StockName:         in.StockName,
		BuyQuantity:       in.BuyQuantity,
		BuyPricePerStock:  in.BuyPricePerStock,
		BuyDate:           in.BuyDate,
		SellQuantity:      in.SellQuantity,
		SellPricePerStock: in.SellPricePerStock,
		SellDate:          in.SellDate,
	}
	t.TotalCost = float64(in.BuyQuantity) * in.BuyPricePerStock
	if in.SellQuantity > 0 && in.SellPricePerStock > 0 {
		t.TotalSellingCost = float64(in.SellQuantity) * in.SellPricePerStock
	}
	t.RemainingQuantity = in.BuyQuantity - in.SellQuantity
	if t.TotalSellingCost > 0 && t.TotalCost > 0 {
		proportional := t.TotalCost * float64(in.SellQuantity) / float64(in.BuyQuantity)
		t.ProfitLossPercentage = (t.TotalSellingCost - proportional) / proportional * 100
	}
	now := time.Now().UTC()
	t.CreatedAt = &now
	t.UpdatedAt = &now
	return t
}
