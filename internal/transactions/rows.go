package transactions

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aristath/tradebook/internal/domain"
	"github.com/aristath/tradebook/internal/format"
)

// Tone is the color class of a cell.
type Tone int

const (
	Neutral Tone = iota
	Accent       // open position
	Positive     // shares still held
	Profit
	Loss
)

// Badge is a colored cell.
type Badge struct {
	Text string
	Tone Tone
}

// Row is one transaction with every display column derived.
type Row struct {
	Transaction domain.Transaction

	Stock        string
	BuyQuantity  string
	BuyPrice     string
	TotalCost    string
	BuyDate      string
	SellQuantity string
	SellPrice    string
	SellingCost  string
	SellDate     string
	DaysHeld     Badge
	Remaining    Badge
	ProfitLoss   Badge

	days int
}

// NewRow derives the display columns of t as of now.
func NewRow(t domain.Transaction, f format.Formatter, now time.Time) Row {
	r := Row{
		Transaction:  t,
		Stock:        t.StockName,
		BuyQuantity:  strconv.Itoa(t.BuyQuantity),
		BuyPrice:     f.Currency(t.BuyPricePerStock),
		TotalCost:    f.Currency(t.TotalCost),
		BuyDate:      f.Date(t.BuyDate),
		SellQuantity: strconv.Itoa(t.SellQuantity),
		SellPrice:    f.CurrencyOrDash(t.SellPricePerStock),
		SellingCost:  f.CurrencyOrDash(t.TotalSellingCost),
		SellDate:     f.Date(t.SellDate),
	}

	r.days, r.DaysHeld = daysHeld(t, now)

	r.Remaining = Badge{Text: strconv.Itoa(t.RemainingQuantity), Tone: Neutral}
	if t.RemainingQuantity > 0 {
		r.Remaining.Tone = Positive
	}

	r.ProfitLoss = profitLoss(t.ProfitLossPercentage)
	return r
}

// daysHeld counts days from buy to sell, or to now for open positions.
func daysHeld(t domain.Transaction, now time.Time) (int, Badge) {
	if t.BuyDate.IsZero() {
		return 0, Badge{Text: "0 days", Tone: Neutral}
	}
	end, tone := now, Accent
	if t.Sold() {
		end, tone = t.SellDate.Time, Neutral
	}
	days := format.DaysBetween(t.BuyDate.Time, end)
	return days, Badge{Text: fmt.Sprintf("%d days", days), Tone: tone}
}

// Direction icons for the profit/loss column.
const (
	IconUp   = "▲"
	IconDown = "▼"
	IconFlat = "–"
)

func profitLoss(pct float64) Badge {
	switch {
	case pct > 0:
		return Badge{Text: IconUp + " " + format.Percent(pct), Tone: Profit}
	case pct < 0:
		return Badge{Text: IconDown + " " + format.Percent(pct), Tone: Loss}
	}
	return Badge{Text: IconFlat + " " + format.Percent(pct), Tone: Neutral}
}
