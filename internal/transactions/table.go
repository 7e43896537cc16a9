package transactions

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/aristath/tradebook/internal/domain"
	"github.com/aristath/tradebook/internal/format"
)

// Column identifies a sortable table column.
type Column int

const (
	ColStock Column = iota
	ColBuyQuantity
	ColBuyPrice
	ColTotalCost
	ColBuyDate
	ColSellQuantity
	ColSellPrice
	ColSellingCost
	ColSellDate
	ColDaysHeld
	ColRemaining
	ColProfitLoss
	columnCount
)

// Titles are the column headers, indexed by Column.
var Titles = [columnCount]string{
	"Stock", "Buy Qty", "Buy Price", "Total Cost", "Buy Date",
	"Sell Qty", "Sell Price", "Selling Cost", "Sell Date",
	"Days Held", "Remaining", "P/L %",
}

func (c Column) String() string {
	if c < 0 || c >= columnCount {
		return "?"
	}
	return Titles[c]
}

// Table holds the fetched rows and the client-side sort, filter and paging.
// The backend is asked for every row once; everything else happens here.
type Table struct {
	rows     []Row
	view     []Row
	sortCol  Column
	desc     bool
	filter   string
	page     int
	pageSize int
}

// NewTable creates a table sorted by buy date, newest first.
func NewTable(pageSize int) *Table {
	if pageSize <= 0 {
		pageSize = 25
	}
	return &Table{sortCol: ColBuyDate, desc: true, pageSize: pageSize}
}

// SetTransactions replaces the rows, keeping sort, filter and page.
func (t *Table) SetTransactions(txs []domain.Transaction, f format.Formatter, now time.Time) {
	t.rows = make([]Row, len(txs))
	for i, tx := range txs {
		t.rows[i] = NewRow(tx, f, now)
	}
	t.apply()
}

// SortBy sorts on col. Choosing the current column flips the direction; a
// new column starts ascending.
func (t *Table) SortBy(col Column) {
	if col < 0 || col >= columnCount {
		return
	}
	if col == t.sortCol {
		t.desc = !t.desc
	} else {
		t.sortCol, t.desc = col, false
	}
	t.apply()
}

// Sort reports the current sort column and direction.
func (t *Table) Sort() (Column, bool) { return t.sortCol, t.desc }

// SetFilter keeps only rows whose stock name contains s, ignoring case.
func (t *Table) SetFilter(s string) {
	t.filter = strings.TrimSpace(s)
	t.page = 0
	t.apply()
}

func (t *Table) Filter() string { return t.filter }

func (t *Table) apply() {
	needle := strings.ToLower(t.filter)
	t.view = make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		if needle == "" || strings.Contains(strings.ToLower(r.Stock), needle) {
			t.view = append(t.view, r)
		}
	}
	slices.SortStableFunc(t.view, func(a, b Row) int {
		c := compare(t.sortCol, a, b)
		if t.desc {
			return -c
		}
		return c
	})
	if last := t.Pages() - 1; t.page > last {
		t.page = last
	}
}

func compare(col Column, a, b Row) int {
	x, y := a.Transaction, b.Transaction
	switch col {
	case ColStock:
		return strings.Compare(x.StockName, y.StockName)
	case ColBuyQuantity:
		return cmp.Compare(x.BuyQuantity, y.BuyQuantity)
	case ColBuyPrice:
		return cmp.Compare(x.BuyPricePerStock, y.BuyPricePerStock)
	case ColTotalCost:
		return cmp.Compare(x.TotalCost, y.TotalCost)
	case ColBuyDate:
		return x.BuyDate.Compare(y.BuyDate.Time)
	case ColSellQuantity:
		return cmp.Compare(x.SellQuantity, y.SellQuantity)
	case ColSellPrice:
		return cmp.Compare(x.SellPricePerStock, y.SellPricePerStock)
	case ColSellingCost:
		return cmp.Compare(x.TotalSellingCost, y.TotalSellingCost)
	case ColSellDate:
		return x.SellDate.Compare(y.SellDate.Time)
	case ColDaysHeld:
		return cmp.Compare(a.days, b.days)
	case ColRemaining:
		return cmp.Compare(x.RemainingQuantity, y.RemainingQuantity)
	case ColProfitLoss:
		return cmp.Compare(x.ProfitLossPercentage, y.ProfitLossPercentage)
	}
	return 0
}

// Len is the number of rows passing the filter.
func (t *Table) Len() int { return len(t.view) }

// Total is the number of fetched rows.
func (t *Table) Total() int { return len(t.rows) }

// Pages is the page count; an empty table still has one page.
func (t *Table) Pages() int {
	if len(t.view) == 0 {
		return 1
	}
	return (len(t.view) + t.pageSize - 1) / t.pageSize
}

// Page is the zero-based current page.
func (t *Table) Page() int { return t.page }

func (t *Table) NextPage() {
	if t.page < t.Pages()-1 {
		t.page++
	}
}

func (t *Table) PrevPage() {
	if t.page > 0 {
		t.page--
	}
}

// Visible returns the rows of the current page.
func (t *Table) Visible() []Row {
	start := t.page * t.pageSize
	if start >= len(t.view) {
		return nil
	}
	end := min(start+t.pageSize, len(t.view))
	return t.view[start:end]
}
