package transactions

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tradebook/internal/domain"
	"github.com/aristath/tradebook/internal/format"
	testingpkg "github.com/aristath/tradebook/internal/testing"
)

var clock = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func fixtureTransactions() []domain.Transaction {
	var out []domain.Transaction
	for i, in := range testingpkg.NewTransactionFixtures() {
		out = append(out, testingpkg.Build(domain.ID(strconv.Itoa(i+1)), in))
	}
	return out
}

func stocks(rows []Row) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.Stock)
	}
	return out
}

func TestNewRow_SoldPosition(t *testing.T) {
	txs := fixtureTransactions()
	r := NewRow(txs[0], format.New("INR", ""), clock)

	assert.Equal(t, "RELIANCE", r.Stock)
	assert.Equal(t, "₹2,500.50", r.BuyPrice)
	assert.Equal(t, "₹25,005.00", r.TotalCost)
	assert.Equal(t, "15/01/2024", r.BuyDate)
	assert.Equal(t, "₹2,650.75", r.SellPrice)
	assert.Equal(t, "20/02/2024", r.SellDate)
	assert.Equal(t, Badge{Text: "36 days", Tone: Neutral}, r.DaysHeld)
	assert.Equal(t, Badge{Text: "5", Tone: Positive}, r.Remaining)
	assert.Equal(t, Badge{Text: "▲ 6.01%", Tone: Profit}, r.ProfitLoss)
}

func TestNewRow_OpenPosition(t *testing.T) {
	txs := fixtureTransactions()
	r := NewRow(txs[1], format.New("INR", ""), clock)

	assert.Equal(t, "-", r.SellPrice)
	assert.Equal(t, "-", r.SellingCost)
	assert.Equal(t, "-", r.SellDate)
	// 10.5 days rounds up
	assert.Equal(t, Badge{Text: "11 days", Tone: Accent}, r.DaysHeld)
	assert.Equal(t, Badge{Text: "– 0.00%", Tone: Neutral}, r.ProfitLoss)
}

func TestNewRow_LossAndNothingRemaining(t *testing.T) {
	txs := fixtureTransactions()
	r := NewRow(txs[3], format.New("INR", ""), clock)

	assert.Equal(t, Badge{Text: "0", Tone: Neutral}, r.Remaining)
	assert.Equal(t, Badge{Text: "▼ -6.67%", Tone: Loss}, r.ProfitLoss)
}

func TestNewRow_NoBuyDate(t *testing.T) {
	r := NewRow(domain.Transaction{StockName: "X", BuyQuantity: 1}, format.New("INR", ""), clock)
	assert.Equal(t, Badge{Text: "0 days", Tone: Neutral}, r.DaysHeld)
	assert.Equal(t, "-", r.BuyDate)
}

func TestTable_DefaultSortIsBuyDateDescending(t *testing.T) {
	tbl := NewTable(25)
	tbl.SetTransactions(fixtureTransactions(), format.New("INR", ""), clock)

	col, desc := tbl.Sort()
	assert.Equal(t, ColBuyDate, col)
	assert.True(t, desc)
	assert.Equal(t, []string{"INFY", "HDFC", "RELIANCE", "TCS"}, stocks(tbl.Visible()))
}

func TestTable_SortBy(t *testing.T) {
	tbl := NewTable(25)
	tbl.SetTransactions(fixtureTransactions(), format.New("INR", ""), clock)

	tbl.SortBy(ColStock)
	assert.Equal(t, []string{"HDFC", "INFY", "RELIANCE", "TCS"}, stocks(tbl.Visible()))

	tbl.SortBy(ColStock)
	assert.Equal(t, []string{"TCS", "RELIANCE", "INFY", "HDFC"}, stocks(tbl.Visible()))

	tbl.SortBy(ColProfitLoss)
	assert.Equal(t, []string{"INFY", "TCS", "HDFC", "RELIANCE"}, stocks(tbl.Visible()))
}

func TestTable_FilterIgnoresCase(t *testing.T) {
	tbl := NewTable(25)
	tbl.SetTransactions(fixtureTransactions(), format.New("INR", ""), clock)

	tbl.SetFilter("n")
	assert.Equal(t, []string{"INFY", "RELIANCE"}, stocks(tbl.Visible()))
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 4, tbl.Total())

	tbl.SetFilter("")
	assert.Equal(t, 4, tbl.Len())
}

func TestTable_Paging(t *testing.T) {
	var txs []domain.Transaction
	for i := 0; i < 30; i++ {
		txs = append(txs, domain.Transaction{ID: domain.ID(strconv.Itoa(i)), StockName: fmt.Sprintf("S%02d", i)})
	}
	tbl := NewTable(25)
	tbl.SetTransactions(txs, format.New("INR", ""), clock)

	require.Equal(t, 2, tbl.Pages())
	assert.Len(t, tbl.Visible(), 25)

	tbl.NextPage()
	assert.Equal(t, 1, tbl.Page())
	assert.Len(t, tbl.Visible(), 5)

	tbl.NextPage()
	assert.Equal(t, 1, tbl.Page())

	// shrinking the set pulls the page back into range
	tbl.SetTransactions(txs[:3], format.New("INR", ""), clock)
	assert.Equal(t, 0, tbl.Page())
	assert.Len(t, tbl.Visible(), 3)

	tbl.PrevPage()
	assert.Equal(t, 0, tbl.Page())
}

func TestTable_Empty(t *testing.T) {
	tbl := NewTable(0)
	assert.Equal(t, 1, tbl.Pages())
	assert.Empty(t, tbl.Visible())
}
