package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_DecodeBackendPayload(t *testing.T) {
	payload := `{
		"id": 42,
		"stock_name": "RELIANCE",
		"buy_quantity": 10,
		"buy_price_per_stock": 2500.5,
		"total_cost": 25005,
		"buy_date": "2024-01-15",
		"sell_quantity": 5,
		"sell_price_per_stock": 2650.75,
		"total_selling_cost": 13253.75,
		"sell_date": "2024-02-20",
		"remaining_quantity": 5,
		"profit_loss_percentage": 6.008,
		"created_at": "2024-01-15T10:00:00Z",
		"updated_at": null
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(payload), &tx))

	assert.Equal(t, ID("42"), tx.ID)
	assert.Equal(t, "RELIANCE", tx.StockName)
	assert.Equal(t, "2024-01-15", tx.BuyDate.String())
	assert.Equal(t, "2024-02-20", tx.SellDate.String())
	assert.True(t, tx.Sold())
	assert.Equal(t, 5, tx.RemainingQuantity)
	require.NotNil(t, tx.CreatedAt)
	assert.Nil(t, tx.UpdatedAt)
}

func TestTransaction_OpenPosition(t *testing.T) {
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","buy_date":"2024-01-10","sell_date":null}`), &tx))

	assert.Equal(t, ID("abc"), tx.ID)
	assert.False(t, tx.Sold())
	assert.True(t, tx.SellDate.IsZero())
}

func TestTransactionInput_SellDateNullWhenAbsent(t *testing.T) {
	buy, err := ParseDate("2024-01-10")
	require.NoError(t, err)

	data, err := json.Marshal(TransactionInput{
		StockName:        "TCS",
		BuyQuantity:      25,
		BuyPricePerStock: 3200,
		BuyDate:          buy,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"stock_name": "TCS",
		"buy_quantity": 25,
		"buy_price_per_stock": 3200,
		"buy_date": "2024-01-10",
		"sell_quantity": 0,
		"sell_price_per_stock": 0,
		"sell_date": null
	}`, string(data))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = ParseDate("2024-03-15T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestNewDate_TruncatesToDay(t *testing.T) {
	d := NewDate(time.Date(2024, 5, 6, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2024-05-06", d.String())
	assert.Equal(t, 0, d.Hour())
}

func TestImportResult_Partial(t *testing.T) {
	assert.False(t, ImportResult{Message: "ok"}.Partial())
	assert.True(t, ImportResult{Errors: []string{"row 3: bad date"}}.Partial())
}

func TestAwait(t *testing.T) {
	ok := Await(func() (int, error) { return 7, nil })
	assert.True(t, ok.Ok())
	assert.Equal(t, 7, ok.Value)

	boom := errors.New("boom")
	failed := Await(func() (int, error) { return 0, boom })
	assert.False(t, failed.Ok())
	assert.ErrorIs(t, failed.Err, boom)
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "success", Success("x").Level.String())
	assert.Equal(t, "danger", Danger("x").Level.String())
	assert.Equal(t, "warning", LevelWarning.String())
}
