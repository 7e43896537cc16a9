package transactions

import (
	"strconv"
	"strings"
	"time"

	"github.com/aristath/tradebook/internal/domain"
)

// Validation messages.
const (
	MsgRequiredFields = "Please fill in all required fields."
	MsgSellExceedsBuy = "Sell quantity cannot exceed buy quantity."
)

// ValidationError is a client-side rejection of the form. It matches
// domain.ErrValidation under errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

// Field is an editable form input.
type Field int

const (
	FieldStock Field = iota
	FieldBuyQuantity
	FieldBuyPrice
	FieldBuyDate
	FieldSellQuantity
	FieldSellPrice
	FieldSellDate
	FieldCount
)

var fieldLabels = [FieldCount]string{
	"Stock Name", "Buy Quantity", "Buy Price", "Buy Date",
	"Sell Quantity", "Sell Price", "Sell Date",
}

func (f Field) Label() string {
	if f < 0 || f >= FieldCount {
		return ""
	}
	return fieldLabels[f]
}

// Totals are recomputed on every quantity or price change.
type Totals struct {
	TotalCost        float64
	TotalSellingCost float64
	Remaining        int
}

// Form holds the raw text of the transaction dialog.
type Form struct {
	values      [FieldCount]string
	totals      Totals
	sellInvalid bool
}

// Reset clears every field and defaults the buy date to today.
func (f *Form) Reset(today time.Time) {
	f.values = [FieldCount]string{}
	f.values[FieldBuyDate] = domain.NewDate(today).String()
	f.Recompute()
}

// Populate fills the form from t. Zero sell quantity and price are left blank.
func (f *Form) Populate(t domain.Transaction) {
	f.values = [FieldCount]string{
		FieldStock:       t.StockName,
		FieldBuyQuantity: strconv.Itoa(t.BuyQuantity),
		FieldBuyPrice:    formatFloat(t.BuyPricePerStock),
		FieldBuyDate:     t.BuyDate.String(),
		FieldSellDate:    t.SellDate.String(),
	}
	if t.SellQuantity != 0 {
		f.values[FieldSellQuantity] = strconv.Itoa(t.SellQuantity)
	}
	if t.SellPricePerStock != 0 {
		f.values[FieldSellPrice] = formatFloat(t.SellPricePerStock)
	}
	f.Recompute()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Get returns the raw text of field.
func (f *Form) Get(field Field) string {
	if field < 0 || field >= FieldCount {
		return ""
	}
	return f.values[field]
}

// Set stores the raw text of field, recomputing totals for quantities and prices.
func (f *Form) Set(field Field, value string) {
	if field < 0 || field >= FieldCount {
		return
	}
	f.values[field] = value
	switch field {
	case FieldBuyQuantity, FieldBuyPrice, FieldSellQuantity, FieldSellPrice:
		f.Recompute()
	}
}

// Recompute derives totals from the current text. Unparseable numbers count
// as 0. The sell quantity is flagged, never clamped, when it exceeds the buy
// quantity.
func (f *Form) Recompute() {
	bq := parseInt(f.values[FieldBuyQuantity])
	bp := parseFloat(f.values[FieldBuyPrice])
	sq := parseInt(f.values[FieldSellQuantity])
	sp := parseFloat(f.values[FieldSellPrice])

	f.totals = Totals{
		TotalCost:        float64(bq) * bp,
		TotalSellingCost: float64(sq) * sp,
		Remaining:        bq - sq,
	}
	f.sellInvalid = sq > bq
}

func (f *Form) Totals() Totals { return f.totals }

// SellInvalid reports whether the sell quantity exceeds the buy quantity.
func (f *Form) SellInvalid() bool { return f.sellInvalid }

// Input validates the form and builds the request payload.
func (f *Form) Input() (domain.TransactionInput, error) {
	var in domain.TransactionInput

	in.StockName = strings.TrimSpace(f.values[FieldStock])
	if in.StockName == "" {
		return in, &ValidationError{Msg: MsgRequiredFields}
	}

	bq, err := strconv.Atoi(strings.TrimSpace(f.values[FieldBuyQuantity]))
	if err != nil || bq <= 0 {
		return in, &ValidationError{Msg: MsgRequiredFields}
	}
	in.BuyQuantity = bq

	bp, err := strconv.ParseFloat(strings.TrimSpace(f.values[FieldBuyPrice]), 64)
	if err != nil || bp < 0 {
		return in, &ValidationError{Msg: MsgRequiredFields}
	}
	in.BuyPricePerStock = bp

	in.BuyDate, err = domain.ParseDate(strings.TrimSpace(f.values[FieldBuyDate]))
	if err != nil || in.BuyDate.IsZero() {
		return in, &ValidationError{Msg: MsgRequiredFields}
	}

	if s := strings.TrimSpace(f.values[FieldSellQuantity]); s != "" {
		if in.SellQuantity, err = strconv.Atoi(s); err != nil || in.SellQuantity < 0 {
			return in, &ValidationError{Msg: "Invalid sell quantity."}
		}
	}
	if s := strings.TrimSpace(f.values[FieldSellPrice]); s != "" {
		if in.SellPricePerStock, err = strconv.ParseFloat(s, 64); err != nil || in.SellPricePerStock < 0 {
			return in, &ValidationError{Msg: "Invalid sell price."}
		}
	}
	if in.SellDate, err = domain.ParseDate(strings.TrimSpace(f.values[FieldSellDate])); err != nil {
		return in, &ValidationError{Msg: "Invalid sell date format. Use YYYY-MM-DD."}
	}

	if in.SellQuantity > in.BuyQuantity {
		return in, &ValidationError{Msg: MsgSellExceedsBuy}
	}
	return in, nil
}

// parseInt reads a leading integer the way a lenient number input does;
// anything unreadable is 0.
func parseInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
