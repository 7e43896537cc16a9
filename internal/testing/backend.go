// Package testing provides an in-memory fake of the tracker backend for tests.
package testing

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/aristath/tradebook/internal/domain"
)

// Failure is a canned error response.
type Failure struct {
	Status  int
	Message string // empty sends a body without an "error" field
}

// Backend is a chi-routed fake of the REST surface. It records every request
// so tests can assert that no call was issued.
type Backend struct {
	*httptest.Server

	mu           sync.Mutex
	nextID       int
	transactions []domain.Transaction
	requests     []string
	failures     map[string]Failure
	importResult *domain.ImportResult
	block        map[string]chan struct{}
}

// NewBackend starts a fake backend seeded with the given inputs.
// Close it with Backend.Close.
func NewBackend(seed ...domain.TransactionInput) *Backend {
	b := &Backend{
		failures: make(map[string]Failure),
		block:    make(map[string]chan struct{}),
	}
	for _, in := range seed {
		b.insert(in)
	}

	r := chi.NewRouter()
	r.Use(b.record)
	r.Get("/api/dashboard/stats", b.stats)
	r.Route("/api/transactions", func(r chi.Router) {
		r.Get("/", b.list)
		r.Post("/", b.create)
		r.Get("/{id}", b.get)
		r.Put("/{id}", b.update)
		r.Delete("/{id}", b.delete)
	})
	r.Get("/api/sample-csv", b.sampleCSV)
	r.Get("/api/export/{format}", b.export)
	r.Post("/api/bulk-import", b.bulkImport)

	b.Server = httptest.NewServer(r)
	return b
}

// Fail makes every request matching "METHOD /path" answer with f until cleared.
func (b *Backend) Fail(route string, f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = f
}

// ClearFailures removes all canned failures.
func (b *Backend) ClearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = make(map[string]Failure)
}

// SetImportResult overrides the bulk import response body.
func (b *Backend) SetImportResult(r domain.ImportResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.importResult = &r
}

// Hold blocks requests for route until the returned release func is called.
func (b *Backend) Hold(route string) (release func()) {
	ch := make(chan struct{})
	b.mu.Lock()
	b.block[route] = ch
	b.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.block, route)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Requests returns the "METHOD /path" of every request received, in order.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.requests))
	copy(out, b.requests)
	return out
}

// Count returns how many requests matched route.
func (b *Backend) Count(route string) int {
	n := 0
	for _, r := range b.Requests() {
		if r == route {
			n++
		}
	}
	return n
}

// Transactions returns a snapshot of the stored rows.
func (b *Backend) Transactions() []domain.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

func (b *Backend) insert(in domain.TransactionInput) domain.Transaction {
	b.nextID++
	t := Build(domain.ID(strconv.Itoa(b.nextID)), in)
	b.transactions = append(b.transactions, t)
	return t
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.requests = append(b.requests, route)
		f, failing := b.failures[route]
		hold := b.block[route]
		b.mu.Unlock()

		if hold != nil {
			<-hold
		}
		if failing {
			if f.Message == "" {
				writeJSON(w, f.Status, map[string]string{})
				return
			}
			writeError(w, f.Status, f.Message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (b *Backend) find(id string) int {
	for i, t := range b.transactions {
		if t.ID.String() == id {
			return i
		}
	}
	return -1
}

func (b *Backend) stats(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var s domain.DashboardStats
	s.TotalTransactions = len(b.transactions)
	for _, t := range b.transactions {
		s.TotalInvestment += t.TotalCost
		s.TotalReturns += t.TotalSellingCost
		if t.SellQuantity > 0 && t.TotalSellingCost > 0 {
			s.NetProfitLoss += t.TotalSellingCost - t.TotalCost*float64(t.SellQuantity)/float64(t.BuyQuantity)
		}
		if t.RemainingQuantity > 0 {
			s.ActiveStocks++
		}
	}
	writeJSON(w, http.StatusOK, s)
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	perPage, err := strconv.Atoi(q.Get("per_page"))
	if err != nil {
		perPage = 10
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	search := q.Get("search")

	b.mu.Lock()
	rows := make([]domain.Transaction, 0, len(b.transactions))
	for _, t := range b.transactions {
		if search == "" || strings.Contains(t.StockName, search) {
			rows = append(rows, t)
		}
	}
	b.mu.Unlock()

	if q.Get("sort_by") == "stock_name" {
		desc := q.Get("sort_order") != "asc"
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return rows[i].StockName > rows[j].StockName
			}
			return rows[i].StockName < rows[j].StockName
		})
	}

	resp := domain.TransactionList{Total: len(rows), Pages: 1, CurrentPage: page}
	if perPage == -1 {
		resp.Transactions = rows
	} else {
		start := (page - 1) * perPage
		end := start + perPage
		if start > len(rows) {
			start = len(rows)
		}
		if end > len(rows) {
			end = len(rows)
		}
		resp.Transactions = rows[start:end]
		resp.Pages = (len(rows) + perPage - 1) / perPage
	}
	writeJSON(w, http.StatusOK, resp)
}

func (b *Backend) get(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.find(chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	writeJSON(w, http.StatusOK, b.transactions[i])
}

func decodeInput(r *http.Request) (domain.TransactionInput, string) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return domain.TransactionInput{}, err.Error()
	}
	for _, f := range []string{"stock_name", "buy_quantity", "buy_price_per_stock", "buy_date"} {
		if v, ok := raw[f]; !ok || string(v) == "null" {
			return domain.TransactionInput{}, "Missing required field: " + f
		}
	}
	data, _ := json.Marshal(raw)
	var in domain.TransactionInput
	if err := json.Unmarshal(data, &in); err != nil {
		return domain.TransactionInput{}, err.Error()
	}
	if in.SellQuantity > in.BuyQuantity {
		return domain.TransactionInput{}, "Sell quantity cannot exceed buy quantity"
	}
	return in, ""
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	in, msg := decodeInput(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	b.mu.Lock()
	t := b.insert(in)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, t)
}

func (b *Backend) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in, msg := decodeInput(r)

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.find(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	t := Build(b.transactions[i].ID, in)
	t.CreatedAt = b.transactions[i].CreatedAt
	b.transactions[i] = t
	writeJSON(w, http.StatusOK, t)
}

func (b *Backend) delete(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.find(chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	b.transactions = append(b.transactions[:i], b.transactions[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

// SampleCSV is the template served by GET /api/sample-csv.
const SampleCSV = `stock_name,buy_quantity,buy_price_per_stock,buy_date,sell_quantity,sell_price_per_stock,sell_date
RELIANCE,10,2500.5,2024-01-15,5,2650.75,2024-02-20
TCS,25,3200.0,2024-01-10,0,0.0,
HDFC,15,1650.25,2024-01-20,15,1725.5,2024-03-15
`

func (b *Backend) sampleCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=sample_transactions.csv")
	_, _ = io.WriteString(w, SampleCSV)
}

func (b *Backend) export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != "csv" && format != "excel" {
		writeError(w, http.StatusNotFound, "Unknown export format")
		return
	}
	b.mu.Lock()
	rows := make([]domain.Transaction, len(b.transactions))
	copy(rows, b.transactions)
	b.mu.Unlock()

	w.Header().Set("Content-Type", "text/csv")
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"ID", "Stock Name", "Buy Quantity", "Remaining Quantity"})
	for _, t := range rows {
		_ = cw.Write([]string{t.ID.String(), t.StockName, strconv.Itoa(t.BuyQuantity), strconv.Itoa(t.RemainingQuantity)})
	}
	cw.Flush()
}

func (b *Backend) bulkImport(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeError(w, http.StatusBadRequest, "File must be a CSV")
		return
	}

	b.mu.Lock()
	override := b.importResult
	b.mu.Unlock()
	if override != nil {
		writeJSON(w, http.StatusOK, override)
		return
	}

	records, err := csv.NewReader(file).ReadAll()
	if err != nil || len(records) == 0 {
		writeError(w, http.StatusBadRequest, "Failed to read CSV file")
		return
	}

	cols := make(map[string]int)
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, req := range []string{"stock_name", "buy_quantity", "buy_price_per_stock", "buy_date"} {
		if _, ok := cols[req]; !ok {
			writeError(w, http.StatusBadRequest, "Missing required columns: "+req)
			return
		}
	}
	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var result domain.ImportResult
	var accepted []domain.TransactionInput
	for n, rec := range records[1:] {
		row := n + 2
		in := domain.TransactionInput{StockName: field(rec, "stock_name")}
		if in.StockName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Missing stock name", row))
			continue
		}
		if in.BuyQuantity, err = strconv.Atoi(field(rec, "buy_quantity")); err != nil || in.BuyQuantity <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Invalid buy quantity", row))
			continue
		}
		if in.BuyPricePerStock, err = strconv.ParseFloat(field(rec, "buy_price_per_stock"), 64); err != nil || in.BuyPricePerStock <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Invalid buy price", row))
			continue
		}
		if in.BuyDate, err = domain.ParseDate(field(rec, "buy_date")); err != nil || in.BuyDate.IsZero() {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Invalid buy date format (use YYYY-MM-DD or MM/DD/YYYY)", row))
			continue
		}
		if in.SellDate, err = domain.ParseDate(field(rec, "sell_date")); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Invalid sell date format (use YYYY-MM-DD or MM/DD/YYYY)", row))
			continue
		}
		in.SellQuantity, _ = strconv.Atoi(field(rec, "sell_quantity"))
		in.SellPricePerStock, _ = strconv.ParseFloat(field(rec, "sell_price_per_stock"), 64)
		if in.SellQuantity > in.BuyQuantity {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Sell quantity cannot exceed buy quantity", row))
			continue
		}
		accepted = append(accepted, in)
	}

	b.mu.Lock()
	for _, in := range accepted {
		b.insert(in)
	}
	b.mu.Unlock()

	result.SuccessfulImports = len(accepted)
	result.TotalRows = len(records) - 1
	result.Message = fmt.Sprintf("Successfully imported %d transactions", len(accepted))
	if len(result.Errors) > 0 {
		result.Warning = fmt.Sprintf("%d rows had errors and were skipped", len(result.Errors))
	}
	writeJSON(w, http.StatusOK, result)
}
