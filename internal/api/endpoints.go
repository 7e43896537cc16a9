package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aristath/tradebook/internal/domain"
)

// Unbounded is the per_page value that asks the backend for every record.
const Unbounded = -1

// ListParams are the server-side listing options of GET /api/transactions.
// Zero values are omitted and the backend defaults apply.
type ListParams struct {
	Page      int
	PerPage   int
	Search    string
	SortBy    string
	SortOrder string // asc or desc
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage != 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.SortBy != "" {
		v.Set("sort_by", p.SortBy)
	}
	if p.SortOrder != "" {
		v.Set("sort_order", p.SortOrder)
	}
	return v
}

// ExportFormat selects the export endpoint.
type ExportFormat string

const (
	ExportCSV   ExportFormat = "csv"
	ExportExcel ExportFormat = "excel"
)

// Filename is the suggested local file name for the export.
func (f ExportFormat) Filename() string {
	if f == ExportExcel {
		return "stock_transactions.xlsx"
	}
	return "stock_transactions.csv"
}

func transactionPath(id domain.ID) string {
	return "/api/transactions/" + url.PathEscape(id.String())
}

// Endpoints

func (c *Client) Stats(ctx context.Context) (domain.DashboardStats, error) {
	var s domain.DashboardStats
	return s, c.get(ctx, "/api/dashboard/stats", nil, &s)
}

func (c *Client) Transactions(ctx context.Context, params ListParams) (domain.TransactionList, error) {
	var l domain.TransactionList
	return l, c.get(ctx, "/api/transactions", params.values(), &l)
}

// AllTransactions fetches the full list in one unbounded request.
func (c *Client) AllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	l, err := c.Transactions(ctx, ListParams{PerPage: Unbounded})
	if err != nil {
		return nil, err
	}
	return l.Transactions, nil
}

func (c *Client) Transaction(ctx context.Context, id domain.ID) (domain.Transaction, error) {
	var t domain.Transaction
	return t, c.get(ctx, transactionPath(id), nil, &t)
}

func (c *Client) CreateTransaction(ctx context.Context, in domain.TransactionInput) (domain.Transaction, error) {
	var t domain.Transaction
	return t, c.doJSON(ctx, http.MethodPost, "/api/transactions", nil, in, &t)
}

func (c *Client) UpdateTransaction(ctx context.Context, id domain.ID, in domain.TransactionInput) (domain.Transaction, error) {
	var t domain.Transaction
	return t, c.doJSON(ctx, http.MethodPut, transactionPath(id), nil, in, &t)
}

func (c *Client) DeleteTransaction(ctx context.Context, id domain.ID) error {
	return c.doJSON(ctx, http.MethodDelete, transactionPath(id), nil, nil, nil)
}

// SampleCSV downloads the bulk import template.
func (c *Client) SampleCSV(ctx context.Context, w io.Writer) (int64, error) {
	return c.download(ctx, "/api/sample-csv", w)
}

// Export downloads every transaction in the given format.
func (c *Client) Export(ctx context.Context, format ExportFormat, w io.Writer) (int64, error) {
	switch format {
	case ExportCSV, ExportExcel:
	default:
		return 0, fmt.Errorf("unknown export format %q", format)
	}
	return c.download(ctx, "/api/export/"+string(format), w)
}
