package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/aristath/tradebook/internal/api"
	"github.com/aristath/tradebook/internal/transactions"
)

var listParams api.ListParams

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Long: `List transactions using the backend's own search, sorting and paging.

Examples:
  tradebook list
  tradebook list --search infy
  tradebook list --sort-by buy_date --sort-order asc --per-page 10 --page 2`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	f := listCmd.Flags()
	f.StringVarP(&listParams.Search, "search", "s", "", "filter by stock name")
	f.StringVar(&listParams.SortBy, "sort-by", "", "backend sort field, e.g. buy_date or stock_name")
	f.StringVar(&listParams.SortOrder, "sort-order", "", "asc or desc")
	f.IntVar(&listParams.Page, "page", 0, "page number, starting at 1")
	f.IntVar(&listParams.PerPage, "per-page", api.Unbounded, "rows per page; -1 for all")
}

func runList(cmd *cobra.Command, _ []string) error {
	list, err := client.Transactions(background(cmd), listParams)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	f := formatter()
	now := time.Now()
	rows := make([][]string, len(list.Transactions))
	for i, t := range list.Transactions {
		r := transactions.NewRow(t, f, now)
		rows[i] = []string{
			t.ID.String(), r.Stock, r.BuyQuantity, r.BuyPrice, r.TotalCost, r.BuyDate,
			r.SellQuantity, r.SellPrice, r.SellingCost, r.SellDate,
			r.DaysHeld.Text, r.Remaining.Text, r.ProfitLoss.Text,
		}
	}

	headers := append([]string{"ID"}, transactions.Titles[:]...)
	grid := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(out(cmd), grid.String())
	fmt.Fprintf(out(cmd), "%d of %d transactions, page %d of %d\n",
		len(list.Transactions), list.Total, list.CurrentPage, list.Pages)
	return nil
}
