package cmd

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aristath/tradebook/internal/dashboard"
)

var watchDashboard bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the dashboard summary and current holdings",
	Long: `Print the dashboard summary cards, position metrics and holdings.

With --watch the dashboard is printed again on every refresh interval
(TRADEBOOK_REFRESH_INTERVAL, default 5m) until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().BoolVarP(&watchDashboard, "watch", "w", false, "keep refreshing until interrupted")
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := background(cmd)
	c := dashboard.NewController(client, formatter(), cfg.RefreshInterval, log)
	defer c.Stop()

	view, err := c.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", dashboard.LoadErrorText, err)
	}
	printDashboard(out(cmd), view)
	if !watchDashboard {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	views := make(chan dashboard.View)
	err = c.Start(func() {
		v, err := c.Refresh(ctx)
		if err != nil {
			log.Error().Err(err).Msg(dashboard.LoadErrorText)
			return
		}
		select {
		case views <- v:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return err
	}

	for {
		select {
		case v := <-views:
			fmt.Fprintln(out(cmd))
			printDashboard(out(cmd), v)
		case <-ctx.Done():
			return nil
		}
	}
}

func printDashboard(w io.Writer, v dashboard.View) {
	s := v.Summary
	net := s.NetProfitLoss
	if s.NetTrend == dashboard.Down {
		net = "-" + net
	}
	fmt.Fprintf(w, "Updated             %s\n", v.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Total transactions  %s\n", s.TotalTransactions)
	fmt.Fprintf(w, "Total investment    %s\n", s.TotalInvestment)
	fmt.Fprintf(w, "Total returns       %s\n", s.TotalReturns)
	fmt.Fprintf(w, "Net profit/loss     %s\n", net)
	fmt.Fprintf(w, "Active stocks       %s\n", s.ActiveStocks)
	if m := v.Metrics; m != nil {
		fmt.Fprintf(w, "Average P/L         %s\n", m.AvgProfitLoss)
		fmt.Fprintf(w, "Shares held         %s\n", m.TotalShares)
		fmt.Fprintf(w, "Profitable          %s\n", m.ProfitablePositions)
	}
	fmt.Fprintln(w)
	switch {
	case v.Chart != nil:
		fmt.Fprintln(w, "Holdings")
		for _, entry := range v.Chart.Legend() {
			fmt.Fprintf(w, "  %s\n", entry)
		}
	case v.NoHoldings:
		fmt.Fprintln(w, dashboard.NoHoldingsText)
	}
}
