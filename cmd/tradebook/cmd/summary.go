package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aristath/tradebook/internal/dashboard"
	"github.com/aristath/tradebook/internal/report"
)

var summaryRaw bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Render a markdown portfolio summary",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVar(&summaryRaw, "raw", false, "print the markdown source instead of styled output")
}

func runSummary(cmd *cobra.Command, _ []string) error {
	c := dashboard.NewController(client, formatter(), cfg.RefreshInterval, log)
	view, err := c.Refresh(background(cmd))
	if err != nil {
		return fmt.Errorf("%s: %w", dashboard.LoadErrorText, err)
	}
	defer c.Stop()

	md := report.Markdown(view, time.Now())
	if summaryRaw {
		fmt.Fprint(out(cmd), md)
		return nil
	}
	styled, err := report.Render(md, report.DefaultWidth)
	if err != nil {
		return err
	}
	fmt.Fprint(out(cmd), styled)
	return nil
}
