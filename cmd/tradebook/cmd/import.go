package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/tradebook/internal/transactions"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Bulk import transactions from a CSV file",
	Long: `Upload a CSV file to the backend's bulk import.

Rows the backend rejects are listed; the others are imported.
Run "tradebook sample-csv" for a template.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	c := transactions.NewController(client, formatter(), cfg.PageSize, log)
	c.OpenImport()
	c.SelectImportFile(args[0])

	path, ok := c.BeginImport()
	if !ok {
		return fmt.Errorf("%s: %s", transactions.MsgPickCSV, args[0])
	}
	c.FinishImport(c.Import(background(cmd), path))

	im := c.State.Import
	w := out(cmd)
	switch im.Panel {
	case transactions.PanelError:
		return errors.New(im.Message)
	case transactions.PanelWarning:
		fmt.Fprintln(w, im.Message)
		for _, e := range im.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	default:
		fmt.Fprintln(w, im.Message)
	}
	return nil
}
