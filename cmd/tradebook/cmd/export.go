package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/tradebook/internal/api"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download every transaction as CSV or Excel",
	Long: `Download every transaction in the backend's export format.

Examples:
  tradebook export
  tradebook export --format excel -o portfolio.xlsx
  tradebook export -o - | head`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(api.ExportCSV), "csv or excel")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", `output file, "-" for stdout (default stock_transactions.<ext>)`)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format := api.ExportFormat(exportFormat)
	if format != api.ExportCSV && format != api.ExportExcel {
		return fmt.Errorf("unknown export format %q: use csv or excel", exportFormat)
	}
	path := exportOutput
	if path == "" {
		path = format.Filename()
	}

	w, err := outputFile(cmd, path)
	if err != nil {
		return err
	}
	n, err := client.Export(background(cmd), format, w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	log.Info().Int64("bytes", n).Str("file", path).Msg("Export downloaded")
	return nil
}
