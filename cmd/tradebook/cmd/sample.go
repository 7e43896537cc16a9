package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/tradebook/internal/transactions"
)

var sampleOutput string

var sampleCmd = &cobra.Command{
	Use:   "sample-csv",
	Short: "Download the CSV import template",
	Args:  cobra.NoArgs,
	RunE:  runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", transactions.SampleFilename, `output file, "-" for stdout`)
}

func runSample(cmd *cobra.Command, _ []string) error {
	w, err := outputFile(cmd, sampleOutput)
	if err != nil {
		return err
	}
	n, err := client.SampleCSV(background(cmd), w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("download sample csv: %w", err)
	}
	log.Info().Int64("bytes", n).Str("file", sampleOutput).Msg("Sample CSV downloaded")
	return nil
}
