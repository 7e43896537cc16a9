package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aristath/tradebook/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Open the interactive terminal UI",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{uiAnnotation: "true"},
	RunE:        runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	m := ui.NewModel(background(cmd), client, *cfg, log)
	log.Info().Str("api_url", cfg.APIURL).Msg("Starting UI")
	if err := ui.Run(m, tea.WithAltScreen()); err != nil {
		log.Error().Err(err).Msg("UI exited with error")
		return err
	}
	return nil
}
