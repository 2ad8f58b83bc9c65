package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/allbin/go-psu"
	"github.com/allbin/go-psu/internal/tui/models"
)

var monitorInterval time.Duration

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch live readings from the supply",
	Long: `Polls the supply at a fixed interval and shows the readings in a
scrolling table. Space pauses polling, "o" toggles the output, "q" quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := devicePort()
		if err != nil {
			return err
		}

		model := models.NewMonitor(psu.New(port), port, monitorInterval)
		program := tea.NewProgram(model, tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}

func init() {
	monitorCmd.Flags().DurationVarP(&monitorInterval, "interval", "i", time.Second, "poll interval")
	rootCmd.AddCommand(monitorCmd)
}
