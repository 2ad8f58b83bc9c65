package main

import (
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allbin/go-psu/internal/tui/models"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive console",
	Long: `Opens an interactive console speaking the same command language as
"psuctl run" scripts. With a port configured, the console connects to it on
startup; otherwise use the connect command. If a startup script exists
(default "psu_console.txt", "startup-script" config key) its commands run
first. Enter "help" for the command list, "bye" to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Unlike the one-shot commands, a missing port is fine here; the
		// user can connect from inside the console.
		port := viper.GetString("port")

		var startup []string
		if script := viper.GetString("startup-script"); script != "" {
			if data, err := os.ReadFile(script); err == nil {
				startup = strings.Split(string(data), "\n")
			}
		}

		model := models.NewConsole(port, startup)
		program := tea.NewProgram(model, tea.WithAltScreen())
		_, err := program.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
