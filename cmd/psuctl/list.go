package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/allbin/go-psu/internal/tui/colors"
	"github.com/allbin/go-psu/serial"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List serial ports that could hold a supply",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serial.ListPorts()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Println("No serial ports found.")
			return nil
		}

		pathStyle := lipgloss.NewStyle().Foreground(colors.Mauve).Bold(true)
		descStyle := lipgloss.NewStyle().Foreground(colors.Subtext0)

		for _, port := range ports {
			info, err := serial.GetPortInfo(port)
			if err != nil {
				fmt.Println(pathStyle.Render(port))
				continue
			}

			desc := info.Description
			if info.Product != "" {
				desc = info.Product
			}
			if info.Manufacturer != "" {
				desc = info.Manufacturer + " " + desc
			}
			fmt.Printf("%s  %s\n", pathStyle.Render(port), descStyle.Render(desc))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
