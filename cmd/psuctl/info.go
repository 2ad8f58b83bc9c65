package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/allbin/go-psu/internal/tui/colors"
	"github.com/allbin/go-psu/serial"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show USB metadata of the configured port",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := devicePort()
		if err != nil {
			return err
		}

		info, err := serial.GetPortInfo(port)
		if err != nil {
			return err
		}

		labelStyle := lipgloss.NewStyle().Foreground(colors.Subtext0).Width(14)
		valueStyle := lipgloss.NewStyle().Foreground(colors.Text)

		row := func(label, value string) {
			if value == "" {
				value = "-"
			}
			fmt.Printf("%s %s\n", labelStyle.Render(label), valueStyle.Render(value))
		}

		row("Path", info.Path)
		row("Description", info.Description)
		row("Manufacturer", info.Manufacturer)
		row("Product", info.Product)
		row("Vendor ID", info.VendorID)
		row("Product ID", info.ProductID)
		row("Serial", info.SerialNumber)
		row("USB bus", info.BusNumber)
		row("USB device", info.DeviceNumber)
		row("Interface", info.InterfaceNumber)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
