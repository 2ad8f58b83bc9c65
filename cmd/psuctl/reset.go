package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allbin/go-psu/serial"
)

var resetSerialNumber string

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "USB-reset the supply's serial adapter",
	Long: `Performs a USB-level reset of the device behind the configured port,
to recover an adapter that stopped answering. Needs the usbreset utility
(usbutils package) and usually root.

With --serial the device is found by its USB serial number instead of the
port path, which survives ports renumbering after replug.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !serial.IsUSBResetAvailable() {
			return serial.ErrUSBResetNotAvailable
		}

		if resetSerialNumber != "" {
			if err := serial.ResetUSBDeviceBySerial(resetSerialNumber); err != nil {
				return err
			}
			fmt.Printf("Reset device with serial %s.\n", resetSerialNumber)
			return nil
		}

		port, err := devicePort()
		if err != nil {
			return err
		}
		if err := serial.ResetUSBDevice(port); err != nil {
			return err
		}
		fmt.Printf("Reset device behind %s.\n", port)
		return nil
	},
}

func init() {
	resetCmd.Flags().StringVar(&resetSerialNumber, "serial", "", "find the device by USB serial number")
	rootCmd.AddCommand(resetCmd)
}
