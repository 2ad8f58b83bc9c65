package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/allbin/go-psu"
)

var setCmd = &cobra.Command{
	Use:   "set <volts> <amps>",
	Short: "Set the voltage and current limit together",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		volt, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid voltage %q", args[0])
		}
		amps, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid current %q", args[1])
		}
		return withSupply(func(p *psu.PSU) error {
			return p.Apply(volt, amps)
		})
	},
}

var voltCmd = &cobra.Command{
	Use:   "volt <volts>",
	Short: "Set the voltage for CV operation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		volt, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid voltage %q", args[0])
		}
		return withSupply(func(p *psu.PSU) error {
			return p.SetVoltage(volt)
		})
	},
}

var ampsCmd = &cobra.Command{
	Use:   "amps <amps>",
	Short: "Set the current limit at which the supply switches to CC",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amps, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid current %q", args[0])
		}
		return withSupply(func(p *psu.PSU) error {
			return p.SetCurrent(amps)
		})
	},
}

func init() {
	rootCmd.AddCommand(setCmd, voltCmd, ampsCmd)
}
