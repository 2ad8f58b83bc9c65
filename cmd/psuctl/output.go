package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allbin/go-psu"
	"github.com/allbin/go-psu/internal/tui/styles"
)

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Switch the output on",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSupply(func(p *psu.PSU) error {
			on, err := p.Enable()
			if err != nil {
				return err
			}
			if !on {
				return fmt.Errorf("supply still reports the output as off")
			}
			fmt.Println("Output", styles.OutputBadge(true))
			return nil
		})
	},
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Switch the output off",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSupply(func(p *psu.PSU) error {
			off, err := p.Disable()
			if err != nil {
				return err
			}
			if !off {
				return fmt.Errorf("supply still reports the output as on")
			}
			fmt.Println("Output", styles.OutputBadge(false))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(onCmd, offCmd)
}
