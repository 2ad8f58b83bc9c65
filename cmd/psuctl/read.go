package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allbin/go-psu"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Show voltage, current, output state and regulation mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSupply(func(p *psu.PSU) error {
			r, err := p.Readings()
			if err != nil {
				return err
			}
			fmt.Println(r.String())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
