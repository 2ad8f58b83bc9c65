package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allbin/go-psu"
)

var idnCmd = &cobra.Command{
	Use:   "idn",
	Short: "Print the identity string of the supply",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSupply(func(p *psu.PSU) error {
			id, err := p.Identify()
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(idnCmd)
}
