package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/allbin/go-psu/internal/console"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run console commands from a script file",
	Long: `Runs console commands from a text file, one per line, and exits.
The same commands work in the interactive console; see "psuctl console".

A script typically starts with a connect line:

  connect /dev/ttyUSB0
  set 9v .1a
  on
  wait 500
  read

With a port configured, the connect line can be omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		c := console.New(os.Stdout)
		defer c.Close()

		// Connect up front when a port is configured and the script does
		// not connect by itself.
		script := string(data)
		if !strings.Contains(script, "connect ") {
			if port := viper.GetString("port"); port != "" {
				c.Exec("connect " + port)
				if !c.Connected() {
					return fmt.Errorf("could not connect to %s", port)
				}
			}
		}

		for _, line := range strings.Split(script, "\n") {
			if c.Exec(line) {
				break
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
