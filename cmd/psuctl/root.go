package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "psuctl",
	Short: "Control QJ3005P-family bench power supplies",
	Long: `psuctl drives QJ3005P-family programmable bench power supplies over
their USB serial port.

The port can be given with --port, the PSUCTL_PORT environment variable or
the "port" key in ~/.config/psuctl/config.yaml. Use "psuctl list" to see
the candidate ports.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("port", "p", "", "serial device of the supply (e.g. /dev/ttyUSB0)")
	cobra.CheckErr(viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port")))
	viper.SetDefault("startup-script", "psu_console.txt")
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "psuctl"))
	}
	viper.SetEnvPrefix("PSUCTL")
	viper.AutomaticEnv()

	// A missing config file is fine; flags and env still apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "psuctl: reading config: %v\n", err)
		}
	}
}

// devicePort resolves the configured serial port. The supply is never
// searched for; the port must be named explicitly.
func devicePort() (string, error) {
	if port := viper.GetString("port"); port != "" {
		return port, nil
	}
	return "", fmt.Errorf(`no port configured; set --port, PSUCTL_PORT or the "port" config key (see "psuctl list")`)
}
