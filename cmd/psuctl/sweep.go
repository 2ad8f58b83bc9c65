package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/allbin/go-psu"
)

var (
	sweepVolt   float64
	sweepStart  float64
	sweepStop   float64
	sweepStep   float64
	sweepSettle time.Duration
	sweepOutput string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep the current limit and record a component characteristic",
	Long: `Steps the current limit from --start to --stop and records the
voltage the supply settles at for each step, as CSV. With the voltage limit
above the component's forward voltage the supply runs in CC mode for the
whole sweep, so the device under test sees exactly the stepped current.

The defaults trace a LED characteristic: 1 mA to 20 mA in 1 mA steps with
a 4 V ceiling. Connect the component directly to the terminals, minding
polarity. The output is switched off again after the last step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sweepStep <= 0 {
			return fmt.Errorf("--step must be positive")
		}
		if sweepStop < sweepStart {
			return fmt.Errorf("--stop must not be below --start")
		}

		out := os.Stdout
		if sweepOutput != "" {
			f, err := os.Create(sweepOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		w := csv.NewWriter(out)
		defer w.Flush()
		if err := w.Write([]string{"current [mA]", "voltage [V]", "power [mW]"}); err != nil {
			return err
		}

		return withSupply(func(p *psu.PSU) error {
			if _, err := p.Disable(); err != nil {
				return err
			}
			if err := p.Apply(sweepVolt, sweepStart); err != nil {
				return err
			}
			if _, err := p.Enable(); err != nil {
				return err
			}
			// extra settle time for the first operating point
			time.Sleep(3 * time.Second)

			defer p.Disable()

			for amps := sweepStart; amps <= sweepStop+sweepStep/2; amps += sweepStep {
				if err := p.SetCurrent(amps); err != nil {
					return err
				}
				time.Sleep(sweepSettle)

				volt, err := p.ReadVoltage()
				if err != nil {
					return err
				}
				current, err := p.ReadCurrent()
				if err != nil {
					return err
				}

				err = w.Write([]string{
					fmt.Sprintf("%3.0f", current*1000),
					fmt.Sprintf("%5.2f", volt),
					fmt.Sprintf("%4.0f", current*1000*volt),
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
	},
}

func init() {
	sweepCmd.Flags().Float64Var(&sweepVolt, "volt", 4, "voltage ceiling during the sweep")
	sweepCmd.Flags().Float64Var(&sweepStart, "start", 0.001, "first current step in amperes")
	sweepCmd.Flags().Float64Var(&sweepStop, "stop", 0.020, "last current step in amperes")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 0.001, "current increment in amperes")
	sweepCmd.Flags().DurationVar(&sweepSettle, "settle", time.Second, "settle time per step")
	sweepCmd.Flags().StringVarP(&sweepOutput, "output", "o", "", "write CSV to a file instead of stdout")
	rootCmd.AddCommand(sweepCmd)
}
