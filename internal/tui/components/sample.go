package components

import (
	"fmt"
	"time"

	"github.com/allbin/go-psu"
)

// Sample is one polled snapshot of the supply, as collected by the monitor
// screen. A failed poll carries the error instead of readings.
type Sample struct {
	Timestamp time.Time
	Readings  psu.Readings
	Err       error
}

// FormatVolt renders a voltage with two decimals, the set-point resolution
// of the hardware.
func FormatVolt(volt float64) string {
	return fmt.Sprintf("%.2f V", volt)
}

// FormatAmps renders a current with three decimals.
func FormatAmps(amps float64) string {
	return fmt.Sprintf("%.3f A", amps)
}
