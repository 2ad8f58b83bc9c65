package psu

import "fmt"

// Mode is the regulation mode of the output stage.
type Mode string

const (
	ModeCC Mode = "CC" // constant current
	ModeCV Mode = "CV" // constant voltage
)

// Status is the decoded STATUS? reply. The zero value is what a closed
// session reports: no mode, output off.
type Status struct {
	Mode   Mode
	Output bool
}

// Readings is a composite snapshot of the supply. It is assembled from
// separate queries, so the device may change state between the fields; the
// snapshot is not atomic.
type Readings struct {
	Volt    float64
	Amps    float64
	Enabled bool
	Mode    Mode
}

func (r Readings) String() string {
	state := "OFF"
	if r.Enabled {
		state = "ON"
	}
	return fmt.Sprintf("%gV\t%gA\t%s\t%s", r.Volt, r.Amps, state, r.Mode)
}

// parseStatus decodes a raw STATUS? reply. The first character selects the
// mode ('1' = CV, anything else = CC), the second the output state. The
// device sends a third flag byte with no observable meaning; it is ignored.
func parseStatus(raw string) (Status, error) {
	if len(raw) < 2 {
		return Status{}, fmt.Errorf("%w: %q", ErrShortStatus, raw)
	}
	st := Status{Mode: ModeCC, Output: raw[1] == '1'}
	if raw[0] == '1' {
		st.Mode = ModeCV
	}
	return st, nil
}
