package psu

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Set-point limits of the xy3005P family. Values outside are clamped, not
// rejected, matching what the front panel does.
const (
	MaxVoltage = 30.0 // volts
	MaxCurrent = 30.0 // amperes
)

// Device timing requirements. The firmware silently drops or corrupts
// commands when these are not respected.
const (
	// setPointGap is the pause between two consecutive set-point commands,
	// and before reading back a set point.
	setPointGap = 100 * time.Millisecond
	// outputSettle is how long the meter needs after OUTPUT1/OUTPUT0 before
	// a status read reflects the new state.
	outputSettle = 500 * time.Millisecond
)

// wireTerminator is what the firmware accepts as end-of-command: the two
// literal characters '\' and 'n'. A real CR/LF pair is rejected.
const wireTerminator = `\n`

// PSU is one logical connection to one supply on one serial port.
// It must be driven by a single goroutine; the protocol is strictly
// half-duplex with no framing to separate interleaved exchanges.
type PSU struct {
	device string
	tr     Transport

	suppressSessionErrors bool

	// sleep is swapped out in tests to observe timing without waiting
	sleep func(time.Duration)
}

// Option configures a PSU at construction time.
type Option func(*PSU)

// WithTransport substitutes the serial transport, mainly for tests.
func WithTransport(tr Transport) Option {
	return func(p *PSU) { p.tr = tr }
}

// WithSuppressedSessionErrors makes Session swallow errors returned by the
// session body, mirroring bench scripts that only care that the port gets
// closed again. The port is always closed either way; only the error return
// changes. Off unless asked for.
func WithSuppressedSessionErrors() Option {
	return func(p *PSU) { p.suppressSessionErrors = true }
}

// New creates a driver for the supply on the named serial device.
// No I/O happens until Open or Session.
func New(device string, opts ...Option) *PSU {
	p := &PSU{
		device: device,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.tr == nil {
		p.tr = &serialTransport{device: device}
	}
	return p
}

// Device returns the serial device path the driver was created for.
func (p *PSU) Device() string {
	return p.device
}

// Open opens the serial channel. Opening an already open session is a no-op.
func (p *PSU) Open() error {
	if p.tr.IsOpen() {
		return nil
	}
	return p.tr.Open()
}

// Close closes the serial channel. Safe to call repeatedly and from error
// recovery paths; closing a never-opened session does nothing.
func (p *PSU) Close() error {
	if !p.tr.IsOpen() {
		return nil
	}
	return p.tr.Close()
}

// IsOpen reports whether the serial channel is open.
func (p *PSU) IsOpen() bool {
	return p.tr.IsOpen()
}

// Session opens the channel, runs fn and closes the channel again on every
// exit path. With WithSuppressedSessionErrors the error from fn is
// discarded; open errors are always reported.
func (p *PSU) Session(fn func(*PSU) error) error {
	if err := p.Open(); err != nil {
		return err
	}
	defer p.Close()

	if err := fn(p); err != nil && !p.suppressSessionErrors {
		return err
	}
	return nil
}

// write sends one framed command. Both transport buffers are reset first so
// a stale reply can never be read as the answer to this command, and the
// output is drained afterwards. On a closed session this is a silent no-op.
func (p *PSU) write(command string) error {
	if !p.IsOpen() {
		return nil
	}
	p.tr.FlushOutput()
	p.tr.FlushInput()
	if _, err := p.tr.Write([]byte(command + wireTerminator)); err != nil {
		return err
	}
	return p.tr.Drain()
}

// read collects one reply line, whitespace-stripped. A timeout surfaces as
// an empty string; whether that is an error depends on the query.
func (p *PSU) read() (string, error) {
	if !p.IsOpen() {
		return "", nil
	}
	line, err := p.tr.ReadLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readFloat reads a reply and parses it as a number. Empty replies (reads
// that timed out) are malformed; there is exactly one attempt, no retry.
func (p *PSU) readFloat() (float64, error) {
	reply, err := p.read()
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(reply, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadReply, reply)
	}
	return value, nil
}

func clamp(value, limit float64) float64 {
	if value < 0 {
		return 0
	}
	if value > limit {
		return limit
	}
	return value
}

// SetVoltage sets the voltage set point for CV operation, clamped to
// [0, MaxVoltage].
func (p *PSU) SetVoltage(volt float64) error {
	return p.write(fmt.Sprintf("VSET1:%5.2f", clamp(volt, MaxVoltage)))
}

// SetCurrent sets the current limit at which the supply switches from CV to
// CC, clamped to [0, MaxCurrent].
func (p *PSU) SetCurrent(amps float64) error {
	return p.write(fmt.Sprintf("ISET1:%5.3f", clamp(amps, MaxCurrent)))
}

// Apply sets voltage and current in one go. Some units corrupt the second
// set point when the commands arrive back to back, so a 100ms gap is kept
// between them.
func (p *PSU) Apply(volt, amps float64) error {
	if !p.IsOpen() {
		return nil
	}
	if err := p.SetVoltage(volt); err != nil {
		return err
	}
	p.sleep(setPointGap)
	return p.SetCurrent(amps)
}

// ReadVoltage reads the supplied voltage when the output is enabled, and the
// voltage set point otherwise. A closed session reads as 0.
//
// The set points cannot be queried without having been set first since the
// last power cycle; before that the supply answers with garbage or nothing.
func (p *PSU) ReadVoltage() (float64, error) {
	if !p.IsOpen() {
		return 0, nil
	}
	enabled, err := p.Enabled()
	if err != nil {
		return 0, err
	}
	if enabled {
		if err := p.write("VOUT1?"); err != nil {
			return 0, err
		}
	} else {
		if err := p.write("VSET1?"); err != nil {
			return 0, err
		}
		p.sleep(setPointGap)
	}
	return p.readFloat()
}

// ReadCurrent reads the supplied current when the output is enabled, and the
// current set point otherwise. A closed session reads as 0.
func (p *PSU) ReadCurrent() (float64, error) {
	if !p.IsOpen() {
		return 0, nil
	}
	enabled, err := p.Enabled()
	if err != nil {
		return 0, err
	}
	if enabled {
		if err := p.write("IOUT1?"); err != nil {
			return 0, err
		}
	} else {
		if err := p.write("ISET1?"); err != nil {
			return 0, err
		}
	}
	return p.readFloat()
}

// Enable switches the output on, waits for the meter to settle and reports
// whether the supply now says the output is on.
func (p *PSU) Enable() (bool, error) {
	if !p.IsOpen() {
		return false, nil
	}
	if err := p.write("OUTPUT1"); err != nil {
		return false, err
	}
	p.sleep(outputSettle)
	st, err := p.Status()
	if err != nil {
		return false, err
	}
	return st.Output, nil
}

// Disable switches the output off, waits for the meter to settle and reports
// whether the supply now says the output is off.
func (p *PSU) Disable() (bool, error) {
	if !p.IsOpen() {
		return false, nil
	}
	if err := p.write("OUTPUT0"); err != nil {
		return false, err
	}
	p.sleep(outputSettle)
	st, err := p.Status()
	if err != nil {
		return false, err
	}
	return !st.Output, nil
}

// Status queries the supply state. A closed session yields the zero Status
// without touching the wire; a reply too short to decode yields
// ErrShortStatus.
func (p *PSU) Status() (Status, error) {
	if !p.IsOpen() {
		return Status{}, nil
	}
	if err := p.write("STATUS?"); err != nil {
		return Status{}, err
	}
	raw, err := p.read()
	if err != nil {
		return Status{}, err
	}
	return parseStatus(raw)
}

// Enabled reports whether the output is on, from a fresh status read.
func (p *PSU) Enabled() (bool, error) {
	st, err := p.Status()
	if err != nil {
		return false, err
	}
	return st.Output, nil
}

// Mode reports the regulation mode, from a fresh status read. A closed
// session reports the empty mode.
func (p *PSU) Mode() (Mode, error) {
	st, err := p.Status()
	if err != nil {
		return "", err
	}
	return st.Mode, nil
}

// Identify asks the supply for its type string, for example "QJE3005PV1.0".
// A closed session or a timed out read yields the empty string.
func (p *PSU) Identify() (string, error) {
	if !p.IsOpen() {
		return "", nil
	}
	if err := p.write("*IDN?"); err != nil {
		return "", err
	}
	return p.read()
}

// Available reports whether a supply answers on the wire: the *IDN? round
// trip must succeed and return a non-empty string. A timed out read produces
// exactly that empty string, so an unanswered probe counts as unavailable.
func (p *PSU) Available() bool {
	id, err := p.Identify()
	return err == nil && id != ""
}

// Readings assembles a composite snapshot from separate queries. Not atomic:
// the supply may change state between the fields.
func (p *PSU) Readings() (Readings, error) {
	volt, err := p.ReadVoltage()
	if err != nil {
		return Readings{}, err
	}
	amps, err := p.ReadCurrent()
	if err != nil {
		return Readings{}, err
	}
	st, err := p.Status()
	if err != nil {
		return Readings{}, err
	}
	return Readings{
		Volt:    volt,
		Amps:    amps,
		Enabled: st.Output,
		Mode:    st.Mode,
	}, nil
}
