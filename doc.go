// Package psu remote-controls single-channel bench power supplies of the
// xy3005P family (QJE QJ-3005P, QuatPower LN-3005P, TEK3005P and similar
// rebrands) over their USB serial channel at 9600 bps.
//
// The remote protocol is limited and has some sharp edges this package
// deliberately encodes:
//
//   - Commands are terminated by the literal two characters '\' and 'n',
//     not by a real CR/LF pair. The firmware rejects real line endings.
//   - There is no error feedback from the device. Failures must be inferred
//     from empty replies and implausible readings.
//   - Switching the output on or off needs about half a second before the
//     meter settles; set-point commands need a 100ms gap between them.
//   - While under remote control the front panel is locked out, and remote
//     mode can only be left by power-cycling the supply.
//   - OCP configuration and memory recall/store only work from the front
//     panel and are not reachable over the wire.
//   - Settings made remotely do not survive a power cycle.
//
// # Usage
//
//	p := psu.New("/dev/ttyUSB0")
//	err := p.Session(func(p *psu.PSU) error {
//	    if !p.Available() {
//	        return errors.New("no supply on the wire")
//	    }
//	    if err := p.Apply(5.0, 0.5); err != nil {
//	        return err
//	    }
//	    _, err := p.Enable()
//	    return err
//	})
//
// Session opens the port, runs the function and always closes the port
// again, on error paths included. Open and Close are also available for
// explicit lifecycle control; both are idempotent.
//
// Every operation is a synchronous half-duplex exchange: one command out,
// at most one reply back, bounded by a 500ms read timeout. A PSU value must
// only be driven by one goroutine at a time; the protocol has no framing
// that would survive interleaved requests.
//
// Methods that perform I/O are named as verbs (ReadVoltage, Identify, ...)
// rather than exposed as field-like getters, so the blocking cost is visible
// at the call site.
package psu
