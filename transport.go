package psu

import (
	"time"

	"github.com/allbin/go-psu/serial"
)

// Transport is the byte-level serial channel the driver talks through.
// The production implementation wraps serial.Port; tests substitute a fake.
type Transport interface {
	Open() error
	Close() error
	IsOpen() bool
	Write(data []byte) (int, error)
	// ReadLine reads one newline-terminated line, without the terminator.
	// A read timeout yields ("", nil); timeouts are not errors at this level.
	ReadLine() (string, error)
	Drain() error
	FlushInput() error
	FlushOutput() error
}

// Serial parameters of the xy3005P remote channel. The user manual fixes all
// of these; they are spelled out here rather than relying on transport
// defaults.
const (
	baudRate    = 9600
	dataBits    = 8
	stopBits    = 1
	readTimeout = 500 * time.Millisecond
)

// serialTransport wraps a serial.Port, holding the device path so the
// channel can be opened and reopened on demand.
type serialTransport struct {
	device string
	port   *serial.Port
}

func (t *serialTransport) Open() error {
	if t.port != nil {
		return nil
	}
	port, err := serial.Open(t.device,
		serial.WithBaudRate(baudRate),
		serial.WithDataBits(dataBits),
		serial.WithStopBits(stopBits),
		serial.WithParity(serial.ParityNone),
		serial.WithReadTimeout(readTimeout),
	)
	if err != nil {
		return err
	}
	t.port = port
	return nil
}

func (t *serialTransport) Close() error {
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	return err
}

func (t *serialTransport) IsOpen() bool {
	return t.port != nil
}

func (t *serialTransport) Write(data []byte) (int, error) {
	return t.port.Write(data)
}

// ReadLine collects bytes until a newline or until the port's read timeout
// elapses. At 9600 bps a byte-at-a-time loop is nowhere near a bottleneck.
func (t *serialTransport) ReadLine() (string, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := t.port.Read(buf)
		if err != nil {
			return string(line), err
		}
		if n == 0 {
			// Timeout; hand back whatever arrived
			return string(line), nil
		}
		if buf[0] == '\n' {
			return string(line), nil
		}
		line = append(line, buf[0])
	}
}

func (t *serialTransport) Drain() error {
	return t.port.Drain()
}

func (t *serialTransport) FlushInput() error {
	return t.port.FlushInput()
}

func (t *serialTransport) FlushOutput() error {
	return t.port.FlushOutput()
}
