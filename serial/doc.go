// Package serial provides a small, idiomatic Go library for serial port
// communication on Linux, built directly on termios via golang.org/x/sys.
//
// It is the transport layer underneath the go-psu bench supply driver, but is
// generic: any line- or byte-oriented device on a tty can use it.
//
// # Basic Usage
//
// Open a serial port with default configuration (115200 8N1):
//
//	port, err := serial.Open("/dev/ttyUSB0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	n, err := port.Write([]byte("Hello"))
//	buffer := make([]byte, 256)
//	n, err = port.Read(buffer)
//
// # Configuration Options
//
// Use functional options for custom configuration:
//
//	port, err := serial.Open("/dev/ttyUSB0",
//	    serial.WithBaudRate(9600),
//	    serial.WithReadTimeout(500*time.Millisecond),
//	)
//
// Reads block until data arrives or the configured timeout elapses; a timed
// out read returns (0, nil). The timeout maps onto VTIME, so it must be a
// multiple of 100ms.
//
// # Port Discovery
//
// List available serial ports and get USB device metadata:
//
//	ports, err := serial.ListPorts()
//	for _, portPath := range ports {
//	    info, _ := serial.GetPortInfo(portPath)
//	    fmt.Printf("%s: %s (VID=%s PID=%s Serial=%s)\n",
//	        info.Path, info.Description, info.VendorID, info.ProductID, info.SerialNumber)
//	}
//
// # USB Device Management (Linux)
//
// Reset hung USB devices programmatically:
//
//	// Reset by port path
//	err := serial.ResetUSBDevice("/dev/ttyUSB0")
//
//	// Reset by serial number (survives re-enumeration)
//	err = serial.ResetUSBDeviceBySerial("FT123456")
//
// Requires the usbreset utility from usbutils and root/sudo permissions.
//
// # Error Handling
//
// The library provides specific error values; use errors.Is for checking:
//
//	if errors.Is(err, serial.ErrDeviceNotFound) {
//	    // port path does not exist
//	}
package serial
