package serial

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ListPorts returns a list of available serial ports on the system
// Filters for communication-capable devices and excludes virtual terminals
func ListPorts() ([]string, error) {
	var ports []string

	devDir := "/dev"
	entries, err := os.ReadDir(devDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		name := entry.Name()

		if matchesExcludePattern(name) {
			continue
		}
		if !matchesSerialPattern(name) {
			continue
		}

		fullPath := filepath.Join(devDir, name)
		if isCharacterDevice(fullPath) {
			ports = append(ports, fullPath)
		}
	}

	sort.Strings(ports)

	return ports, nil
}

// Regular expressions for different types of serial devices
var serialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ttyUSB\d+$`), // USB serial adapters
	regexp.MustCompile(`^ttyACM\d+$`), // USB CDC/ACM devices
	regexp.MustCompile(`^ttyS\d+$`),   // Standard serial ports
	regexp.MustCompile(`^ttyAMA\d+$`), // ARM/Raspberry Pi serial
	regexp.MustCompile(`^ttymxc\d+$`), // i.MX serial ports
	regexp.MustCompile(`^ttyO\d+$`),   // OMAP serial ports
	regexp.MustCompile(`^ttySAC\d+$`), // Samsung serial ports
	regexp.MustCompile(`^ttyTHS\d+$`), // Tegra serial ports
}

// Exclude patterns for virtual terminals and other non-serial devices
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^tty\d+$`),  // Virtual terminals (tty1, tty2, etc.)
	regexp.MustCompile(`^console$`), // Console
	regexp.MustCompile(`^ptmx$`),    // Pseudo-terminal multiplexer
	regexp.MustCompile(`^pty.*$`),   // Pseudo-terminals
	regexp.MustCompile(`^pts/.*$`),  // Pseudo-terminal slaves
}

func matchesSerialPattern(name string) bool {
	for _, pattern := range serialPatterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

func matchesExcludePattern(name string) bool {
	for _, pattern := range excludePatterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	mode := info.Mode()
	return mode&os.ModeCharDevice != 0
}

// PortInfo describes a serial port and, for USB devices, the metadata
// extracted from sysfs.
type PortInfo struct {
	Name            string
	Path            string
	Description     string
	VendorID        string
	ProductID       string
	SerialNumber    string
	Manufacturer    string
	Product         string
	BusNumber       string
	DeviceNumber    string
	InterfaceNumber string
}

// GetPortInfo returns detailed information about a specific port
func GetPortInfo(portPath string) (*PortInfo, error) {
	if !isCharacterDevice(portPath) {
		return nil, ErrDeviceNotFound
	}

	name := filepath.Base(portPath)

	info := &PortInfo{
		Name:        name,
		Path:        portPath,
		Description: getPortDescription(name),
	}

	if strings.HasPrefix(name, "ttyUSB") || strings.HasPrefix(name, "ttyACM") {
		enrichUSBInfo(info)
	}

	return info, nil
}

// getPortDescription provides human-readable descriptions for different port types
func getPortDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	default:
		return "Serial Port"
	}
}

// sysTTYRoot is overridable in tests
var sysTTYRoot = "/sys/class/tty"

// enrichUSBInfo reads USB device metadata from sysfs. For a ttyUSB/ttyACM
// device, /sys/class/tty/<name>/device points at the USB interface; its
// parent directory is the USB device itself, which carries idVendor,
// idProduct, serial, busnum, devnum, manufacturer and product attributes.
func enrichUSBInfo(info *PortInfo) {
	ifaceDir, err := filepath.EvalSymlinks(filepath.Join(sysTTYRoot, info.Name, "device"))
	if err != nil {
		return
	}

	// ttyACM devices link directly to the interface; ttyUSB devices have an
	// extra serial-converter level in between. Walk upwards until a directory
	// with an idVendor attribute is found.
	devDir := ifaceDir
	for i := 0; i < 4; i++ {
		if _, err := os.Stat(filepath.Join(devDir, "idVendor")); err == nil {
			break
		}
		devDir = filepath.Dir(devDir)
	}

	info.InterfaceNumber = readSysAttr(ifaceDir, "bInterfaceNumber")
	if info.InterfaceNumber == "" {
		info.InterfaceNumber = readSysAttr(filepath.Dir(ifaceDir), "bInterfaceNumber")
	}

	info.VendorID = readSysAttr(devDir, "idVendor")
	info.ProductID = readSysAttr(devDir, "idProduct")
	info.SerialNumber = readSysAttr(devDir, "serial")
	info.Manufacturer = readSysAttr(devDir, "manufacturer")
	info.Product = readSysAttr(devDir, "product")
	info.BusNumber = readSysAttr(devDir, "busnum")
	info.DeviceNumber = readSysAttr(devDir, "devnum")
}

func readSysAttr(dir, attr string) string {
	data, err := os.ReadFile(filepath.Join(dir, attr))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
