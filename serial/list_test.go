package serial

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListPorts(t *testing.T) {
	ports, err := ListPorts()
	if err != nil {
		t.Errorf("ListPorts failed: %v", err)
	}

	for _, port := range ports {
		if !strings.HasPrefix(port, "/dev/") {
			t.Errorf("Port path doesn't start with /dev/: %s", port)
		}

		if !isCharacterDevice(port) {
			t.Errorf("Port is not a character device: %s", port)
		}
	}

	// Check that ports are sorted
	for i := 1; i < len(ports); i++ {
		if ports[i-1] > ports[i] {
			t.Errorf("Ports are not sorted: %s > %s", ports[i-1], ports[i])
		}
	}
}

func TestIsCharacterDevice(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/dev/null", true},
		{"/dev/zero", true},
		{"/tmp", false},         // Directory, not character device
		{"/nonexistent", false}, // Doesn't exist
	}

	for _, test := range tests {
		result := isCharacterDevice(test.path)
		if result != test.expected {
			t.Errorf("isCharacterDevice(%s) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestGetPortDescription(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"ttyUSB0", "USB Serial Port"},
		{"ttyACM0", "USB CDC/ACM Device"},
		{"ttyS0", "Standard Serial Port"},
		{"ttyAMA0", "ARM Serial Port"},
		{"ttymxc0", "i.MX Serial Port"},
		{"ttyO0", "OMAP Serial Port"},
		{"ttySAC0", "Samsung Serial Port"},
		{"ttyTHS0", "Tegra Serial Port"},
		{"unknown", "Serial Port"},
	}

	for _, test := range tests {
		result := getPortDescription(test.name)
		if result != test.expected {
			t.Errorf("getPortDescription(%s) = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestGetPortInfo(t *testing.T) {
	// Test with /dev/null as it should always exist and be a character device
	info, err := GetPortInfo("/dev/null")
	if err != nil {
		t.Errorf("GetPortInfo failed for /dev/null: %v", err)
	}

	if info == nil {
		t.Error("GetPortInfo returned nil info")
		return
	}

	if info.Name != "null" {
		t.Errorf("Expected name 'null', got '%s'", info.Name)
	}

	if info.Path != "/dev/null" {
		t.Errorf("Expected path '/dev/null', got '%s'", info.Path)
	}

	if info.Description == "" {
		t.Error("Description should not be empty")
	}

	_, err = GetPortInfo("/dev/nonexistent")
	if err == nil {
		t.Error("Expected error for non-existent device")
	}
	if err != ErrDeviceNotFound {
		t.Errorf("Expected ErrDeviceNotFound, got %v", err)
	}
}

// TestPortFiltering tests that we correctly filter different types of devices
func TestPortFiltering(t *testing.T) {
	testDevices := []struct {
		name        string
		shouldMatch bool
	}{
		{"ttyUSB0", true},
		{"ttyUSB1", true},
		{"ttyACM0", true},
		{"ttyS0", true},
		{"ttyAMA0", true},
		{"tty1", false},    // Virtual terminal - should be excluded
		{"tty2", false},    // Virtual terminal - should be excluded
		{"console", false}, // Console - should be excluded
		{"ptmx", false},    // Pseudo-terminal - should be excluded
		{"ptyp0", false},   // Pseudo-terminal - should be excluded
		{"random", false},  // Not a serial device
		{"urandom", false}, // Not a serial device
	}

	for _, device := range testDevices {
		matched := matchesSerialPattern(device.name)
		excluded := matchesExcludePattern(device.name)

		expectedMatch := device.shouldMatch && !excluded

		if matched != expectedMatch {
			t.Errorf("Device %s: expected match=%v, got match=%v (excluded=%v)",
				device.name, expectedMatch, matched, excluded)
		}
	}
}

// TestEnrichUSBInfo builds a fake sysfs tree and verifies attribute extraction
func TestEnrichUSBInfo(t *testing.T) {
	root := t.TempDir()

	// Layout: <usbdev>/<iface>/<converter>, with the tty class entry's
	// "device" symlink pointing at the converter level like a ttyUSB device
	usbDev := filepath.Join(root, "usb1", "1-4")
	iface := filepath.Join(usbDev, "1-4:1.0")
	converter := filepath.Join(iface, "ttyUSB7")
	if err := os.MkdirAll(converter, 0o755); err != nil {
		t.Fatal(err)
	}

	attrs := map[string]string{
		"idVendor":     "1a86",
		"idProduct":    "7523",
		"serial":       "PSU001",
		"manufacturer": "QJE",
		"product":      "USB Serial",
		"busnum":       "1",
		"devnum":       "9",
	}
	for name, value := range attrs {
		if err := os.WriteFile(filepath.Join(usbDev, name), []byte(value+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(iface, "bInterfaceNumber"), []byte("00\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	classDir := filepath.Join(root, "class", "tty", "ttyUSB7")
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(converter, filepath.Join(classDir, "device")); err != nil {
		t.Fatal(err)
	}

	oldRoot := sysTTYRoot
	sysTTYRoot = filepath.Join(root, "class", "tty")
	defer func() { sysTTYRoot = oldRoot }()

	info := &PortInfo{Name: "ttyUSB7"}
	enrichUSBInfo(info)

	if info.VendorID != "1a86" {
		t.Errorf("VendorID = %q, want 1a86", info.VendorID)
	}
	if info.ProductID != "7523" {
		t.Errorf("ProductID = %q, want 7523", info.ProductID)
	}
	if info.SerialNumber != "PSU001" {
		t.Errorf("SerialNumber = %q, want PSU001", info.SerialNumber)
	}
	if info.Manufacturer != "QJE" {
		t.Errorf("Manufacturer = %q, want QJE", info.Manufacturer)
	}
	if info.BusNumber != "1" || info.DeviceNumber != "9" {
		t.Errorf("Bus/Device = %q/%q, want 1/9", info.BusNumber, info.DeviceNumber)
	}
}

func TestEnrichUSBInfoMissingSysfs(t *testing.T) {
	oldRoot := sysTTYRoot
	sysTTYRoot = "/nonexistent/sys/class/tty"
	defer func() { sysTTYRoot = oldRoot }()

	info := &PortInfo{Name: "ttyUSB0"}
	enrichUSBInfo(info)

	if info.VendorID != "" || info.SerialNumber != "" {
		t.Errorf("expected empty USB metadata, got %+v", info)
	}
}

// BenchmarkListPorts benchmarks the ListPorts function
func BenchmarkListPorts(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := ListPorts()
		if err != nil {
			b.Errorf("ListPorts failed: %v", err)
		}
	}
}

// TestListPortsIntegration is an integration test that requires actual system
func TestListPortsIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ports, err := ListPorts()
	if err != nil {
		t.Fatalf("ListPorts failed: %v", err)
	}

	t.Logf("Found %d serial ports:", len(ports))
	for i, port := range ports {
		info, err := GetPortInfo(port)
		if err != nil {
			t.Logf("  %d. %s (error getting info: %v)", i+1, port, err)
		} else {
			t.Logf("  %d. %s (%s)", i+1, port, info.Description)
		}
	}

	for _, port := range ports {
		stat, err := os.Stat(port)
		if err != nil {
			t.Errorf("Cannot stat port %s: %v", port, err)
			continue
		}

		if stat.Mode()&os.ModeCharDevice == 0 {
			t.Errorf("Port %s is not a character device", port)
		}
	}
}
