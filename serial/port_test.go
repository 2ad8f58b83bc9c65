package serial

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestOpenNonExistentDevice(t *testing.T) {
	_, err := Open("/dev/nonexistent")
	if err == nil {
		t.Error("Expected error when opening non-existent device")
	}
	if err != ErrDeviceNotFound {
		t.Errorf("Expected ErrDeviceNotFound, got %v", err)
	}
}

func TestOpenInvalidOption(t *testing.T) {
	_, err := Open("/dev/null", WithBaudRate(123456))
	if err != ErrInvalidBaudRate {
		t.Errorf("Expected ErrInvalidBaudRate, got %v", err)
	}
}

func TestMapOpenError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"ENOENT", unix.ENOENT, ErrDeviceNotFound},
		{"EACCES", unix.EACCES, ErrPermissionDenied},
		{"EBUSY", unix.EBUSY, ErrDeviceInUse},
		{"EIO passthrough", unix.EIO, unix.EIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapOpenError(tt.in); got != tt.want {
				t.Errorf("mapOpenError(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClosedPortOperations(t *testing.T) {
	p := &Port{closed: true}

	if _, err := p.Read(make([]byte, 8)); err != ErrPortClosed {
		t.Errorf("Read on closed port: expected ErrPortClosed, got %v", err)
	}
	if _, err := p.Write([]byte("x")); err != ErrPortClosed {
		t.Errorf("Write on closed port: expected ErrPortClosed, got %v", err)
	}
	if err := p.Drain(); err != ErrPortClosed {
		t.Errorf("Drain on closed port: expected ErrPortClosed, got %v", err)
	}
	if err := p.FlushInput(); err != ErrPortClosed {
		t.Errorf("FlushInput on closed port: expected ErrPortClosed, got %v", err)
	}
	if err := p.FlushOutput(); err != ErrPortClosed {
		t.Errorf("FlushOutput on closed port: expected ErrPortClosed, got %v", err)
	}
	if err := p.Close(); err != ErrPortClosed {
		t.Errorf("Close on closed port: expected ErrPortClosed, got %v", err)
	}
}
