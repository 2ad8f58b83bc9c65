package psu

import "errors"

var (
	// ErrShortStatus is returned when a STATUS? reply is shorter than the
	// two flag characters the protocol defines, typically after a timeout.
	ErrShortStatus = errors.New("status reply too short")

	// ErrBadReply is returned when a numeric query yields an empty or
	// non-numeric reply. The driver never retries; the caller decides.
	ErrBadReply = errors.New("malformed reply from supply")
)
