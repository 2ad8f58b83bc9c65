package main

import (
	"fmt"

	"github.com/allbin/go-psu"
)

// withSupply resolves the configured port and runs fn inside a driver
// session, after checking that a supply actually answers on the wire.
func withSupply(fn func(*psu.PSU) error) error {
	port, err := devicePort()
	if err != nil {
		return err
	}

	p := psu.New(port)
	return p.Session(func(p *psu.PSU) error {
		if !p.Available() {
			return fmt.Errorf("no supply answers on %s; check cabling and power", port)
		}
		return fn(p)
	})
}
