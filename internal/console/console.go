// Package console implements the line-oriented command interpreter behind
// the interactive PSU shell and the script runner. It owns no protocol
// knowledge; every command is argument validation plus driver calls.
package console

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/allbin/go-psu"
)

// Driver is the slice of the PSU driver the console needs. *psu.PSU
// satisfies it; tests substitute a fake.
type Driver interface {
	Open() error
	Close() error
	Available() bool
	Identify() (string, error)
	Readings() (psu.Readings, error)
	SetVoltage(volt float64) error
	SetCurrent(amps float64) error
	Apply(volt, amps float64) error
	Enable() (bool, error)
	Disable() (bool, error)
}

// DefaultPrompt is shown while no supply is connected.
const DefaultPrompt = "PSU > "

// Argument shapes, kept deliberately strict: two integer digits and two
// fractional digits for volts, one and three for amps, matching the set-point
// resolution of the hardware.
var (
	voltArg         = regexp.MustCompile(`^\d{0,2}(\.\d{0,2})?$`)
	ampsArg         = regexp.MustCompile(`^\d?(\.\d{0,3})?$`)
	setArgs         = regexp.MustCompile(`^(?P<volt>\d{0,2}(\.\d{0,2})?)[vV]\s+(?P<amps>\d?(\.\d{0,3})?)[aA]$`)
	setArgsReversed = regexp.MustCompile(`^(?P<amps>\d?(\.\d{0,3})?)[aA]\s+(?P<volt>\d{0,2}(\.\d{0,2})?)[vV]$`)
	waitArg         = regexp.MustCompile(`^[1-9][0-9]{0,3}$`)
)

// Console interprets one command line at a time against a PSU driver.
type Console struct {
	out      io.Writer
	dial     func(device string) Driver
	dev      Driver
	device   string
	identity string
	prompt   string
	sleep    func(time.Duration)
}

// Option configures a Console.
type Option func(*Console)

// WithDial substitutes the driver factory, mainly for tests.
func WithDial(dial func(device string) Driver) Option {
	return func(c *Console) { c.dial = dial }
}

// New creates a console writing its command output to out.
func New(out io.Writer, opts ...Option) *Console {
	c := &Console{
		out:    out,
		prompt: DefaultPrompt,
		sleep:  time.Sleep,
		dial: func(device string) Driver {
			return psu.New(device)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Prompt returns the current prompt: the supply's identity once connected,
// DefaultPrompt otherwise.
func (c *Console) Prompt() string {
	return c.prompt
}

// Connected reports whether a connect command has succeeded.
func (c *Console) Connected() bool {
	return c.dev != nil
}

// Identity returns the type string of the connected supply, empty while
// disconnected.
func (c *Console) Identity() string {
	return c.identity
}

// Device returns the port of the current or last attempted connection.
func (c *Console) Device() string {
	return c.device
}

// Close releases the current driver, if any.
func (c *Console) Close() {
	if c.dev != nil {
		c.dev.Close()
		c.dev = nil
	}
	c.identity = ""
	c.prompt = DefaultPrompt
}

// Exec interprets one command line. The returned flag is true when the
// console should terminate (bye / end of input).
func (c *Console) Exec(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	cmd, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)

	switch cmd {
	case "connect":
		c.doConnect(args)
	case "read":
		c.doRead(args)
	case "volt":
		c.doVolt(args)
	case "amps":
		c.doAmps(args)
	case "set":
		c.doSet(args)
	case "on":
		c.doOn(args)
	case "off":
		c.doOff(args)
	case "run":
		return c.doRun(args)
	case "wait":
		c.doWait(args)
	case "help":
		c.doHelp()
	case "bye", "exit", "quit":
		return true
	default:
		fmt.Fprintf(c.out, "Unknown command: %q. Enter \"help\" for the command list.\n", cmd)
	}
	return false
}

// withAvailable runs fn inside a per-command session, the way the original
// bench scripts did: open, probe, work, close.
func (c *Console) withAvailable(fn func(Driver)) {
	if c.dev == nil {
		c.notConnectedError()
		return
	}
	if err := c.dev.Open(); err != nil {
		c.connectionError()
		return
	}
	defer c.dev.Close()
	if !c.dev.Available() {
		c.connectionError()
		return
	}
	fn(c.dev)
}

func (c *Console) doConnect(args string) {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		c.parameterError("connect", args)
		return
	}
	device := fields[0]

	dev := c.dial(device)
	if err := dev.Open(); err != nil {
		c.dev = nil
		c.device = device
		c.connectionError()
		return
	}
	defer dev.Close()

	id, err := dev.Identify()
	if err != nil || id == "" {
		c.dev = nil
		c.device = device
		c.connectionError()
		return
	}

	c.dev = dev
	c.device = device
	c.identity = id
	c.prompt = id + " > "
}

func (c *Console) doRead(args string) {
	if args != "" {
		c.parameterError("read", args)
		return
	}
	c.withAvailable(func(d Driver) {
		r, err := d.Readings()
		if err != nil {
			fmt.Fprintf(c.out, "Read failed: %v\n", err)
			return
		}
		fmt.Fprintln(c.out, r.String())
	})
}

func (c *Console) doVolt(args string) {
	fields := strings.Fields(args)
	if len(fields) != 1 || !voltArg.MatchString(fields[0]) {
		c.parameterError("volt", args)
		return
	}
	volt, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		c.parameterError("volt", args)
		return
	}
	c.withAvailable(func(d Driver) {
		if err := d.SetVoltage(volt); err != nil {
			fmt.Fprintf(c.out, "Set voltage failed: %v\n", err)
		}
	})
}

func (c *Console) doAmps(args string) {
	fields := strings.Fields(args)
	if len(fields) != 1 || !ampsArg.MatchString(fields[0]) {
		c.parameterError("amps", args)
		return
	}
	amps, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		c.parameterError("amps", args)
		return
	}
	c.withAvailable(func(d Driver) {
		if err := d.SetCurrent(amps); err != nil {
			fmt.Fprintf(c.out, "Set current failed: %v\n", err)
		}
	})
}

func (c *Console) doSet(args string) {
	m := setArgs.FindStringSubmatch(args)
	re := setArgs
	if m == nil {
		m = setArgsReversed.FindStringSubmatch(args)
		re = setArgsReversed
	}
	if m == nil {
		c.parameterError("set", args)
		return
	}
	volt, errV := strconv.ParseFloat(m[re.SubexpIndex("volt")], 64)
	amps, errA := strconv.ParseFloat(m[re.SubexpIndex("amps")], 64)
	if errV != nil || errA != nil {
		c.parameterError("set", args)
		return
	}
	c.withAvailable(func(d Driver) {
		if err := d.Apply(volt, amps); err != nil {
			fmt.Fprintf(c.out, "Set failed: %v\n", err)
		}
	})
}

func (c *Console) doOn(args string) {
	if args != "" {
		c.parameterError("on", args)
		return
	}
	c.withAvailable(func(d Driver) {
		if _, err := d.Enable(); err != nil {
			fmt.Fprintf(c.out, "Switching output on failed: %v\n", err)
		}
	})
}

func (c *Console) doOff(args string) {
	if args != "" {
		c.parameterError("off", args)
		return
	}
	c.withAvailable(func(d Driver) {
		if _, err := d.Disable(); err != nil {
			fmt.Fprintf(c.out, "Switching output off failed: %v\n", err)
		}
	})
}

// doRun feeds the lines of a script file back through Exec. A bye inside
// the script terminates the console, like end of input would.
func (c *Console) doRun(args string) bool {
	if args == "" {
		c.parameterError("run", args)
		return false
	}
	data, err := os.ReadFile(args)
	if err != nil {
		fmt.Fprintf(c.out, "File not found: %q.\n", args)
		return false
	}
	for _, line := range strings.Split(string(data), "\n") {
		if c.Exec(line) {
			return true
		}
	}
	return false
}

func (c *Console) doWait(args string) {
	if !waitArg.MatchString(strings.TrimSpace(args)) {
		c.parameterError("wait", args)
		return
	}
	ms, _ := strconv.Atoi(strings.TrimSpace(args))
	c.sleep(time.Duration(ms) * time.Millisecond)
}

func (c *Console) doHelp() {
	fmt.Fprint(c.out, `Available commands:
  connect <port>   Connect to the PSU on a serial device. Example: "connect /dev/ttyUSB0".
  read             Show voltage, current, output state and mode. Example: "read".
  volt <v>         Set the maximum voltage. Example: "volt 3.3".
  amps <a>         Set the maximum current. Example: "amps .1".
  set <v>v <a>a    Set voltage and current together. Example: "set 9v .1a".
  on               Switch the PSU output on.
  off              Switch the PSU output off.
  run <file>       Run console commands from a text file.
  wait <ms>        Pause for the given number of milliseconds (1-9999).
  bye              Leave the console.
`)
}

func (c *Console) connectionError() {
	fmt.Fprintf(c.out, "Could not connect to a PSU on port %s.\n", c.device)
	fmt.Fprintln(c.out, "Please, check your lab setup and cabling and try again.")
	c.prompt = DefaultPrompt
	c.identity = ""
	c.dev = nil
}

func (c *Console) parameterError(cmd, args string) {
	fmt.Fprintf(c.out, "Bad parameter: %q.\n", args)
	fmt.Fprintf(c.out, "Please, try \"help\" for information about %q usage.\n", cmd)
}

func (c *Console) notConnectedError() {
	fmt.Fprintln(c.out, "PSU is disconnected. Please, use the \"connect\" command first.")
}
