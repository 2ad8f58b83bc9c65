package psu

import (
	"errors"
	"testing"
	"time"
)

// fakeTransport is a scripted stand-in for the serial channel. Writes are
// recorded verbatim; reads consume the reply script in order, an exhausted
// script behaving like a read timeout (empty line).
type fakeTransport struct {
	openErr error
	open    bool
	opens   int
	closes  int
	writes  []string
	replies []string
}

func (f *fakeTransport) Open() error {
	if f.openErr != nil {
		return f.openErr
	}
	f.open = true
	f.opens++
	return nil
}

func (f *fakeTransport) Close() error {
	f.open = false
	f.closes++
	return nil
}

func (f *fakeTransport) IsOpen() bool { return f.open }

func (f *fakeTransport) Write(data []byte) (int, error) {
	f.writes = append(f.writes, string(data))
	return len(data), nil
}

func (f *fakeTransport) ReadLine() (string, error) {
	if len(f.replies) == 0 {
		return "", nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeTransport) Drain() error       { return nil }
func (f *fakeTransport) FlushInput() error  { return nil }
func (f *fakeTransport) FlushOutput() error { return nil }

// newTestPSU returns a driver on an open fake transport with recorded sleeps.
func newTestPSU(replies ...string) (*PSU, *fakeTransport, *[]time.Duration) {
	tr := &fakeTransport{open: true, replies: replies}
	slept := &[]time.Duration{}
	p := New("/dev/ttyUSB0", WithTransport(tr))
	p.sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return p, tr, slept
}

func TestWireFraming(t *testing.T) {
	p, tr, _ := newTestPSU()

	if err := p.SetVoltage(5); err != nil {
		t.Fatalf("SetVoltage failed: %v", err)
	}

	if len(tr.writes) != 1 {
		t.Fatalf("expected 1 write, got %d", len(tr.writes))
	}
	got := tr.writes[0]

	// The terminator must be the two literal characters backslash and 'n',
	// never a real newline byte
	if got[len(got)-2] != '\\' || got[len(got)-1] != 'n' {
		t.Errorf("command %q not terminated by literal backslash+n", got)
	}
	for i := 0; i < len(got); i++ {
		if got[i] == '\n' || got[i] == '\r' {
			t.Errorf("command %q contains a real line terminator at %d", got, i)
		}
	}
}

func TestSetVoltageClampAndFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, `VSET1: 5.00\n`},
		{0, `VSET1: 0.00\n`},
		{30, `VSET1:30.00\n`},
		{31.7, `VSET1:30.00\n`},
		{-2, `VSET1: 0.00\n`},
		{3.3, `VSET1: 3.30\n`},
		{12.34, `VSET1:12.34\n`},
	}

	for _, tt := range tests {
		p, tr, _ := newTestPSU()
		if err := p.SetVoltage(tt.in); err != nil {
			t.Fatalf("SetVoltage(%v) failed: %v", tt.in, err)
		}
		if tr.writes[0] != tt.want {
			t.Errorf("SetVoltage(%v) wrote %q, want %q", tt.in, tr.writes[0], tt.want)
		}
	}
}

func TestSetCurrentClampAndFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.5, `ISET1:0.500\n`},
		{0, `ISET1:0.000\n`},
		{30, `ISET1:30.000\n`},
		{42, `ISET1:30.000\n`},
		{-0.1, `ISET1:0.000\n`},
		{0.001, `ISET1:0.001\n`},
	}

	for _, tt := range tests {
		p, tr, _ := newTestPSU()
		if err := p.SetCurrent(tt.in); err != nil {
			t.Fatalf("SetCurrent(%v) failed: %v", tt.in, err)
		}
		if tr.writes[0] != tt.want {
			t.Errorf("SetCurrent(%v) wrote %q, want %q", tt.in, tr.writes[0], tt.want)
		}
	}
}

func TestApplyKeepsGapBetweenSetPoints(t *testing.T) {
	p, tr, slept := newTestPSU()

	if err := p.Apply(9, 0.1); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if len(tr.writes) != 2 {
		t.Fatalf("expected 2 writes, got %d: %v", len(tr.writes), tr.writes)
	}
	if tr.writes[0] != `VSET1: 9.00\n` {
		t.Errorf("first write = %q", tr.writes[0])
	}
	if tr.writes[1] != `ISET1:0.100\n` {
		t.Errorf("second write = %q", tr.writes[1])
	}
	if len(*slept) != 1 || (*slept)[0] != setPointGap {
		t.Errorf("expected one %v pause between set points, got %v", setPointGap, *slept)
	}
}

func TestStatusDerivation(t *testing.T) {
	tests := []struct {
		raw    string
		mode   Mode
		output bool
	}{
		{"10x", ModeCV, false},
		{"11x", ModeCV, true},
		{"01x", ModeCC, true},
		{"00x", ModeCC, false},
	}

	for _, tt := range tests {
		p, tr, _ := newTestPSU(tt.raw)
		st, err := p.Status()
		if err != nil {
			t.Fatalf("Status() with reply %q failed: %v", tt.raw, err)
		}
		if st.Mode != tt.mode || st.Output != tt.output {
			t.Errorf("Status() with reply %q = %+v, want mode=%s output=%v",
				tt.raw, st, tt.mode, tt.output)
		}
		if tr.writes[0] != `STATUS?\n` {
			t.Errorf("Status() wrote %q", tr.writes[0])
		}
	}
}

func TestStatusShortReply(t *testing.T) {
	for _, raw := range []string{"", "1"} {
		p, _, _ := newTestPSU(raw)
		_, err := p.Status()
		if !errors.Is(err, ErrShortStatus) {
			t.Errorf("Status() with reply %q: expected ErrShortStatus, got %v", raw, err)
		}
	}
}

func TestEnable(t *testing.T) {
	p, tr, slept := newTestPSU("11x")

	on, err := p.Enable()
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if !on {
		t.Error("Enable reported output off")
	}
	if tr.writes[0] != `OUTPUT1\n` {
		t.Errorf("first write = %q, want OUTPUT1 command", tr.writes[0])
	}
	if len(*slept) == 0 || (*slept)[0] != outputSettle {
		t.Errorf("expected %v settle after OUTPUT1, got %v", outputSettle, *slept)
	}
}

func TestDisableReportsOff(t *testing.T) {
	p, tr, _ := newTestPSU("00x")

	off, err := p.Disable()
	if err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if !off {
		t.Error("Disable reported output still on")
	}
	if tr.writes[0] != `OUTPUT0\n` {
		t.Errorf("first write = %q, want OUTPUT0 command", tr.writes[0])
	}

	// And the unhappy direction: supply still reports the output on
	p, _, _ = newTestPSU("01x")
	off, err = p.Disable()
	if err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if off {
		t.Error("Disable reported off although status says on")
	}
}

func TestEnableDisableSequence(t *testing.T) {
	p, _, _ := newTestPSU("11x", "11x", "00x")

	if on, _ := p.Enable(); !on {
		t.Error("first Enable: output not on")
	}
	// Enabling twice in a row is a no-op on final state
	if on, _ := p.Enable(); !on {
		t.Error("second Enable: output not on")
	}
	if off, _ := p.Disable(); !off {
		t.Error("Disable after Enable: output not off")
	}
}

func TestReadVoltageUsesOutputWhenEnabled(t *testing.T) {
	p, tr, slept := newTestPSU("01x", "4.98")

	volt, err := p.ReadVoltage()
	if err != nil {
		t.Fatalf("ReadVoltage failed: %v", err)
	}
	if volt != 4.98 {
		t.Errorf("ReadVoltage = %v, want 4.98", volt)
	}
	if tr.writes[1] != `VOUT1?\n` {
		t.Errorf("enabled readback wrote %q, want VOUT1?", tr.writes[1])
	}
	if len(*slept) != 0 {
		t.Errorf("unexpected pauses on VOUT1? path: %v", *slept)
	}
}

func TestReadVoltageUsesSetPointWhenDisabled(t *testing.T) {
	p, tr, slept := newTestPSU("00x", "5.00")

	volt, err := p.ReadVoltage()
	if err != nil {
		t.Fatalf("ReadVoltage failed: %v", err)
	}
	if volt != 5.0 {
		t.Errorf("ReadVoltage = %v, want 5", volt)
	}
	if tr.writes[1] != `VSET1?\n` {
		t.Errorf("disabled readback wrote %q, want VSET1?", tr.writes[1])
	}
	if len(*slept) != 1 || (*slept)[0] != setPointGap {
		t.Errorf("expected %v pause before set-point readback, got %v", setPointGap, *slept)
	}
}

func TestReadCurrentCommandSelection(t *testing.T) {
	p, tr, _ := newTestPSU("01x", "0.100")
	if _, err := p.ReadCurrent(); err != nil {
		t.Fatalf("ReadCurrent failed: %v", err)
	}
	if tr.writes[1] != `IOUT1?\n` {
		t.Errorf("enabled readback wrote %q, want IOUT1?", tr.writes[1])
	}

	p, tr, _ = newTestPSU("00x", "0.100")
	if _, err := p.ReadCurrent(); err != nil {
		t.Fatalf("ReadCurrent failed: %v", err)
	}
	if tr.writes[1] != `ISET1?\n` {
		t.Errorf("disabled readback wrote %q, want ISET1?", tr.writes[1])
	}
}

func TestMalformedNumericReply(t *testing.T) {
	// A timed out read yields an empty reply, which must be a hard failure
	p, _, _ := newTestPSU("00x", "")
	_, err := p.ReadVoltage()
	if !errors.Is(err, ErrBadReply) {
		t.Errorf("expected ErrBadReply for empty reply, got %v", err)
	}

	p, _, _ = newTestPSU("00x", "garbage")
	_, err = p.ReadVoltage()
	if !errors.Is(err, ErrBadReply) {
		t.Errorf("expected ErrBadReply for garbage reply, got %v", err)
	}
}

func TestAvailability(t *testing.T) {
	p, _, _ := newTestPSU("QJE3005PV1.0")
	if !p.Available() {
		t.Error("Available() = false for a supply that answered *IDN?")
	}

	// Timed out identity read means nothing is listening
	p, _, _ = newTestPSU()
	if p.Available() {
		t.Error("Available() = true although the identity read timed out")
	}
}

func TestIdentify(t *testing.T) {
	p, tr, _ := newTestPSU("QJE3005PV1.0")
	id, err := p.Identify()
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if id != "QJE3005PV1.0" {
		t.Errorf("Identify = %q", id)
	}
	if tr.writes[0] != `*IDN?\n` {
		t.Errorf("Identify wrote %q", tr.writes[0])
	}
}

func TestClosedSessionDefaults(t *testing.T) {
	tr := &fakeTransport{}
	p := New("/dev/ttyUSB0", WithTransport(tr))
	p.sleep = func(time.Duration) {}

	if volt, err := p.ReadVoltage(); volt != 0 || err != nil {
		t.Errorf("ReadVoltage on closed session = %v, %v", volt, err)
	}
	if amps, err := p.ReadCurrent(); amps != 0 || err != nil {
		t.Errorf("ReadCurrent on closed session = %v, %v", amps, err)
	}
	if id, err := p.Identify(); id != "" || err != nil {
		t.Errorf("Identify on closed session = %q, %v", id, err)
	}
	if st, err := p.Status(); st != (Status{}) || err != nil {
		t.Errorf("Status on closed session = %+v, %v", st, err)
	}
	if mode, err := p.Mode(); mode != "" || err != nil {
		t.Errorf("Mode on closed session = %q, %v", mode, err)
	}
	if p.Available() {
		t.Error("Available on closed session = true")
	}
	if err := p.SetVoltage(5); err != nil {
		t.Errorf("SetVoltage on closed session errored: %v", err)
	}
	if err := p.Apply(5, 0.5); err != nil {
		t.Errorf("Apply on closed session errored: %v", err)
	}
	if on, err := p.Enable(); on || err != nil {
		t.Errorf("Enable on closed session = %v, %v", on, err)
	}

	if len(tr.writes) != 0 {
		t.Errorf("closed session touched the wire: %v", tr.writes)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	tr := &fakeTransport{}
	p := New("/dev/ttyUSB0", WithTransport(tr))

	if err := p.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := p.Open(); err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	if tr.opens != 1 {
		t.Errorf("transport opened %d times, want 1", tr.opens)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	tr := &fakeTransport{}
	p := New("/dev/ttyUSB0", WithTransport(tr))

	if err := p.Close(); err != nil {
		t.Errorf("Close on never-opened session errored: %v", err)
	}
	p.Open()
	p.Close()
	p.Close()
	if tr.closes != 1 {
		t.Errorf("transport closed %d times, want 1", tr.closes)
	}
}

func TestSessionClosesOnEveryPath(t *testing.T) {
	tr := &fakeTransport{}
	p := New("/dev/ttyUSB0", WithTransport(tr))

	wantErr := errors.New("body failed")
	err := p.Session(func(*PSU) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("Session error = %v, want body error", err)
	}
	if tr.closes != 1 {
		t.Errorf("transport closed %d times after failing body, want 1", tr.closes)
	}

	if err := p.Session(func(*PSU) error { return nil }); err != nil {
		t.Errorf("Session with clean body errored: %v", err)
	}
	if tr.closes != 2 {
		t.Errorf("transport closed %d times in total, want 2", tr.closes)
	}
}

func TestSessionErrorSuppression(t *testing.T) {
	tr := &fakeTransport{}
	p := New("/dev/ttyUSB0", WithTransport(tr), WithSuppressedSessionErrors())

	err := p.Session(func(*PSU) error { return errors.New("swallowed") })
	if err != nil {
		t.Errorf("suppressed Session returned %v", err)
	}
	if tr.closes != 1 {
		t.Errorf("transport closed %d times, want 1", tr.closes)
	}

	// Open failures are never suppressed
	tr.openErr = errors.New("port gone")
	if err := p.Session(func(*PSU) error { return nil }); err == nil {
		t.Error("Session swallowed the open failure")
	}
}

func TestReadingsSnapshot(t *testing.T) {
	// volt: status (enabled) + VOUT1?; amps: status + IOUT1?; final status
	p, _, _ := newTestPSU("11x", "4.98", "11x", "0.050", "11x")

	r, err := p.Readings()
	if err != nil {
		t.Fatalf("Readings failed: %v", err)
	}
	want := Readings{Volt: 4.98, Amps: 0.05, Enabled: true, Mode: ModeCV}
	if r != want {
		t.Errorf("Readings = %+v, want %+v", r, want)
	}
}

// The bench scenario: probe the supply, then switch the output on.
func TestEnableScenario(t *testing.T) {
	tr := &fakeTransport{replies: []string{"QJE3005PV1.0", "11x"}}
	var slept []time.Duration
	p := New("/dev/ttyUSB0", WithTransport(tr))
	p.sleep = func(d time.Duration) { slept = append(slept, d) }

	err := p.Session(func(p *PSU) error {
		if !p.Available() {
			t.Fatal("supply not available")
		}
		on, err := p.Enable()
		if err != nil {
			return err
		}
		if !on {
			t.Error("Enable reported off")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}

	if tr.writes[0] != `*IDN?\n` || tr.writes[1] != `OUTPUT1\n` || tr.writes[2] != `STATUS?\n` {
		t.Errorf("unexpected command sequence: %v", tr.writes)
	}
	if len(slept) != 1 || slept[0] != outputSettle {
		t.Errorf("expected one %v settle, got %v", outputSettle, slept)
	}
	if tr.closes != 1 {
		t.Errorf("transport closed %d times, want 1", tr.closes)
	}
}
