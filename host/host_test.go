package host

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/gbcpu/cpu"
	"github.com/sirupsen/logrus"
)

func newTestHost() *Host {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log)
}

func runScript(t *testing.T, h *Host, script string) string {
	t.Helper()
	var out strings.Builder
	if err := h.RunCommands(strings.NewReader(script), &out, false); err != nil && err != ErrQuit {
		t.Fatalf("RunCommands: %v", err)
	}
	return out.String()
}

func expectOutput(t *testing.T, out string, exp ...string) {
	t.Helper()
	for _, e := range exp {
		if !strings.Contains(out, e) {
			t.Errorf("output missing %q:\n%s", e, out)
		}
	}
}

func TestRunUntilHalt(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h,
		"memory set $c000 $3e $42 $06 $99 $76\n"+
			"run $c000\n"+
			"register\n")

	expectOutput(t, out,
		"Memory set at $C000..$C004.",
		"CPU halted at $C005.",
		"A=42",
		"BC=9900")

	if h.cpu.Clock.M != 5 {
		t.Errorf("cycles incorrect. exp: 5, got: %d", h.cpu.Clock.M)
	}
}

func TestIllegalOpcodeStopsRun(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h, "memory set $c000 $00 $d3\nrun $c000\n")

	expectOutput(t, out, "Illegal opcode $D3 at $C001.")
	if h.cpu.Reg.PC != 0xc002 {
		t.Errorf("PC incorrect. exp: $C002, got: $%04X", h.cpu.Reg.PC)
	}
}

func TestBreakpoints(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h,
		"memory set $c000 $00 $00 $00 $76\n"+
			"breakpoint add $c002\n"+
			"run $c000\n"+
			"breakpoint list\n"+
			"run\n"+
			"breakpoint remove $c002\n"+
			"breakpoint remove $c002\n")

	expectOutput(t, out,
		"Breakpoint added at $C002.",
		"Breakpoint hit at $C002.",
		"$C002 true",
		"CPU halted at $C004.",
		"Breakpoint at $C002 removed.",
		"No breakpoint was set on $C002.")
}

func TestDataBreakpoints(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h,
		"memory set $c000 $3e $01 $ea $00 $d0 $3e $02 $ea $00 $d0 $76\n"+
			"databreakpoint add $d000 2\n"+
			"run $c000\n"+
			"databreakpoint list\n")

	expectOutput(t, out,
		"Conditional data breakpoint added at $D000 for value $02.",
		"Data breakpoint hit on address $D000.",
		"$D000 true     $02")

	if h.cpu.Reg.PC != 0xc00a {
		t.Errorf("PC incorrect. exp: $C00A, got: $%04X", h.cpu.Reg.PC)
	}
}

func TestCycleLimit(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h, "set MaxRunCycles 100\nrun $c000\n")

	expectOutput(t, out, "Setting updated.", "Cycle limit reached at $C064.")
	if h.cpu.Clock.M != 100 {
		t.Errorf("cycles incorrect. exp: 100, got: %d", h.cpu.Clock.M)
	}
}

func TestStep(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h,
		"memory set $c000 $21 $ff $00 $22 $22\n"+
			"register pc $c000\n"+
			"register a $7\n"+
			"step 3\n")

	expectOutput(t, out, "Register PC set to $C000.", "Register A set to $07.")
	if hl := h.cpu.Reg.HL(); hl != 0x0101 {
		t.Errorf("HL incorrect. exp: $0101, got: $%04X", hl)
	}
	if v := h.mem.LoadByte(0x0100); v != 0x07 {
		t.Errorf("memory at $0100 incorrect. exp: $07, got: $%02X", v)
	}
}

func TestRegisterCommand(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h,
		"register hl $1234\n"+
			"register carry 1\n"+
			"set sp $fffe\n"+
			"register ix 0\n"+
			"register\n")

	expectOutput(t, out,
		"Register HL set to $1234.",
		"Flag carry set to true.",
		"Register SP set to $FFFE.",
		"Register 'ix' not found.",
		"F=[---C]")
}

func TestSettings(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h,
		"evaluate 10\n"+
			"set hexmode true\n"+
			"evaluate 10\n"+
			"set nosuch 1\n"+
			"set\n")

	expectOutput(t, out,
		"$000A (10)",
		"$0010 (16)",
		"setting 'nosuch' not found",
		"HexMode          true")
}

func TestMemoryCommands(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h,
		"memory set $c000 $47 $42\n"+
			"memory copy $c100 $c000 $c001\n"+
			"memory dump $c100 2\n")

	expectOutput(t, out, "Copied $C000..$C001 to $C100.", "C100- 47 42")
	if h.mem.LoadByte(0xc101) != 0x42 {
		t.Error("memory copy failed")
	}
}

func TestDisassembleCommand(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h,
		"memory set $c000 $3e $42 $cb $37 $d3\n"+
			"annotate $c002 swap nibbles\n"+
			"disassemble $c000 3\n")

	expectOutput(t, out,
		"C000-   3E 42       LD A,$42",
		"C002-   CB 37       SWAP A",
		"; swap nibbles",
		"C004-   D3          DB $D3")
}

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "prog.bin")
	if err := os.WriteFile(filename, []byte{0x3e, 0x11, 0x76}, 0600); err != nil {
		t.Fatal(err)
	}

	h := newTestHost()
	out := runScript(t, h, "load "+filename+" $0150\nrun\n")

	expectOutput(t, out, "Loaded 'prog.bin' to $0150..$0152.", "CPU halted at $0153.")
	if h.cpu.Reg.A != 0x11 {
		t.Errorf("A incorrect. exp: $11, got: $%02X", h.cpu.Reg.A)
	}
}

func TestQuit(t *testing.T) {
	h := newTestHost()
	var out strings.Builder
	err := h.RunCommands(strings.NewReader("quit\nregister a 1\n"), &out, false)
	if !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
	if h.cpu.Reg.A != 0 {
		t.Error("commands after quit were executed")
	}
}

func TestBreakInterruptsRun(t *testing.T) {
	h := newTestHost()
	h.output.Reset(io.Discard)

	// Run clears a stale interrupt before starting, so break from a data
	// breakpoint handler instead.
	h.debugger = cpu.NewDebugger(breakingHandler{h})
	h.cpu.AttachDebugger(h.debugger)
	h.debugger.AddDataBreakpoint(0xd000)
	h.mem.StoreBytes(0xc000, []byte{0xea, 0x00, 0xd0, 0x00, 0x00, 0x76})
	h.cpu.SetPC(0xc000)

	if err := h.Run(0); err != ErrInterrupted {
		t.Errorf("expected ErrInterrupted, got %v", err)
	}
	if h.cpu.Reg.PC != 0xc003 {
		t.Errorf("PC incorrect. exp: $C003, got: $%04X", h.cpu.Reg.PC)
	}
}

type breakingHandler struct {
	h *Host
}

func (b breakingHandler) OnBreakpoint(c *cpu.CPU, bp *cpu.Breakpoint) {}

func (b breakingHandler) OnDataBreakpoint(c *cpu.CPU, bp *cpu.DataBreakpoint) {
	b.h.Break()
}

func TestParseValue(t *testing.T) {
	h := newTestHost()
	h.cpu.Reg.SetHL(0xc000)
	h.cpu.Reg.A = 0x12
	h.cpu.Reg.PC = 0x0150

	tests := []struct {
		s   string
		exp int64
	}{
		{"10", 10},
		{"$10", 16},
		{"0x1F", 31},
		{"%101", 5},
		{"'A'", 65},
		{"hl", 0xc000},
		{"HL+2", 0xc002},
		{"a - 2", 0x10},
		{".", 0x0150},
		{"$c000-$10+1", 0xbff1},
		{"-1", -1},
		{"5--3", 8},
	}
	for _, test := range tests {
		v, err := h.parseValue(test.s)
		if err != nil {
			t.Errorf("parseValue(%q): %v", test.s, err)
			continue
		}
		if v != test.exp {
			t.Errorf("parseValue(%q) incorrect. exp: %d, got: %d", test.s, test.exp, v)
		}
	}

	for _, s := range []string{"", "zz", "$", "1 2", "%12"} {
		if _, err := h.parseValue(s); err == nil {
			t.Errorf("parseValue(%q) should fail", s)
		}
	}

	if v, _ := h.parseExpr("-1"); v != 0xffff {
		t.Errorf("parseExpr(-1) incorrect. exp: $FFFF, got: $%04X", v)
	}
}

func TestTraceSetting(t *testing.T) {
	var logs strings.Builder
	log := logrus.New()
	log.SetOutput(&logs)
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	h := New(log)

	runScript(t, h, "memory set $c000 $00 $00\nregister pc $c000\nstep\n")
	if logs.Len() != 0 {
		t.Errorf("step logged with trace off:\n%s", logs.String())
	}

	out := runScript(t, h, "set trace on\nstep\n")
	expectOutput(t, out, "Setting updated.")
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		t.Error("trace did not raise the log level")
	}
	expectOutput(t, logs.String(), "msg=step", "inst=NOP", "C001")
}

func TestHelp(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h,
		"help\n"+
			"breakpoint\n"+
			"help memory copy\n"+
			"help nosuch\n"+
			"bl\n")

	expectOutput(t, out,
		"gbcpu commands:",
		"databreakpoint",
		"breakpoint commands:",
		"Add a breakpoint",
		"Usage: memory copy <dst addr> <src addr begin> <src addr end>",
		"Shortcut: mc",
		"Command not found.",
		"Addr  Enabled")
}

func TestSettingErrors(t *testing.T) {
	h := newTestHost()
	out := runScript(t, h,
		"set m 5\n"+
			"set memdump 0\n"+
			"set hexmode maybe\n"+
			"set maxrun 50\n")

	expectOutput(t, out,
		"setting 'm' is ambiguous",
		"MemDumpBytes must be at least 1",
		"invalid bool value 'maybe'",
		"Setting updated.")
	if h.settings.MemDumpBytes != 64 {
		t.Errorf("MemDumpBytes incorrect. exp: 64, got: %d", h.settings.MemDumpBytes)
	}
	if h.settings.MaxRunCycles != 50 {
		t.Errorf("MaxRunCycles incorrect. exp: 50, got: %d", h.settings.MaxRunCycles)
	}
}
