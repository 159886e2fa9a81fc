// Copyright 2018 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allows you to create a "host" that emulates a computer system
// with a Game Boy CPU, 64K of flat memory, a built-in debugger, and other
// useful tools.
//
// Within the host it is possible to load machine code into memory, debug
// and step through machine code, measure the number of CPU cycles elapsed,
// set address and data breakpoints, dump the contents of memory,
// disassemble the contents of memory, and manipulate CPU registers and
// memory.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/beevik/cmd"
	"github.com/beevik/gbcpu/cpu"
	"github.com/beevik/gbcpu/disasm"
	"github.com/sirupsen/logrus"
)

// Errors
var (
	ErrQuit        = errors.New("quit")
	ErrInterrupted = errors.New("interrupted")
	ErrCycleLimit  = errors.New("cycle limit reached")
)

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles
	displayAnnotations

	displayAll = displayRegisters | displayCycles | displayAnnotations
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
	stateInterrupted
)

// A selection is a command found in the command tree together with the
// arguments that followed it on the line.
type selection struct {
	command *cmd.Command
	args    []string
}

// A Host represents a fully emulated Game Boy CPU, 64K of memory, a
// built-in debugger, and other useful tools.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	log         *logrus.Logger
	mem         *cpu.FlatMemory
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	lastCmd     *selection
	state       state
	interrupt   atomic.Bool
	settings    *settings
	annotations map[uint16]string
}

// New creates a new host environment. Diagnostics are written to the
// logger; if it is nil, the logrus standard logger is used.
func New(log *logrus.Logger) *Host {
	if log == nil {
		log = logrus.StandardLogger()
	}

	h := &Host{
		output:      bufio.NewWriter(os.Stdout),
		log:         log,
		state:       stateProcessingCommands,
		settings:    newSettings(),
		annotations: make(map[uint16]string),
	}

	// Create the emulated CPU and memory.
	h.mem = cpu.NewFlatMemory()
	h.cpu = cpu.NewCPU(h.mem)

	// Create a CPU debugger and attach it to the CPU.
	h.debugger = cpu.NewDebugger(newDebugHandler(h))
	h.cpu.AttachDebugger(h.debugger)

	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered.
//
// RunCommands returns ErrQuit if a quit command was processed and nil when
// the reader is exhausted.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) error {
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
	}

	h.displayPC()
	return h.processCommands(bufio.NewScanner(r))
}

func (h *Host) processCommands(input *bufio.Scanner) error {
	prevInput := h.input
	h.input = input
	defer func() { h.input = prevInput }()

	for {
		h.prompt()

		line, err := h.getLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		var c selection
		switch {
		case line != "":
			n, args, err := cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}

			// A subtree name alone lists the subtree's commands.
			if t, ok := n.(*cmd.Tree); ok {
				t.DisplayHelp(h.output)
				h.flush()
				continue
			}
			c = selection{command: n.(*cmd.Command), args: args}

		case h.lastCmd != nil && h.interactive:
			c = *h.lastCmd

		default:
			continue
		}
		h.lastCmd = &c

		handler, ok := c.command.Data.(func(*Host, selection) error)
		if !ok {
			continue
		}
		if err := handler(h, c); err != nil {
			return err
		}
	}
}

// Break interrupts a running CPU. It may be called from any goroutine.
func (h *Host) Break() {
	h.interrupt.Store(true)
}

// SetTrace enables or disables logging of every executed instruction at
// debug level.
func (h *Host) SetTrace(on bool) {
	h.settings.Trace = on
	h.syncTrace()
}

// syncTrace raises the logger to debug level while tracing is on, so
// traced instructions are not filtered out.
func (h *Host) syncTrace() {
	if h.settings.Trace && !h.log.IsLevelEnabled(logrus.DebugLevel) {
		h.log.SetLevel(logrus.DebugLevel)
	}
}

// Load reads a raw binary file into memory at addr and points the program
// counter at it. It returns the number of bytes loaded.
func (h *Host) Load(filename string, addr uint16) (int, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return 0, err
	}
	if len(b) > 0x10000 {
		return 0, fmt.Errorf("'%s' does not fit in the address space", filepath.Base(filename))
	}

	h.cpu.Mem.StoreBytes(addr, b)
	h.cpu.SetPC(addr)
	h.cpu.Resume()
	h.settings.NextDisasmAddr = addr

	h.log.WithFields(logrus.Fields{
		"file":   filepath.Base(filename),
		"origin": fmt.Sprintf("$%04X", addr),
		"bytes":  len(b),
	}).Info("binary loaded")
	return len(b), nil
}

// Run executes instructions from the current program counter until the
// CPU halts or a breakpoint is hit, in which case it returns nil. It
// returns ErrInterrupted after a call to Break, ErrCycleLimit once
// maxCycles machine cycles have elapsed (0 means no limit), and an
// *cpu.IllegalOpcodeError if an undefined opcode is fetched.
func (h *Host) Run(maxCycles int) error {
	h.interrupt.Store(false)
	start := h.cpu.Clock.M

	h.state = stateRunning
	defer func() { h.state = stateProcessingCommands }()

	for {
		if err := h.step(); err != nil {
			return err
		}
		switch {
		case h.state == stateBreakpoint:
			return nil
		case h.state == stateInterrupted:
			return ErrInterrupted
		case h.cpu.Halted():
			return nil
		case maxCycles > 0 && h.cpu.Clock.M-start >= uint64(maxCycles):
			return ErrCycleLimit
		}
	}
}

// RegisterString returns the register contents and the elapsed machine
// cycles on a single line.
func (h *Host) RegisterString() string {
	return fmt.Sprintf("%s M=%d T=%d", disasm.GetRegisterString(&h.cpu.Reg), h.cpu.Clock.M, h.cpu.Clock.T)
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return strings.TrimSpace(h.input.Text()), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.print("* ")
		h.flush()
	}
}

func (h *Host) displayPC() {
	if h.interactive {
		d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
		h.println(d)
	}
}

func (h *Host) cmdAnnotate(c selection) error {
	if len(c.args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	annotation := strings.Join(c.args[1:], " ")
	if annotation == "" {
		delete(h.annotations, addr)
		h.printf("Annotation removed at $%04X.\n", addr)
	} else {
		h.annotations[addr] = annotation
		h.printf("Annotation added at $%04X.\n", addr)
	}
	return nil
}

func (h *Host) cmdBreakpointList(c selection) error {
	h.println("Addr  Enabled")
	h.println("----- -------")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%04X %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c selection) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c selection) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	if h.debugger.GetBreakpoint(addr) == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	h.debugger.RemoveBreakpoint(addr)
	h.printf("Breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(c selection) error {
	return h.enableBreakpoint(c, true)
}

func (h *Host) cmdBreakpointDisable(c selection) error {
	return h.enableBreakpoint(c, false)
}

func (h *Host) enableBreakpoint(c selection, enable bool) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	h.printf("Breakpoint at $%04X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDataBreakpointList(c selection) error {
	h.println("Addr  Enabled  Value")
	h.println("----- -------  -----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		if b.Conditional {
			h.printf("$%04X %-5v    $%02X\n", b.Address, !b.Disabled, b.Value)
		} else {
			h.printf("$%04X %-5v    <none>\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c selection) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	if len(c.args) > 1 {
		value, err := h.parseExpr(c.args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, byte(value))
		h.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, byte(value))
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%04X.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c selection) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	if h.debugger.GetDataBreakpoint(addr) == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	h.debugger.RemoveDataBreakpoint(addr)
	h.printf("Data breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c selection) error {
	return h.enableDataBreakpoint(c, true)
}

func (h *Host) cmdDataBreakpointDisable(c selection) error {
	return h.enableDataBreakpoint(c, false)
}

func (h *Host) enableDataBreakpoint(c selection, enable bool) error {
	addr, ok := h.addressArg(c)
	if !ok {
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	h.printf("Data breakpoint at $%04X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDisassemble(c selection) error {
	addr := h.settings.NextDisasmAddr
	if len(c.args) > 0 && c.args[0] != "$" {
		a, err := h.parseExpr(c.args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	lines := h.settings.DisasmLines
	if len(c.args) > 1 {
		l, err := h.parseValue(c.args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		d, next := h.disassemble(addr, displayAnnotations)
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	h.lastCmd.args = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdEvaluate(c selection) error {
	if len(c.args) < 1 {
		h.displayUsage(c)
		return nil
	}

	v, err := h.parseValue(strings.Join(c.args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("$%04X (%d)\n", uint16(v), v)
	return nil
}

func (h *Host) cmdExecute(c selection) error {
	if len(c.args) < 1 {
		h.displayUsage(c)
		return nil
	}

	file, err := os.Open(c.args[0])
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(c.args[0]), err)
		return nil
	}
	defer file.Close()

	interactive := h.interactive
	h.interactive = false
	defer func() { h.interactive = interactive }()

	return h.processCommands(bufio.NewScanner(file))
}

func (h *Host) cmdHelp(c selection) error {
	switch err := cmds.GetHelp(h.output, c.args); {
	case err == cmd.ErrAmbiguous:
		h.println("Command is ambiguous.")
	case err != nil:
		h.println("Command not found.")
	}
	h.flush()
	return nil
}

func (h *Host) cmdLoad(c selection) error {
	if len(c.args) < 2 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	n, err := h.Load(c.args[0], addr)
	if err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(c.args[0]), err)
		return nil
	}
	if n > 0 {
		h.printf("Loaded '%s' to $%04X..$%04X.\n", filepath.Base(c.args[0]), addr, addr+uint16(n-1))
	} else {
		h.printf("Loaded '%s' (empty).\n", filepath.Base(c.args[0]))
	}
	return nil
}

func (h *Host) cmdMemoryDump(c selection) error {
	addr := h.settings.NextMemDumpAddr
	if len(c.args) > 0 && c.args[0] != "$" {
		a, err := h.parseExpr(c.args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := h.settings.MemDumpBytes
	if len(c.args) > 1 {
		n, err := h.parseValue(c.args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		bytes = int(n)
	}
	if bytes <= 0 {
		return nil
	}

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = addr + uint16(bytes)
	h.lastCmd.args = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(c selection) error {
	if len(c.args) < 2 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := make([]byte, 0, len(c.args)-1)
	for _, arg := range c.args[1:] {
		v, err := h.parseValue(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		b = append(b, byte(v))
	}

	h.cpu.Mem.StoreBytes(addr, b)
	h.printf("Memory set at $%04X..$%04X.\n", addr, addr+uint16(len(b)-1))
	return nil
}

func (h *Host) cmdMemoryCopy(c selection) error {
	if len(c.args) < 3 {
		h.displayUsage(c)
		return nil
	}

	var addr [3]uint16
	for i := range addr {
		a, err := h.parseExpr(c.args[i])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr[i] = a
	}

	dst, begin, end := addr[0], addr[1], addr[2]
	if end < begin {
		h.println("Source range is empty.")
		return nil
	}

	b := make([]byte, int(end-begin)+1)
	h.cpu.Mem.LoadBytes(begin, b)
	h.cpu.Mem.StoreBytes(dst, b)
	h.printf("Copied $%04X..$%04X to $%04X.\n", begin, end, dst)
	return nil
}

func (h *Host) cmdQuit(c selection) error {
	return ErrQuit
}

func (h *Host) cmdRegister(c selection) error {
	switch len(c.args) {
	case 0:
		d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
		h.println(d)
	case 1:
		h.displayUsage(c)
	default:
		v, err := h.parseValue(strings.Join(c.args[1:], " "))
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if !h.setRegister(c.args[0], v) {
			h.printf("Register '%s' not found.\n", c.args[0])
		}
	}
	return nil
}

func (h *Host) cmdReset(c selection) error {
	h.cpu.Reset()
	h.settings.NextDisasmAddr = 0
	h.println("CPU reset.")
	return nil
}

func (h *Host) cmdRun(c selection) error {
	if len(c.args) > 0 {
		pc, err := h.parseExpr(c.args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.SetPC(pc)
		h.cpu.Resume()
	}

	if h.interactive {
		h.printf("Running from $%04X. Press ctrl-C to break.\n", h.cpu.Reg.PC)
	}

	h.reportStop(h.Run(h.settings.MaxRunCycles))
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdSet(c selection) error {
	switch len(c.args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c)

	default:
		key, value := c.args[0], strings.Join(c.args[1:], " ")

		// Setting a register?
		if v, err := h.parseValue(value); err == nil && h.setRegister(key, v) {
			return nil
		}

		if err := h.settings.Set(key, value, h.parseValue); err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.syncTrace()
		h.println("Setting updated.")
	}
	return nil
}

func (h *Host) cmdStep(c selection) error {
	count := 1
	if len(c.args) > 0 {
		n, err := h.parseValue(c.args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = int(n)
	}

	h.interrupt.Store(false)
	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		if err := h.step(); err != nil {
			h.reportStop(err)
			break
		}
		switch {
		case i == h.settings.MaxStepLines:
			h.println("...")
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
	}
	if h.state == stateInterrupted {
		h.reportStop(ErrInterrupted)
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

// step executes a single instruction. It returns an error only for an
// illegal opcode.
func (h *Host) step() error {
	if h.settings.Trace {
		line, _ := disasm.Disassemble(h.cpu, h.cpu.Reg.PC)
		h.log.WithFields(logrus.Fields{
			"pc":   fmt.Sprintf("$%04X", h.cpu.Reg.PC),
			"inst": line,
			"regs": disasm.GetRegisterString(&h.cpu.Reg),
		}).Debug("step")
	}

	if _, err := h.cpu.Step(); err != nil {
		var ie *cpu.IllegalOpcodeError
		if errors.As(err, &ie) {
			h.log.WithFields(logrus.Fields{
				"pc":     fmt.Sprintf("$%04X", ie.Addr),
				"opcode": fmt.Sprintf("$%02X", ie.Opcode),
				"cb":     ie.Prefixed,
			}).Error("illegal opcode")
		}
		h.state = stateProcessingCommands
		return err
	}

	if h.interrupt.Swap(false) && h.state == stateRunning {
		h.state = stateInterrupted
	}
	return nil
}

func (h *Host) reportStop(err error) {
	var ie *cpu.IllegalOpcodeError
	switch {
	case err == nil:
		if h.cpu.Halted() {
			h.printf("CPU halted at $%04X.\n", h.cpu.Reg.PC)
		}
	case errors.As(err, &ie):
		if ie.Prefixed {
			h.printf("Illegal opcode $CB $%02X at $%04X.\n", ie.Opcode, ie.Addr)
		} else {
			h.printf("Illegal opcode $%02X at $%04X.\n", ie.Opcode, ie.Addr)
		}
	case err == ErrInterrupted:
		h.println("Interrupted.")
		h.displayPC()
	case err == ErrCycleLimit:
		h.printf("Cycle limit reached at $%04X.\n", h.cpu.Reg.PC)
	default:
		h.printf("ERROR: %v.\n", err)
	}
}

// setRegister assigns v to the register or flag with the given name. It
// returns false if there is no such register.
func (h *Host) setRegister(name string, v int64) bool {
	if name == "." {
		name = "pc"
	}

	if r, ok := cpu.ParseReg8(name); ok {
		h.cpu.Reg.Set8(r, int(v))
		h.printf("Register %s set to $%02X.\n", r, h.cpu.Reg.Get8(r))
		return true
	}
	if r, ok := cpu.ParseReg16(name); ok {
		h.cpu.Reg.Set16(r, int(v))
		h.printf("Register %s set to $%04X.\n", r, h.cpu.Reg.Get16(r))
		return true
	}

	var bit byte
	switch strings.ToLower(name) {
	case "zero":
		bit = cpu.ZeroBit
	case "subtract":
		bit = cpu.SubtractBit
	case "halfcarry":
		bit = cpu.HalfCarryBit
	case "carry":
		bit = cpu.CarryBit
	default:
		return false
	}
	h.cpu.Reg.SetFlag(bit, v != 0)
	h.printf("Flag %s set to %v.\n", strings.ToLower(name), v != 0)
	return true
}

func (h *Host) addressArg(c selection) (uint16, bool) {
	if len(c.args) < 1 {
		h.displayUsage(c)
		return 0, false
	}

	addr, err := h.parseExpr(c.args[0])
	if err != nil {
		h.printf("%v\n", err)
		return 0, false
	}
	return addr, true
}

func (h *Host) disassemble(addr uint16, flags displayFlags) (str string, next uint16) {
	var line string
	line, next = disasm.Disassemble(h.cpu, addr)

	b := make([]byte, next-addr)
	h.cpu.Mem.LoadBytes(addr, b)

	str = fmt.Sprintf("%04X-   %-8s    %-15s", addr, codeString(b), line)

	if (flags & displayRegisters) != 0 {
		str += " " + disasm.GetRegisterString(&h.cpu.Reg)
	}

	if (flags & displayCycles) != 0 {
		str += fmt.Sprintf(" M=%-10d", h.cpu.Clock.M)
	}

	if (flags & displayAnnotations) != 0 {
		if anno, ok := h.annotations[addr]; ok {
			str += " ; " + anno
		}
	}

	return str, next
}

func (h *Host) dumpMemory(addr0 uint16, bytes int) {
	addr1 := addr0 + uint16(bytes-1)
	if addr1 < addr0 || bytes > 0x10000 {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:4])
		for a, c1, c2 := uint32(addr0), 6, 32; a <= uint32(addr1); a, c1, c2 = a+1, c1+3, c2+1 {
			m := h.cpu.Mem.LoadByte(uint16(a))
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0xffff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	a := uint16(start)
	for r := start; r < stop; r += 8 {
		addrToBuf(a, buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= addr0 && a <= addr1 {
				m := h.cpu.Mem.LoadByte(a)
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) displayUsage(c selection) {
	if c.command.Usage != "" {
		h.printf("Syntax: %s\n", c.command.Usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) onBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	h.state = stateBreakpoint
	h.printf("Breakpoint hit at $%04X.\n", b.Address)
	h.displayPC()
}

func (h *Host) onDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h.printf("Data breakpoint hit on address $%04X.\n", b.Address)

	h.state = stateBreakpoint

	if c.LastPC != c.Reg.PC {
		d, _ := h.disassemble(c.LastPC, displayAll)
		h.println(d)
	}

	h.displayPC()
}

func enabledString(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
