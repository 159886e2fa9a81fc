// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a Game Boy (LR35902) CPU instruction
// set and interpreter.
package cpu

import (
	"errors"
	"fmt"
)

// State is the execution state of the CPU.
type State byte

const (
	// Running CPUs fetch and execute instructions.
	Running State = iota

	// Halted CPUs have executed HALT or STOP. Each Step idles for one
	// machine cycle until Resume is called.
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	default:
		return fmt.Sprintf("State(%d)", byte(s))
	}
}

// Errors
var (
	ErrIllegalOpcode = errors.New("illegal opcode")
)

// IllegalOpcodeError is returned by Step when the fetched opcode has no
// instruction. It wraps ErrIllegalOpcode.
type IllegalOpcodeError struct {
	Addr     uint16 // address of the first opcode byte
	Opcode   byte   // the undefined opcode
	Prefixed bool   // true if the opcode followed the 0xCB prefix
}

func (e *IllegalOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("illegal opcode $CB $%02X at $%04X", e.Opcode, e.Addr)
	}
	return fmt.Sprintf("illegal opcode $%02X at $%04X", e.Opcode, e.Addr)
}

func (e *IllegalOpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}

// CPU represents a single Game Boy CPU. It owns its registers, clock and
// instruction set, and is bound to a memory.
type CPU struct {
	Reg      Registers       // CPU registers
	Clock    Clock           // elapsed machine cycles and clock ticks
	Mem      Memory          // assigned memory
	LastPC   uint16          // address of the last executed instruction
	InstSet  *InstructionSet // instruction set used by the CPU
	state    State
	debugger *Debugger
	dmem     debugMemory
}

// NewCPU creates an emulated CPU bound to the specified memory. The CPU
// starts reset.
func NewCPU(m Memory) *CPU {
	cpu := &CPU{
		Mem:     m,
		InstSet: NewInstructionSet(),
	}
	cpu.dmem.cpu = cpu
	cpu.Reset()
	return cpu
}

// Reset zeroes all registers and the clock and puts the CPU in the
// running state.
func (cpu *CPU) Reset() {
	cpu.Reg.Init()
	cpu.Clock.Reset()
	cpu.LastPC = 0
	cpu.state = Running
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
}

// State returns the current execution state.
func (cpu *CPU) State() State {
	return cpu.state
}

// Halted returns true if the CPU has executed a halt-class instruction
// and has not been resumed.
func (cpu *CPU) Halted() bool {
	return cpu.state == Halted
}

// Resume returns a halted CPU to the running state. It is the hook used
// by whatever wakes the CPU (an interrupt source, a debugger).
func (cpu *CPU) Resume() {
	cpu.state = Running
}

// Snapshot returns copies of the registers and the clock.
func (cpu *CPU) Snapshot() (Registers, Clock) {
	return cpu.Reg, cpu.Clock
}

// GetInstruction returns the instruction whose encoding starts at the
// requested address, following the 0xCB prefix if present.
func (cpu *CPU) GetInstruction(addr uint16) Instruction {
	inst := cpu.InstSet.Lookup(cpu.Mem.LoadByte(addr))
	if inst.Kind == Prefix {
		inst = cpu.InstSet.LookupPrefixed(cpu.Mem.LoadByte(addr + 1))
	}
	return inst
}

// Step the cpu by one instruction and return the number of machine
// cycles consumed.
//
// If the opcode is undefined, Step returns an *IllegalOpcodeError. The
// program counter is left past the fetched opcode bytes and nothing else
// is modified.
func (cpu *CPU) Step() (int, error) {
	if cpu.state == Halted {
		cpu.Clock.Tick(1)
		return 1, nil
	}

	// Fetch the opcode and advance the PC.
	pc := cpu.Reg.PC
	opcode := cpu.Mem.LoadByte(cpu.Reg.PC)
	cpu.Reg.PC++

	inst := cpu.InstSet.Lookup(opcode)
	if inst.Kind == Prefix {
		opcode = cpu.Mem.LoadByte(cpu.Reg.PC)
		cpu.Reg.PC++
		inst = cpu.InstSet.LookupPrefixed(opcode)
	}

	switch inst.Kind {
	case Implemented:
	case Undefined:
		return 0, &IllegalOpcodeError{Addr: pc, Opcode: opcode, Prefixed: inst.Prefixed}
	default:
		panic(fmt.Sprintf("cpu: unexpected %s slot at $%04X", inst.Kind, pc))
	}

	// Execute the instruction and charge its cost.
	cpu.LastPC = pc
	cycles := inst.Execute(&cpu.Reg, cpu.bus())
	cpu.Clock.Tick(cycles)

	if inst.Halt {
		cpu.state = Halted
	}

	// Update the debugger so it can handle breakpoints.
	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}

	return cycles, nil
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a byte
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
}

// DetachDebugger detaches the current debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
}

// bus returns the memory seen by executing instructions. It always
// resolves to the CPU's current Mem.
func (cpu *CPU) bus() Memory {
	if cpu.debugger == nil {
		return cpu.Mem
	}
	return &cpu.dmem
}

// debugMemory forwards all accesses to the CPU's memory and reports
// stores to the attached debugger.
type debugMemory struct {
	cpu *CPU
}

func (m *debugMemory) LoadByte(addr uint16) byte {
	return m.cpu.Mem.LoadByte(addr)
}

func (m *debugMemory) LoadBytes(addr uint16, b []byte) {
	m.cpu.Mem.LoadBytes(addr, b)
}

func (m *debugMemory) LoadWord(addr uint16) uint16 {
	return m.cpu.Mem.LoadWord(addr)
}

func (m *debugMemory) StoreByte(addr uint16, v byte) {
	m.cpu.Mem.StoreByte(addr, v)
	if d := m.cpu.debugger; d != nil {
		d.onDataStore(m.cpu, addr, v)
	}
}

func (m *debugMemory) StoreBytes(addr uint16, b []byte) {
	for i, v := range b {
		m.StoreByte(addr+uint16(i), v)
	}
}

func (m *debugMemory) StoreWord(addr uint16, v uint16) {
	m.StoreByte(addr, byte(v))
	m.StoreByte(addr+1, byte(v>>8))
}
