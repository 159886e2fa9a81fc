// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "fmt"

// Kind tags each slot of an instruction set.
type Kind byte

const (
	// Undefined slots have no instruction. Executing one is an error.
	Undefined Kind = iota

	// Implemented slots hold an executable instruction.
	Implemented

	// Prefix slots select the secondary (0xCB) instruction table using
	// the byte that follows.
	Prefix
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Implemented:
		return "implemented"
	case Prefix:
		return "prefix"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// PrefixCB is the opcode that selects the secondary instruction table.
const PrefixCB = 0xcb

// An opfunc performs one instruction's worth of register and memory
// mutation. Operand bytes are consumed by advancing PC.
type opfunc func(r *Registers, m Memory)

// An Instruction describes a CPU instruction, including its name, its
// opcode, its encoded length in bytes and its cost in machine cycles.
//
// Operand placeholders in the name describe the bytes that follow the
// opcode: d8 (immediate byte), a8 (offset into the $FF00 page), e8
// (signed byte), d16 (immediate word) and a16 (absolute address).
type Instruction struct {
	Kind     Kind   // slot tag
	Name     string // mnemonic, e.g. "LD A,(HL+)"
	Opcode   byte   // opcode byte (second byte for prefixed instructions)
	Prefixed bool   // true if the instruction lives in the 0xCB table
	Length   byte   // encoded length including prefix and opcode
	Cycles   byte   // cost in machine cycles
	Halt     bool   // executing the instruction halts the CPU
	fn       opfunc
}

// Execute runs the instruction against a register file and a memory and
// returns the number of machine cycles it consumed.
func (inst *Instruction) Execute(r *Registers, m Memory) int {
	if inst.Kind != Implemented {
		panic(fmt.Sprintf("cpu: cannot execute %s slot $%02X", inst.Kind, inst.Opcode))
	}
	inst.fn(r, m)
	return int(inst.Cycles)
}

// An InstructionSet maps every opcode of the base table and of the 0xCB
// table to an instruction slot. It is immutable once constructed.
type InstructionSet struct {
	base     [256]Instruction
	prefixed [256]Instruction
}

// Lookup retrieves the base table slot for an opcode.
func (s *InstructionSet) Lookup(opcode byte) Instruction {
	return s.base[opcode]
}

// LookupPrefixed retrieves the 0xCB table slot for the byte following the
// prefix.
func (s *InstructionSet) LookupPrefixed(opcode byte) Instruction {
	return s.prefixed[opcode]
}

// Data describing a single opcode.
type opcodeData struct {
	opcode byte
	name   string
	length byte
	cycles byte
	halt   bool
	fn     opfunc
}

// NewInstructionSet builds the full base and 0xCB instruction tables.
func NewInstructionSet() *InstructionSet {
	set := &InstructionSet{}

	for i := 0; i < 256; i++ {
		set.base[i] = Instruction{
			Kind:   Undefined,
			Name:   "???",
			Opcode: byte(i),
			Length: 1,
		}
		set.prefixed[i] = Instruction{
			Kind:     Undefined,
			Name:     "???",
			Opcode:   byte(i),
			Prefixed: true,
			Length:   2,
		}
	}

	for _, d := range baseOpcodes() {
		set.define(&set.base, d, false)
	}
	for _, d := range prefixedOpcodes() {
		set.define(&set.prefixed, d, true)
	}

	set.base[PrefixCB] = Instruction{
		Kind:   Prefix,
		Name:   "PREFIX CB",
		Opcode: PrefixCB,
		Length: 2,
	}

	return set
}

func (s *InstructionSet) define(table *[256]Instruction, d opcodeData, prefixed bool) {
	if table[d.opcode].Kind != Undefined || (!prefixed && d.opcode == PrefixCB) {
		panic(fmt.Sprintf("cpu: opcode $%02X defined twice", d.opcode))
	}
	table[d.opcode] = Instruction{
		Kind:     Implemented,
		Name:     d.name,
		Opcode:   d.opcode,
		Prefixed: prefixed,
		Length:   d.length,
		Cycles:   d.cycles,
		Halt:     d.halt,
		fn:       d.fn,
	}
}

// Register operand encoding shared by the LD r,r' grid and the 0xCB
// table. Index 6 denotes the memory operand (HL) and has no register.
const operandHL = 6

var operandRegs = [8]Reg8{0: RegB, 1: RegC, 2: RegD, 3: RegE, 4: RegH, 5: RegL, 7: RegA}

func operandName(i int) string {
	if i == operandHL {
		return "(HL)"
	}
	return operandRegs[i].String()
}

// Fetch the byte at PC and advance PC.
func fetch8(r *Registers, m Memory) byte {
	v := m.LoadByte(r.PC)
	r.PC++
	return v
}

// Fetch the little-endian word at PC and advance PC past it.
func fetch16(r *Registers, m Memory) uint16 {
	v := m.LoadWord(r.PC)
	r.PC += 2
	return v
}
