// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a Game Boy CPU instruction set
// disassembler.
package disasm

import (
	"fmt"
	"strings"

	"github.com/beevik/gbcpu/cpu"
)

// Disassemble the machine code in the CPU's memory at address 'addr',
// decoding it with the CPU's instruction set. Return a 'line' string
// representing the disassembled instruction and a 'next' address that
// starts the following line of machine code.
//
// Undefined opcodes are rendered as a single data byte.
func Disassemble(c *cpu.CPU, addr uint16) (line string, next uint16) {
	m := c.Mem
	inst := c.GetInstruction(addr)

	next = addr + uint16(inst.Length)
	if inst.Kind == cpu.Undefined {
		return fmt.Sprintf("DB $%02X", m.LoadByte(addr)), next
	}

	// Operand bytes follow the opcode (and the prefix, if any).
	operandAddr := addr + 1
	if inst.Prefixed {
		operandAddr++
	}

	line = inst.Name
	switch {
	case strings.Contains(line, "d16"):
		line = strings.Replace(line, "d16", fmt.Sprintf("$%04X", m.LoadWord(operandAddr)), 1)
	case strings.Contains(line, "a16"):
		line = strings.Replace(line, "a16", fmt.Sprintf("$%04X", m.LoadWord(operandAddr)), 1)
	case strings.Contains(line, "d8"):
		line = strings.Replace(line, "d8", fmt.Sprintf("$%02X", m.LoadByte(operandAddr)), 1)
	case strings.Contains(line, "a8"):
		line = strings.Replace(line, "a8", fmt.Sprintf("$FF%02X", m.LoadByte(operandAddr)), 1)
	case strings.Contains(line, "+e8"):
		line = strings.Replace(line, "+e8", signedOffset(m.LoadByte(operandAddr)), 1)
	}
	return line, next
}

// Return a signed offset as "+$xx" or "-$xx".
func signedOffset(b byte) string {
	e := int(int8(b))
	if e < 0 {
		return fmt.Sprintf("-$%02X", -e)
	}
	return fmt.Sprintf("+$%02X", e)
}

// GetRegisterString returns a string describing the contents of the
// registers. Set flags are shown by letter and clear flags by '-'.
func GetRegisterString(r *cpu.Registers) string {
	return fmt.Sprintf("A=%02X F=[%s] BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X",
		r.A, flagString(r), r.BC(), r.DE(), r.HL(), r.SP, r.PC)
}

func flagString(r *cpu.Registers) string {
	var b [4]byte
	for i, f := range []struct {
		bit byte
		ch  byte
	}{
		{cpu.ZeroBit, 'Z'},
		{cpu.SubtractBit, 'N'},
		{cpu.HalfCarryBit, 'H'},
		{cpu.CarryBit, 'C'},
	} {
		if r.IsFlagSet(f.bit) {
			b[i] = f.ch
		} else {
			b[i] = '-'
		}
	}
	return string(b[:])
}
