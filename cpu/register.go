// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"strings"
)

// Registers contains the state of all CPU registers. Register pairs (BC,
// DE, HL, AF) have no storage of their own; they are always formed from
// the 8-bit registers that make them up.
type Registers struct {
	A  byte   // accumulator
	F  byte   // flags
	B  byte   // B general purpose register (high byte of BC)
	C  byte   // C general purpose register (low byte of BC)
	D  byte   // D general purpose register (high byte of DE)
	E  byte   // E general purpose register (low byte of DE)
	H  byte   // H general purpose register (high byte of HL)
	L  byte   // L general purpose register (low byte of HL)
	SP uint16 // stack pointer
	PC uint16 // program counter
}

// Bits assigned to the flags register. The low nibble is reserved.
const (
	CarryBit     = 1 << 4
	HalfCarryBit = 1 << 5
	SubtractBit  = 1 << 6
	ZeroBit      = 1 << 7
)

// Reg8 identifies an 8-bit register.
type Reg8 byte

// 8-bit registers
const (
	RegA Reg8 = iota
	RegF
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
)

var reg8Names = [...]string{"A", "F", "B", "C", "D", "E", "H", "L"}

func (r Reg8) String() string {
	if int(r) < len(reg8Names) {
		return reg8Names[r]
	}
	return fmt.Sprintf("Reg8(%d)", byte(r))
}

// Reg16 identifies a 16-bit register or register pair.
type Reg16 byte

// 16-bit registers and register pairs
const (
	RegAF Reg16 = iota
	RegBC
	RegDE
	RegHL
	RegSP
	RegPC
)

var reg16Names = [...]string{"AF", "BC", "DE", "HL", "SP", "PC"}

func (r Reg16) String() string {
	if int(r) < len(reg16Names) {
		return reg16Names[r]
	}
	return fmt.Sprintf("Reg16(%d)", byte(r))
}

// ParseReg8 returns the 8-bit register with the given name. Names are
// case-insensitive.
func ParseReg8(name string) (Reg8, bool) {
	for i, n := range reg8Names {
		if strings.EqualFold(n, name) {
			return Reg8(i), true
		}
	}
	return 0, false
}

// ParseReg16 returns the 16-bit register with the given name. Names are
// case-insensitive.
func ParseReg16(name string) (Reg16, bool) {
	for i, n := range reg16Names {
		if strings.EqualFold(n, name) {
			return Reg16(i), true
		}
	}
	return 0, false
}

// Init initializes all registers to zero.
func (r *Registers) Init() {
	*r = Registers{}
}

func (r *Registers) ptr8(reg Reg8) *byte {
	switch reg {
	case RegA:
		return &r.A
	case RegF:
		return &r.F
	case RegB:
		return &r.B
	case RegC:
		return &r.C
	case RegD:
		return &r.D
	case RegE:
		return &r.E
	case RegH:
		return &r.H
	case RegL:
		return &r.L
	default:
		panic("invalid 8-bit register")
	}
}

// Get8 returns the value of an 8-bit register.
func (r *Registers) Get8(reg Reg8) byte {
	return *r.ptr8(reg)
}

// Set8 stores v into an 8-bit register. Values outside the register's
// range wrap.
func (r *Registers) Set8(reg Reg8, v int) {
	*r.ptr8(reg) = byte(v & 0xff)
}

// Get16 returns the value of a 16-bit register or register pair.
func (r *Registers) Get16(reg Reg16) uint16 {
	switch reg {
	case RegAF:
		return r.AF()
	case RegBC:
		return r.BC()
	case RegDE:
		return r.DE()
	case RegHL:
		return r.HL()
	case RegSP:
		return r.SP
	case RegPC:
		return r.PC
	default:
		panic("invalid 16-bit register")
	}
}

// Set16 stores v into a 16-bit register or register pair. Values outside
// the register's range wrap.
func (r *Registers) Set16(reg Reg16, v int) {
	w := uint16(v & 0xffff)
	switch reg {
	case RegAF:
		r.SetAF(w)
	case RegBC:
		r.SetBC(w)
	case RegDE:
		r.SetDE(w)
	case RegHL:
		r.SetHL(w)
	case RegSP:
		r.SP = w
	case RegPC:
		r.PC = w
	default:
		panic("invalid 16-bit register")
	}
}

func pair(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// AF returns the AF register pair.
func (r *Registers) AF() uint16 { return pair(r.A, r.F) }

// BC returns the BC register pair.
func (r *Registers) BC() uint16 { return pair(r.B, r.C) }

// DE returns the DE register pair.
func (r *Registers) DE() uint16 { return pair(r.D, r.E) }

// HL returns the HL register pair.
func (r *Registers) HL() uint16 { return pair(r.H, r.L) }

// SetAF stores v into the A and F registers.
func (r *Registers) SetAF(v uint16) { r.A, r.F = byte(v>>8), byte(v) }

// SetBC stores v into the B and C registers.
func (r *Registers) SetBC(v uint16) { r.B, r.C = byte(v>>8), byte(v) }

// SetDE stores v into the D and E registers.
func (r *Registers) SetDE(v uint16) { r.D, r.E = byte(v>>8), byte(v) }

// SetHL stores v into the H and L registers.
func (r *Registers) SetHL(v uint16) { r.H, r.L = byte(v>>8), byte(v) }

// GetFlag returns 1 if the flag bit 'bit' is set. Otherwise it returns 0.
func (r *Registers) GetFlag(bit byte) byte {
	if r.F&bit == 0 {
		return 0
	}
	return 1
}

// SetFlag sets flag bit 'bit' to 1 if 'on' is true. Otherwise it sets it
// to 0.
func (r *Registers) SetFlag(bit byte, on bool) {
	if on {
		r.F |= bit
	} else {
		r.F &^= bit
	}
}

// IsFlagSet returns true if the flag bit 'bit' is set.
func (r *Registers) IsFlagSet(bit byte) bool {
	return r.F&bit != 0
}

// setFlags replaces all four flag bits at once, leaving the reserved low
// nibble untouched.
func (r *Registers) setFlags(z, n, h, c bool) {
	f := r.F & 0x0f
	if z {
		f |= ZeroBit
	}
	if n {
		f |= SubtractBit
	}
	if h {
		f |= HalfCarryBit
	}
	if c {
		f |= CarryBit
	}
	r.F = f
}
