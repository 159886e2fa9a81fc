// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// baseOpcodes returns the data for every implemented opcode of the base
// table: the load/store family, NOP and the halt-class instructions.
func baseOpcodes() []opcodeData {
	data := []opcodeData{
		{0x00, "NOP", 1, 1, false, nop},
		{0x10, "STOP", 2, 1, true, stop},
		{0x76, "HALT", 1, 1, true, nop},

		// 16-bit immediate loads
		{0x01, "LD BC,d16", 3, 3, false, ldPairImm(RegBC)},
		{0x11, "LD DE,d16", 3, 3, false, ldPairImm(RegDE)},
		{0x21, "LD HL,d16", 3, 3, false, ldPairImm(RegHL)},
		{0x31, "LD SP,d16", 3, 3, false, ldPairImm(RegSP)},

		// Accumulator through register pairs
		{0x02, "LD (BC),A", 1, 2, false, ldIndReg(RegBC, RegA)},
		{0x12, "LD (DE),A", 1, 2, false, ldIndReg(RegDE, RegA)},
		{0x0a, "LD A,(BC)", 1, 2, false, ldRegInd(RegA, RegBC)},
		{0x1a, "LD A,(DE)", 1, 2, false, ldRegInd(RegA, RegDE)},

		// HL auto-increment and auto-decrement
		{0x22, "LD (HL+),A", 1, 2, false, ldHLIncA},
		{0x2a, "LD A,(HL+)", 1, 2, false, ldAHLInc},
		{0x32, "LD (HL-),A", 1, 2, false, ldHLDecA},
		{0x3a, "LD A,(HL-)", 1, 2, false, ldAHLDec},

		// Stack pointer
		{0x08, "LD (a16),SP", 3, 5, false, ldAbsSP},
		{0xf8, "LD HL,SP+e8", 2, 3, false, ldHLSPOffset},
		{0xf9, "LD SP,HL", 1, 2, false, ldSPHL},

		// $FF00 page
		{0xe0, "LDH (a8),A", 2, 3, false, ldHighImmA},
		{0xf0, "LDH A,(a8)", 2, 3, false, ldAHighImm},
		{0xe2, "LD (C),A", 1, 2, false, ldHighCA},
		{0xf2, "LD A,(C)", 1, 2, false, ldAHighC},

		// Absolute address
		{0xea, "LD (a16),A", 3, 4, false, ldAbsA},
		{0xfa, "LD A,(a16)", 3, 4, false, ldAAbs},

		// Stack push/pop
		{0xc1, "POP BC", 1, 3, false, pop(RegBC)},
		{0xd1, "POP DE", 1, 3, false, pop(RegDE)},
		{0xe1, "POP HL", 1, 3, false, pop(RegHL)},
		{0xf1, "POP AF", 1, 3, false, pop(RegAF)},
		{0xc5, "PUSH BC", 1, 4, false, push(RegBC)},
		{0xd5, "PUSH DE", 1, 4, false, push(RegDE)},
		{0xe5, "PUSH HL", 1, 4, false, push(RegHL)},
		{0xf5, "PUSH AF", 1, 4, false, push(RegAF)},
	}

	// LD r,d8 and LD (HL),d8: 0x06, 0x0E, ... 0x3E
	for i := 0; i < 8; i++ {
		opcode := byte(0x06 + i<<3)
		name := "LD " + operandName(i) + ",d8"
		if i == operandHL {
			data = append(data, opcodeData{opcode, name, 2, 3, false, ldHLImm})
		} else {
			data = append(data, opcodeData{opcode, name, 2, 2, false, ldRegImm(operandRegs[i])})
		}
	}

	// LD r,r' grid: 0x40..0x7F, where 0x76 (LD (HL),(HL)) is HALT.
	for i := 0; i < 64; i++ {
		dst, src := i>>3, i&7
		opcode := byte(0x40 + i)
		name := "LD " + operandName(dst) + "," + operandName(src)
		switch {
		case dst == operandHL && src == operandHL:
			continue
		case dst == operandHL:
			data = append(data, opcodeData{opcode, name, 1, 2, false, ldIndReg(RegHL, operandRegs[src])})
		case src == operandHL:
			data = append(data, opcodeData{opcode, name, 1, 2, false, ldRegInd(operandRegs[dst], RegHL)})
		default:
			data = append(data, opcodeData{opcode, name, 1, 1, false, ldRegReg(operandRegs[dst], operandRegs[src])})
		}
	}

	return data
}

//
// Instruction implementations
//

func nop(r *Registers, m Memory) {
}

// STOP is encoded with a padding byte, which is skipped.
func stop(r *Registers, m Memory) {
	r.PC++
}

// LD r,r'
func ldRegReg(dst, src Reg8) opfunc {
	return func(r *Registers, m Memory) {
		*r.ptr8(dst) = *r.ptr8(src)
	}
}

// LD r,(rr)
func ldRegInd(dst Reg8, addr Reg16) opfunc {
	return func(r *Registers, m Memory) {
		*r.ptr8(dst) = m.LoadByte(r.Get16(addr))
	}
}

// LD (rr),r
func ldIndReg(addr Reg16, src Reg8) opfunc {
	return func(r *Registers, m Memory) {
		m.StoreByte(r.Get16(addr), *r.ptr8(src))
	}
}

// LD r,d8
func ldRegImm(dst Reg8) opfunc {
	return func(r *Registers, m Memory) {
		*r.ptr8(dst) = fetch8(r, m)
	}
}

// LD (HL),d8
func ldHLImm(r *Registers, m Memory) {
	v := fetch8(r, m)
	m.StoreByte(r.HL(), v)
}

// LD rr,d16. The low byte is stored first.
func ldPairImm(p Reg16) opfunc {
	return func(r *Registers, m Memory) {
		r.Set16(p, int(fetch16(r, m)))
	}
}

var (
	ldAHL = ldRegInd(RegA, RegHL)
	ldHLA = ldIndReg(RegHL, RegA)
)

// LD A,(HL+)
func ldAHLInc(r *Registers, m Memory) {
	ldAHL(r, m)
	r.SetHL(r.HL() + 1)
}

// LD A,(HL-)
func ldAHLDec(r *Registers, m Memory) {
	ldAHL(r, m)
	r.SetHL(r.HL() - 1)
}

// LD (HL+),A
func ldHLIncA(r *Registers, m Memory) {
	ldHLA(r, m)
	r.SetHL(r.HL() + 1)
}

// LD (HL-),A
func ldHLDecA(r *Registers, m Memory) {
	ldHLA(r, m)
	r.SetHL(r.HL() - 1)
}

// LD A,(a16)
func ldAAbs(r *Registers, m Memory) {
	r.A = m.LoadByte(fetch16(r, m))
}

// LD (a16),A
func ldAbsA(r *Registers, m Memory) {
	m.StoreByte(fetch16(r, m), r.A)
}

// LD A,(C)
func ldAHighC(r *Registers, m Memory) {
	r.A = m.LoadByte(highPage(r.C))
}

// LD (C),A
func ldHighCA(r *Registers, m Memory) {
	m.StoreByte(highPage(r.C), r.A)
}

// LDH A,(a8)
func ldAHighImm(r *Registers, m Memory) {
	r.A = m.LoadByte(highPage(fetch8(r, m)))
}

// LDH (a8),A
func ldHighImmA(r *Registers, m Memory) {
	m.StoreByte(highPage(fetch8(r, m)), r.A)
}

// LD (a16),SP
func ldAbsSP(r *Registers, m Memory) {
	m.StoreWord(fetch16(r, m), r.SP)
}

// LD SP,HL
func ldSPHL(r *Registers, m Memory) {
	r.SP = r.HL()
}

// LD HL,SP+e8. Half-carry and carry come from the unsigned addition of
// the offset to the low byte of SP.
func ldHLSPOffset(r *Registers, m Memory) {
	e := fetch8(r, m)
	sp := r.SP
	r.SetHL(sp + uint16(int8(e)))
	h := (sp&0x0f)+uint16(e&0x0f) > 0x0f
	c := (sp&0xff)+uint16(e) > 0xff
	r.setFlags(false, false, h, c)
}

// PUSH rr
func push(p Reg16) opfunc {
	return func(r *Registers, m Memory) {
		v := r.Get16(p)
		r.SP--
		m.StoreByte(r.SP, byte(v>>8))
		r.SP--
		m.StoreByte(r.SP, byte(v))
	}
}

// POP rr. The low nibble of F cannot be written.
func pop(p Reg16) opfunc {
	return func(r *Registers, m Memory) {
		lo := m.LoadByte(r.SP)
		r.SP++
		hi := m.LoadByte(r.SP)
		r.SP++
		v := pair(hi, lo)
		if p == RegAF {
			v &= 0xfff0
		}
		r.Set16(p, int(v))
	}
}
