// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "strconv"

// A shiftFunc computes the result of a rotate, shift or swap on v and
// updates the flags.
type shiftFunc func(r *Registers, v byte) byte

var shiftOps = [8]struct {
	name string
	fn   shiftFunc
}{
	{"RLC", rlc},
	{"RRC", rrc},
	{"RL", rl},
	{"RR", rr},
	{"SLA", sla},
	{"SRA", sra},
	{"SWAP", swap},
	{"SRL", srl},
}

// prefixedOpcodes returns the data for all 256 opcodes of the 0xCB table.
// The low three bits select the operand; bits 6-7 select the operation
// group and bits 3-5 select the shift kind or the bit number.
func prefixedOpcodes() []opcodeData {
	data := make([]opcodeData, 0, 256)
	for i := 0; i < 256; i++ {
		opcode := byte(i)
		operand := i & 7
		sel := (i >> 3) & 7
		hl := operand == operandHL

		var d opcodeData
		switch i >> 6 {
		case 0:
			op := shiftOps[sel]
			d = opcodeData{opcode, op.name + " " + operandName(operand), 2, cycleCost(hl, 4), false, shiftOperand(operand, op.fn)}
		case 1:
			d = opcodeData{opcode, "BIT " + strconv.Itoa(sel) + "," + operandName(operand), 2, cycleCost(hl, 3), false, bitOp(operand, sel)}
		case 2:
			d = opcodeData{opcode, "RES " + strconv.Itoa(sel) + "," + operandName(operand), 2, cycleCost(hl, 4), false, resOp(operand, sel)}
		case 3:
			d = opcodeData{opcode, "SET " + strconv.Itoa(sel) + "," + operandName(operand), 2, cycleCost(hl, 4), false, setOp(operand, sel)}
		}
		data = append(data, d)
	}
	return data
}

// Register forms of prefixed instructions take 2 cycles. (HL) forms take
// hlCycles.
func cycleCost(hl bool, hlCycles byte) byte {
	if hl {
		return hlCycles
	}
	return 2
}

func loadOperand(r *Registers, m Memory, operand int) byte {
	if operand == operandHL {
		return m.LoadByte(r.HL())
	}
	return *r.ptr8(operandRegs[operand])
}

func storeOperand(r *Registers, m Memory, operand int, v byte) {
	if operand == operandHL {
		m.StoreByte(r.HL(), v)
		return
	}
	*r.ptr8(operandRegs[operand]) = v
}

func shiftOperand(operand int, fn shiftFunc) opfunc {
	return func(r *Registers, m Memory) {
		v := loadOperand(r, m, operand)
		storeOperand(r, m, operand, fn(r, v))
	}
}

// BIT b,x
func bitOp(operand, b int) opfunc {
	return func(r *Registers, m Memory) {
		v := loadOperand(r, m, operand)
		r.setFlags(v&(1<<b) == 0, false, true, r.IsFlagSet(CarryBit))
	}
}

// RES b,x
func resOp(operand, b int) opfunc {
	return func(r *Registers, m Memory) {
		v := loadOperand(r, m, operand)
		storeOperand(r, m, operand, v&^(1<<b))
	}
}

// SET b,x
func setOp(operand, b int) opfunc {
	return func(r *Registers, m Memory) {
		v := loadOperand(r, m, operand)
		storeOperand(r, m, operand, v|1<<b)
	}
}

func rlc(r *Registers, v byte) byte {
	c := v >> 7
	v = v<<1 | c
	r.setFlags(v == 0, false, false, c != 0)
	return v
}

func rrc(r *Registers, v byte) byte {
	c := v & 1
	v = v>>1 | c<<7
	r.setFlags(v == 0, false, false, c != 0)
	return v
}

func rl(r *Registers, v byte) byte {
	c := v >> 7
	v = v<<1 | r.GetFlag(CarryBit)
	r.setFlags(v == 0, false, false, c != 0)
	return v
}

func rr(r *Registers, v byte) byte {
	c := v & 1
	v = v>>1 | r.GetFlag(CarryBit)<<7
	r.setFlags(v == 0, false, false, c != 0)
	return v
}

func sla(r *Registers, v byte) byte {
	c := v >> 7
	v <<= 1
	r.setFlags(v == 0, false, false, c != 0)
	return v
}

func sra(r *Registers, v byte) byte {
	c := v & 1
	v = v>>1 | v&0x80
	r.setFlags(v == 0, false, false, c != 0)
	return v
}

func swap(r *Registers, v byte) byte {
	v = v<<4 | v>>4
	r.setFlags(v == 0, false, false, false)
	return v
}

func srl(r *Registers, v byte) byte {
	c := v & 1
	v >>= 1
	r.setFlags(v == 0, false, false, c != 0)
	return v
}
