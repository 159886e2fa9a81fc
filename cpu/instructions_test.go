package cpu_test

import (
	"strings"
	"testing"

	"github.com/beevik/gbcpu/cpu"
)

// Machine cycles per base opcode. Zero marks an undefined opcode; the 0xCB
// prefix is checked separately.
var baseTimings = [256]int{
	//0 1  2  3  4  5  6  7  8  9  A  B  C  D  E  F
	1, 3, 2, 0, 0, 0, 2, 0, 5, 0, 2, 0, 0, 0, 2, 0, // 0x00
	1, 3, 2, 0, 0, 0, 2, 0, 0, 0, 2, 0, 0, 0, 2, 0, // 0x10
	0, 3, 2, 0, 0, 0, 2, 0, 0, 0, 2, 0, 0, 0, 2, 0, // 0x20
	0, 3, 2, 0, 0, 0, 3, 0, 0, 0, 2, 0, 0, 0, 2, 0, // 0x30
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x40
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x50
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x60
	2, 2, 2, 2, 2, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, // 0x70
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x80
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x90
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xA0
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xB0
	0, 3, 0, 0, 0, 4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xC0
	0, 3, 0, 0, 0, 4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xD0
	3, 3, 2, 0, 0, 4, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, // 0xE0
	3, 3, 2, 0, 0, 4, 0, 0, 3, 2, 4, 0, 0, 0, 0, 0, // 0xF0
}

func TestBaseTimings(t *testing.T) {
	set := cpu.NewInstructionSet()
	for i := 0; i < 256; i++ {
		opcode := byte(i)
		inst := set.Lookup(opcode)
		if opcode == cpu.PrefixCB {
			if inst.Kind != cpu.Prefix {
				t.Errorf("$CB is %s, exp prefix", inst.Kind)
			}
			continue
		}

		exp := baseTimings[i]
		switch {
		case exp == 0 && inst.Kind != cpu.Undefined:
			t.Errorf("$%02X %s should be undefined", opcode, inst.Name)
		case exp != 0 && inst.Kind != cpu.Implemented:
			t.Errorf("$%02X should be implemented, got %s", opcode, inst.Kind)
		case exp != 0 && int(inst.Cycles) != exp:
			t.Errorf("$%02X %s cycles incorrect. exp: %d, got: %d", opcode, inst.Name, exp, inst.Cycles)
		}
	}
}

func TestPrefixedTimings(t *testing.T) {
	set := cpu.NewInstructionSet()
	for i := 0; i < 256; i++ {
		inst := set.LookupPrefixed(byte(i))
		if inst.Kind != cpu.Implemented {
			t.Errorf("$CB $%02X should be implemented, got %s", i, inst.Kind)
			continue
		}
		if !inst.Prefixed || inst.Length != 2 {
			t.Errorf("$CB $%02X %s has prefixed=%v length=%d", i, inst.Name, inst.Prefixed, inst.Length)
		}

		exp := 2
		if i&7 == 6 {
			exp = 4
			if i>>6 == 1 {
				exp = 3
			}
		}
		if int(inst.Cycles) != exp {
			t.Errorf("$CB $%02X %s cycles incorrect. exp: %d, got: %d", i, inst.Name, exp, inst.Cycles)
		}
	}
}

func TestPrefixedNames(t *testing.T) {
	set := cpu.NewInstructionSet()
	names := map[byte]string{
		0x00: "RLC B",
		0x1e: "RR (HL)",
		0x37: "SWAP A",
		0x3f: "SRL A",
		0x46: "BIT 0,(HL)",
		0x7c: "BIT 7,H",
		0x87: "RES 0,A",
		0xfe: "SET 7,(HL)",
	}
	for opcode, exp := range names {
		if got := set.LookupPrefixed(opcode).Name; got != exp {
			t.Errorf("$CB $%02X name incorrect. exp: %q, got: %q", opcode, exp, got)
		}
	}
}

// The encoded length must agree with the operand placeholders in the name.
func TestInstructionLengths(t *testing.T) {
	set := cpu.NewInstructionSet()
	for i := 0; i < 256; i++ {
		inst := set.Lookup(byte(i))
		if inst.Kind != cpu.Implemented {
			continue
		}

		exp := 1
		switch {
		case strings.Contains(inst.Name, "d16"), strings.Contains(inst.Name, "a16"):
			exp += 2
		case strings.Contains(inst.Name, "d8"), strings.Contains(inst.Name, "a8"), strings.Contains(inst.Name, "e8"):
			exp++
		case inst.Name == "STOP":
			exp++
		}
		if int(inst.Length) != exp {
			t.Errorf("$%02X %s length incorrect. exp: %d, got: %d", i, inst.Name, exp, inst.Length)
		}
	}
}

func TestInstructionNames(t *testing.T) {
	set := cpu.NewInstructionSet()
	names := map[byte]string{
		0x00: "NOP",
		0x06: "LD B,d8",
		0x22: "LD (HL+),A",
		0x36: "LD (HL),d8",
		0x3a: "LD A,(HL-)",
		0x46: "LD B,(HL)",
		0x76: "HALT",
		0x77: "LD (HL),A",
		0x7f: "LD A,A",
		0xe0: "LDH (a8),A",
		0xf8: "LD HL,SP+e8",
		0xf9: "LD SP,HL",
	}
	for opcode, exp := range names {
		if got := set.Lookup(opcode).Name; got != exp {
			t.Errorf("$%02X name incorrect. exp: %q, got: %q", opcode, exp, got)
		}
	}

	if inst := set.Lookup(0xd3); inst.Kind != cpu.Undefined || inst.Length != 1 {
		t.Errorf("$D3 should be an undefined 1-byte slot: %+v", inst)
	}
}

func TestHaltClass(t *testing.T) {
	set := cpu.NewInstructionSet()
	for i := 0; i < 256; i++ {
		inst := set.Lookup(byte(i))
		exp := i == 0x10 || i == 0x76
		if inst.Halt != exp {
			t.Errorf("$%02X %s halt flag incorrect. exp: %v, got: %v", i, inst.Name, exp, inst.Halt)
		}
	}
}

func TestExecuteUndefinedPanics(t *testing.T) {
	set := cpu.NewInstructionSet()
	inst := set.Lookup(0xdd)

	defer func() {
		if recover() == nil {
			t.Error("executing an undefined slot did not panic")
		}
	}()

	var r cpu.Registers
	inst.Execute(&r, cpu.NewFlatMemory())
}

func TestExecuteDirect(t *testing.T) {
	set := cpu.NewInstructionSet()
	inst := set.Lookup(0x41) // LD B,C

	r := cpu.Registers{C: 0x9c}
	if cycles := inst.Execute(&r, cpu.NewFlatMemory()); cycles != 1 {
		t.Errorf("cycles incorrect. exp: 1, got: %d", cycles)
	}
	if r.B != 0x9c {
		t.Errorf("B incorrect. exp: $9C, got: $%02X", r.B)
	}
}
