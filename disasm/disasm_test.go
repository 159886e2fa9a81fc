package disasm_test

import (
	"testing"

	"github.com/beevik/gbcpu/cpu"
	"github.com/beevik/gbcpu/disasm"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		code []byte
		line string
	}{
		{[]byte{0x00}, "NOP"},
		{[]byte{0x3e, 0x42}, "LD A,$42"},
		{[]byte{0x36, 0x07}, "LD (HL),$07"},
		{[]byte{0x21, 0x34, 0x12}, "LD HL,$1234"},
		{[]byte{0xea, 0x00, 0xc0}, "LD ($C000),A"},
		{[]byte{0x08, 0xfe, 0xff}, "LD ($FFFE),SP"},
		{[]byte{0xe0, 0x80}, "LDH ($FF80),A"},
		{[]byte{0xf0, 0x44}, "LDH A,($FF44)"},
		{[]byte{0xf8, 0x05}, "LD HL,SP+$05"},
		{[]byte{0xf8, 0xfe}, "LD HL,SP-$02"},
		{[]byte{0x3a}, "LD A,(HL-)"},
		{[]byte{0x77}, "LD (HL),A"},
		{[]byte{0x76}, "HALT"},
		{[]byte{0x10, 0x00}, "STOP"},
		{[]byte{0xcb, 0x37}, "SWAP A"},
		{[]byte{0xcb, 0x7e}, "BIT 7,(HL)"},
		{[]byte{0xd3}, "DB $D3"},
	}

	for _, test := range tests {
		mem := cpu.NewFlatMemory()
		mem.StoreBytes(0x1000, test.code)
		c := cpu.NewCPU(mem)

		line, next := disasm.Disassemble(c, 0x1000)
		if line != test.line {
			t.Errorf("% X: line incorrect. exp: %q, got: %q", test.code, test.line, line)
		}
		if exp := uint16(0x1000 + len(test.code)); next != exp {
			t.Errorf("% X: next incorrect. exp: $%04X, got: $%04X", test.code, exp, next)
		}
	}
}

func TestGetRegisterString(t *testing.T) {
	r := cpu.Registers{A: 0x12, F: cpu.ZeroBit | cpu.CarryBit, B: 0x01, C: 0x02, H: 0xc0, SP: 0xfffe, PC: 0x0150}
	exp := "A=12 F=[Z--C] BC=0102 DE=0000 HL=C000 SP=FFFE PC=0150"
	if got := disasm.GetRegisterString(&r); got != exp {
		t.Errorf("register string incorrect.\nexp: %q\ngot: %q", exp, got)
	}
}

func TestDisassembleFollowsMemory(t *testing.T) {
	c := cpu.NewCPU(cpu.NewFlatMemory())

	m := cpu.NewFlatMemory()
	m.StoreBytes(0x0100, []byte{0x06, 0x99})
	c.Mem = m

	if line, _ := disasm.Disassemble(c, 0x0100); line != "LD B,$99" {
		t.Errorf("line incorrect. exp: %q, got: %q", "LD B,$99", line)
	}
}
