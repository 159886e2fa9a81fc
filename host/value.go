// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/gbcpu/cpu"
)

var errValueSyntax = errors.New("value syntax error")

// parseValue evaluates a chain of terms joined by '+' and '-'. A term is a
// number ($hex, 0xhex, %binary, 'c' or decimal), a register name, or '.'
// for the program counter. Register names take precedence over bare
// numbers, which are hexadecimal in hex mode.
func (h *Host) parseValue(s string) (int64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, errValueSyntax
	}

	var total int64
	sign := int64(1)
	for {
		for t != "" && (t[0] == '+' || t[0] == '-') {
			if t[0] == '-' {
				sign = -sign
			}
			t = strings.TrimLeft(t[1:], " \t")
		}

		n := termLength(t)
		if n == 0 {
			return 0, errValueSyntax
		}
		v, err := h.parseTerm(t[:n])
		if err != nil {
			return 0, err
		}
		total += sign * v

		t = strings.TrimLeft(t[n:], " \t")
		if t == "" {
			return total, nil
		}
		switch t[0] {
		case '+':
			sign = 1
		case '-':
			sign = -1
		default:
			return 0, errValueSyntax
		}
		t = strings.TrimLeft(t[1:], " \t")
	}
}

// parseExpr evaluates a value and wraps it into the 16-bit address space.
func (h *Host) parseExpr(s string) (uint16, error) {
	v, err := h.parseValue(s)
	if err != nil {
		return 0, err
	}
	return uint16(v & 0xffff), nil
}

// Return the length of the term at the start of t.
func termLength(t string) int {
	if len(t) >= 3 && t[0] == '\'' && t[2] == '\'' {
		return 3
	}
	n := 0
	for n < len(t) && !strings.ContainsRune(" \t+-", rune(t[n])) {
		n++
	}
	return n
}

func (h *Host) parseTerm(t string) (int64, error) {
	switch {
	case t == ".":
		return int64(h.cpu.Reg.PC), nil
	case len(t) == 3 && t[0] == '\'':
		return int64(t[1]), nil
	case t[0] == '$':
		return parseNumber(t[1:], 16)
	case len(t) > 2 && (t[:2] == "0x" || t[:2] == "0X"):
		return parseNumber(t[2:], 16)
	case t[0] == '%':
		return parseNumber(t[1:], 2)
	}

	if r, ok := cpu.ParseReg16(t); ok {
		return int64(h.cpu.Reg.Get16(r)), nil
	}
	if r, ok := cpu.ParseReg8(t); ok {
		return int64(h.cpu.Reg.Get8(r)), nil
	}

	base := 10
	if h.settings.HexMode {
		base = 16
	}
	if v, err := parseNumber(t, base); err == nil {
		return v, nil
	}
	return 0, fmt.Errorf("identifier '%s' not found", t)
}

func parseNumber(s string, base int) (int64, error) {
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, errValueSyntax
	}
	return v, nil
}
