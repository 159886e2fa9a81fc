// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings holds the user-adjustable host variables. Each one may be named
// by any unambiguous prefix of its name. Integer settings with a min tag
// reject smaller values.
type settings struct {
	HexMode         bool   `doc:"hexadecimal input mode"`
	Trace           bool   `doc:"log every executed instruction"`
	MemDumpBytes    int    `doc:"default number of memory bytes to dump" min:"1"`
	DisasmLines     int    `doc:"default number of lines to disassemble" min:"1"`
	MaxStepLines    int    `doc:"max lines to disassemble when stepping" min:"0"`
	MaxRunCycles    int    `doc:"machine cycle budget for run (0: none)" min:"0"`
	NextDisasmAddr  uint16 `doc:"address of next disassembly"`
	NextMemDumpAddr uint16 `doc:"address of next memory dump"`
}

func newSettings() *settings {
	return &settings{
		MemDumpBytes: 64,
		DisasmLines:  10,
		MaxStepLines: 20,
	}
}

// A setting describes one field of the settings struct.
type setting struct {
	name   string
	doc    string
	field  int
	kind   reflect.Kind
	min    int64
	hasMin bool
}

var (
	settingNames = prefixtree.New[*setting]()
	settingList  []*setting
)

func init() {
	t := reflect.TypeOf(settings{})
	for i := range t.NumField() {
		f := t.Field(i)
		st := &setting{
			name:  f.Name,
			doc:   f.Tag.Get("doc"),
			field: i,
			kind:  f.Type.Kind(),
		}
		if m, ok := f.Tag.Lookup("min"); ok {
			n, err := strconv.ParseInt(m, 10, 64)
			if err != nil {
				panic(fmt.Sprintf("host: bad min tag on setting %s", f.Name))
			}
			st.min, st.hasMin = n, true
		}
		settingList = append(settingList, st)
		settingNames.Add(strings.ToLower(f.Name), st)
	}
}

func lookupSetting(key string) (*setting, error) {
	st, err := settingNames.FindValue(strings.ToLower(key))
	switch err {
	case nil:
		return st, nil
	case prefixtree.ErrPrefixAmbiguous:
		return nil, fmt.Errorf("setting '%s' is ambiguous", key)
	default:
		return nil, fmt.Errorf("setting '%s' not found", key)
	}
}

// Display writes every setting with its value and description.
func (s *settings) Display(w io.Writer) {
	v := reflect.ValueOf(s).Elem()
	for _, st := range settingList {
		fmt.Fprintf(w, "%-28s (%s)\n", "    "+st.format(v.Field(st.field)), st.doc)
	}
}

func (st *setting) format(v reflect.Value) string {
	if st.kind == reflect.Uint16 {
		return fmt.Sprintf("%-16s $%04X", st.name, v.Uint())
	}
	return fmt.Sprintf("%-16s %v", st.name, v)
}

// Set assigns value to the setting named by key. Boolean settings take
// true/false, on/off or 1/0. Numeric settings are evaluated with parse.
func (s *settings) Set(key, value string, parse func(string) (int64, error)) error {
	st, err := lookupSetting(key)
	if err != nil {
		return err
	}
	field := reflect.ValueOf(s).Elem().Field(st.field)

	if st.kind == reflect.Bool {
		b, err := stringToBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
		return nil
	}

	n, err := parse(value)
	if err != nil {
		return err
	}
	switch st.kind {
	case reflect.Int:
		if st.hasMin && n < st.min {
			return fmt.Errorf("%s must be at least %d", st.name, st.min)
		}
		field.SetInt(n)
	case reflect.Uint16:
		field.SetUint(uint64(uint16(n)))
	default:
		return fmt.Errorf("setting '%s' cannot be changed", st.name)
	}
	return nil
}
