// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isa

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		in  string
		exp Variant
	}{
		{"0", NMOS},
		{"1", CMOS},
		{"2", Rockwell},
		{"3", HuC6280},
		{"6502", NMOS},
		{"65c02", CMOS},
		{"R65C02", Rockwell},
		{"huc6280", HuC6280},
		{"huc", HuC6280},
		{"nmos", NMOS},
		{"rockwell", Rockwell},
		{" pce ", HuC6280},
	}
	for _, tt := range tests {
		v, err := ParseVariant(tt.in)
		if assert.NoError(err, tt.in) {
			assert.Equal(tt.exp, v, tt.in)
		}
	}

	_, err := ParseVariant("4")
	assert.ErrorIs(err, ErrVariantUnknown)

	_, err = ParseVariant("z80")
	assert.ErrorIs(err, ErrVariantUnknown)

	_, err = ParseVariant("65")
	assert.ErrorIs(err, ErrVariantAmbiguous)
}

func TestVariantNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("CPU_TYPE_6502", NMOS.Tag())
	assert.Equal("CPU_TYPE_65C02", CMOS.Tag())
	assert.Equal("CPU_TYPE_R65C02", Rockwell.Tag())
	assert.Equal("CPU_TYPE_HUC6280", HuC6280.Tag())
	assert.Equal("Variant(9)", Variant(9).String())

	assert.True(NMOS.HasUndocumented())
	assert.False(CMOS.HasUndocumented())
	assert.False(Rockwell.HasUndocumented())
	assert.True(HuC6280.HasUndocumented())
}

func TestProfile(t *testing.T) {
	assert := assert.New(t)

	p := NMOS.Profile()
	assert.Equal(4, p.MaxFetch)
	assert.Equal(1, p.BranchPenalty)
	assert.Equal(uint16(0xfffe), p.IntVector)
	assert.Equal(byte(0xff), p.IntMask)
	assert.Equal(byte(0xcf), p.PLPMask)

	assert.Equal(byte(0xf7), CMOS.Profile().IntMask)
	assert.Equal(byte(0xf7), Rockwell.Profile().IntMask)

	p = HuC6280.Profile()
	assert.Equal(8, p.MaxFetch)
	assert.Equal(2, p.BranchPenalty)
	assert.Equal(uint16(0xfff6), p.IntVector)
	assert.Equal(byte(0xd7), p.IntMask)
	assert.False(p.TInit)
}

func TestModeCatalog(t *testing.T) {
	assert := assert.New(t)

	lengths := map[string]int{
		"imp1": 1, "imp2": 2, "imp3": 7, "imm": 2, "zp": 2, "zpx": 2,
		"zpy": 2, "zprel": 3, "ind": 2, "izx": 2, "izy": 2, "abs": 3,
		"abx": 3, "aby": 3, "abi": 3, "abix": 3, "rel": 2, "immzp": 3,
		"immzx": 3, "immab": 4, "immax": 4, "acc": 1,
	}
	assert.Len(Modes(), len(lengths))
	for name, length := range lengths {
		m, ok := LookupMode(name)
		if assert.True(ok, name) {
			assert.Equal(name, m.String())
			assert.Equal(length, m.Length(), name)
		}
	}

	_, ok := LookupMode("zpg")
	assert.False(ok)
	assert.Equal("#%02x", IMM.Trace())
	assert.Equal("($zz), y", IZY.Syntax())
}

func TestCycles(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(7, Cycles(NMOS, 0x00))
	assert.Equal(9, Cycles(NMOS, 0x02))
	assert.Equal(1, Cycles(CMOS, 0x07))
	assert.Equal(5, Cycles(Rockwell, 0x07))
	assert.Equal(8, Cycles(CMOS, 0x5c))
	assert.Equal(17, Cycles(HuC6280, 0x73))
}

func TestNewRow(t *testing.T) {
	assert := assert.New(t)

	r, err := NewRow(0xea, "nop", NMOS, IMP1)
	require.NoError(t, err)
	assert.True(r.Canonical)
	assert.Equal("nop", r.Mnemonic)
	assert.Equal("nop", r.Source())

	r, err = NewRow(0x1a, "%nop", CMOS, IMP1)
	require.NoError(t, err)
	assert.False(r.Canonical)
	assert.Equal(byte('%'), r.Marker)
	assert.Equal("nop", r.Mnemonic)
	assert.Equal("%nop", r.Source())
	assert.Equal("$1A %nop imp1 (65C02)", r.String())

	_, err = NewRow(0x00, "", NMOS, IMP1)
	assert.ErrorIs(err, ErrMnemonicEmpty)

	_, err = NewRow(0x00, "%", NMOS, IMP1)
	assert.ErrorIs(err, ErrMnemonicEmpty)

	_, err = NewRow(0x00, "brk", Variant(7), IMP1)
	assert.ErrorIs(err, ErrVariantUnknown)

	_, err = NewRow(0x00, "brk", NMOS, Mode(99))
	assert.ErrorIs(err, ErrModeUnknown)
}

func TestReadRows(t *testing.T) {
	assert := assert.New(t)

	table := `address_mode,opcode,mnemonic,chiptype,comment
# leading comment
abs,0x4c,jmp,0,jump

imm,4b,%alr,0
imm,0x4B,nop,2,later`

	rows, err := ReadRows(strings.NewReader(table))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(byte(0x4c), rows[0].Opcode)
	assert.Equal("jmp", rows[0].Mnemonic)
	assert.Equal(ABS, rows[0].Mode)
	assert.Equal(3, rows[0].Line)

	assert.False(rows[1].Canonical)
	assert.Equal("alr", rows[1].Mnemonic)
	assert.Equal(5, rows[1].Line)

	assert.Equal(Rockwell, rows[2].Chip)
	assert.Len(rows.Opcode(0x4b), 2)
	assert.Len(rows.Introduced(Rockwell), 1)
}

func TestReadRowsErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := ReadRows(strings.NewReader(""))
	assert.ErrorIs(err, ErrHeaderMissing)

	_, err = ReadRows(strings.NewReader("opcode,mnemonic,chiptype\n"))
	assert.ErrorIs(err, ErrHeaderMissing)

	const header = "opcode,mnemonic,chiptype,address_mode\n"

	_, err = ReadRows(strings.NewReader(header + "0x100,lda,0,imm\n"))
	var rowErr *RowError
	if assert.True(errors.As(err, &rowErr)) {
		assert.Equal(ColOpcode, rowErr.Field)
		assert.Equal(2, rowErr.Line)
	}

	_, err = ReadRows(strings.NewReader(header + "0xa9,lda,4,imm\n"))
	assert.ErrorIs(err, ErrVariantUnknown)

	_, err = ReadRows(strings.NewReader(header + "0xa9,lda,0,zpg\n"))
	var modeErr *ModeError
	if assert.True(errors.As(err, &modeErr)) {
		assert.Equal("zpg", modeErr.Mode)
		assert.Equal(byte(0xa9), modeErr.Opcode)
	}
	assert.ErrorIs(err, ErrModeUnknown)

	_, err = ReadRows(strings.NewReader(header + "0xa9,,0,imm\n"))
	assert.ErrorIs(err, ErrMnemonicEmpty)
}

func TestErrorLineNumbers(t *testing.T) {
	assert := assert.New(t)

	const header = "opcode,mnemonic,chiptype,address_mode\n"
	padding := strings.Repeat("# comment\n", 1300)

	_, err := ReadRows(strings.NewReader(header + padding + "0xea,nop,0,zpg\n"))
	if assert.Error(err) {
		assert.Contains(err.Error(), "line 1302: opcode $EA:")
	}

	_, err = ReadRows(strings.NewReader(header + padding + "0xea,nop,9,imp1\n"))
	if assert.Error(err) {
		assert.Contains(err.Error(), "line 1302: invalid chiptype '9'")
	}

	err = &RowError{Line: 1234, Field: ColChip, Value: "9"}
	assert.Equal("line 1234: invalid chiptype '9'", err.Error())
}

func TestDefaultRows(t *testing.T) {
	assert := assert.New(t)

	rows := DefaultRows()
	assert.NotEmpty(rows)

	// The base table defines every opcode.
	var defined [256]bool
	for _, r := range rows.Introduced(NMOS) {
		defined[r.Opcode] = true
	}
	for op, ok := range defined {
		assert.True(ok, "opcode $%02X", op)
	}

	// No opcode is defined twice by the same variant.
	seen := make(map[[2]int]*Row)
	for _, r := range rows {
		key := [2]int{int(r.Opcode), int(r.Chip)}
		if prev, ok := seen[key]; ok {
			t.Errorf("duplicate rows: %v and %v", prev, r)
		}
		seen[key] = r
	}
}
