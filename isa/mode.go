// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isa

import "fmt"

// Mode describes a memory addressing mode.
type Mode byte

// All addressing modes known to the instruction table. The HuC6280-only
// modes are marked.
const (
	IMP1  Mode = iota // Implied, 1 byte
	IMP2              // Implied with an inline byte (HuC6280)
	IMP3              // Implied with three inline words (HuC6280 block moves)
	IMM               // Immediate
	ZP                // Zero Page
	ZPX               // Zero Page,X
	ZPY               // Zero Page,Y
	ZPREL             // Zero Page,Relative
	IND               // (Zero Page)
	IZX               // (Zero Page,X)
	IZY               // (Zero Page),Y
	ABS               // Absolute
	ABX               // Absolute,X
	ABY               // Absolute,Y
	ABI               // (Absolute)
	ABIX              // (Absolute,X)
	REL               // Relative
	IMMZP             // Immediate,Zero Page (HuC6280)
	IMMZX             // Immediate,Zero Page,X (HuC6280)
	IMMAB             // Immediate,Absolute (HuC6280)
	IMMAX             // Immediate,Absolute,X (HuC6280)
	ACC               // Accumulator
)

// NumModes is the number of addressing modes in the catalog.
const NumModes = int(ACC) + 1

type modeData struct {
	name   string // identifier used in the instruction table and generated code
	length int    // combined size of opcode and operand, in bytes
	syntax string // operand syntax used in listings
	trace  string // printf format for the operand in interpreter traces
	desc   string
}

var modes = [NumModes]modeData{
	IMP1:  {"imp1", 1, "", "", "implied"},
	IMP2:  {"imp2", 2, "$zz", "", "implied, 2 byte instruction"},
	IMP3:  {"imp3", 7, "$ssss, $dddd, $llll", "", "implied, 7 byte block transfer"},
	IMM:   {"imm", 2, "#$nn", "#%02x", "immediate"},
	ZP:    {"zp", 2, "$zz", "", "zero page"},
	ZPX:   {"zpx", 2, "$zz, x", "", "zero page, x indexed"},
	ZPY:   {"zpy", 2, "$zz, y", "", "zero page, y indexed"},
	ZPREL: {"zprel", 3, "$zz, rr", "", "zero page relative"},
	IND:   {"ind", 2, "($zz)", "", "zero page indirect"},
	IZX:   {"izx", 2, "($zz, x)", "", "zero page indexed indirect"},
	IZY:   {"izy", 2, "($zz), y", "", "zero page indirect indexed"},
	ABS:   {"abs", 3, "$hhll", "", "absolute"},
	ABX:   {"abx", 3, "$hhll, x", "", "absolute, x indexed"},
	ABY:   {"aby", 3, "$hhll, y", "", "absolute, y indexed"},
	ABI:   {"abi", 3, "($hhll)", "", "absolute indirect"},
	ABIX:  {"abix", 3, "($hhll, x)", "", "absolute indexed indirect"},
	REL:   {"rel", 2, "rr", "", "relative"},
	IMMZP: {"immzp", 3, "#$nn, $zz", "", "immediate zero page"},
	IMMZX: {"immzx", 3, "#$nn, $zz, x", "", "immediate zero page indexed"},
	IMMAB: {"immab", 4, "#$nn, $hhll", "", "immediate absolute"},
	IMMAX: {"immax", 4, "#$nn, $hhll, x", "", "immediate absolute indexed"},
	ACC:   {"acc", 1, "A", "", "accumulator"},
}

var modeByName = make(map[string]Mode, NumModes)

func init() {
	for i := range modes {
		modeByName[modes[i].name] = Mode(i)
	}
}

// Modes returns every addressing mode in catalog order.
func Modes() []Mode {
	m := make([]Mode, NumModes)
	for i := range m {
		m[i] = Mode(i)
	}
	return m
}

// LookupMode finds the addressing mode with the given table identifier.
func LookupMode(name string) (Mode, bool) {
	m, ok := modeByName[name]
	return m, ok
}

// Valid reports whether m is a catalog mode.
func (m Mode) Valid() bool {
	return int(m) < NumModes
}

// String returns the table identifier of the mode, e.g. "abx".
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", byte(m))
	}
	return modes[m].name
}

// MarshalText encodes the mode by its table identifier.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Length returns the combined size of opcode and operand in bytes.
func (m Mode) Length() int {
	return modes[m].length
}

// Syntax returns the operand syntax of the mode for listings.
func (m Mode) Syntax() string {
	return modes[m].syntax
}

// Trace returns the operand format used by the interpreter's trace output.
func (m Mode) Trace() string {
	return modes[m].trace
}

// Description returns a short human readable description of the mode.
func (m Mode) Description() string {
	return modes[m].desc
}
