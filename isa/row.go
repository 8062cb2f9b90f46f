// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isa

import "fmt"

// A Row is one definition from the instruction table: an opcode, the
// instruction it executes, its addressing mode, and the processor variant
// that introduced it. Rows are immutable once built.
type Row struct {
	Opcode    byte    // opcode value
	Mnemonic  string  // lower-case instruction name, without marker
	Marker    byte    // undocumented-instruction marker, 0 if canonical
	Canonical bool    // whether the instruction is documented
	Chip      Variant // variant that introduced the row
	Mode      Mode    // addressing mode
	Line      int     // line in the table source, 0 if unknown
}

// NewRow builds a row from its table fields. A mnemonic whose first
// character is not a lower-case letter names an undocumented instruction;
// the marker character is stripped from the mnemonic and kept in Marker.
func NewRow(opcode byte, mnemonic string, chip Variant, mode Mode) (*Row, error) {
	if mnemonic == "" {
		return nil, ErrMnemonicEmpty
	}
	if !chip.Valid() {
		return nil, fmt.Errorf("%w: rank %d", ErrVariantUnknown, chip)
	}
	if !mode.Valid() {
		return nil, &ModeError{Opcode: opcode, Mode: mode.String()}
	}

	r := &Row{
		Opcode:    opcode,
		Mnemonic:  mnemonic,
		Canonical: true,
		Chip:      chip,
		Mode:      mode,
	}
	if c := mnemonic[0]; c < 'a' || c > 'z' {
		r.Marker = c
		r.Mnemonic = mnemonic[1:]
		r.Canonical = false
		if r.Mnemonic == "" {
			return nil, ErrMnemonicEmpty
		}
	}
	return r, nil
}

// MustRow is like NewRow but panics on error. It is intended for tables
// built in code.
func MustRow(opcode byte, mnemonic string, chip Variant, mode Mode) *Row {
	r, err := NewRow(opcode, mnemonic, chip, mode)
	if err != nil {
		panic(err)
	}
	return r
}

// Source returns the mnemonic as written in the table, including its
// marker.
func (r *Row) Source() string {
	if r.Canonical {
		return r.Mnemonic
	}
	return string(r.Marker) + r.Mnemonic
}

// String describes the row for diagnostics.
func (r *Row) String() string {
	s := fmt.Sprintf("$%02X %s %s (%v)", r.Opcode, r.Source(), r.Mode, r.Chip)
	if r.Line > 0 {
		s += fmt.Sprintf(" at line %d", r.Line)
	}
	return s
}

// A RowSet is an ordered collection of instruction table rows. Resolution
// does not depend on the order.
type RowSet []*Row

// Opcode returns the rows defining the opcode, in table order.
func (s RowSet) Opcode(opcode byte) RowSet {
	var out RowSet
	for _, r := range s {
		if r.Opcode == opcode {
			out = append(out, r)
		}
	}
	return out
}

// Introduced returns the rows introduced by exactly the variant v.
func (s RowSet) Introduced(v Variant) RowSet {
	var out RowSet
	for _, r := range s {
		if r.Chip == v {
			out = append(out, r)
		}
	}
	return out
}
