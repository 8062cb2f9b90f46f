// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compiler turns an instruction table into a dispatch artifact for
// one processor variant: a record for each of the 256 opcodes and the list
// of distinct handlers an interpreter must implement.
package compiler

import (
	"fmt"

	"github.com/beevik/cpu65gen/isa"
	"github.com/sirupsen/logrus"
)

// A Table holds, for every opcode, the row that defines it. A nil slot is
// an opcode no row defines.
type Table [256]*isa.Row

// Count returns the number of defined opcodes in the table.
func (t *Table) Count() int {
	n := 0
	for _, r := range t {
		if r != nil {
			n++
		}
	}
	return n
}

// Resolve selects, for each opcode, the row that applies to the target
// variant. Rows introduced after the target are ignored. Among the rest, the
// row introduced by the highest ranked variant owns the opcode. Two rows for
// the same opcode introduced by the same variant make the table ambiguous,
// and Resolve returns a *ConflictError. A row with an addressing mode
// outside the catalog yields an *isa.ModeError. The result does not depend
// on the order of the rows.
func Resolve(rows isa.RowSet, target isa.Variant) (Table, error) {
	return resolve(rows, target, nil)
}

func resolve(rows isa.RowSet, target isa.Variant, log logrus.FieldLogger) (Table, error) {
	var t Table
	if !target.Valid() {
		return t, fmt.Errorf("%w: rank %d", isa.ErrVariantUnknown, target)
	}

	var byRank [256][isa.NumVariants]*isa.Row
	for _, r := range rows {
		if !r.Mode.Valid() {
			return Table{}, &isa.ModeError{Line: r.Line, Opcode: r.Opcode, Mode: r.Mode.String()}
		}
		if r.Chip > target {
			continue
		}
		slot := &byRank[r.Opcode][r.Chip]
		if *slot != nil {
			return Table{}, &ConflictError{
				Opcode: r.Opcode,
				Target: target,
				First:  *slot,
				Second: r,
			}
		}
		*slot = r
	}

	for op := range byRank {
		for v := int(target); v >= 0; v-- {
			r := byRank[op][v]
			if r == nil {
				continue
			}
			if t[op] == nil {
				t[op] = r
			} else if log != nil {
				log.WithFields(logrus.Fields{
					"opcode": fmt.Sprintf("$%02X", op),
					"from":   label(r),
					"to":     label(t[op]),
					"chip":   t[op].Chip.String(),
				}).Debug("opcode redefined")
			}
		}
	}
	return t, nil
}
