// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compiler

import "github.com/beevik/cpu65gen/isa"

type opSet map[string]bool

func newOpSet(names ...string) opSet {
	s := make(opSet, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

var (
	// Operations that read their memory operand.
	readOps = newOpSet(
		"lda", "ldx", "ldy", "eor", "and", "ora", "adc", "sbc",
		"cmp", "bit", "lax", "lae", "shs", "nop",
	)

	// Read-modify-write operations, including the combined undocumented
	// forms.
	rmwOps = newOpSet(
		"asl", "lsr", "rol", "ror", "inc", "dec",
		"slo", "sre", "rla", "rra", "isc", "dcp",
	)

	// Operations that only write memory. Their timing never depends on a
	// page crossing.
	writeOps = newOpSet("sta", "stx", "sty", "stz", "sax", "sha", "shx", "shy")
)

// PageCross reports whether an instruction takes an extra cycle when its
// effective address crosses a page boundary, or when it is a branch whose
// taken target lies on another page. The HuC6280 cycle table already
// accounts for these cases, so it never reports a penalty.
func PageCross(mnemonic string, mode isa.Mode, target isa.Variant) bool {
	switch {
	case target == isa.HuC6280:
		return false
	case mode == isa.REL:
		return true
	case writeOps[mnemonic]:
		return false
	}

	switch mode {
	case isa.ABX:
		// Indexed read-modify-write has no page penalty on the NMOS part.
		return readOps[mnemonic] || (target > isa.NMOS && rmwOps[mnemonic])
	case isa.ABY, isa.IZY:
		return readOps[mnemonic]
	default:
		return false
	}
}
