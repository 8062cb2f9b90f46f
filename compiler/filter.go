// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compiler

import "github.com/beevik/cpu65gen/isa"

// SentinelLabel is the handler label of the invalid opcode, which halts the
// interpreter.
const SentinelLabel = "kil_imp1"

// The sentinel row is shared by every slot it fills. Its Opcode field is
// not meaningful.
var sentinel = isa.MustRow(0x02, "kil", isa.NMOS, isa.IMP1)

// IsSentinel reports whether r is the invalid-opcode row substituted by
// Filter.
func IsSentinel(r *isa.Row) bool {
	return r == sentinel
}

// Filter fills every undefined slot of a resolved table with the invalid
// opcode. When suppress is true, undocumented instructions are replaced by
// the invalid opcode as well, except on variants that have no undocumented
// opcodes: there every such opcode is a real no-op and suppression is
// ignored. Filter returns the new table and whether suppression was
// applied.
func Filter(t Table, target isa.Variant, suppress bool) (Table, bool) {
	suppress = suppress && target.HasUndocumented()
	for op, r := range t {
		switch {
		case r == nil:
			t[op] = sentinel
		case suppress && !r.Canonical:
			t[op] = sentinel
		}
	}
	return t, suppress
}
