// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compiler

// A Change is an opcode dispatched differently by two artifacts.
type Change struct {
	Opcode byte
	Old    Record
	New    Record
}

// Diff returns the opcodes whose handler, length, cycle count or page
// crossing penalty differ between a and b, in opcode order.
func Diff(a, b *Artifact) []Change {
	var changes []Change
	for i := range a.Records {
		ra, rb := a.Records[i], b.Records[i]
		if ra.Label != rb.Label || ra.Length != rb.Length ||
			ra.Cycles != rb.Cycles || ra.PageCross != rb.PageCross {
			changes = append(changes, Change{Opcode: byte(i), Old: ra, New: rb})
		}
	}
	return changes
}
