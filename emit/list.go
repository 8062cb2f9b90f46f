// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import (
	"fmt"
	"io"

	"github.com/beevik/cpu65gen/compiler"
)

// WriteRecord writes a one-line description of a record: opcode, handler
// label, operand syntax, length and cycles. A '+' after the cycle count
// marks a page crossing penalty, and a '*' marks an undocumented
// instruction.
func WriteRecord(w io.Writer, r *compiler.Record) {
	var flags [2]byte
	flags[0], flags[1] = ' ', ' '
	if r.PageCross {
		flags[0] = '+'
	}
	if r.Undocumented() {
		flags[1] = '*'
	}
	fmt.Fprintf(w, "$%02X  %-10s %-14s %d  %2d%c%c\n",
		r.Opcode, r.Label, r.Mode.Syntax(), r.Length, r.Cycles, flags[0], flags[1])
}

// WriteListing writes count records starting at opcode start. The listing
// stops after opcode $FF.
func WriteListing(w io.Writer, a *compiler.Artifact, start, count int) {
	for i := start; i < start+count && i < len(a.Records); i++ {
		WriteRecord(w, &a.Records[i])
	}
}

// WriteHandlers writes each distinct handler and the opcodes dispatching
// to it.
func WriteHandlers(w io.Writer, a *compiler.Artifact) {
	for i := range a.Handlers {
		h := &a.Handlers[i]
		fmt.Fprintf(w, "%-10s %-14s", h.Label, h.Op.Macro())
		for _, op := range h.Opcodes {
			fmt.Fprintf(w, " $%02X", op)
		}
		fmt.Fprintln(w)
	}
}

// WriteDiff writes the changes between two artifacts.
func WriteDiff(w io.Writer, from, to *compiler.Artifact, changes []compiler.Change) {
	fmt.Fprintf(w, "%d opcodes differ between %v and %v\n",
		len(changes), from.Variant, to.Variant)
	for _, c := range changes {
		fmt.Fprintf(w, "$%02X  %-10s %2d%s -> %-10s %2d%s\n", c.Opcode,
			c.Old.Label, c.Old.Cycles, plus(c.Old.PageCross),
			c.New.Label, c.New.Cycles, plus(c.New.PageCross))
	}
}

// WriteStats writes the opcode counts of an artifact.
func WriteStats(w io.Writer, a *compiler.Artifact) {
	s := a.Stats()
	fmt.Fprintf(w, "Variant:        %v (%s)\n", a.Variant, a.Variant.Tag())
	fmt.Fprintf(w, "Suppressed:     %v\n", a.Suppressed)
	fmt.Fprintf(w, "Documented:     %d\n", s.Documented)
	fmt.Fprintf(w, "Undocumented:   %d\n", s.Undocumented)
	fmt.Fprintf(w, "Invalid:        %d\n", s.Sentinel)
	fmt.Fprintf(w, "Page crossing:  %d\n", s.PageCross)
	fmt.Fprintf(w, "Handlers:       %d\n", s.Handlers)
}

func plus(b bool) string {
	if b {
		return "+"
	}
	return " "
}
