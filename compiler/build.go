// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/cpu65gen/isa"
)

// An Operation names the interpreter macro that implements an instruction.
// Instructions that form a family differing only by a bit index, such as
// rmb0 through rmb7, share one macro and pass the index as its argument.
type Operation struct {
	Name   string `json:"name"` // upper-case operation name, e.g. "LDA" or "RMB"
	Arg    int    `json:"arg"`  // bit index, valid when HasArg is true
	HasArg bool   `json:"hasArg"`
}

func newOperation(mnemonic string) Operation {
	name := strings.ToUpper(mnemonic)
	if n := len(name); n > 1 && name[n-1] >= '0' && name[n-1] <= '9' {
		return Operation{Name: name[:n-1], Arg: int(name[n-1] - '0'), HasArg: true}
	}
	return Operation{Name: name}
}

// Macro returns the macro invocation, e.g. "OP_LDA()" or "OP_RMB(3)".
func (o Operation) Macro() string {
	if o.HasArg {
		return "OP_" + o.Name + "(" + strconv.Itoa(o.Arg) + ")"
	}
	return "OP_" + o.Name + "()"
}

// A Record describes how the interpreter dispatches one opcode.
type Record struct {
	Opcode    byte        `json:"opcode"`
	Label     string      `json:"label"`    // handler label, mnemonic_mode
	Mnemonic  string      `json:"mnemonic"` // without marker
	Raw       string      `json:"raw"`      // as written in the table
	Op        Operation   `json:"op"`
	Mode      isa.Mode    `json:"mode"`
	Length    int         `json:"length"`
	Cycles    int         `json:"cycles"`
	PageCross bool        `json:"pageCross"`
	Canonical bool        `json:"canonical"`
	Sentinel  bool        `json:"sentinel"`
	Chip      isa.Variant `json:"chip"` // variant that introduced the row
}

// Undocumented reports whether the record dispatches an undocumented
// instruction.
func (r *Record) Undocumented() bool {
	return !r.Canonical && !r.Sentinel
}

func (r *Record) String() string {
	s := fmt.Sprintf("$%02X %-10s %d %d", r.Opcode, r.Label, r.Length, r.Cycles)
	if r.PageCross {
		s += "+"
	}
	return s
}

// A Handler is one block of interpreter code. Every opcode whose record has
// the handler's label dispatches to it. The embedded record is that of the
// lowest such opcode.
type Handler struct {
	Record
	Opcodes []byte
}

// An Artifact is a compiled dispatch table.
type Artifact struct {
	Variant    isa.Variant
	Suppressed bool // undocumented opcodes were replaced by the sentinel
	Records    [256]Record
	Handlers   []Handler
}

// Build derives the dispatch records for a filtered table. Every slot of t
// must be filled; Build panics on an empty slot, which Filter never leaves.
func Build(t Table, target isa.Variant) (*Artifact, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: rank %d", isa.ErrVariantUnknown, target)
	}

	a := &Artifact{Variant: target}
	index := make(map[string]int)
	for i, r := range t {
		if r == nil {
			panic(fmt.Sprintf("missing instruction for opcode $%02X", i))
		}

		op := byte(i)
		a.Records[i] = Record{
			Opcode:    op,
			Label:     label(r),
			Mnemonic:  r.Mnemonic,
			Raw:       r.Source(),
			Op:        newOperation(r.Mnemonic),
			Mode:      r.Mode,
			Length:    r.Mode.Length(),
			Cycles:    isa.Cycles(target, op),
			PageCross: PageCross(r.Mnemonic, r.Mode, target),
			Canonical: r.Canonical,
			Sentinel:  IsSentinel(r),
			Chip:      r.Chip,
		}

		rec := &a.Records[i]
		if h, ok := index[rec.Label]; ok {
			a.Handlers[h].Opcodes = append(a.Handlers[h].Opcodes, op)
			continue
		}
		index[rec.Label] = len(a.Handlers)
		a.Handlers = append(a.Handlers, Handler{Record: *rec, Opcodes: []byte{op}})
	}
	return a, nil
}

func label(r *isa.Row) string {
	return r.Mnemonic + "_" + r.Mode.String()
}

// Handler returns the handler with the given label, or nil.
func (a *Artifact) Handler(label string) *Handler {
	for i := range a.Handlers {
		if a.Handlers[i].Label == label {
			return &a.Handlers[i]
		}
	}
	return nil
}

// Stats summarizes the opcodes of an artifact.
type Stats struct {
	Documented   int // opcodes dispatching a documented instruction
	Undocumented int // opcodes dispatching an undocumented instruction
	Sentinel     int // opcodes dispatching the invalid opcode
	PageCross    int // opcodes with a page crossing penalty
	Handlers     int // distinct handlers
}

// Stats counts the opcodes of the artifact by kind.
func (a *Artifact) Stats() Stats {
	s := Stats{Handlers: len(a.Handlers)}
	for i := range a.Records {
		r := &a.Records[i]
		switch {
		case r.Sentinel:
			s.Sentinel++
		case r.Canonical:
			s.Documented++
		default:
			s.Undocumented++
		}
		if r.PageCross {
			s.PageCross++
		}
	}
	return s
}
