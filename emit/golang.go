// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import (
	"bytes"
	"fmt"
	"go/format"

	"github.com/beevik/cpu65gen/compiler"
)

// GoFile is the name of the Go source file.
const GoFile = "optable.go"

// DefaultPackage is the package of the Go source when none is given.
const DefaultPackage = "optable"

func renderGo(a *compiler.Artifact, pkg string) ([]byte, error) {
	if pkg == "" {
		pkg = DefaultPackage
	}

	var b bytes.Buffer
	p := a.Variant.Profile()

	fmt.Fprintln(&b, "// Code generated by cpu65gen; DO NOT EDIT.")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "package %s\n\n", pkg)

	fmt.Fprintln(&b, "// Processor constants.")
	fmt.Fprintln(&b, "const (")
	fmt.Fprintf(&b, "CPUType = %q\n", a.Variant.String())
	fmt.Fprintf(&b, "MaxFetch = %d\n", p.MaxFetch)
	fmt.Fprintf(&b, "BranchPenalty = %d\n", p.BranchPenalty)
	fmt.Fprintf(&b, "IntVector = 0x%04x\n", p.IntVector)
	fmt.Fprintf(&b, "PLPMask = 0x%02x\n", p.PLPMask)
	fmt.Fprintf(&b, "IntMask = 0x%02x\n", p.IntMask)
	fmt.Fprintf(&b, "TInit = %v\n", p.TInit)
	fmt.Fprintf(&b, "BInit = %v\n", p.BInit)
	fmt.Fprintf(&b, "Undocumented = %v\n", !a.Suppressed)
	fmt.Fprintln(&b, ")")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "// Op describes how one opcode is dispatched.")
	fmt.Fprintln(&b, "type Op struct {")
	fmt.Fprintln(&b, "Label string")
	fmt.Fprintln(&b, "Mode string")
	fmt.Fprintln(&b, "Length byte")
	fmt.Fprintln(&b, "Cycles byte")
	fmt.Fprintln(&b, "PageCross bool")
	fmt.Fprintln(&b, "}")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "// Ops is the dispatch table, indexed by opcode.")
	fmt.Fprintln(&b, "var Ops = [256]Op{")
	for i := range a.Records {
		r := &a.Records[i]
		fmt.Fprintf(&b, "0x%02X: {%q, %q, %d, %d, %v}, // %s\n",
			r.Opcode, r.Label, r.Mode.String(), r.Length, r.Cycles, r.PageCross, r.Raw)
	}
	fmt.Fprintln(&b, "}")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "// Handlers lists the distinct handler labels in dispatch order.")
	fmt.Fprintln(&b, "var Handlers = []string{")
	for i := range a.Handlers {
		fmt.Fprintf(&b, "%q,\n", a.Handlers[i].Label)
	}
	fmt.Fprintln(&b, "}")

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}
