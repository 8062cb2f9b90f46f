// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import (
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/cpu65gen/compiler"
)

// Names of the C headers.
const (
	OpTableFile = "optbl.h"
	LabelsFile  = "oplabels.h"
	TypeFile    = "cpu65type.h"
)

func renderC(a *compiler.Artifact) []File {
	var tbl, labels, typ bytes.Buffer
	WriteOpTable(&tbl, a)
	WriteLabels(&labels, a)
	WriteType(&typ, a)
	return []File{
		{Name: OpTableFile, Data: tbl.Bytes()},
		{Name: LabelsFile, Data: labels.Bytes()},
		{Name: TypeFile, Data: typ.Bytes()},
	}
}

// WriteOpTable writes the OPDEF entries mapping each opcode to its handler
// label.
func WriteOpTable(w io.Writer, a *compiler.Artifact) {
	for i := range a.Records {
		r := &a.Records[i]
		fmt.Fprintf(w, "\tOPDEF(0x%02x, %s),\n", r.Opcode, r.Label)
	}
}

// WriteLabels writes one labelled handler block per distinct handler, in
// the order the handlers were first dispatched to.
func WriteLabels(w io.Writer, a *compiler.Artifact) {
	for i := range a.Handlers {
		h := &a.Handlers[i]

		pcp := "u8 pcp = 0"
		if h.PageCross {
			pcp = "u8 pcp = 1"
		}

		mode := h.Mode.String()
		fmt.Fprintf(w, "\t#undef am\n\t#define am am_%s\n", mode)
		fmt.Fprintf(w, "\tlab_%s: { OPSTART(0x%02x, %s); unsigned tmp, tmp2;"+
			"/*enum address_mode am = am_%s*/; %s; TRACE(\"%s\", am_%s); "+
			"cpu->pc += %d; %s; %s; cyc += %d; CHKDONE(); DISPATCH(); }\n",
			h.Label, h.Opcode, h.Label, mode, pcp, h.Raw, mode,
			h.Length, "", h.Op.Macro(), h.Cycles)
	}
}

// WriteType writes the definition selecting the interpreter's processor
// type.
func WriteType(w io.Writer, a *compiler.Artifact) {
	fmt.Fprintf(w, "#define CPU_TYPE %s\n", a.Variant.Tag())
}
