// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import (
	"encoding/json"

	"github.com/beevik/cpu65gen/compiler"
	"github.com/beevik/cpu65gen/isa"
)

// JSONFile is the name of the JSON document.
const JSONFile = "optable.json"

type document struct {
	Variant    isa.Variant       `json:"variant"`
	Tag        string            `json:"tag"`
	Suppressed bool              `json:"suppressed"`
	Profile    isa.Profile       `json:"profile"`
	Records    []compiler.Record `json:"records"`
	Handlers   []handler         `json:"handlers"`
}

type handler struct {
	compiler.Record
	Opcodes []int `json:"opcodes"`
}

func renderJSON(a *compiler.Artifact) ([]byte, error) {
	doc := document{
		Variant:    a.Variant,
		Tag:        a.Variant.Tag(),
		Suppressed: a.Suppressed,
		Profile:    a.Variant.Profile(),
		Records:    a.Records[:],
	}
	for _, h := range a.Handlers {
		ops := make([]int, len(h.Opcodes))
		for i, op := range h.Opcodes {
			ops[i] = int(op)
		}
		doc.Handlers = append(doc.Handlers, handler{Record: h.Record, Opcodes: ops})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
