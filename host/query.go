// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"

	"github.com/beevik/cpu65gen/compiler"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Query returns the records of the artifact for which the Starlark
// expression is true. The expression sees each record through these
// names:
//
//	opcode, length, cycles                       int
//	label, mnemonic, raw, mode, op, chip         string
//	pagecross, canonical, sentinel, undocumented bool
//
// For example: mode == "abx" and pagecross
func Query(a *compiler.Artifact, expr string) ([]compiler.Record, error) {
	var out []compiler.Record
	for i := range a.Records {
		r := &a.Records[i]
		v, err := eval(expr, recordDict(r))
		if err != nil {
			return nil, err
		}
		if v.Truth() {
			out = append(out, *r)
		}
	}
	return out, nil
}

func recordDict(r *compiler.Record) starlark.StringDict {
	return starlark.StringDict{
		"opcode":       starlark.MakeInt(int(r.Opcode)),
		"length":       starlark.MakeInt(r.Length),
		"cycles":       starlark.MakeInt(r.Cycles),
		"label":        starlark.String(r.Label),
		"mnemonic":     starlark.String(r.Mnemonic),
		"raw":          starlark.String(r.Raw),
		"mode":         starlark.String(r.Mode.String()),
		"op":           starlark.String(r.Op.Macro()),
		"chip":         starlark.String(r.Chip.String()),
		"pagecross":    starlark.Bool(r.PageCross),
		"canonical":    starlark.Bool(r.Canonical),
		"sentinel":     starlark.Bool(r.Sentinel),
		"undocumented": starlark.Bool(r.Undocumented()),
	}
}

// eval evaluates a Starlark expression with the given predeclared names.
func eval(expr string, pred starlark.StringDict) (starlark.Value, error) {
	thread := starlark.Thread{Name: "query"}
	opts := syntax.FileOptions{}
	prog := "rc = " + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return nil, err
	}
	rc, ok := dict["rc"]
	if !ok {
		return nil, fmt.Errorf("expression '%s' has no value", expr)
	}
	return rc, nil
}

// evalInt evaluates a Starlark expression that must yield an integer.
func evalInt(expr string, pred starlark.StringDict) (int64, error) {
	v, err := eval(expr, pred)
	if err != nil {
		return 0, err
	}
	i, ok := v.(starlark.Int)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotInteger, expr)
	}
	n, ok := i.Int64()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotInteger, expr)
	}
	return n, nil
}
