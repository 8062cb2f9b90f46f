// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isa

import (
	"errors"
	"strconv"

	"github.com/beevik/cpu65gen/translate"
)

var f = translate.From

// Errors returned by the isa package.
var (
	ErrVariantUnknown   = errors.New(f("unknown processor variant"))
	ErrVariantAmbiguous = errors.New(f("ambiguous processor variant"))
	ErrModeUnknown      = errors.New(f("unknown addressing mode"))
	ErrMnemonicEmpty    = errors.New(f("empty mnemonic"))
	ErrHeaderMissing    = errors.New(f("instruction table header missing"))
)

// A ModeError reports a row naming an addressing mode that is not in the
// catalog.
type ModeError struct {
	Line   int
	Opcode byte
	Mode   string
}

func (e *ModeError) Error() string {
	if e.Line > 0 {
		return f("line %s: opcode $%02X: unknown addressing mode '%s'", strconv.Itoa(e.Line), e.Opcode, e.Mode)
	}
	return f("opcode $%02X: unknown addressing mode '%s'", e.Opcode, e.Mode)
}

func (e *ModeError) Unwrap() error {
	return ErrModeUnknown
}

// A RowError reports a structurally invalid instruction table row.
type RowError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return f("line %s: invalid %s '%s': %v", strconv.Itoa(e.Line), e.Field, e.Value, e.Err)
	}
	return f("line %s: invalid %s '%s'", strconv.Itoa(e.Line), e.Field, e.Value)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
