// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compiler

import (
	"errors"

	"github.com/beevik/cpu65gen/isa"
	"github.com/beevik/cpu65gen/translate"
)

var f = translate.From

// ErrConflict is wrapped by every ConflictError.
var ErrConflict = errors.New(f("conflicting instruction definitions"))

// A ConflictError reports two rows introduced by the same variant that both
// define an opcode. The instruction table is ambiguous and cannot be
// compiled.
type ConflictError struct {
	Opcode byte
	Target isa.Variant
	First  *isa.Row
	Second *isa.Row
}

func (e *ConflictError) Error() string {
	return f("opcode $%02X defined twice for %v (compiling %v): %v and %v",
		e.Opcode, e.First.Chip, e.Target, e.First, e.Second)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
