// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"

	"github.com/beevik/cpu65gen/translate"
)

var f = translate.From

// Errors returned by the host package.
var (
	ErrSettingType = errors.New(f("invalid type"))
	ErrNotInteger  = errors.New(f("expression is not an integer"))
	ErrOpcodeRange = errors.New(f("opcode out of range"))
	ErrNotCompiled = errors.New(f("no dispatch table compiled"))
	errExitShell   = errors.New("exiting shell")
)
