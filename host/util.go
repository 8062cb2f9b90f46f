// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
)

func stringToBool(s string) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool value '%s'", s)
	}
}

// ParseBool parses the boolean values accepted by the shell and the
// environment: 0, 1, false and true in any case. An empty string is false.
func ParseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return stringToBool(strings.TrimSpace(s))
}

// toExpr rewrites 6502-style number literals into Starlark syntax. A '$'
// prefix marks a hexadecimal number, and in hex mode a bare run of hex
// digits is hexadecimal too.
func toExpr(s string, hexMode bool) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "$") && len(s) > 1:
		return "0x" + s[1:]
	case hexMode && s != "" && strings.IndexFunc(s, notHex) < 0:
		return "0x" + s
	default:
		return s
	}
}

func notHex(c rune) bool {
	return !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F')
}

// parseNumber evaluates a numeric shell argument. Handler labels may be
// used as names; each stands for the first opcode dispatching to it.
func parseNumber(s string, hexMode bool, names starlark.StringDict) (int64, error) {
	return evalInt(toExpr(s, hexMode), names)
}

func indentWrap(indent int, s string) string {
	const width = 79
	pad := strings.Repeat(" ", indent)

	var b strings.Builder
	col := 0
	for _, word := range strings.Fields(s) {
		switch {
		case col == 0:
			b.WriteString(pad)
			col = indent
		case col+1+len(word) > width:
			b.WriteString("\n")
			b.WriteString(pad)
			col = indent
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(word)
		col += len(word)
	}
	return b.String()
}
