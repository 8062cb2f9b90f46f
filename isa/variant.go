// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package isa describes the 65xx family instruction sets a dispatch table
// can be compiled for: the processor variants, the addressing modes, the
// per-variant cycle timings and the rows of the instruction table.
package isa

import (
	"fmt"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// Variant selects the processor generation. Variants are ordered by
// capability, and each one includes every opcode introduced by the variants
// ranked below it.
type Variant byte

const (
	// NMOS 6502 CPU
	NMOS Variant = iota

	// CMOS WDC 65C02, first revision
	CMOS

	// Rockwell 65C02 (and later WDC parts) with the bit manipulation
	// opcodes
	Rockwell

	// Hudson HuC6280
	HuC6280
)

// NumVariants is the number of supported processor variants.
const NumVariants = 4

var variantNames = [NumVariants]string{"6502", "65C02", "R65C02", "HUC6280"}

// Variants returns all processor variants in rank order.
func Variants() []Variant {
	return []Variant{NMOS, CMOS, Rockwell, HuC6280}
}

// Valid reports whether v is a known variant rank.
func (v Variant) Valid() bool {
	return v < NumVariants
}

// String returns the canonical processor name of the variant.
func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Variant(%d)", byte(v))
	}
	return variantNames[v]
}

// MarshalText encodes the variant by its processor name.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Tag returns the preprocessor symbol identifying the variant in generated
// interpreter code.
func (v Variant) Tag() string {
	return "CPU_TYPE_" + v.String()
}

// HasUndocumented reports whether the variant has undocumented opcodes that
// may be suppressed. Both 65C02 generations express every formerly
// undocumented opcode as a real no-op instruction.
func (v Variant) HasUndocumented() bool {
	return v == NMOS || v == HuC6280
}

// A Profile holds the per-variant constants an interpreter is compiled
// against.
type Profile struct {
	MaxFetch      int    `json:"maxFetch"`      // bytes fetched from PC on each dispatch
	BranchPenalty int    `json:"branchPenalty"` // extra cycles for a taken branch
	IntVector     uint16 `json:"intVector"`     // IRQ/BRK vector
	PLPMask       byte   `json:"plpMask"`       // status bits restored by PLP
	IntMask       byte   `json:"intMask"`       // status bits kept on interrupt entry
	TInit         bool   `json:"tInit"`         // initial T flag
	BInit         bool   `json:"bInit"`         // initial B flag
}

// Profile returns the interpreter constants for the variant.
func (v Variant) Profile() Profile {
	const (
		nFlag = 0x80
		vFlag = 0x40
		tFlag = 0x20
		dFlag = 0x08
		iFlag = 0x04
		zFlag = 0x02
		cFlag = 0x01
	)

	switch v {
	case HuC6280:
		return Profile{
			MaxFetch:      8,
			BranchPenalty: 2,
			IntVector:     0xfff6,
			PLPMask:       0xff,
			IntMask:       ^byte(dFlag | tFlag),
		}
	default:
		p := Profile{
			MaxFetch:      4,
			BranchPenalty: 1,
			IntVector:     0xfffe,
			PLPMask:       nFlag | zFlag | cFlag | iFlag | dFlag | vFlag,
			IntMask:       0xff,
			TInit:         true,
			BInit:         true,
		}
		if v > NMOS {
			p.IntMask = ^byte(dFlag)
		}
		return p
	}
}

var variantTree = prefixtree.New[Variant]()

func init() {
	aliases := map[string]Variant{
		"nmos":     NMOS,
		"cmos":     CMOS,
		"wdc":      CMOS,
		"rockwell": Rockwell,
		"pce":      HuC6280,
	}
	for _, v := range Variants() {
		variantTree.Add(strings.ToLower(v.String()), v)
	}
	for name, v := range aliases {
		variantTree.Add(name, v)
	}
}

// ParseVariant selects a variant by rank ("0" through "3") or by an
// unambiguous prefix of its processor name or alias.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		v := Variant(s[0] - '0')
		if !v.Valid() {
			return 0, fmt.Errorf("%w: rank %s", ErrVariantUnknown, s)
		}
		return v, nil
	}

	v, err := variantTree.FindValue(s)
	switch err {
	case nil:
		return v, nil
	case prefixtree.ErrPrefixAmbiguous:
		return 0, fmt.Errorf("%w: %q", ErrVariantAmbiguous, s)
	default:
		return 0, fmt.Errorf("%w: %q", ErrVariantUnknown, s)
	}
}
