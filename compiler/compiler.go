// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compiler

import (
	"github.com/beevik/cpu65gen/isa"
	"github.com/sirupsen/logrus"
)

// Options control a compilation.
type Options struct {
	Variant  isa.Variant        // target processor
	Suppress bool               // replace undocumented opcodes by the invalid opcode
	Rows     isa.RowSet         // instruction table; nil selects isa.DefaultRows
	Log      logrus.FieldLogger // nil selects the standard logger
}

// Compile resolves, filters and builds the dispatch artifact described by
// the options.
func Compile(opts Options) (*Artifact, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	rows := opts.Rows
	if rows == nil {
		rows = isa.DefaultRows()
	}

	t, err := resolve(rows, opts.Variant, log)
	if err != nil {
		return nil, err
	}

	t, suppressed := Filter(t, opts.Variant, opts.Suppress)
	if opts.Suppress && !suppressed {
		log.WithFields(logrus.Fields{
			"variant": opts.Variant.String(),
			"flag":    "noundoc",
		}).Warn("variant has no undocumented opcodes; suppression disabled")
	}

	a, err := Build(t, opts.Variant)
	if err != nil {
		return nil, err
	}
	a.Suppressed = suppressed

	s := a.Stats()
	log.WithFields(logrus.Fields{
		"variant":      a.Variant.String(),
		"documented":   s.Documented,
		"undocumented": s.Undocumented,
		"sentinel":     s.Sentinel,
		"handlers":     s.Handlers,
	}).Debug("compiled dispatch table")
	return a, nil
}
