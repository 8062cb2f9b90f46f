// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isa

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Column names required in an instruction table header.
const (
	ColOpcode   = "opcode"
	ColMnemonic = "mnemonic"
	ColChip     = "chiptype"
	ColMode     = "address_mode"
)

//go:embed opcodes.csv
var opcodesCSV []byte

var (
	defaultOnce sync.Once
	defaultRows RowSet
)

// DefaultRows returns the built-in instruction table covering the 6502,
// both 65C02 generations and the HuC6280. The returned set must not be
// modified.
func DefaultRows() RowSet {
	defaultOnce.Do(func() {
		rows, err := ReadRows(bytes.NewReader(opcodesCSV))
		if err != nil {
			panic(fmt.Sprintf("built-in instruction table: %v", err))
		}
		defaultRows = rows
	})
	return defaultRows
}

// ReadRows parses an instruction table. The first record is a header naming
// the columns; the opcode, mnemonic, chiptype and address_mode columns must
// be present, in any order, and other columns are ignored. Lines starting
// with '#' and blank lines are skipped. Opcodes are hexadecimal, with or
// without a 0x prefix.
func ReadRows(r io.Reader) (RowSet, error) {
	csvr := csv.NewReader(r)
	csvr.Comment = '#'
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err == io.EOF {
		return nil, ErrHeaderMissing
	}
	if err != nil {
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	var idx [4]int
	for i, name := range []string{ColOpcode, ColMnemonic, ColChip, ColMode} {
		c, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("%w: no '%s' column", ErrHeaderMissing, name)
		}
		idx[i] = c
	}

	var rows RowSet
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := csvr.FieldPos(0)
		field := func(i int) string {
			if idx[i] >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx[i]])
		}

		row, err := parseRow(line, field(0), field(1), field(2), field(3))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(line int, opcode, mnemonic, chip, mode string) (*Row, error) {
	s := opcode
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	op, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return nil, &RowError{Line: line, Field: ColOpcode, Value: opcode, Err: unwrapNum(err)}
	}

	rank, err := strconv.Atoi(chip)
	if err != nil || rank < 0 || !Variant(rank).Valid() {
		return nil, &RowError{Line: line, Field: ColChip, Value: chip, Err: ErrVariantUnknown}
	}

	m, ok := LookupMode(mode)
	if !ok {
		return nil, &ModeError{Line: line, Opcode: byte(op), Mode: mode}
	}

	row, err := NewRow(byte(op), mnemonic, Variant(rank), m)
	if err != nil {
		return nil, &RowError{Line: line, Field: ColMnemonic, Value: mnemonic, Err: err}
	}
	row.Line = line
	return row, nil
}

func unwrapNum(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
