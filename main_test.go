// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/cpu65gen/emit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	_, err := execute(t, "generate", "--out", dir, "r65")
	require.NoError(t, err)

	for _, name := range []string{emit.OpTableFile, emit.LabelsFile, emit.TypeFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(err, name)
	}
	data, err := os.ReadFile(filepath.Join(dir, emit.TypeFile))
	require.NoError(t, err)
	assert.Equal("#define CPU_TYPE CPU_TYPE_R65C02\n", string(data))

	_, err = execute(t, "generate", "--out", dir, "--format", "json", "3")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, emit.JSONFile))
	assert.NoError(err)

	_, err = execute(t, "generate", "--out", dir, "4")
	assert.Error(err)
	_, err = execute(t, "generate", "--out", dir, "--format", "xml", "0")
	assert.Error(err)
}

func TestList(t *testing.T) {
	assert := assert.New(t)

	out, err := execute(t, "list", "0")
	require.NoError(t, err)
	assert.Len(strings.Split(strings.TrimSpace(out), "\n"), 256)

	out, err = execute(t, "list", "--where", "opcode == 0xea", "65c02")
	require.NoError(t, err)
	assert.True(strings.HasPrefix(out, "$EA  nop_imp1"))

	out, err = execute(t, "list", "--stats", "--noundoc", "0")
	require.NoError(t, err)
	assert.Contains(out, "Suppressed:     true")
	assert.Contains(out, "Undocumented:   0")
}

func TestListRowsFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "rows.csv")
	table := "opcode,mnemonic,chiptype,address_mode\n" +
		"0xea,nop,0,imp1\n" +
		"0xea,%nop,0,imp1\n"
	require.NoError(t, os.WriteFile(path, []byte(table), 0644))

	_, err := execute(t, "list", "--rows", path, "0")
	assert.ErrorContains(err, "$EA")

	_, err = execute(t, "list", "--rows", filepath.Join(t.TempDir(), "missing.csv"), "0")
	assert.Error(err)
}

func TestDiff(t *testing.T) {
	out, err := execute(t, "diff", "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "opcodes differ between 65C02 and R65C02")
	assert.Contains(t, out, "$07  nop_imp1")
}
