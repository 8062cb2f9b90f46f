// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import (
	"bytes"
	"encoding/json"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/cpu65gen/compiler"
	"github.com/beevik/cpu65gen/isa"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func artifact(t *testing.T, v isa.Variant, suppress bool) *compiler.Artifact {
	t.Helper()
	log, _ := test.NewNullLogger()
	a, err := compiler.Compile(compiler.Options{Variant: v, Suppress: suppress, Log: log})
	require.NoError(t, err)
	return a
}

func TestParseFormat(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"c", "go", "json", "JSON"} {
		fm, err := ParseFormat(name)
		assert.NoError(err)
		assert.Equal(strings.ToLower(name), fm.String())
	}
	_, err := ParseFormat("yaml")
	assert.ErrorIs(err, ErrFormatUnknown)
}

func TestOpTable(t *testing.T) {
	assert := assert.New(t)

	var b bytes.Buffer
	WriteOpTable(&b, artifact(t, isa.NMOS, false))
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	assert.Len(lines, 256)
	assert.Equal("\tOPDEF(0x00, brk_imp1),", lines[0])
	assert.Equal("\tOPDEF(0xa9, lda_imm),", lines[0xa9])
	assert.Equal("\tOPDEF(0xa7, lax_zp),", lines[0xa7])

	b.Reset()
	WriteOpTable(&b, artifact(t, isa.NMOS, true))
	lines = strings.Split(b.String(), "\n")
	assert.Equal("\tOPDEF(0xa7, kil_imp1),", lines[0xa7])
}

func TestLabels(t *testing.T) {
	assert := assert.New(t)

	var b bytes.Buffer
	WriteLabels(&b, artifact(t, isa.NMOS, false))
	out := b.String()

	assert.Contains(out, "\t#undef am\n\t#define am am_imm\n"+
		"\tlab_lda_imm: { OPSTART(0xa9, lda_imm); unsigned tmp, tmp2;"+
		"/*enum address_mode am = am_imm*/; u8 pcp = 0; TRACE(\"lda\", am_imm); "+
		"cpu->pc += 2; ; OP_LDA(); cyc += 2; CHKDONE(); DISPATCH(); }\n")
	assert.Contains(out, "\tlab_bpl_rel: { OPSTART(0x10, bpl_rel); unsigned tmp, tmp2;"+
		"/*enum address_mode am = am_rel*/; u8 pcp = 1; TRACE(\"bpl\", am_rel); "+
		"cpu->pc += 2; ; OP_BPL(); cyc += 2; CHKDONE(); DISPATCH(); }\n")
	assert.Contains(out, "TRACE(\"%slo\", am_izx)")
	assert.Equal(1, strings.Count(out, "lab_nop_imp1:"))

	b.Reset()
	WriteLabels(&b, artifact(t, isa.Rockwell, false))
	out = b.String()
	assert.Contains(out, "lab_rmb3_zp: { OPSTART(0x37, rmb3_zp);")
	assert.Contains(out, "OP_RMB(3); cyc += 5;")

	b.Reset()
	WriteLabels(&b, artifact(t, isa.HuC6280, false))
	assert.Contains(b.String(), "TRACE(\"bne\", am_rel); cpu->pc += 2; ; OP_BNE(); cyc += 2;")
	assert.NotContains(b.String(), "u8 pcp = 1")
}

func TestType(t *testing.T) {
	tests := []struct {
		v   isa.Variant
		exp string
	}{
		{isa.NMOS, "#define CPU_TYPE CPU_TYPE_6502\n"},
		{isa.CMOS, "#define CPU_TYPE CPU_TYPE_65C02\n"},
		{isa.Rockwell, "#define CPU_TYPE CPU_TYPE_R65C02\n"},
		{isa.HuC6280, "#define CPU_TYPE CPU_TYPE_HUC6280\n"},
	}
	for _, tt := range tests {
		var b bytes.Buffer
		WriteType(&b, artifact(t, tt.v, false))
		assert.Equal(t, tt.exp, b.String())
	}
}

func TestRenderGo(t *testing.T) {
	assert := assert.New(t)

	files, err := Render(artifact(t, isa.HuC6280, true), FormatGo, "pce")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(GoFile, files[0].Name)

	src := files[0].Data
	file, err := parser.ParseFile(token.NewFileSet(), GoFile, src, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal("pce", file.Name.Name)

	s := string(src)
	assert.True(strings.HasPrefix(s, "// Code generated by cpu65gen; DO NOT EDIT.\n"))
	assert.Contains(s, `"HUC6280"`)
	assert.Contains(s, "0xfff6")
	assert.Contains(s, `0x73: {"tii_imp3", "imp3", 7, 17, false}`)
}

func TestRenderJSON(t *testing.T) {
	assert := assert.New(t)

	files, err := Render(artifact(t, isa.CMOS, false), FormatJSON, "")
	require.NoError(t, err)
	require.Len(t, files, 1)

	var doc struct {
		Variant  string `json:"variant"`
		Tag      string `json:"tag"`
		Records  []map[string]any
		Handlers []struct {
			Label   string `json:"label"`
			Opcodes []int  `json:"opcodes"`
		}
		Profile struct {
			IntVector int `json:"intVector"`
		}
	}
	require.NoError(t, json.Unmarshal(files[0].Data, &doc))
	assert.Equal("65C02", doc.Variant)
	assert.Equal("CPU_TYPE_65C02", doc.Tag)
	assert.Equal(0xfffe, doc.Profile.IntVector)
	require.Len(t, doc.Records, 256)
	assert.Equal("inc_acc", doc.Records[0x1a]["label"])
	assert.Equal("acc", doc.Records[0x1a]["mode"])
	assert.Equal("brk_imp1", doc.Handlers[0].Label)
	assert.Equal([]int{0}, doc.Handlers[0].Opcodes)
}

func TestEmitter(t *testing.T) {
	assert := assert.New(t)

	a := artifact(t, isa.CMOS, false)
	dir := filepath.Join(t.TempDir(), "gen")
	log, hook := test.NewNullLogger()
	e := &Emitter{Dir: dir, Format: FormatC, Log: log}

	paths, err := e.Emit(a)
	require.NoError(t, err)
	assert.Equal([]string{
		filepath.Join(dir, OpTableFile),
		filepath.Join(dir, LabelsFile),
		filepath.Join(dir, TypeFile),
	}, paths)
	assert.Len(hook.AllEntries(), 3)

	files, err := Render(a, FormatC, "")
	require.NoError(t, err)
	for i, file := range files {
		data, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		assert.Equal(file.Data, data)
	}

	_, err = (&Emitter{Dir: dir, Format: Format(7)}).Emit(a)
	assert.ErrorIs(err, ErrFormatUnknown)
}

func TestRenderDeterministic(t *testing.T) {
	for _, fm := range []Format{FormatC, FormatGo, FormatJSON} {
		a, err := Render(artifact(t, isa.Rockwell, false), fm, "")
		require.NoError(t, err)
		b, err := Render(artifact(t, isa.Rockwell, false), fm, "")
		require.NoError(t, err)
		assert.Equal(t, a, b, fm.String())
	}
}
