// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/cpu65gen/emit"
	"github.com/beevik/cpu65gen/isa"
	"github.com/beevik/prefixtree/v2"
)

type settings struct {
	Variant    string `doc:"target processor variant"`
	NoUndoc    bool   `doc:"suppress undocumented opcodes"`
	HexMode    bool   `doc:"hexadecimal input mode"`
	Format     string `doc:"output format used by emit"`
	Package    string `doc:"package name of emitted Go source"`
	OutputDir  string `doc:"directory written by emit"`
	ListLines  int    `doc:"default number of opcodes to list"`
	NextListOp uint8  `doc:"opcode of next listing"`
}

func newSettings() *settings {
	return &settings{
		Variant:    isa.NMOS.String(),
		NoUndoc:    false,
		HexMode:    false,
		Format:     emit.FormatC.String(),
		Package:    emit.DefaultPackage,
		OutputDir:  ".",
		ListLines:  16,
		NextListOp: 0,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var s string
		switch f.kind {
		case reflect.String:
			s = fmt.Sprintf("    %-12s \"%s\"", f.name, v.String())
		case reflect.Uint8:
			s = fmt.Sprintf("    %-12s $%02X", f.name, uint8(v.Uint()))
		default:
			s = fmt.Sprintf("    %-12s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-28s (%s)\n", s, f.doc)
	}
}

// Field returns the canonical name and kind of the setting matching key,
// which may be any unambiguous prefix.
func (s *settings) Field(key string) (string, reflect.Kind) {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return "", reflect.Invalid
	}
	return f.name, f.kind
}

func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return fmt.Errorf("setting '%s': %w", key, err)
	}

	vIn := reflect.ValueOf(value)
	if (f.kind == reflect.String && vIn.Type().Kind() != reflect.String) ||
		(f.kind != reflect.String && vIn.Type().Kind() == reflect.String) ||
		!vIn.Type().ConvertibleTo(f.typ) {
		return ErrSettingType
	}
	vInConverted := vIn.Convert(f.typ)

	vOut := reflect.ValueOf(s).Elem().Field(f.index).Addr().Elem()
	vOut.Set(vInConverted)

	return nil
}
