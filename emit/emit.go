// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package emit renders compiled dispatch artifacts as interpreter source:
// C headers for the threaded interpreter, a Go table, or JSON.
package emit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/cpu65gen/compiler"
	"github.com/beevik/cpu65gen/translate"
	"github.com/sirupsen/logrus"
)

var f = translate.From

// ErrFormatUnknown is returned when parsing an unsupported output format.
var ErrFormatUnknown = errors.New(f("unknown output format"))

// Format selects the kind of files produced.
type Format byte

const (
	FormatC    Format = iota // optbl.h, oplabels.h and cpu65type.h
	FormatGo                 // a single Go source file
	FormatJSON               // a single JSON document
)

var formatNames = []string{"c", "go", "json"}

func (fm Format) String() string {
	if int(fm) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", byte(fm))
	}
	return formatNames[fm]
}

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrFormatUnknown, s)
}

// A File is one rendered output file.
type File struct {
	Name string
	Data []byte
}

// Render produces the files of the artifact in the given format. The
// package name is used only by FormatGo.
func Render(a *compiler.Artifact, format Format, pkg string) ([]File, error) {
	switch format {
	case FormatC:
		return renderC(a), nil
	case FormatGo:
		data, err := renderGo(a, pkg)
		if err != nil {
			return nil, err
		}
		return []File{{Name: GoFile, Data: data}}, nil
	case FormatJSON:
		data, err := renderJSON(a)
		if err != nil {
			return nil, err
		}
		return []File{{Name: JSONFile, Data: data}}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrFormatUnknown, format)
	}
}

// An Emitter writes rendered artifacts into a directory.
type Emitter struct {
	Dir     string             // output directory, created if missing
	Format  Format             // output format
	Package string             // package name for FormatGo
	Log     logrus.FieldLogger // nil disables logging
}

// Emit renders the artifact and writes its files. It returns the paths
// written.
func (e *Emitter) Emit(a *compiler.Artifact) ([]string, error) {
	files, err := Render(a, e.Format, e.Package)
	if err != nil {
		return nil, err
	}

	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for _, file := range files {
		path := filepath.Join(dir, file.Name)
		if err := os.WriteFile(path, file.Data, 0644); err != nil {
			return paths, err
		}
		if e.Log != nil {
			e.Log.WithFields(logrus.Fields{
				"path":    path,
				"bytes":   len(file.Data),
				"variant": a.Variant.String(),
			}).Info("wrote file")
		}
		paths = append(paths, path)
	}
	return paths, nil
}
