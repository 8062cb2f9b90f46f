// Copyright 2018 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive shell for exploring compiled
// dispatch tables.
//
// Within the shell it is possible to compile the instruction table for any
// processor variant, inspect individual opcodes and handlers, search the
// dispatch records with Starlark expressions, compare variants, and write
// the generated interpreter files.
package host

import (
	"bufio"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/cpu65gen/compiler"
	"github.com/beevik/cpu65gen/emit"
	"github.com/beevik/cpu65gen/isa"
	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
)

// A Host holds the state of an interactive shell session: the instruction
// table, the settings and the most recently compiled dispatch table.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *selection
	settings    *settings
	rows        isa.RowSet
	log         logrus.FieldLogger
	artifact    *compiler.Artifact
}

// New creates a shell that compiles the rows in opts. The variant and
// suppression flag in opts become the initial settings.
func New(opts compiler.Options) *Host {
	h := &Host{
		settings: newSettings(),
		rows:     opts.Rows,
		log:      opts.Log,
	}
	if h.log == nil {
		h.log = logrus.StandardLogger()
	}
	h.settings.Variant = opts.Variant.String()
	h.settings.NoUndoc = opts.Suppress
	return h
}

// Compile compiles the dispatch table for the current settings.
func (h *Host) Compile() (*compiler.Artifact, error) {
	v, err := isa.ParseVariant(h.settings.Variant)
	if err != nil {
		return nil, err
	}
	a, err := compiler.Compile(h.options(v))
	if err != nil {
		return nil, err
	}
	h.settings.Variant = v.String()
	h.artifact = a
	return a, nil
}

func (h *Host) options(v isa.Variant) compiler.Options {
	return compiler.Options{
		Variant:  v,
		Suppress: h.settings.NoUndoc,
		Rows:     h.rows,
		Log:      h.log,
	}
}

// RunCommands accepts shell commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if h.artifact == nil {
		if _, err := h.Compile(); err != nil {
			h.printf("ERROR: %v.\n", err)
		}
	}

	if interactive {
		h.println()
		h.displaySummary()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c selection
		if line != "" {
			c, err = lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		err = c.Command.Data.(*command).handler(h, c)
		if err != nil {
			break
		}
	}
	h.flush()
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return strings.TrimSpace(h.input.Text()), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) displaySummary() {
	if h.artifact == nil {
		return
	}
	s := h.artifact.Stats()
	h.printf("%s: %d handlers, %d undocumented, %d invalid opcodes.\n",
		h.artifact.Variant, s.Handlers, s.Undocumented, s.Sentinel)
}

// requireArtifact returns the current dispatch table, or prints an error
// if there is none.
func (h *Host) requireArtifact() *compiler.Artifact {
	if h.artifact == nil {
		h.printf("%v.\n", ErrNotCompiled)
	}
	return h.artifact
}

// labelNames returns the handler labels of the current table as Starlark
// names for numeric arguments.
func (h *Host) labelNames() starlark.StringDict {
	names := starlark.StringDict{}
	if h.artifact != nil {
		for _, hd := range h.artifact.Handlers {
			names[hd.Label] = starlark.MakeInt(int(hd.Opcode))
		}
	}
	return names
}

func (h *Host) parseOpcode(s string) (byte, error) {
	v, err := parseNumber(s, h.settings.HexMode, h.labelNames())
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0xff {
		return 0, fmt.Errorf("%w: %d", ErrOpcodeRange, v)
	}
	return byte(v), nil
}

func (h *Host) cmdHelp(c selection) error {
	if len(c.Args) == 0 {
		h.println("Commands:")
		for _, cc := range commands {
			if cc.brief != "" {
				h.printf("    %-15s  %s\n", cc.name, cc.brief)
			}
		}
		return nil
	}

	s, err := lookup(strings.Join(c.Args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	cc := s.Command.Data.(*command)
	if cc.usage != "" {
		h.printf("Syntax: %s\n\n", cc.usage)
	}
	switch {
	case cc.description != "":
		h.printf("Description:\n%s\n\n", indentWrap(3, cc.description))
	case cc.brief != "":
		h.printf("Description:\n%s.\n\n", indentWrap(3, cc.brief))
	}
	return nil
}

func (h *Host) cmdCompile(c selection) error {
	prev := h.settings.Variant
	if len(c.Args) > 0 {
		h.settings.Variant = c.Args[0]
	}
	if _, err := h.Compile(); err != nil {
		h.settings.Variant = prev
		h.printf("ERROR: %v.\n", err)
		return nil
	}
	h.settings.NextListOp = 0
	h.displaySummary()
	return nil
}

func (h *Host) cmdVariant(c selection) error {
	current, _ := isa.ParseVariant(h.settings.Variant)
	for _, v := range isa.Variants() {
		mark := ' '
		if v == current {
			mark = '*'
		}
		h.printf("  %c %d  %-8s %s\n", mark, v, v, v.Tag())
	}

	p := current.Profile()
	h.println()
	h.printf("Max fetch:       %d bytes\n", p.MaxFetch)
	h.printf("Branch penalty:  %d cycles\n", p.BranchPenalty)
	h.printf("IRQ vector:      $%04X\n", p.IntVector)
	h.printf("PLP mask:        $%02X\n", p.PLPMask)
	h.printf("Interrupt mask:  $%02X\n", p.IntMask)
	h.printf("Initial T, B:    %v, %v\n", p.TInit, p.BInit)
	return nil
}

func (h *Host) cmdOpcode(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}
	a := h.requireArtifact()
	if a == nil {
		return nil
	}

	op, err := h.parseOpcode(strings.Join(c.Args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	r := &a.Records[op]
	kind := "documented"
	switch {
	case r.Sentinel:
		kind = "invalid"
	case !r.Canonical:
		kind = "undocumented"
	}

	h.printf("Opcode:      $%02X\n", r.Opcode)
	h.printf("Handler:     %s %s\n", r.Label, r.Op.Macro())
	h.printf("Instruction: %s (%s)\n", r.Raw, kind)
	h.printf("Mode:        %s (%s) %s\n", r.Mode, r.Mode.Description(), r.Mode.Syntax())
	h.printf("Length:      %d\n", r.Length)
	h.printf("Cycles:      %d\n", r.Cycles)
	h.printf("Page cross:  %v\n", r.PageCross)
	if !r.Sentinel {
		h.printf("Introduced:  %v\n", r.Chip)
	}
	if hd := a.Handler(r.Label); hd != nil && len(hd.Opcodes) > 1 {
		h.printf("Shared by:  ")
		for _, o := range hd.Opcodes {
			h.printf(" $%02X", o)
		}
		h.println()
	}
	return nil
}

func (h *Host) cmdList(c selection) error {
	a := h.requireArtifact()
	if a == nil {
		return nil
	}

	start := int(h.settings.NextListOp)
	if len(c.Args) > 0 {
		op, err := h.parseOpcode(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		start = int(op)
	}

	count := h.settings.ListLines
	if len(c.Args) > 1 {
		n, err := parseNumber(c.Args[1], h.settings.HexMode, nil)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = int(n)
	}
	if count <= 0 {
		h.displayUsage(c)
		return nil
	}

	emit.WriteListing(h.output, a, start, count)
	h.flush()

	next := start + count
	if next > 0xff {
		next = 0
	}
	h.settings.NextListOp = uint8(next)

	// Repeating the command continues the listing.
	h.lastCmd.Args = []string{fmt.Sprintf("$%02X", next), fmt.Sprintf("$%X", count)}
	return nil
}

func (h *Host) cmdHandlers(c selection) error {
	if a := h.requireArtifact(); a != nil {
		emit.WriteHandlers(h.output, a)
		h.flush()
	}
	return nil
}

func (h *Host) cmdStats(c selection) error {
	if a := h.requireArtifact(); a != nil {
		emit.WriteStats(h.output, a)
		h.flush()
	}
	return nil
}

func (h *Host) cmdQuery(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}
	a := h.requireArtifact()
	if a == nil {
		return nil
	}

	records, err := Query(a, strings.Join(c.Args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	for i := range records {
		emit.WriteRecord(h.output, &records[i])
	}
	h.printf("%d records.\n", len(records))
	return nil
}

func (h *Host) cmdDiff(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}
	a := h.requireArtifact()
	if a == nil {
		return nil
	}

	v, err := isa.ParseVariant(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	b, err := compiler.Compile(h.options(v))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	emit.WriteDiff(h.output, a, b, compiler.Diff(a, b))
	h.flush()
	return nil
}

func (h *Host) cmdEmit(c selection) error {
	a := h.requireArtifact()
	if a == nil {
		return nil
	}

	format, err := emit.ParseFormat(h.settings.Format)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	e := emit.Emitter{
		Dir:     h.settings.OutputDir,
		Format:  format,
		Package: h.settings.Package,
		Log:     h.log,
	}
	if len(c.Args) > 0 {
		e.Dir = c.Args[0]
	}

	paths, err := e.Emit(a)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	for _, p := range paths {
		h.printf("Wrote '%s'.\n", p)
	}
	return nil
}

func (h *Host) cmdSet(c selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c)

	default:
		key, value := c.Args[0], strings.Join(c.Args[1:], " ")

		name, kind := h.settings.Field(key)
		var err error
		switch kind {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.String:
			err = h.settings.Set(key, value)
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		default:
			var v int64
			v, err = parseNumber(value, h.settings.HexMode, nil)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.println("Setting updated.")
		h.onSettingsUpdate(name)
	}

	return nil
}

func (h *Host) onSettingsUpdate(name string) {
	switch name {
	case "Variant", "NoUndoc":
		if _, err := h.Compile(); err != nil {
			h.printf("ERROR: %v.\n", err)
			if h.artifact != nil {
				h.settings.Variant = h.artifact.Variant.String()
			}
			return
		}
		h.settings.NextListOp = 0
		h.displaySummary()
	}
}

func (h *Host) cmdQuit(c selection) error {
	return errExitShell
}

func (h *Host) displayUsage(c selection) {
	if cc, ok := c.Command.Data.(*command); ok && cc.usage != "" {
		h.printf("Syntax: %s\n", cc.usage)
	} else {
		h.println("<no help text>")
	}
}
