// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

type command struct {
	name        string
	brief       string
	description string
	usage       string
	handler     func(*Host, selection) error
}

// A selection is a command matched from an input line, along with the
// arguments that follow it.
type selection struct {
	Command *cmd.Command
	Args    []string
}

func lookup(line string) (selection, error) {
	c, args, err := cmds.LookupCommand(line)
	if err != nil {
		return selection{}, err
	}
	return selection{Command: c, Args: args}, nil
}

var (
	cmds     *cmd.Tree
	commands []*command
)

func addCommand(root *cmd.Tree, c *command) {
	commands = append(commands, c)
	root.AddCommand(cmd.CommandDescriptor{
		Name:        c.name,
		Brief:       c.brief,
		Description: c.description,
		Usage:       c.usage,
		Data:        c,
	})
}

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "cpu65gen"})
	addCommand(root, &command{
		name:        "help",
		description: "Display help for a command.",
		usage:       "help [<command>]",
		handler:     (*Host).cmdHelp,
	})
	addCommand(root, &command{
		name:  "compile",
		brief: "Compile the dispatch table",
		description: "Compile the dispatch table for the current variant." +
			" If a variant is given, it becomes the current variant first." +
			" Variants may be named by rank (0-3) or by any unambiguous" +
			" prefix of a processor name.",
		usage:   "compile [<variant>]",
		handler: (*Host).cmdCompile,
	})
	addCommand(root, &command{
		name:  "variant",
		brief: "Display processor variants",
		description: "List the processor variants and display the" +
			" interpreter constants of the current one.",
		usage:   "variant",
		handler: (*Host).cmdVariant,
	})
	addCommand(root, &command{
		name:  "opcode",
		brief: "Describe an opcode",
		description: "Display how an opcode is dispatched: its handler," +
			" addressing mode, length, cycle count and page crossing" +
			" penalty. The opcode may be a number or a handler label.",
		usage:   "opcode <opcode>",
		handler: (*Host).cmdOpcode,
	})
	addCommand(root, &command{
		name:  "list",
		brief: "List dispatch records",
		description: "List the dispatch records starting at an opcode." +
			" The number of records may be specified as an option. A '+'" +
			" marks a page crossing penalty and a '*' an undocumented" +
			" instruction.",
		usage:   "list [<opcode> [<count>]]",
		handler: (*Host).cmdList,
	})
	addCommand(root, &command{
		name:        "handlers",
		brief:       "List handlers",
		description: "List every distinct handler and the opcodes dispatching to it.",
		usage:       "handlers",
		handler:     (*Host).cmdHandlers,
	})
	addCommand(root, &command{
		name:        "stats",
		brief:       "Display opcode counts",
		description: "Count the opcodes of the compiled table by kind.",
		usage:       "stats",
		handler:     (*Host).cmdStats,
	})
	addCommand(root, &command{
		name:  "query",
		brief: "Find records matching an expression",
		description: "List the records for which a Starlark expression is" +
			" true. The expression may use the names opcode, length," +
			" cycles, label, mnemonic, raw, mode, op, chip, pagecross," +
			" canonical, sentinel and undocumented.",
		usage:   "query <expression>",
		handler: (*Host).cmdQuery,
	})
	addCommand(root, &command{
		name:  "diff",
		brief: "Compare with another variant",
		description: "List the opcodes dispatched differently by another" +
			" variant.",
		usage:   "diff <variant>",
		handler: (*Host).cmdDiff,
	})
	addCommand(root, &command{
		name:  "emit",
		brief: "Write generated files",
		description: "Write the compiled table to a directory in the" +
			" current output format. The directory defaults to the" +
			" OutputDir setting.",
		usage:   "emit [<directory>]",
		handler: (*Host).cmdEmit,
	})
	addCommand(root, &command{
		name:  "set",
		brief: "Set a configuration variable",
		description: "Set the value of a configuration variable. Type the set" +
			" command without a variable name or value to display the current" +
			" values of all configuration variables.",
		usage:   "set [<var> <value>]",
		handler: (*Host).cmdSet,
	})
	addCommand(root, &command{
		name:        "quit",
		brief:       "Quit the shell",
		description: "Quit the shell.",
		usage:       "quit",
		handler:     (*Host).cmdQuit,
	})

	// Add command shortcuts.
	root.AddShortcut("?", "help")
	root.AddShortcut("c", "compile")
	root.AddShortcut("d", "diff")
	root.AddShortcut("e", "emit")
	root.AddShortcut("l", "list")
	root.AddShortcut("o", "opcode")
	root.AddShortcut("q", "query")
	root.AddShortcut("v", "variant")

	cmds = root
}
