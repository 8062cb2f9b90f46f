// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/beevik/cpu65gen/compiler"
	"github.com/beevik/cpu65gen/emit"
	"github.com/beevik/cpu65gen/host"
	"github.com/beevik/cpu65gen/isa"
	"github.com/beevik/term"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	rows    string
	noUndoc bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	noUndoc, err := host.ParseBool(os.Getenv("NOUNDOC"))
	if err != nil {
		logrus.WithField("NOUNDOC", os.Getenv("NOUNDOC")).Warn("ignoring invalid environment value")
	}

	rootCmd := &cobra.Command{
		Use:          "cpu65gen",
		Short:        "Compile 65xx instruction tables into interpreter dispatch tables",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if g.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&g.rows, "rows", "", "instruction table CSV (default: built-in table)")
	rootCmd.PersistentFlags().BoolVar(&g.noUndoc, "noundoc", noUndoc, "suppress undocumented opcodes (default from NOUNDOC)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newGenerateCmd(&g),
		newListCmd(&g),
		newDiffCmd(&g),
		newExploreCmd(&g),
	)
	return rootCmd
}

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var out, format, pkg string

	cmd := &cobra.Command{
		Use:   "generate <variant>",
		Short: "Write the dispatch table files for a variant",
		Long: "Write the dispatch table files for a processor variant. Variants\n" +
			"are 0 (6502), 1 (65C02), 2 (R65C02) and 3 (HuC6280), or any\n" +
			"unambiguous prefix of those names.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fm, err := emit.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := compileVariant(g, args[0])
			if err != nil {
				return err
			}
			e := emit.Emitter{Dir: out, Format: fm, Package: pkg, Log: logrus.StandardLogger()}
			_, err = e.Emit(a)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	cmd.Flags().StringVarP(&format, "format", "f", "c", "output format: c, go or json")
	cmd.Flags().StringVar(&pkg, "package", emit.DefaultPackage, "package name for Go output")
	return cmd
}

func newListCmd(g *globalFlags) *cobra.Command {
	var where string
	var handlers, stats bool

	cmd := &cobra.Command{
		Use:   "list <variant>",
		Short: "List the dispatch records of a variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := compileVariant(g, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case stats:
				emit.WriteStats(w, a)
			case handlers:
				emit.WriteHandlers(w, a)
			case where != "":
				records, err := host.Query(a, where)
				if err != nil {
					return err
				}
				for i := range records {
					emit.WriteRecord(w, &records[i])
				}
			default:
				emit.WriteListing(w, a, 0, len(a.Records))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&where, "where", "w", "", "list only records matching a Starlark expression")
	cmd.Flags().BoolVar(&handlers, "handlers", false, "list distinct handlers instead of opcodes")
	cmd.Flags().BoolVar(&stats, "stats", false, "display opcode counts instead of opcodes")
	return cmd
}

func newDiffCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <variant> <variant>",
		Short: "List the opcodes dispatched differently by two variants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := compileVariant(g, args[0])
			if err != nil {
				return err
			}
			b, err := compileVariant(g, args[1])
			if err != nil {
				return err
			}
			emit.WriteDiff(cmd.OutOrStdout(), a, b, compiler.Diff(a, b))
			return nil
		},
	}
}

func newExploreCmd(g *globalFlags) *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "explore [script] ...",
		Short: "Explore dispatch tables in an interactive shell",
		Long: "Explore dispatch tables in an interactive shell. Commands in\n" +
			"script files are run first. Type 'help' in the shell for a list\n" +
			"of commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := isa.ParseVariant(variant)
			if err != nil {
				return err
			}
			rows, err := loadRows(g.rows)
			if err != nil {
				return err
			}

			h := host.New(compiler.Options{
				Variant:  v,
				Suppress: g.noUndoc,
				Rows:     rows,
				Log:      logrus.StandardLogger(),
			})

			// Run commands contained in command-line files.
			for _, filename := range args {
				file, err := os.Open(filename)
				if err != nil {
					return err
				}
				h.RunCommands(file, cmd.OutOrStdout(), false)
				file.Close()
			}

			interactive := term.IsTerminal(int(os.Stdin.Fd()))
			if len(args) > 0 && !interactive {
				return nil
			}
			h.RunCommands(os.Stdin, cmd.OutOrStdout(), interactive)
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "0", "initial processor variant")
	return cmd
}

func compileVariant(g *globalFlags, name string) (*compiler.Artifact, error) {
	v, err := isa.ParseVariant(name)
	if err != nil {
		return nil, err
	}
	rows, err := loadRows(g.rows)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(compiler.Options{
		Variant:  v,
		Suppress: g.noUndoc,
		Rows:     rows,
		Log:      logrus.StandardLogger(),
	})
}

// loadRows reads an instruction table file. An empty filename selects the
// built-in table.
func loadRows(filename string) (isa.RowSet, error) {
	if filename == "" {
		return nil, nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := isa.ReadRows(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return rows, nil
}
