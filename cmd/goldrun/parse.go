package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Warfley/gold-parser-tools/engine"
	"github.com/Warfley/gold-parser-tools/lexer"
	"github.com/Warfley/gold-parser-tools/parser"
	"github.com/Warfley/gold-parser-tools/table"
	"github.com/Warfley/gold-parser-tools/tree"
)

func newParseCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "parse <table-file> <input-file>",
		Short: "Parse an input file against a compiled grammar table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("trace") {
				trace = cfg.Trace
			}

			tableBytes, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			inputBytes, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			g, err := table.Load(tableBytes)
			if err != nil {
				return err
			}

			var obs *parser.Observers
			if trace {
				obs = traceObservers(cmd.OutOrStdout())
			}

			res := engine.Parse(context.Background(), g, string(inputBytes),
				engine.WithLogger(newLogger()),
				engine.WithObservers(obs),
			)

			if !res.Successful() {
				return res.Err
			}

			tree.Fprint(cmd.OutOrStdout(), res.Tree, 2, 100)
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print a line per shift/reduce/token event")
	return cmd
}

func traceObservers(w io.Writer) *parser.Observers {
	return &parser.Observers{
		OnToken: func(tok *lexer.Token) {
			fmt.Fprintf(w, "token %s %q @%d\n", tok.Symbol.Name, tok.Text, tok.Start)
		},
		OnShift: func(pre *table.LALRState, la *lexer.Token, stack []parser.StackFrame) {
			fmt.Fprintf(w, "shift  state=%d lookahead=%s depth=%d\n", pre.Index, la.Symbol.Name, len(stack))
		},
		OnReduce: func(pre *table.LALRState, la *lexer.Token, stack []parser.StackFrame) {
			fmt.Fprintf(w, "reduce state=%d lookahead=%s depth=%d\n", pre.Index, la.Symbol.Name, len(stack))
		},
	}
}
