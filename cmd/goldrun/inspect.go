package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Warfley/gold-parser-tools/table"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <table-file>",
		Short: "Print summary statistics for a compiled grammar table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableBytes, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			res, err := table.LoadWithWarnings(tableBytes)
			if err != nil {
				return err
			}
			g := res.Grammar

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "symbols:    %d\n", len(g.Symbols))
			fmt.Fprintf(out, "charsets:   %d\n", len(g.Charsets))
			fmt.Fprintf(out, "dfa states: %d (initial %d)\n", len(g.DFAStates), g.DFAInitial.Index)
			fmt.Fprintf(out, "rules:      %d\n", g.RuleCount())
			fmt.Fprintf(out, "lalr states:%d (initial %d)\n", len(g.LALRStates), g.LALRInitial.Index)
			fmt.Fprintf(out, "groups:     %d\n", len(g.Groups))
			for _, gr := range g.Groups {
				fmt.Fprintf(out, "  - %s (advance=%v ending=%v)\n", gr.Name, gr.Advance, gr.Ending)
			}
			if len(res.Warnings) > 0 {
				fmt.Fprintf(out, "warnings:\n")
				for _, w := range res.Warnings {
					fmt.Fprintf(out, "  - %s\n", w)
				}
			}
			return nil
		},
	}
}
