package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Warfley/gold-parser-tools/engine"
	"github.com/Warfley/gold-parser-tools/table"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <table-file> <input-file>",
		Short: "Re-parse an input file every time it changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}

			tablePath, inputPath := args[0], args[1]

			loadGrammar := func() (*table.Grammar, error) {
				tableBytes, err := os.ReadFile(tablePath)
				if err != nil {
					return nil, err
				}
				return table.Load(tableBytes)
			}

			if _, err := loadGrammar(); err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			if err := watcher.Add(inputPath); err != nil {
				return err
			}
			if err := watcher.Add(tablePath); err != nil {
				return err
			}

			logger := newLogger()
			out := cmd.OutOrStdout()
			debounce := time.Duration(cfg.WatchDebounceMS) * time.Millisecond

			// Reloading the grammar on every run (rather than caching it
			// across calls) is what lets an edit to the table file, not
			// just the input file, take effect: runOnce may fire on the
			// debounce timer's own goroutine, so a table.Grammar built
			// fresh and kept local to this call avoids sharing mutable
			// state with the event loop below.
			runOnce := func() {
				g, err := loadGrammar()
				if err != nil {
					fmt.Fprintln(out, "table load error:", err)
					return
				}
				data, err := os.ReadFile(inputPath)
				if err != nil {
					fmt.Fprintln(out, "read error:", err)
					return
				}
				res := engine.Parse(context.Background(), g, string(data), engine.WithLogger(logger))
				if !res.Successful() {
					fmt.Fprintln(out, "error:", res.Err)
					return
				}
				fmt.Fprintln(out, "ok")
			}

			runOnce()

			var pending *time.Timer
			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
						continue
					}
					if pending != nil {
						pending.Stop()
					}
					pending = time.AfterFunc(debounce, runOnce)

				case werr, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintln(out, "watch error:", werr)

				case <-cmd.Context().Done():
					return cmd.Context().Err()
				}
			}
		},
	}
}
