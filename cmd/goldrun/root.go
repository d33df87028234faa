package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "goldrun",
		Short: "Load a compiled GOLD grammar table and parse input against it",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", ".goldrun.yaml", "path to config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newParseCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newInspectCmd())

	return root
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
