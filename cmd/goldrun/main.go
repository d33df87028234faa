// Command goldrun is a thin CLI front end over the gold engine: load a
// compiled GOLD grammar table, parse an input file against it, and print
// the resulting tree or error.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
