package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "segarenadiag",
	Short: "Exercise and inspect a segregated-fit arena allocator",
	Long: `segarenadiag builds a segarena.Arena and drives it from the
command line: run a sequence of allocations and see where they land,
or start a diagnostic socket an external tool can connect to.`,
	Version: "0.1.0",
}

var arenaSize int

func init() {
	rootCmd.PersistentFlags().IntVar(&arenaSize, "arena-size", 2048, "bytes backing the arena")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}
