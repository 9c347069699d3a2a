package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/segfit/segarena"
)

func init() {
	rootCmd.AddCommand(newAllocCmd())
}

func newAllocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc <bytes>...",
		Short: "Perform a sequence of allocations against a fresh arena",
		Long: `alloc builds an arena of --arena-size bytes, performs one Alloc per
argument in order, and prints the resulting address and the arena's
space_available after each call.

Example:
  segarenadiag alloc 1000 100 32
  segarenadiag --arena-size 4096 alloc 900 900 900`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAlloc,
	}
	return cmd
}

func runAlloc(cmd *cobra.Command, args []string) error {
	a, err := segarena.Init(segarena.DefaultConfig(arenaSize))
	if err != nil {
		return fmt.Errorf("init arena: %w", err)
	}

	for _, raw := range args {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid byte count %q: %w", raw, err)
		}
		addr, err := a.Alloc(n)
		if err != nil {
			fmt.Printf("alloc(%d): %v\n", n, err)
			continue
		}
		fmt.Printf("alloc(%d) = %d, space_available=%d\n", n, addr, a.Available())
	}
	return nil
}
