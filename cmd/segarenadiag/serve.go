package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/segfit/segarena"
	"github.com/segfit/segarena/vizsock"
)

var serveAddr string

func init() {
	cmd := newServeCmd()
	cmd.Flags().StringVar(&serveAddr, "addr", ":7777", "address to listen on")
	rootCmd.AddCommand(cmd)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Build an arena and expose it over a vizsock diagnostic socket",
		Long: `serve builds an arena of --arena-size bytes and starts a
vizsock.Server on --addr so an external tool can inspect its layout.
The arena starts empty; use a client that also pokes Alloc/Free through
some other channel, or treat this as a smoke test of the transport.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := segarena.Init(segarena.DefaultConfig(arenaSize))
	if err != nil {
		return fmt.Errorf("init arena: %w", err)
	}

	ln, err := net.Listen("tcp", serveAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", serveAddr, err)
	}
	defer ln.Close()

	fmt.Printf("segarenadiag: serving arena layout on %s\n", ln.Addr())
	srv := vizsock.NewServer(a)
	return srv.Serve(ln)
}
