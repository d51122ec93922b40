package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipedesk/internal/catalog"
	"github.com/hammamikhairi/recipedesk/internal/catalog/stub"
)

var (
	stubAddr    string
	stubLatency time.Duration
	stubEmpty   bool
)

// stubCmd serves an in-memory catalog over the remote API surface.
var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Serve an in-memory catalog over the recipe API",
	Long: `Serves a seeded in-memory catalog on the same HTTP routes as the remote
recipe API. Point the console or a browser front-end at it for development.
Nothing is persisted; imports return a fixed placeholder recipe.`,
	Args: cobra.NoArgs,
	RunE: runStub,
}

func init() {
	stubCmd.Flags().StringVar(&stubAddr, "addr", "", "listen address (default from config stub.addr)")
	stubCmd.Flags().DurationVar(&stubLatency, "latency", 0, "delay every response by this much")
	stubCmd.Flags().BoolVar(&stubEmpty, "empty", false, "start with an empty catalog")
}

func runStub(cmd *cobra.Command, args []string) error {
	addr := stubAddr
	if addr == "" {
		addr = cfg.Stub.Addr
	}

	var memOpts []catalog.MemoryOption
	if stubEmpty {
		memOpts = append(memOpts, catalog.WithoutSeed())
	}
	mem := catalog.NewMemoryCatalog(log, memOpts...)

	opts := []stub.Option{stub.WithCORS(cfg.Stub.CORSOrigins)}
	if stubLatency > 0 {
		opts = append(opts, stub.WithLatency(stubLatency))
	}
	srv := stub.New(mem, mem, log, opts...)

	fmt.Fprintf(cmd.OutOrStdout(), "serving stub catalog on http://%s (ctrl+c to stop)\n", addr)
	return srv.ListenAndServe(cmd.Context(), addr)
}
