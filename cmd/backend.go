package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mnason/bookgraph/internal/catalog"
	"github.com/mnason/bookgraph/internal/memstore"
	"github.com/mnason/bookgraph/internal/restapi"
)

var backendAddr string

var backendCmd = &cobra.Command{
	Use:   "backend",
	Short: "Start the reference REST backend",
	Long: `Start the upstream REST service the proxy store talks to.

It serves the /books and /authors resource sets over an in-memory store,
including the title=, name=, author_id= and id_ne= filter parameters.

Examples:
  # Run the backend, then point the GraphQL server at it
  bookgraph backend --addr :3000
  bookgraph serve --store rest --upstream http://localhost:3000

  # Start with fixtures
  bookgraph backend --seed fixtures.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackend()
	},
}

func runBackend() error {
	addr := backendAddr
	if addr == "" {
		addr = cfg.BackendAddr
	}

	backingStore := memstore.New()
	if cfg.SeedFile != "" {
		seed, err := catalog.LoadSeed(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("loading seed file: %w", err)
		}
		if err := seed.Apply(context.Background(), backingStore); err != nil {
			return fmt.Errorf("applying seed file: %w", err)
		}
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      restapi.NewServer(backingStore).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)

	go func() {
		fmt.Printf("Serving REST backend at http://localhost%s/\n", addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		fmt.Printf("\nShutting down...\n")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		fmt.Println("Server stopped")
	}

	return nil
}

func init() {
	backendCmd.Flags().StringVar(&backendAddr, "addr", "", "Listen address (overrides BOOKGRAPH_BACKEND_ADDR)")
	rootCmd.AddCommand(backendCmd)
}
