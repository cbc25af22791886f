package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/spf13/cobra"

	"github.com/mnason/bookgraph/internal/graph"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - GraphQL Playground at /graphql (GET) for interactive queries

Examples:
  # Serve the in-memory store on the default address
  bookgraph serve

  # Serve as a proxy over a REST backend
  bookgraph serve --store rest --upstream http://localhost:3000

  # Custom listen address
  bookgraph serve --addr :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Addr
	}

	es := graph.NewExecutableSchema(graph.Config{
		Resolvers: &graph.Resolver{Store: store},
	})
	srv := handler.NewDefaultServer(es)
	srv.SetErrorPresenter(graph.ErrorPresenter)

	mux := http.NewServeMux()

	// GraphQL endpoint - serves both the API and playground
	mux.Handle("/graphql", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			playground.Handler("Bookgraph GraphQL", "/graphql").ServeHTTP(w, r)
			return
		}
		srv.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)

	go func() {
		fmt.Printf("Serving GraphQL at http://localhost%s/graphql (store: %s)\n", addr, cfg.StoreKind)
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
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides BOOKGRAPH_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
