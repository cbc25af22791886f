package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mnason/bookgraph/internal/catalog"
	"github.com/mnason/bookgraph/internal/config"
	"github.com/mnason/bookgraph/internal/memstore"
	"github.com/mnason/bookgraph/internal/reststore"
)

var (
	cfg   *config.Config
	store catalog.Store

	flagStore    string
	flagUpstream string
	flagSeed     string
)

var rootCmd = &cobra.Command{
	Use:   "bookgraph",
	Short: "A GraphQL API over a books-and-authors catalog",
	Long: `Bookgraph exposes CRUD queries and mutations for books and authors
over GraphQL. It runs against either an in-process store (the default)
or a remote REST API (--store rest with BOOKS_API_URL or --upstream).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.FromEnv()
		if err != nil {
			return err
		}

		// Flags override the environment.
		if flagStore != "" {
			cfg.StoreKind = flagStore
		}
		if flagUpstream != "" {
			cfg.UpstreamURL = flagUpstream
			if flagStore == "" {
				cfg.StoreKind = config.StoreRest
			}
		}
		if flagSeed != "" {
			cfg.SeedFile = flagSeed
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// The backend command owns its own store.
		if cmd.Name() == "backend" {
			return nil
		}

		store, err = openStore(cfg)
		return err
	},
}

// openStore builds the configured backing store and applies seed fixtures.
func openStore(cfg *config.Config) (catalog.Store, error) {
	var s catalog.Store
	switch cfg.StoreKind {
	case config.StoreRest:
		s = reststore.NewClient(cfg.UpstreamURL)
	default:
		s = memstore.New()
	}

	if cfg.SeedFile != "" {
		seed, err := catalog.LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("loading seed file: %w", err)
		}
		if err := seed.Apply(context.Background(), s); err != nil {
			return nil, fmt.Errorf("applying seed file: %w", err)
		}
	}

	return s, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Backing store: memory or rest (overrides BOOKGRAPH_STORE)")
	rootCmd.PersistentFlags().StringVar(&flagUpstream, "upstream", "", "Upstream REST API base URL (overrides BOOKS_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", "YAML fixtures file loaded at startup (overrides BOOKGRAPH_SEED)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
