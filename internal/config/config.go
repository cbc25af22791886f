// Package config loads the environment-sourced settings. A .env file in the
// working directory is honored when present.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Store kinds selectable via BOOKGRAPH_STORE.
const (
	StoreMemory = "memory"
	StoreRest   = "rest"
)

// Config holds everything bookgraph reads from the environment.
type Config struct {
	// Addr is the GraphQL server listen address.
	Addr string
	// BackendAddr is the reference REST backend listen address.
	BackendAddr string
	// StoreKind selects the backing store: StoreMemory or StoreRest.
	StoreKind string
	// UpstreamURL is the REST API base URL. Required when StoreKind is rest.
	UpstreamURL string
	// SeedFile is an optional YAML fixtures file loaded at startup.
	SeedFile string
}

// Default returns a Config with default values: in-memory store on :8080.
func Default() *Config {
	return &Config{
		Addr:        ":8080",
		BackendAddr: ":3000",
		StoreKind:   StoreMemory,
	}
}

// FromEnv builds a Config from environment variables, loading .env first.
func FromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	cfg.Addr = getEnv("BOOKGRAPH_ADDR", cfg.Addr)
	cfg.BackendAddr = getEnv("BOOKGRAPH_BACKEND_ADDR", cfg.BackendAddr)
	cfg.StoreKind = getEnv("BOOKGRAPH_STORE", cfg.StoreKind)
	cfg.UpstreamURL = os.Getenv("BOOKS_API_URL")
	cfg.SeedFile = os.Getenv("BOOKGRAPH_SEED")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the store selection and its requirements.
func (c *Config) Validate() error {
	switch c.StoreKind {
	case StoreMemory, StoreRest:
	default:
		return fmt.Errorf("invalid BOOKGRAPH_STORE %q (want %q or %q)", c.StoreKind, StoreMemory, StoreRest)
	}
	if c.StoreKind == StoreRest && c.UpstreamURL == "" {
		return fmt.Errorf("BOOKS_API_URL is required when BOOKGRAPH_STORE=%s", StoreRest)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
