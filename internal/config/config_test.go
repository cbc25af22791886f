package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.BackendAddr != ":3000" {
		t.Errorf("BackendAddr = %q, want %q", cfg.BackendAddr, ":3000")
	}
	if cfg.StoreKind != StoreMemory {
		t.Errorf("StoreKind = %q, want %q", cfg.StoreKind, StoreMemory)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("BOOKGRAPH_ADDR", ":9999")
	t.Setenv("BOOKGRAPH_STORE", StoreRest)
	t.Setenv("BOOKS_API_URL", "http://localhost:3000")
	t.Setenv("BOOKGRAPH_SEED", "fixtures.yaml")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":9999")
	}
	if cfg.BackendAddr != ":3000" {
		t.Errorf("BackendAddr = %q, want default %q", cfg.BackendAddr, ":3000")
	}
	if cfg.StoreKind != StoreRest {
		t.Errorf("StoreKind = %q, want %q", cfg.StoreKind, StoreRest)
	}
	if cfg.UpstreamURL != "http://localhost:3000" {
		t.Errorf("UpstreamURL = %q", cfg.UpstreamURL)
	}
	if cfg.SeedFile != "fixtures.yaml" {
		t.Errorf("SeedFile = %q", cfg.SeedFile)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory store", Config{StoreKind: StoreMemory}, false},
		{"rest store with url", Config{StoreKind: StoreRest, UpstreamURL: "http://localhost:3000"}, false},
		{"rest store without url", Config{StoreKind: StoreRest}, true},
		{"unknown store kind", Config{StoreKind: "postgres"}, true},
		{"empty store kind", Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromEnvRejectsRestWithoutURL(t *testing.T) {
	t.Setenv("BOOKGRAPH_STORE", StoreRest)
	t.Setenv("BOOKS_API_URL", "")

	if _, err := FromEnv(); err == nil {
		t.Error("FromEnv() expected error for rest store without BOOKS_API_URL")
	}
}
