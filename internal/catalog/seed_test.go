package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mnason/bookgraph/internal/catalog"
	"github.com/mnason/bookgraph/internal/memstore"
)

const seedFixture = `
authors:
  - name: Ursula K. Le Guin
    nationality: American
  - name: Stanisław Lem
    nationality: Polish
books:
  - title: The Dispossessed
    genre: SCIFI
    year: 1974
    author: Ursula K. Le Guin
  - title: Solaris
    genre: SCIFI
    year: 1961
    author: Stanisław Lem
`

func writeSeedFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing seed file: %v", err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	seed, err := catalog.LoadSeed(writeSeedFile(t, seedFixture))
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}
	if len(seed.Authors) != 2 {
		t.Errorf("Authors count = %d, want 2", len(seed.Authors))
	}
	if len(seed.Books) != 2 {
		t.Errorf("Books count = %d, want 2", len(seed.Books))
	}
	if seed.Books[0].Author != "Ursula K. Le Guin" {
		t.Errorf("Books[0].Author = %q", seed.Books[0].Author)
	}
}

func TestLoadSeedMissingFile(t *testing.T) {
	if _, err := catalog.LoadSeed(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadSeed() expected error for missing file")
	}
}

func TestLoadSeedBadYAML(t *testing.T) {
	if _, err := catalog.LoadSeed(writeSeedFile(t, "authors: [unclosed")); err == nil {
		t.Error("LoadSeed() expected error for malformed YAML")
	}
}

func TestSeedApply(t *testing.T) {
	seed, err := catalog.LoadSeed(writeSeedFile(t, seedFixture))
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}

	store := memstore.New()
	ctx := context.Background()
	if err := seed.Apply(ctx, store); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	books, err := store.ListBooks(ctx)
	if err != nil {
		t.Fatalf("ListBooks() error = %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("ListBooks() count = %d, want 2", len(books))
	}

	author, err := store.FindAuthorByName(ctx, "Stanisław Lem", "")
	if err != nil {
		t.Fatalf("FindAuthorByName() error = %v", err)
	}
	if author == nil {
		t.Fatal("seeded author not found")
	}
	if books[1].AuthorID != author.ID {
		t.Errorf("Solaris.AuthorID = %q, want %q", books[1].AuthorID, author.ID)
	}
}

func TestSeedApplyFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown author reference", func(t *testing.T) {
		seed := &catalog.Seed{
			Books: []catalog.SeedBook{{Title: "Orphan", Author: "Nobody"}},
		}
		err := seed.Apply(ctx, memstore.New())
		if err == nil || !strings.Contains(err.Error(), "unknown author") {
			t.Errorf("Apply() error = %v, want unknown author failure", err)
		}
	})

	t.Run("invalid genre", func(t *testing.T) {
		seed := &catalog.Seed{
			Authors: []catalog.SeedAuthor{{Name: "A"}},
			Books:   []catalog.SeedBook{{Title: "B", Genre: "WESTERN", Author: "A"}},
		}
		err := seed.Apply(ctx, memstore.New())
		if err == nil || !strings.Contains(err.Error(), "invalid genre") {
			t.Errorf("Apply() error = %v, want invalid genre failure", err)
		}
	})

	t.Run("duplicate title within seed", func(t *testing.T) {
		store := memstore.New()
		seed := &catalog.Seed{
			Authors: []catalog.SeedAuthor{{Name: "A"}},
			Books: []catalog.SeedBook{
				{Title: "Dune", Author: "A"},
				{Title: "Dune", Author: "A"},
			},
		}
		err := seed.Apply(ctx, store)
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Fatalf("Apply() error = %v, want duplicate title failure", err)
		}
		books, _ := store.ListBooks(ctx)
		if len(books) != 1 {
			t.Errorf("ListBooks() count = %d after failed apply, want 1", len(books))
		}
	})

	t.Run("duplicate title against store", func(t *testing.T) {
		store := memstore.New()
		author := &catalog.Author{Name: "A"}
		if err := store.CreateAuthor(ctx, author); err != nil {
			t.Fatal(err)
		}
		if err := store.CreateBook(ctx, &catalog.Book{Title: "Taken Title", AuthorID: author.ID}); err != nil {
			t.Fatal(err)
		}
		seed := &catalog.Seed{Books: []catalog.SeedBook{{Title: "Taken Title", Author: "A"}}}
		if err := seed.Apply(ctx, store); err == nil {
			t.Error("Apply() expected error for duplicate book title")
		}
	})

	t.Run("duplicate author against store", func(t *testing.T) {
		store := memstore.New()
		if err := store.CreateAuthor(ctx, &catalog.Author{Name: "Taken"}); err != nil {
			t.Fatal(err)
		}
		seed := &catalog.Seed{Authors: []catalog.SeedAuthor{{Name: "Taken"}}}
		if err := seed.Apply(ctx, store); err == nil {
			t.Error("Apply() expected error for duplicate author name")
		}
	})

	t.Run("book referencing pre-existing store author", func(t *testing.T) {
		store := memstore.New()
		existing := &catalog.Author{Name: "Resident"}
		if err := store.CreateAuthor(ctx, existing); err != nil {
			t.Fatal(err)
		}
		seed := &catalog.Seed{Books: []catalog.SeedBook{{Title: "Guest", Author: "Resident"}}}
		if err := seed.Apply(ctx, store); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		books, _ := store.ListBooksByAuthor(ctx, existing.ID)
		if len(books) != 1 {
			t.Errorf("books by pre-existing author = %d, want 1", len(books))
		}
	})
}
