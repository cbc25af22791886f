package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed holds startup fixtures: authors first, then books referencing them by
// the author's seed name (so fixture files don't need to know generated IDs).
type Seed struct {
	Authors []SeedAuthor `yaml:"authors"`
	Books   []SeedBook   `yaml:"books"`
}

// SeedAuthor is one author fixture.
type SeedAuthor struct {
	Name        string `yaml:"name"`
	Nationality string `yaml:"nationality,omitempty"`
}

// SeedBook is one book fixture. Author refers to a SeedAuthor by name.
type SeedBook struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	ISBN        string `yaml:"isbn,omitempty"`
	Publisher   string `yaml:"publisher,omitempty"`
	Genre       string `yaml:"genre,omitempty"`
	Year        int    `yaml:"year,omitempty"`
	Author      string `yaml:"author"`
}

// LoadSeed reads and parses a YAML seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return &seed, nil
}

// Apply writes the fixtures into the store. Author names and book titles must
// be unique within the seed; duplicates fail the same way a mutation would.
func (s *Seed) Apply(ctx context.Context, store Store) error {
	authorIDs := make(map[string]string, len(s.Authors))

	for _, sa := range s.Authors {
		if sa.Name == "" {
			return fmt.Errorf("seed author with empty name")
		}
		if existing, err := store.FindAuthorByName(ctx, sa.Name, ""); err != nil {
			return err
		} else if existing != nil {
			return fmt.Errorf("seed author %q already exists", sa.Name)
		}

		a := &Author{Name: sa.Name, Nationality: sa.Nationality}
		if err := store.CreateAuthor(ctx, a); err != nil {
			return fmt.Errorf("seeding author %q: %w", sa.Name, err)
		}
		authorIDs[sa.Name] = a.ID
	}

	for _, sb := range s.Books {
		if sb.Title == "" {
			return fmt.Errorf("seed book with empty title")
		}
		if existing, err := store.FindBookByTitle(ctx, sb.Title, ""); err != nil {
			return err
		} else if existing != nil {
			return fmt.Errorf("seed book %q already exists", sb.Title)
		}
		authorID, ok := authorIDs[sb.Author]
		if !ok {
			// Allow referencing an author that already existed in the store.
			existing, err := store.FindAuthorByName(ctx, sb.Author, "")
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("seed book %q references unknown author %q", sb.Title, sb.Author)
			}
			authorID = existing.ID
		}

		genre := Genre(sb.Genre)
		if sb.Genre != "" && !genre.IsValid() {
			return fmt.Errorf("seed book %q has invalid genre %q", sb.Title, sb.Genre)
		}

		b := &Book{
			Title:       sb.Title,
			Description: sb.Description,
			ISBN:        sb.ISBN,
			Publisher:   sb.Publisher,
			Genre:       genre,
			Year:        sb.Year,
			AuthorID:    authorID,
		}
		if err := store.CreateBook(ctx, b); err != nil {
			return fmt.Errorf("seeding book %q: %w", sb.Title, err)
		}
	}

	return nil
}
