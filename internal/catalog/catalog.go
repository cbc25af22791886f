// Package catalog defines the books-and-authors domain: the entities, the
// error kinds raised by the validation workflow, and the Store contract that
// both the in-memory and the REST-proxy backends implement.
package catalog

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// Book is a catalog entry referencing its author by ID.
type Book struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ISBN        string     `json:"isbn,omitempty"`
	Publisher   string     `json:"publisher,omitempty"`
	Genre       Genre      `json:"genre,omitempty"`
	Year        int        `json:"year,omitempty"`
	AuthorID    string     `json:"author_id"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Author is a catalog author. Its books are derived by lookup, never stored.
type Author struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Nationality string     `json:"nationality,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Genre classifies a book. The zero value means "not set".
type Genre string

const (
	GenreFantasy    Genre = "FANTASY"
	GenreScifi      Genre = "SCIFI"
	GenreMystery    Genre = "MYSTERY"
	GenreRomance    Genre = "ROMANCE"
	GenreHorror     Genre = "HORROR"
	GenreNonfiction Genre = "NONFICTION"
)

// AllGenre lists every valid genre, in schema order.
var AllGenre = []Genre{
	GenreFantasy,
	GenreScifi,
	GenreMystery,
	GenreRomance,
	GenreHorror,
	GenreNonfiction,
}

// IsValid reports whether g is one of the declared genres.
func (g Genre) IsValid() bool {
	switch g {
	case GenreFantasy, GenreScifi, GenreMystery, GenreRomance, GenreHorror, GenreNonfiction:
		return true
	}
	return false
}

func (g Genre) String() string {
	return string(g)
}

// UnmarshalGQL implements the graphql.Unmarshaler interface.
func (g *Genre) UnmarshalGQL(v interface{}) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("enums must be strings")
	}

	*g = Genre(str)
	if !g.IsValid() {
		return fmt.Errorf("%s is not a valid Genre", str)
	}
	return nil
}

// MarshalGQL implements the graphql.Marshaler interface. The zero value
// renders as null so an unset genre never leaks an invalid enum value.
func (g Genre) MarshalGQL(w io.Writer) {
	if g == "" {
		io.WriteString(w, "null")
		return
	}
	fmt.Fprint(w, strconv.Quote(string(g)))
}
