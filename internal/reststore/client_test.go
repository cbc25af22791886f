package reststore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mnason/bookgraph/internal/catalog"
	"github.com/mnason/bookgraph/internal/memstore"
	"github.com/mnason/bookgraph/internal/restapi"
)

// newTestClient runs the reference backend over a fresh in-memory store and
// returns a proxy client pointed at it.
func newTestClient(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(restapi.NewServer(memstore.New()).Router())
	t.Cleanup(server.Close)

	return NewClient(server.URL), server
}

func TestBookRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	author := &catalog.Author{Name: "Philip K. Dick", Nationality: "American"}
	if err := client.CreateAuthor(ctx, author); err != nil {
		t.Fatalf("CreateAuthor() error = %v", err)
	}
	if author.ID == "" {
		t.Fatal("CreateAuthor() did not carry back the assigned ID")
	}

	book := &catalog.Book{Title: "Ubik", Genre: catalog.GenreScifi, Year: 1969, AuthorID: author.ID}
	if err := client.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook() error = %v", err)
	}
	if book.ID == "" {
		t.Fatal("CreateBook() did not carry back the assigned ID")
	}

	t.Run("get", func(t *testing.T) {
		got, err := client.GetBook(ctx, book.ID)
		if err != nil {
			t.Fatalf("GetBook() error = %v", err)
		}
		if got.Title != "Ubik" || got.Genre != catalog.GenreScifi {
			t.Errorf("GetBook() = %+v", got)
		}
	})

	t.Run("list", func(t *testing.T) {
		books, err := client.ListBooks(ctx)
		if err != nil {
			t.Fatalf("ListBooks() error = %v", err)
		}
		if len(books) != 1 {
			t.Errorf("ListBooks() count = %d, want 1", len(books))
		}
	})

	t.Run("find by title", func(t *testing.T) {
		got, err := client.FindBookByTitle(ctx, "Ubik", "")
		if err != nil {
			t.Fatalf("FindBookByTitle() error = %v", err)
		}
		if got == nil || got.ID != book.ID {
			t.Errorf("FindBookByTitle() = %v, want %q", got, book.ID)
		}
	})

	t.Run("find by title with exclusion", func(t *testing.T) {
		got, err := client.FindBookByTitle(ctx, "Ubik", book.ID)
		if err != nil {
			t.Fatalf("FindBookByTitle() error = %v", err)
		}
		if got != nil {
			t.Errorf("FindBookByTitle() = %v, want nil when excluding the record itself", got)
		}
	})

	t.Run("list by author", func(t *testing.T) {
		books, err := client.ListBooksByAuthor(ctx, author.ID)
		if err != nil {
			t.Fatalf("ListBooksByAuthor() error = %v", err)
		}
		if len(books) != 1 {
			t.Errorf("ListBooksByAuthor() count = %d, want 1", len(books))
		}

		empty, err := client.ListBooksByAuthor(ctx, "no-such-author")
		if err != nil {
			t.Fatalf("ListBooksByAuthor() error = %v", err)
		}
		if empty == nil {
			t.Error("ListBooksByAuthor() = nil, want empty list")
		}
	})

	t.Run("update", func(t *testing.T) {
		book.Description = "Reality is unreliable"
		if err := client.UpdateBook(ctx, book); err != nil {
			t.Fatalf("UpdateBook() error = %v", err)
		}
		got, _ := client.GetBook(ctx, book.ID)
		if got.Description != "Reality is unreliable" {
			t.Errorf("GetBook().Description = %q after update", got.Description)
		}
	})

	t.Run("delete", func(t *testing.T) {
		got, err := client.DeleteBook(ctx, book.ID)
		if err != nil {
			t.Fatalf("DeleteBook() error = %v", err)
		}
		if got == nil || got.ID != book.ID {
			t.Errorf("DeleteBook() = %v, want deleted record", got)
		}
	})
}

func TestNotFoundMapping(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	t.Run("get missing book", func(t *testing.T) {
		_, err := client.GetBook(ctx, "nonexistent")
		if !errors.Is(err, catalog.ErrNotFound) {
			t.Errorf("GetBook() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete missing book", func(t *testing.T) {
		_, err := client.DeleteBook(ctx, "nonexistent")
		if !errors.Is(err, catalog.ErrNotFound) {
			t.Errorf("DeleteBook() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("update missing author", func(t *testing.T) {
		err := client.UpdateAuthor(ctx, &catalog.Author{ID: "nonexistent", Name: "Ghost"})
		if !errors.Is(err, catalog.ErrNotFound) {
			t.Errorf("UpdateAuthor() error = %v, want ErrNotFound", err)
		}
	})
}

func TestFindAuthorByName(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	author := &catalog.Author{Name: "Angela Carter", Nationality: "English"}
	if err := client.CreateAuthor(ctx, author); err != nil {
		t.Fatalf("CreateAuthor() error = %v", err)
	}

	got, err := client.FindAuthorByName(ctx, "Angela Carter", "")
	if err != nil {
		t.Fatalf("FindAuthorByName() error = %v", err)
	}
	if got == nil || got.ID != author.ID {
		t.Errorf("FindAuthorByName() = %v, want %q", got, author.ID)
	}

	excluded, err := client.FindAuthorByName(ctx, "Angela Carter", author.ID)
	if err != nil {
		t.Fatalf("FindAuthorByName() error = %v", err)
	}
	if excluded != nil {
		t.Errorf("FindAuthorByName() = %v, want nil when excluding own id", excluded)
	}

	missing, err := client.FindAuthorByName(ctx, "Nobody", "")
	if err != nil {
		t.Fatalf("FindAuthorByName() error = %v", err)
	}
	if missing != nil {
		t.Errorf("FindAuthorByName() = %v, want nil", missing)
	}
}

func TestConnectionFailureIsInfrastructureError(t *testing.T) {
	client, server := newTestClient(t)
	server.Close()

	_, err := client.ListBooks(context.Background())
	if !catalog.IsInfrastructure(err) {
		t.Fatalf("ListBooks() error = %v, want InfrastructureError", err)
	}

	// The outward message stays fixed regardless of the cause.
	if err.Error() != "backing store unavailable" {
		t.Errorf("error message = %q, want %q", err.Error(), "backing store unavailable")
	}
}

func TestUpstreamFailureKeepsMessage(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "disk full"}`))
	}))
	defer failing.Close()

	client := NewClient(failing.URL)
	_, err := client.ListBooks(context.Background())
	if err == nil {
		t.Fatal("ListBooks() expected error")
	}
	if catalog.IsInfrastructure(err) {
		t.Errorf("ListBooks() error = %v, should not be classified as infrastructure", err)
	}
	if got := err.Error(); got != "upstream GET /books: disk full" {
		t.Errorf("error message = %q, want upstream message preserved", got)
	}
}
