package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/mnason/bookgraph/internal/catalog"
)

func TestBookCRUD(t *testing.T) {
	store := New()
	ctx := context.Background()

	book := &catalog.Book{Title: "Solaris", AuthorID: "author-1"}
	if err := store.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook() error = %v", err)
	}
	if book.ID == "" {
		t.Fatal("CreateBook() did not assign an ID")
	}
	if book.CreatedAt == nil || book.UpdatedAt == nil {
		t.Error("CreateBook() did not set timestamps")
	}

	t.Run("get", func(t *testing.T) {
		got, err := store.GetBook(ctx, book.ID)
		if err != nil {
			t.Fatalf("GetBook() error = %v", err)
		}
		if got.Title != "Solaris" {
			t.Errorf("GetBook().Title = %q, want %q", got.Title, "Solaris")
		}
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := store.GetBook(ctx, "nonexistent")
		if !errors.Is(err, catalog.ErrNotFound) {
			t.Errorf("GetBook() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		updated := *book
		updated.Description = "Sentient ocean"
		if err := store.UpdateBook(ctx, &updated); err != nil {
			t.Fatalf("UpdateBook() error = %v", err)
		}
		got, _ := store.GetBook(ctx, book.ID)
		if got.Description != "Sentient ocean" {
			t.Errorf("GetBook().Description = %q after update", got.Description)
		}
	})

	t.Run("update missing", func(t *testing.T) {
		missing := &catalog.Book{ID: "nonexistent", Title: "Ghost"}
		if err := store.UpdateBook(ctx, missing); !errors.Is(err, catalog.ErrNotFound) {
			t.Errorf("UpdateBook() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		got, err := store.DeleteBook(ctx, book.ID)
		if err != nil {
			t.Fatalf("DeleteBook() error = %v", err)
		}
		if got == nil || got.ID != book.ID {
			t.Errorf("DeleteBook() = %v, want deleted record", got)
		}
		if _, err := store.GetBook(ctx, book.ID); !errors.Is(err, catalog.ErrNotFound) {
			t.Error("book still present after delete")
		}
	})

	t.Run("delete missing is a no-op", func(t *testing.T) {
		got, err := store.DeleteBook(ctx, "nonexistent")
		if err != nil {
			t.Fatalf("DeleteBook() error = %v", err)
		}
		if got != nil {
			t.Errorf("DeleteBook() = %v, want nil", got)
		}
	})
}

func TestListBooksPreservesInsertionOrder(t *testing.T) {
	store := New()
	ctx := context.Background()

	titles := []string{"Third Policeman", "First Light", "Second Foundation"}
	for _, title := range titles {
		if err := store.CreateBook(ctx, &catalog.Book{Title: title, AuthorID: "a"}); err != nil {
			t.Fatalf("CreateBook(%q) error = %v", title, err)
		}
	}

	books, err := store.ListBooks(ctx)
	if err != nil {
		t.Fatalf("ListBooks() error = %v", err)
	}
	if len(books) != len(titles) {
		t.Fatalf("ListBooks() count = %d, want %d", len(books), len(titles))
	}
	for i, title := range titles {
		if books[i].Title != title {
			t.Errorf("ListBooks()[%d].Title = %q, want %q", i, books[i].Title, title)
		}
	}
}

func TestFindBookByTitle(t *testing.T) {
	store := New()
	ctx := context.Background()

	book := &catalog.Book{Title: "Roadside Picnic", AuthorID: "a"}
	store.CreateBook(ctx, book)

	t.Run("match", func(t *testing.T) {
		got, err := store.FindBookByTitle(ctx, "Roadside Picnic", "")
		if err != nil {
			t.Fatalf("FindBookByTitle() error = %v", err)
		}
		if got == nil || got.ID != book.ID {
			t.Errorf("FindBookByTitle() = %v, want %q", got, book.ID)
		}
	})

	t.Run("no match returns nil without error", func(t *testing.T) {
		got, err := store.FindBookByTitle(ctx, "Unknown", "")
		if err != nil {
			t.Fatalf("FindBookByTitle() error = %v", err)
		}
		if got != nil {
			t.Errorf("FindBookByTitle() = %v, want nil", got)
		}
	})

	t.Run("exclude own id", func(t *testing.T) {
		got, err := store.FindBookByTitle(ctx, "Roadside Picnic", book.ID)
		if err != nil {
			t.Fatalf("FindBookByTitle() error = %v", err)
		}
		if got != nil {
			t.Errorf("FindBookByTitle() = %v, want nil when excluding own id", got)
		}
	})
}

func TestListBooksByAuthor(t *testing.T) {
	store := New()
	ctx := context.Background()

	store.CreateBook(ctx, &catalog.Book{Title: "Book One", AuthorID: "author-1"})
	store.CreateBook(ctx, &catalog.Book{Title: "Book Two", AuthorID: "author-1"})
	store.CreateBook(ctx, &catalog.Book{Title: "Book Three", AuthorID: "author-2"})

	books, err := store.ListBooksByAuthor(ctx, "author-1")
	if err != nil {
		t.Fatalf("ListBooksByAuthor() error = %v", err)
	}
	if len(books) != 2 {
		t.Errorf("ListBooksByAuthor() count = %d, want 2", len(books))
	}

	empty, err := store.ListBooksByAuthor(ctx, "author-3")
	if err != nil {
		t.Fatalf("ListBooksByAuthor() error = %v", err)
	}
	if empty == nil {
		t.Error("ListBooksByAuthor() = nil, want empty list")
	}
	if len(empty) != 0 {
		t.Errorf("ListBooksByAuthor() count = %d, want 0", len(empty))
	}
}

func TestAuthorCRUD(t *testing.T) {
	store := New()
	ctx := context.Background()

	author := &catalog.Author{Name: "Arkady Strugatsky", Nationality: "Russian"}
	if err := store.CreateAuthor(ctx, author); err != nil {
		t.Fatalf("CreateAuthor() error = %v", err)
	}
	if author.ID == "" {
		t.Fatal("CreateAuthor() did not assign an ID")
	}

	t.Run("find by name", func(t *testing.T) {
		got, err := store.FindAuthorByName(ctx, "Arkady Strugatsky", "")
		if err != nil {
			t.Fatalf("FindAuthorByName() error = %v", err)
		}
		if got == nil || got.ID != author.ID {
			t.Errorf("FindAuthorByName() = %v, want %q", got, author.ID)
		}
	})

	t.Run("find by name excluding own id", func(t *testing.T) {
		got, err := store.FindAuthorByName(ctx, "Arkady Strugatsky", author.ID)
		if err != nil {
			t.Fatalf("FindAuthorByName() error = %v", err)
		}
		if got != nil {
			t.Errorf("FindAuthorByName() = %v, want nil when excluding own id", got)
		}
	})

	t.Run("update missing", func(t *testing.T) {
		missing := &catalog.Author{ID: "nonexistent", Name: "Ghost"}
		if err := store.UpdateAuthor(ctx, missing); !errors.Is(err, catalog.ErrNotFound) {
			t.Errorf("UpdateAuthor() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete and delete missing", func(t *testing.T) {
		got, err := store.DeleteAuthor(ctx, author.ID)
		if err != nil || got == nil {
			t.Fatalf("DeleteAuthor() = %v, %v", got, err)
		}
		again, err := store.DeleteAuthor(ctx, author.ID)
		if err != nil {
			t.Fatalf("DeleteAuthor() second call error = %v", err)
		}
		if again != nil {
			t.Errorf("DeleteAuthor() second call = %v, want nil", again)
		}
	})
}

func TestNewIDIsFresh(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if len(id) != idLength {
			t.Fatalf("NewID() length = %d, want %d", len(id), idLength)
		}
		if seen[id] {
			t.Fatalf("NewID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}
