package graph

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mnason/bookgraph/internal/catalog"
	"github.com/mnason/bookgraph/internal/graph/model"
	"github.com/mnason/bookgraph/internal/memstore"
	"github.com/mnason/bookgraph/internal/restapi"
	"github.com/mnason/bookgraph/internal/reststore"
)

func setupTestResolver(t *testing.T) (*Resolver, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return &Resolver{Store: store}, store
}

func createTestAuthor(t *testing.T, store catalog.Store, name, nationality string) *catalog.Author {
	t.Helper()
	a := &catalog.Author{Name: name, Nationality: nationality}
	if err := store.CreateAuthor(context.Background(), a); err != nil {
		t.Fatalf("failed to create test author: %v", err)
	}
	return a
}

func createTestBook(t *testing.T, store catalog.Store, title, authorID string) *catalog.Book {
	t.Helper()
	b := &catalog.Book{Title: title, AuthorID: authorID}
	if err := store.CreateBook(context.Background(), b); err != nil {
		t.Fatalf("failed to create test book: %v", err)
	}
	return b
}

func asUserInputError(t *testing.T, err error) *catalog.UserInputError {
	t.Helper()
	var userErr *catalog.UserInputError
	if !errors.As(err, &userErr) {
		t.Fatalf("error = %v, want *catalog.UserInputError", err)
	}
	return userErr
}

func TestQueryGetBook(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	author := createTestAuthor(t, store, "Ursula K. Le Guin", "American")
	book := createTestBook(t, store, "A Wizard of Earthsea", author.ID)

	t.Run("existing book", func(t *testing.T) {
		qr := resolver.Query()
		got, err := qr.GetBook(ctx, book.ID)
		if err != nil {
			t.Fatalf("GetBook() error = %v", err)
		}
		if got == nil {
			t.Fatal("GetBook() returned nil")
		}
		if got.Title != "A Wizard of Earthsea" {
			t.Errorf("GetBook().Title = %q, want %q", got.Title, "A Wizard of Earthsea")
		}
	})

	t.Run("missing book returns null without error", func(t *testing.T) {
		qr := resolver.Query()
		got, err := qr.GetBook(ctx, "nonexistent")
		if err != nil {
			t.Fatalf("GetBook() error = %v", err)
		}
		if got != nil {
			t.Errorf("GetBook() = %v, want nil", got)
		}
	})
}

func TestQueryGetAllBooks(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	author := createTestAuthor(t, store, "Iain M. Banks", "Scottish")
	createTestBook(t, store, "Consider Phlebas", author.ID)
	createTestBook(t, store, "The Player of Games", author.ID)
	createTestBook(t, store, "Use of Weapons", author.ID)

	qr := resolver.Query()
	got, err := qr.GetAllBooks(ctx)
	if err != nil {
		t.Fatalf("GetAllBooks() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("GetAllBooks() count = %d, want 3", len(got))
	}
}

func TestQueryGetAuthor(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	author := createTestAuthor(t, store, "Stanisław Lem", "Polish")

	t.Run("existing author", func(t *testing.T) {
		qr := resolver.Query()
		got, err := qr.GetAuthor(ctx, author.ID)
		if err != nil {
			t.Fatalf("GetAuthor() error = %v", err)
		}
		if got == nil {
			t.Fatal("GetAuthor() returned nil")
		}
		if got.Name != "Stanisław Lem" {
			t.Errorf("GetAuthor().Name = %q, want %q", got.Name, "Stanisław Lem")
		}
	})

	t.Run("missing author returns null without error", func(t *testing.T) {
		qr := resolver.Query()
		got, err := qr.GetAuthor(ctx, "nonexistent")
		if err != nil {
			t.Fatalf("GetAuthor() error = %v", err)
		}
		if got != nil {
			t.Errorf("GetAuthor() = %v, want nil", got)
		}
	})
}

func TestQueryGetAllBooksByAuthorName(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	prolific := createTestAuthor(t, store, "Terry Pratchett", "English")
	idle := createTestAuthor(t, store, "New Author", "")
	createTestBook(t, store, "Mort", prolific.ID)
	createTestBook(t, store, "Guards! Guards!", prolific.ID)

	t.Run("author with books", func(t *testing.T) {
		qr := resolver.Query()
		got, err := qr.GetAllBooksByAuthorName(ctx, "Terry Pratchett")
		if err != nil {
			t.Fatalf("GetAllBooksByAuthorName() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("GetAllBooksByAuthorName() count = %d, want 2", len(got))
		}
	})

	t.Run("author with zero books returns empty list", func(t *testing.T) {
		qr := resolver.Query()
		got, err := qr.GetAllBooksByAuthorName(ctx, idle.Name)
		if err != nil {
			t.Fatalf("GetAllBooksByAuthorName() error = %v", err)
		}
		if got == nil {
			t.Fatal("GetAllBooksByAuthorName() = nil, want empty list")
		}
		if len(got) != 0 {
			t.Errorf("GetAllBooksByAuthorName() count = %d, want 0", len(got))
		}
	})

	t.Run("unknown author returns empty list", func(t *testing.T) {
		qr := resolver.Query()
		got, err := qr.GetAllBooksByAuthorName(ctx, "Nobody")
		if err != nil {
			t.Fatalf("GetAllBooksByAuthorName() error = %v", err)
		}
		if got == nil {
			t.Fatal("GetAllBooksByAuthorName() = nil, want empty list")
		}
		if len(got) != 0 {
			t.Errorf("GetAllBooksByAuthorName() count = %d, want 0", len(got))
		}
	})
}

func TestNestedFieldResolution(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	author := createTestAuthor(t, store, "Octavia E. Butler", "American")
	book := createTestBook(t, store, "Kindred", author.ID)

	t.Run("book author", func(t *testing.T) {
		br := resolver.Book()
		got, err := br.Author(ctx, book)
		if err != nil {
			t.Fatalf("Author() error = %v", err)
		}
		if got.ID != author.ID {
			t.Errorf("Author().ID = %q, want %q", got.ID, author.ID)
		}
	})

	t.Run("author books", func(t *testing.T) {
		ar := resolver.Author()
		got, err := ar.Books(ctx, author)
		if err != nil {
			t.Fatalf("Books() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Books() count = %d, want 1", len(got))
		}
		if got[0].ID != book.ID {
			t.Errorf("Books()[0].ID = %q, want %q", got[0].ID, book.ID)
		}
	})
}

func TestMutationAddBook(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	author := createTestAuthor(t, store, "Frank Herbert", "American")

	t.Run("create with author id", func(t *testing.T) {
		mr := resolver.Mutation()
		description := "Desert planet epic"
		isbn := "9780441172719"
		publisher := "Chilton Books"
		genre := catalog.GenreScifi
		year := 1965
		input := model.AddBookInput{
			Title:       "Dune",
			Description: &description,
			Isbn:        &isbn,
			Publisher:   &publisher,
			Genre:       &genre,
			Year:        &year,
			AuthorID:    &author.ID,
		}
		got, err := mr.AddBook(ctx, input)
		if err != nil {
			t.Fatalf("AddBook() error = %v", err)
		}
		if got.ID == "" {
			t.Error("AddBook().ID is empty")
		}
		if got.Title != "Dune" {
			t.Errorf("AddBook().Title = %q, want %q", got.Title, "Dune")
		}
		if got.Genre != catalog.GenreScifi {
			t.Errorf("AddBook().Genre = %q, want %q", got.Genre, catalog.GenreScifi)
		}
		if got.AuthorID != author.ID {
			t.Errorf("AddBook().AuthorID = %q, want %q", got.AuthorID, author.ID)
		}
	})

	t.Run("create with author name", func(t *testing.T) {
		mr := resolver.Mutation()
		authorName := "Frank Herbert"
		input := model.AddBookInput{
			Title:      "Dune Messiah",
			AuthorName: &authorName,
		}
		got, err := mr.AddBook(ctx, input)
		if err != nil {
			t.Fatalf("AddBook() error = %v", err)
		}
		if got.AuthorID != author.ID {
			t.Errorf("AddBook().AuthorID = %q, want %q", got.AuthorID, author.ID)
		}
	})

	t.Run("duplicate title fails and leaves collection unchanged", func(t *testing.T) {
		before, _ := store.ListBooks(ctx)

		mr := resolver.Mutation()
		input := model.AddBookInput{
			Title:    "Dune",
			AuthorID: &author.ID,
		}
		_, err := mr.AddBook(ctx, input)
		userErr := asUserInputError(t, err)
		if userErr.Field != "title" {
			t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "title")
		}

		after, _ := store.ListBooks(ctx)
		if len(after) != len(before) {
			t.Errorf("book count changed from %d to %d after failed create", len(before), len(after))
		}
	})

	t.Run("unknown author id fails without write", func(t *testing.T) {
		before, _ := store.ListBooks(ctx)

		mr := resolver.Mutation()
		badID := "no-such-author"
		input := model.AddBookInput{
			Title:    "Orphaned Book",
			AuthorID: &badID,
		}
		_, err := mr.AddBook(ctx, input)
		userErr := asUserInputError(t, err)
		if userErr.Field != "authorId" {
			t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "authorId")
		}

		after, _ := store.ListBooks(ctx)
		if len(after) != len(before) {
			t.Errorf("book count changed from %d to %d after failed create", len(before), len(after))
		}
	})

	t.Run("unknown author name fails", func(t *testing.T) {
		mr := resolver.Mutation()
		authorName := "Nobody"
		input := model.AddBookInput{
			Title:      "Orphaned Book",
			AuthorName: &authorName,
		}
		_, err := mr.AddBook(ctx, input)
		userErr := asUserInputError(t, err)
		if userErr.Field != "authorName" {
			t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "authorName")
		}
	})

	t.Run("missing author reference fails", func(t *testing.T) {
		mr := resolver.Mutation()
		input := model.AddBookInput{Title: "Unattributed Book"}
		_, err := mr.AddBook(ctx, input)
		if !catalog.IsUserInput(err) {
			t.Fatalf("AddBook() error = %v, want UserInputError", err)
		}
	})
}

func TestMutationAddBookTwiceScenario(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	existing := createTestAuthor(t, store, "A", "")
	existingBook := createTestBook(t, store, "Another Title", existing.ID)

	mr := resolver.Mutation()
	publisher := "P"
	genre := catalog.GenreFantasy
	authorName := "A"
	input := model.AddBookInput{
		Title:      "X",
		Publisher:  &publisher,
		Genre:      &genre,
		AuthorName: &authorName,
	}

	first, err := mr.AddBook(ctx, input)
	if err != nil {
		t.Fatalf("AddBook() first call error = %v", err)
	}
	if first.ID == "" {
		t.Error("AddBook().ID is empty")
	}
	if first.ID == existingBook.ID {
		t.Errorf("AddBook().ID = %q collides with an existing record", first.ID)
	}

	_, err = mr.AddBook(ctx, input)
	userErr := asUserInputError(t, err)
	if userErr.Field != "title" {
		t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "title")
	}
}

func TestMutationUpdateBook(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	author := createTestAuthor(t, store, "William Gibson", "American")
	other := createTestAuthor(t, store, "Bruce Sterling", "American")

	genre := catalog.GenreScifi
	book := &catalog.Book{
		Title:       "Neuromancer",
		Description: "Console cowboy takes one last job",
		ISBN:        "9780441569564",
		Publisher:   "Ace",
		Genre:       genre,
		Year:        1984,
		AuthorID:    author.ID,
	}
	if err := store.CreateBook(ctx, book); err != nil {
		t.Fatalf("failed to create test book: %v", err)
	}

	t.Run("partial update preserves omitted fields", func(t *testing.T) {
		mr := resolver.Mutation()
		description := "Updated description"
		input := model.UpdateBookInput{Description: &description}
		got, err := mr.UpdateBook(ctx, book.ID, input)
		if err != nil {
			t.Fatalf("UpdateBook() error = %v", err)
		}
		if got.Description != "Updated description" {
			t.Errorf("UpdateBook().Description = %q, want %q", got.Description, "Updated description")
		}
		if got.Title != "Neuromancer" {
			t.Errorf("UpdateBook().Title = %q, want unchanged %q", got.Title, "Neuromancer")
		}
		if got.ISBN != "9780441569564" {
			t.Errorf("UpdateBook().ISBN = %q, want unchanged", got.ISBN)
		}
		if got.Publisher != "Ace" {
			t.Errorf("UpdateBook().Publisher = %q, want unchanged", got.Publisher)
		}
		if got.Genre != catalog.GenreScifi {
			t.Errorf("UpdateBook().Genre = %q, want unchanged", got.Genre)
		}
		if got.Year != 1984 {
			t.Errorf("UpdateBook().Year = %d, want unchanged 1984", got.Year)
		}
		if got.AuthorID != author.ID {
			t.Errorf("UpdateBook().AuthorID = %q, want unchanged", got.AuthorID)
		}
	})

	t.Run("provided zero value overwrites", func(t *testing.T) {
		mr := resolver.Mutation()
		year := 0
		input := model.UpdateBookInput{Year: &year}
		got, err := mr.UpdateBook(ctx, book.ID, input)
		if err != nil {
			t.Fatalf("UpdateBook() error = %v", err)
		}
		if got.Year != 0 {
			t.Errorf("UpdateBook().Year = %d, want 0", got.Year)
		}
	})

	t.Run("reassign author", func(t *testing.T) {
		mr := resolver.Mutation()
		input := model.UpdateBookInput{AuthorID: &other.ID}
		got, err := mr.UpdateBook(ctx, book.ID, input)
		if err != nil {
			t.Fatalf("UpdateBook() error = %v", err)
		}
		if got.AuthorID != other.ID {
			t.Errorf("UpdateBook().AuthorID = %q, want %q", got.AuthorID, other.ID)
		}
	})

	t.Run("reassign to unknown author fails", func(t *testing.T) {
		mr := resolver.Mutation()
		badID := "no-such-author"
		input := model.UpdateBookInput{AuthorID: &badID}
		_, err := mr.UpdateBook(ctx, book.ID, input)
		userErr := asUserInputError(t, err)
		if userErr.Field != "authorId" {
			t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "authorId")
		}
	})

	t.Run("keeping own title is not a conflict", func(t *testing.T) {
		mr := resolver.Mutation()
		title := "Neuromancer"
		input := model.UpdateBookInput{Title: &title}
		if _, err := mr.UpdateBook(ctx, book.ID, input); err != nil {
			t.Fatalf("UpdateBook() error = %v", err)
		}
	})

	t.Run("taking another book's title fails", func(t *testing.T) {
		createTestBook(t, store, "Count Zero", author.ID)

		mr := resolver.Mutation()
		title := "Count Zero"
		input := model.UpdateBookInput{Title: &title}
		_, err := mr.UpdateBook(ctx, book.ID, input)
		userErr := asUserInputError(t, err)
		if userErr.Field != "title" {
			t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "title")
		}
	})

	t.Run("update nonexistent book", func(t *testing.T) {
		mr := resolver.Mutation()
		description := "Whatever"
		input := model.UpdateBookInput{Description: &description}
		_, err := mr.UpdateBook(ctx, "nonexistent", input)
		userErr := asUserInputError(t, err)
		if userErr.Field != "id" {
			t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "id")
		}
	})
}

func TestMutationDeleteBook(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	author := createTestAuthor(t, store, "Mary Shelley", "English")

	t.Run("delete existing book", func(t *testing.T) {
		book := createTestBook(t, store, "Frankenstein", author.ID)

		mr := resolver.Mutation()
		got, err := mr.DeleteBook(ctx, book.ID)
		if err != nil {
			t.Fatalf("DeleteBook() error = %v", err)
		}
		if got == nil || got.ID != book.ID {
			t.Errorf("DeleteBook() = %v, want deleted record", got)
		}

		qr := resolver.Query()
		if remaining, _ := qr.GetBook(ctx, book.ID); remaining != nil {
			t.Error("book still exists after delete")
		}
	})

	t.Run("delete missing book is a silent no-op on the in-memory store", func(t *testing.T) {
		mr := resolver.Mutation()
		got, err := mr.DeleteBook(ctx, "nonexistent")
		if err != nil {
			t.Fatalf("DeleteBook() error = %v", err)
		}
		if got != nil {
			t.Errorf("DeleteBook() = %v, want nil", got)
		}
	})
}

func TestMutationAddAuthor(t *testing.T) {
	resolver, _ := setupTestResolver(t)
	ctx := context.Background()

	t.Run("create author", func(t *testing.T) {
		mr := resolver.Mutation()
		nationality := "Argentine"
		input := model.AddAuthorInput{Name: "Jorge Luis Borges", Nationality: &nationality}
		got, err := mr.AddAuthor(ctx, input)
		if err != nil {
			t.Fatalf("AddAuthor() error = %v", err)
		}
		if got.ID == "" {
			t.Error("AddAuthor().ID is empty")
		}
		if got.Nationality != "Argentine" {
			t.Errorf("AddAuthor().Nationality = %q, want %q", got.Nationality, "Argentine")
		}
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		mr := resolver.Mutation()
		input := model.AddAuthorInput{Name: "Jorge Luis Borges"}
		_, err := mr.AddAuthor(ctx, input)
		userErr := asUserInputError(t, err)
		if userErr.Field != "name" {
			t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "name")
		}
	})
}

func TestMutationUpdateAuthor(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	author := createTestAuthor(t, store, "James Tiptree Jr.", "American")
	createTestAuthor(t, store, "Joanna Russ", "American")

	t.Run("partial update preserves omitted fields", func(t *testing.T) {
		mr := resolver.Mutation()
		name := "Alice Sheldon"
		input := model.UpdateAuthorInput{Name: &name}
		got, err := mr.UpdateAuthor(ctx, author.ID, input)
		if err != nil {
			t.Fatalf("UpdateAuthor() error = %v", err)
		}
		if got.Name != "Alice Sheldon" {
			t.Errorf("UpdateAuthor().Name = %q, want %q", got.Name, "Alice Sheldon")
		}
		if got.Nationality != "American" {
			t.Errorf("UpdateAuthor().Nationality = %q, want unchanged %q", got.Nationality, "American")
		}
	})

	t.Run("taking another author's name fails", func(t *testing.T) {
		mr := resolver.Mutation()
		name := "Joanna Russ"
		input := model.UpdateAuthorInput{Name: &name}
		_, err := mr.UpdateAuthor(ctx, author.ID, input)
		userErr := asUserInputError(t, err)
		if userErr.Field != "name" {
			t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "name")
		}
	})

	t.Run("update nonexistent author", func(t *testing.T) {
		mr := resolver.Mutation()
		nationality := "Unknown"
		input := model.UpdateAuthorInput{Nationality: &nationality}
		_, err := mr.UpdateAuthor(ctx, "nonexistent", input)
		userErr := asUserInputError(t, err)
		if userErr.Field != "id" {
			t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "id")
		}
	})
}

func TestTitleUniquenessInvariant(t *testing.T) {
	resolver, store := setupTestResolver(t)
	ctx := context.Background()

	author := createTestAuthor(t, store, "N. K. Jemisin", "American")
	mr := resolver.Mutation()

	titles := []string{"The Fifth Season", "The Obelisk Gate", "The Stone Sky"}
	for _, title := range titles {
		input := model.AddBookInput{Title: title, AuthorID: &author.ID}
		if _, err := mr.AddBook(ctx, input); err != nil {
			t.Fatalf("AddBook(%q) error = %v", title, err)
		}
	}

	newTitle := "The Obelisk Gate"
	books, _ := store.ListBooks(ctx)
	if _, err := mr.UpdateBook(ctx, books[0].ID, model.UpdateBookInput{Title: &newTitle}); err == nil {
		t.Fatal("UpdateBook() expected uniqueness error")
	}

	seen := make(map[string]bool)
	books, _ = store.ListBooks(ctx)
	for _, b := range books {
		if seen[b.Title] {
			t.Errorf("duplicate title %q in collection", b.Title)
		}
		seen[b.Title] = true
	}
}

// setupProxyResolver runs the reference REST backend over an in-memory store
// and wires the resolver through the REST proxy client, exercising the proxy
// variant end to end.
func setupProxyResolver(t *testing.T) (*Resolver, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := httptest.NewServer(restapi.NewServer(memstore.New()).Router())
	t.Cleanup(backend.Close)

	return &Resolver{Store: reststore.NewClient(backend.URL)}, backend
}

func TestProxyVariantMutations(t *testing.T) {
	resolver, backend := setupProxyResolver(t)
	ctx := context.Background()

	mr := resolver.Mutation()

	nationality := "Czech"
	author, err := mr.AddAuthor(ctx, model.AddAuthorInput{Name: "Karel Čapek", Nationality: &nationality})
	if err != nil {
		t.Fatalf("AddAuthor() error = %v", err)
	}

	t.Run("create and read through the proxy", func(t *testing.T) {
		book, err := mr.AddBook(ctx, model.AddBookInput{Title: "R.U.R.", AuthorID: &author.ID})
		if err != nil {
			t.Fatalf("AddBook() error = %v", err)
		}

		qr := resolver.Query()
		got, err := qr.GetBook(ctx, book.ID)
		if err != nil {
			t.Fatalf("GetBook() error = %v", err)
		}
		if got == nil || got.Title != "R.U.R." {
			t.Errorf("GetBook() = %v, want R.U.R.", got)
		}
	})

	t.Run("duplicate title rejected through the proxy", func(t *testing.T) {
		_, err := mr.AddBook(ctx, model.AddBookInput{Title: "R.U.R.", AuthorID: &author.ID})
		userErr := asUserInputError(t, err)
		if userErr.Field != "title" {
			t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "title")
		}
	})

	t.Run("delete missing book fails with not-found user-input error", func(t *testing.T) {
		_, err := mr.DeleteBook(ctx, "nonexistent")
		userErr := asUserInputError(t, err)
		if userErr.Field != "id" {
			t.Errorf("UserInputError.Field = %q, want %q", userErr.Field, "id")
		}
	})

	t.Run("unreachable backend is an infrastructure error", func(t *testing.T) {
		backend.Close()

		qr := resolver.Query()
		_, err := qr.GetAllBooks(ctx)
		if !catalog.IsInfrastructure(err) {
			t.Errorf("error = %v, want InfrastructureError", err)
		}
	})
}
