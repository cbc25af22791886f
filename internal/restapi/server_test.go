package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mnason/bookgraph/internal/catalog"
	"github.com/mnason/bookgraph/internal/memstore"
)

func setupTestServer(t *testing.T) (*httptest.Server, *memstore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	server := httptest.NewServer(NewServer(store).Router())
	t.Cleanup(server.Close)

	return server, store
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestCreateAndGetBook(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/books", catalog.Book{Title: "Hyperion", AuthorID: "a1"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /books status = %d, want 201", resp.StatusCode)
	}
	var created catalog.Book
	decodeInto(t, resp, &created)
	if created.ID == "" {
		t.Fatal("created book has no ID")
	}

	getResp, err := http.Get(server.URL + "/books/" + created.ID)
	if err != nil {
		t.Fatalf("GET /books/{id}: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("GET /books/{id} status = %d, want 200", getResp.StatusCode)
	}
	var got catalog.Book
	decodeInto(t, getResp, &got)
	if got.Title != "Hyperion" {
		t.Errorf("got.Title = %q, want %q", got.Title, "Hyperion")
	}
}

func TestGetMissingBookReturns404(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/books/nonexistent")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDeleteMissingBookReturns404(t *testing.T) {
	server, _ := setupTestServer(t)

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/books/nonexistent", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestBookFilters(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()

	first := &catalog.Book{Title: "Blindsight", AuthorID: "watts"}
	second := &catalog.Book{Title: "Echopraxia", AuthorID: "watts"}
	third := &catalog.Book{Title: "Starfish", AuthorID: "other"}
	for _, b := range []*catalog.Book{first, second, third} {
		if err := store.CreateBook(ctx, b); err != nil {
			t.Fatalf("CreateBook: %v", err)
		}
	}

	fetch := func(t *testing.T, path string) []*catalog.Book {
		t.Helper()
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, resp.StatusCode)
		}
		var books []*catalog.Book
		decodeInto(t, resp, &books)
		return books
	}

	t.Run("title filter", func(t *testing.T) {
		books := fetch(t, "/books?title=Blindsight")
		if len(books) != 1 || books[0].ID != first.ID {
			t.Errorf("title filter = %v", books)
		}
	})

	t.Run("title filter with id_ne exclusion", func(t *testing.T) {
		books := fetch(t, fmt.Sprintf("/books?title=Blindsight&id_ne=%s", first.ID))
		if len(books) != 0 {
			t.Errorf("exclusion filter count = %d, want 0", len(books))
		}
	})

	t.Run("author_id filter", func(t *testing.T) {
		books := fetch(t, "/books?author_id=watts")
		if len(books) != 2 {
			t.Errorf("author_id filter count = %d, want 2", len(books))
		}
	})

	t.Run("no filter lists all", func(t *testing.T) {
		books := fetch(t, "/books")
		if len(books) != 3 {
			t.Errorf("unfiltered count = %d, want 3", len(books))
		}
	})
}

func TestAuthorNameFilter(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()

	author := &catalog.Author{Name: "Peter Watts", Nationality: "Canadian"}
	if err := store.CreateAuthor(ctx, author); err != nil {
		t.Fatalf("CreateAuthor: %v", err)
	}

	resp, err := http.Get(server.URL + "/authors?name=Peter+Watts")
	if err != nil {
		t.Fatalf("GET /authors: %v", err)
	}
	var authors []*catalog.Author
	decodeInto(t, resp, &authors)
	if len(authors) != 1 || authors[0].ID != author.ID {
		t.Errorf("name filter = %v", authors)
	}

	resp, err = http.Get(server.URL + "/authors?name=Peter+Watts&id_ne=" + author.ID)
	if err != nil {
		t.Fatalf("GET /authors: %v", err)
	}
	decodeInto(t, resp, &authors)
	if len(authors) != 0 {
		t.Errorf("exclusion filter count = %d, want 0", len(authors))
	}
}

func TestUpdateBook(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()

	book := &catalog.Book{Title: "Accelerando", AuthorID: "stross"}
	if err := store.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}

	updated := *book
	updated.Description = "Singularity in three generations"
	data, _ := json.Marshal(&updated)
	req, _ := http.NewRequest(http.MethodPut, server.URL+"/books/"+book.ID, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
	}

	got, _ := store.GetBook(ctx, book.ID)
	if got.Description != "Singularity in three generations" {
		t.Errorf("Description = %q after PUT", got.Description)
	}
}
