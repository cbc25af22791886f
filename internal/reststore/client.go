// Package reststore implements the catalog store as a proxy over an upstream
// REST API. This layer holds no state of its own: lifetime and storage belong
// to the upstream service.
//
// Resource paths follow the conventional layout: GET/POST /books,
// GET/PUT/DELETE /books/{id}, with title=, name=, author_id= and id_ne= filter
// parameters for the lookup and exclusion-aware uniqueness queries.
package reststore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mnason/bookgraph/internal/catalog"
)

// Client talks to the upstream REST API. No retries are performed: a single
// failed call fails the whole operation.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the given base URL, e.g. "http://localhost:3000".
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) ListBooks(ctx context.Context) ([]*catalog.Book, error) {
	var books []*catalog.Book
	if err := c.do(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	if books == nil {
		books = []*catalog.Book{}
	}
	return books, nil
}

func (c *Client) GetBook(ctx context.Context, id string) (*catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) FindBookByTitle(ctx context.Context, title, excludeID string) (*catalog.Book, error) {
	q := url.Values{}
	q.Set("title", title)
	if excludeID != "" {
		q.Set("id_ne", excludeID)
	}

	var books []*catalog.Book
	if err := c.do(ctx, http.MethodGet, "/books?"+q.Encode(), nil, &books); err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, nil
	}
	return books[0], nil
}

func (c *Client) ListBooksByAuthor(ctx context.Context, authorID string) ([]*catalog.Book, error) {
	q := url.Values{}
	q.Set("author_id", authorID)

	var books []*catalog.Book
	if err := c.do(ctx, http.MethodGet, "/books?"+q.Encode(), nil, &books); err != nil {
		return nil, err
	}
	if books == nil {
		books = []*catalog.Book{}
	}
	return books, nil
}

func (c *Client) CreateBook(ctx context.Context, b *catalog.Book) error {
	return c.do(ctx, http.MethodPost, "/books", b, b)
}

func (c *Client) UpdateBook(ctx context.Context, b *catalog.Book) error {
	return c.do(ctx, http.MethodPut, "/books/"+url.PathEscape(b.ID), b, b)
}

// DeleteBook removes a book upstream. A missing ID surfaces as ErrNotFound:
// the proxy variant, unlike the embedded one, rejects deletes of nonexistent
// records.
func (c *Client) DeleteBook(ctx context.Context, id string) (*catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) ListAuthors(ctx context.Context) ([]*catalog.Author, error) {
	var authors []*catalog.Author
	if err := c.do(ctx, http.MethodGet, "/authors", nil, &authors); err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []*catalog.Author{}
	}
	return authors, nil
}

func (c *Client) GetAuthor(ctx context.Context, id string) (*catalog.Author, error) {
	var author catalog.Author
	if err := c.do(ctx, http.MethodGet, "/authors/"+url.PathEscape(id), nil, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

func (c *Client) FindAuthorByName(ctx context.Context, name, excludeID string) (*catalog.Author, error) {
	q := url.Values{}
	q.Set("name", name)
	if excludeID != "" {
		q.Set("id_ne", excludeID)
	}

	var authors []*catalog.Author
	if err := c.do(ctx, http.MethodGet, "/authors?"+q.Encode(), nil, &authors); err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return nil, nil
	}
	return authors[0], nil
}

func (c *Client) CreateAuthor(ctx context.Context, a *catalog.Author) error {
	return c.do(ctx, http.MethodPost, "/authors", a, a)
}

func (c *Client) UpdateAuthor(ctx context.Context, a *catalog.Author) error {
	return c.do(ctx, http.MethodPut, "/authors/"+url.PathEscape(a.ID), a, a)
}

// DeleteAuthor removes an author upstream. Missing IDs surface as ErrNotFound.
func (c *Client) DeleteAuthor(ctx context.Context, id string) (*catalog.Author, error) {
	var author catalog.Author
	if err := c.do(ctx, http.MethodDelete, "/authors/"+url.PathEscape(id), nil, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// do performs one request against the upstream API and decodes the JSON
// response into target (when target is non-nil).
//
// Error classification: a failure to reach the upstream at all (connection
// refused, DNS, etc.) becomes an InfrastructureError; a 404 becomes
// ErrNotFound; any other non-2xx response is re-raised with the upstream's
// own message.
func (c *Client) do(ctx context.Context, method, path string, body, target interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &catalog.InfrastructureError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return catalog.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upstream %s %s: %s", method, path, upstreamMessage(resp))
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// upstreamMessage extracts the error message from a failed response, falling
// back to the HTTP status line.
func upstreamMessage(resp *http.Response) string {
	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return resp.Status
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(data))
}

var _ catalog.Store = (*Client)(nil)
