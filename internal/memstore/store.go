// Package memstore provides a mutex-protected in-memory catalog store. It is
// the embedded-variant backing store: collection lifetime is the process
// lifetime, nothing is persisted.
package memstore

import (
	"context"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/mnason/bookgraph/internal/catalog"
)

// idAlphabet matches the URL-safe lowercase alphabet used for record IDs.
const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 8
)

// Store keeps books and authors in maps guarded by a single RWMutex.
// Insertion order is preserved so list queries are deterministic.
type Store struct {
	mu          sync.RWMutex
	books       map[string]*catalog.Book
	authors     map[string]*catalog.Author
	bookOrder   []string
	authorOrder []string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		books:   make(map[string]*catalog.Book),
		authors: make(map[string]*catalog.Author),
	}
}

// NewID generates a fresh record identifier.
func NewID() string {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		// gonanoid only fails when the platform's entropy source does.
		panic(err)
	}
	return id
}

func (s *Store) ListBooks(ctx context.Context) ([]*catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*catalog.Book, 0, len(s.bookOrder))
	for _, id := range s.bookOrder {
		result = append(result, s.books[id])
	}
	return result, nil
}

func (s *Store) GetBook(ctx context.Context, id string) (*catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return b, nil
}

func (s *Store) FindBookByTitle(ctx context.Context, title, excludeID string) (*catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.bookOrder {
		b := s.books[id]
		if b.Title == title && b.ID != excludeID {
			return b, nil
		}
	}
	return nil, nil
}

func (s *Store) ListBooksByAuthor(ctx context.Context, authorID string) ([]*catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*catalog.Book{}
	for _, id := range s.bookOrder {
		if b := s.books[id]; b.AuthorID == authorID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (s *Store) CreateBook(ctx context.Context, b *catalog.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = NewID()
	}

	now := time.Now().UTC().Truncate(time.Second)
	b.CreatedAt = &now
	b.UpdatedAt = &now

	s.books[b.ID] = b
	s.bookOrder = append(s.bookOrder, b.ID)
	return nil
}

func (s *Store) UpdateBook(ctx context.Context, b *catalog.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.books[b.ID]
	if !ok {
		return catalog.ErrNotFound
	}

	now := time.Now().UTC().Truncate(time.Second)
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = &now

	s.books[b.ID] = b
	return nil
}

// DeleteBook removes a book. A missing ID returns (nil, nil) without error:
// the embedded variant treats deleting a nonexistent record as a no-op.
func (s *Store) DeleteBook(ctx context.Context, id string) (*catalog.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return nil, nil
	}

	delete(s.books, id)
	s.bookOrder = removeID(s.bookOrder, id)
	return b, nil
}

func (s *Store) ListAuthors(ctx context.Context) ([]*catalog.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*catalog.Author, 0, len(s.authorOrder))
	for _, id := range s.authorOrder {
		result = append(result, s.authors[id])
	}
	return result, nil
}

func (s *Store) GetAuthor(ctx context.Context, id string) (*catalog.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.authors[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return a, nil
}

func (s *Store) FindAuthorByName(ctx context.Context, name, excludeID string) (*catalog.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.authorOrder {
		a := s.authors[id]
		if a.Name == name && a.ID != excludeID {
			return a, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateAuthor(ctx context.Context, a *catalog.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = NewID()
	}

	now := time.Now().UTC().Truncate(time.Second)
	a.CreatedAt = &now
	a.UpdatedAt = &now

	s.authors[a.ID] = a
	s.authorOrder = append(s.authorOrder, a.ID)
	return nil
}

func (s *Store) UpdateAuthor(ctx context.Context, a *catalog.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.authors[a.ID]
	if !ok {
		return catalog.ErrNotFound
	}

	now := time.Now().UTC().Truncate(time.Second)
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = &now

	s.authors[a.ID] = a
	return nil
}

// DeleteAuthor removes an author. Missing IDs are a no-op, same as DeleteBook.
func (s *Store) DeleteAuthor(ctx context.Context, id string) (*catalog.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.authors[id]
	if !ok {
		return nil, nil
	}

	delete(s.authors, id)
	s.authorOrder = removeID(s.authorOrder, id)
	return a, nil
}

func removeID(order []string, id string) []string {
	result := make([]string, 0, len(order))
	for _, existing := range order {
		if existing != id {
			result = append(result, existing)
		}
	}
	return result
}

var _ catalog.Store = (*Store)(nil)
