package catalog

import "context"

// Store is the contract for catalog data storage. The resolver layer runs the
// same validation workflow against any implementation: the in-process memstore
// in tests and the embedded variant, the REST proxy in production.
//
// Point lookups (GetBook, GetAuthor) return ErrNotFound on a miss. The filtered
// finders (FindBookByTitle, FindAuthorByName) return (nil, nil) when nothing
// matches; excludeID, when non-empty, drops that record from the comparison so
// updates don't collide with themselves.
//
// DeleteBook/DeleteAuthor return the removed record. Behavior on a missing ID
// is implementation-defined: the in-memory store returns (nil, nil), the REST
// proxy returns ErrNotFound. Callers surface whichever contract their store
// provides.
type Store interface {
	ListBooks(ctx context.Context) ([]*Book, error)
	GetBook(ctx context.Context, id string) (*Book, error)
	FindBookByTitle(ctx context.Context, title, excludeID string) (*Book, error)
	ListBooksByAuthor(ctx context.Context, authorID string) ([]*Book, error)
	CreateBook(ctx context.Context, b *Book) error
	UpdateBook(ctx context.Context, b *Book) error
	DeleteBook(ctx context.Context, id string) (*Book, error)

	ListAuthors(ctx context.Context) ([]*Author, error)
	GetAuthor(ctx context.Context, id string) (*Author, error)
	FindAuthorByName(ctx context.Context, name, excludeID string) (*Author, error)
	CreateAuthor(ctx context.Context, a *Author) error
	UpdateAuthor(ctx context.Context, a *Author) error
	DeleteAuthor(ctx context.Context, id string) (*Author, error)
}
