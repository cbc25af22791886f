package graph

import (
	"context"
	"errors"

	"github.com/mnason/bookgraph/internal/catalog"
	"github.com/mnason/bookgraph/internal/graph/model"
)

// ensureBookTitleUnique queries the store for a book with the given title.
// excludeID, when non-empty, keeps an update from colliding with the record
// being updated. Uniqueness is check-then-write, not atomic: two concurrent
// conflicting mutations can race between the check and the commit.
func (r *Resolver) ensureBookTitleUnique(ctx context.Context, title, excludeID string) error {
	existing, err := r.Store.FindBookByTitle(ctx, title, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return catalog.NewUserInputError("title", "a book titled %q already exists", title)
	}
	return nil
}

// ensureAuthorNameUnique is the author-side counterpart of ensureBookTitleUnique.
func (r *Resolver) ensureAuthorNameUnique(ctx context.Context, name, excludeID string) error {
	existing, err := r.Store.FindAuthorByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return catalog.NewUserInputError("name", "an author named %q already exists", name)
	}
	return nil
}

// resolveAuthorRef resolves a book's author reference. An id takes precedence
// over a name; whichever is used must point at an existing author.
func (r *Resolver) resolveAuthorRef(ctx context.Context, authorID, authorName *string) (*catalog.Author, error) {
	switch {
	case authorID != nil && *authorID != "":
		author, err := r.Store.GetAuthor(ctx, *authorID)
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, catalog.NewUserInputError("authorId", "author %q does not exist", *authorID)
		}
		if err != nil {
			return nil, err
		}
		return author, nil

	case authorName != nil && *authorName != "":
		author, err := r.Store.FindAuthorByName(ctx, *authorName, "")
		if err != nil {
			return nil, err
		}
		if author == nil {
			return nil, catalog.NewUserInputError("authorName", "author %q does not exist", *authorName)
		}
		return author, nil

	default:
		return nil, catalog.NewUserInputError("authorId", "an author reference (authorId or authorName) is required")
	}
}

// mergeBook builds the updated record: each provided field overwrites, each
// omitted field keeps its existing value. Presence is the pointer being
// non-nil, so a provided zero value (year: 0) does overwrite.
func mergeBook(existing *catalog.Book, input model.UpdateBookInput) *catalog.Book {
	merged := *existing
	if input.Title != nil {
		merged.Title = *input.Title
	}
	if input.Description != nil {
		merged.Description = *input.Description
	}
	if input.Isbn != nil {
		merged.ISBN = *input.Isbn
	}
	if input.Publisher != nil {
		merged.Publisher = *input.Publisher
	}
	if input.Genre != nil {
		merged.Genre = *input.Genre
	}
	if input.Year != nil {
		merged.Year = *input.Year
	}
	if input.AuthorID != nil {
		merged.AuthorID = *input.AuthorID
	}
	return &merged
}

// mergeAuthor is the author-side counterpart of mergeBook.
func mergeAuthor(existing *catalog.Author, input model.UpdateAuthorInput) *catalog.Author {
	merged := *existing
	if input.Name != nil {
		merged.Name = *input.Name
	}
	if input.Nationality != nil {
		merged.Nationality = *input.Nationality
	}
	return &merged
}
