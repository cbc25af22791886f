package graph

// This file will be automatically regenerated based on the schema, any resolver
// implementations
// will be copied through when generating and any unknown code will be moved to the end.
// Code generated by github.com/99designs/gqlgen version v0.17.84

import (
	"context"
	"errors"

	"github.com/mnason/bookgraph/internal/catalog"
	"github.com/mnason/bookgraph/internal/graph/model"
)

// Books is the resolver for the books field.
func (r *authorResolver) Books(ctx context.Context, obj *catalog.Author) ([]*catalog.Book, error) {
	return r.Store.ListBooksByAuthor(ctx, obj.ID)
}

// Author is the resolver for the author field. One lookup per parent book;
// the N+1 this causes is accepted at this collection size.
func (r *bookResolver) Author(ctx context.Context, obj *catalog.Book) (*catalog.Author, error) {
	return r.Store.GetAuthor(ctx, obj.AuthorID)
}

// AddBook is the resolver for the addBook field.
func (r *mutationResolver) AddBook(ctx context.Context, input model.AddBookInput) (*catalog.Book, error) {
	if err := r.ensureBookTitleUnique(ctx, input.Title, ""); err != nil {
		return nil, err
	}

	author, err := r.resolveAuthorRef(ctx, input.AuthorID, input.AuthorName)
	if err != nil {
		return nil, err
	}

	book := &catalog.Book{
		Title:    input.Title,
		AuthorID: author.ID,
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Isbn != nil {
		book.ISBN = *input.Isbn
	}
	if input.Publisher != nil {
		book.Publisher = *input.Publisher
	}
	if input.Genre != nil {
		book.Genre = *input.Genre
	}
	if input.Year != nil {
		book.Year = *input.Year
	}

	if err := r.Store.CreateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBook is the resolver for the updateBook field.
func (r *mutationResolver) UpdateBook(ctx context.Context, id string, input model.UpdateBookInput) (*catalog.Book, error) {
	if input.Title != nil {
		if err := r.ensureBookTitleUnique(ctx, *input.Title, id); err != nil {
			return nil, err
		}
	}
	if input.AuthorID != nil {
		if _, err := r.resolveAuthorRef(ctx, input.AuthorID, nil); err != nil {
			return nil, err
		}
	}

	existing, err := r.Store.GetBook(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, catalog.NewUserInputError("id", "book %q does not exist", id)
	}
	if err != nil {
		return nil, err
	}

	merged := mergeBook(existing, input)
	if err := r.Store.UpdateBook(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// DeleteBook is the resolver for the deleteBook field. Whether deleting a
// missing ID is a silent no-op or a user-input error is decided by the store:
// the in-memory store returns a null result, the REST proxy reports not found.
func (r *mutationResolver) DeleteBook(ctx context.Context, id string) (*catalog.Book, error) {
	book, err := r.Store.DeleteBook(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, catalog.NewUserInputError("id", "book %q does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

// AddAuthor is the resolver for the addAuthor field.
func (r *mutationResolver) AddAuthor(ctx context.Context, input model.AddAuthorInput) (*catalog.Author, error) {
	if err := r.ensureAuthorNameUnique(ctx, input.Name, ""); err != nil {
		return nil, err
	}

	author := &catalog.Author{Name: input.Name}
	if input.Nationality != nil {
		author.Nationality = *input.Nationality
	}

	if err := r.Store.CreateAuthor(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// UpdateAuthor is the resolver for the updateAuthor field.
func (r *mutationResolver) UpdateAuthor(ctx context.Context, id string, input model.UpdateAuthorInput) (*catalog.Author, error) {
	if input.Name != nil {
		if err := r.ensureAuthorNameUnique(ctx, *input.Name, id); err != nil {
			return nil, err
		}
	}

	existing, err := r.Store.GetAuthor(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, catalog.NewUserInputError("id", "author %q does not exist", id)
	}
	if err != nil {
		return nil, err
	}

	merged := mergeAuthor(existing, input)
	if err := r.Store.UpdateAuthor(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// DeleteAuthor is the resolver for the deleteAuthor field. Same missing-ID
// contract as DeleteBook.
func (r *mutationResolver) DeleteAuthor(ctx context.Context, id string) (*catalog.Author, error) {
	author, err := r.Store.DeleteAuthor(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, catalog.NewUserInputError("id", "author %q does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return author, nil
}

// GetAllBooks is the resolver for the getAllBooks field.
func (r *queryResolver) GetAllBooks(ctx context.Context) ([]*catalog.Book, error) {
	return r.Store.ListBooks(ctx)
}

// GetBook is the resolver for the getBook field.
func (r *queryResolver) GetBook(ctx context.Context, id string) (*catalog.Book, error) {
	book, err := r.Store.GetBook(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

// GetAllAuthors is the resolver for the getAllAuthors field.
func (r *queryResolver) GetAllAuthors(ctx context.Context) ([]*catalog.Author, error) {
	return r.Store.ListAuthors(ctx)
}

// GetAuthor is the resolver for the getAuthor field.
func (r *queryResolver) GetAuthor(ctx context.Context, id string) (*catalog.Author, error) {
	author, err := r.Store.GetAuthor(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return author, nil
}

// GetAllBooksByAuthorName is the resolver for the getAllBooksByAuthorName
// field: exact name match first, then the author's books. Unknown authors
// yield an empty list, not an error.
func (r *queryResolver) GetAllBooksByAuthorName(ctx context.Context, authorName string) ([]*catalog.Book, error) {
	author, err := r.Store.FindAuthorByName(ctx, authorName, "")
	if err != nil {
		return nil, err
	}
	if author == nil {
		return []*catalog.Book{}, nil
	}
	return r.Store.ListBooksByAuthor(ctx, author.ID)
}

// Author returns AuthorResolver implementation.
func (r *Resolver) Author() AuthorResolver { return &authorResolver{r} }

// Book returns BookResolver implementation.
func (r *Resolver) Book() BookResolver { return &bookResolver{r} }

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

type authorResolver struct{ *Resolver }
type bookResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
