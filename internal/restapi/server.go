// Package restapi is the reference upstream REST service for the proxy
// variant. It exposes the /books and /authors resource sets over any
// catalog.Store, including the filter parameters (title=, name=, author_id=,
// id_ne=) that the GraphQL layer's uniqueness and lookup queries rely on.
package restapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnason/bookgraph/internal/catalog"
)

// Server wraps a catalog store with REST handlers.
type Server struct {
	store catalog.Store
}

// NewServer creates a Server over the given store.
func NewServer(store catalog.Store) *Server {
	return &Server{store: store}
}

// Router builds the gin engine with all resource routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/books", s.listBooks)
	r.POST("/books", s.createBook)
	r.GET("/books/:id", s.getBook)
	r.PUT("/books/:id", s.updateBook)
	r.DELETE("/books/:id", s.deleteBook)

	r.GET("/authors", s.listAuthors)
	r.POST("/authors", s.createAuthor)
	r.GET("/authors/:id", s.getAuthor)
	r.PUT("/authors/:id", s.updateAuthor)
	r.DELETE("/authors/:id", s.deleteAuthor)

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}

func (s *Server) listBooks(c *gin.Context) {
	var (
		books []*catalog.Book
		err   error
	)

	switch {
	case c.Query("title") != "":
		var book *catalog.Book
		book, err = s.store.FindBookByTitle(c.Request.Context(), c.Query("title"), c.Query("id_ne"))
		books = []*catalog.Book{}
		if book != nil {
			books = append(books, book)
		}
	case c.Query("author_id") != "":
		books, err = s.store.ListBooksByAuthor(c.Request.Context(), c.Query("author_id"))
	default:
		books, err = s.store.ListBooks(c.Request.Context())
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, books)
}

func (s *Server) getBook(c *gin.Context) {
	book, err := s.store.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *Server) createBook(c *gin.Context) {
	var book catalog.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.CreateBook(c.Request.Context(), &book); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &book)
}

func (s *Server) updateBook(c *gin.Context) {
	var book catalog.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	book.ID = c.Param("id")

	if err := s.store.UpdateBook(c.Request.Context(), &book); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, &book)
}

func (s *Server) deleteBook(c *gin.Context) {
	book, err := s.store.DeleteBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *Server) listAuthors(c *gin.Context) {
	var (
		authors []*catalog.Author
		err     error
	)

	if name := c.Query("name"); name != "" {
		var author *catalog.Author
		author, err = s.store.FindAuthorByName(c.Request.Context(), name, c.Query("id_ne"))
		authors = []*catalog.Author{}
		if author != nil {
			authors = append(authors, author)
		}
	} else {
		authors, err = s.store.ListAuthors(c.Request.Context())
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, authors)
}

func (s *Server) getAuthor(c *gin.Context) {
	author, err := s.store.GetAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

func (s *Server) createAuthor(c *gin.Context) {
	var author catalog.Author
	if err := c.ShouldBindJSON(&author); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.CreateAuthor(c.Request.Context(), &author); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &author)
}

func (s *Server) updateAuthor(c *gin.Context) {
	var author catalog.Author
	if err := c.ShouldBindJSON(&author); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	author.ID = c.Param("id")

	if err := s.store.UpdateAuthor(c.Request.Context(), &author); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, &author)
}

func (s *Server) deleteAuthor(c *gin.Context) {
	author, err := s.store.DeleteAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	if author == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
		return
	}
	c.JSON(http.StatusOK, author)
}

func (s *Server) renderError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
