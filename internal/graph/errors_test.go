package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/mnason/bookgraph/internal/catalog"
)

func TestErrorPresenterUserInput(t *testing.T) {
	ctx := context.Background()

	err := catalog.NewUserInputError("title", "a book titled %q already exists", "Dune")
	gqlErr := ErrorPresenter(ctx, err)

	if gqlErr.Message != `a book titled "Dune" already exists` {
		t.Errorf("Message = %q", gqlErr.Message)
	}
	if gqlErr.Extensions["code"] != catalog.CodeBadUserInput {
		t.Errorf("Extensions[code] = %v, want %q", gqlErr.Extensions["code"], catalog.CodeBadUserInput)
	}
	if gqlErr.Extensions["field"] != "title" {
		t.Errorf("Extensions[field] = %v, want %q", gqlErr.Extensions["field"], "title")
	}
}

func TestErrorPresenterInfrastructure(t *testing.T) {
	ctx := context.Background()

	cause := errors.New("dial tcp 127.0.0.1:3000: connect: connection refused")
	gqlErr := ErrorPresenter(ctx, &catalog.InfrastructureError{Cause: cause})

	if gqlErr.Message != "backing store unavailable" {
		t.Errorf("Message = %q, want fixed message", gqlErr.Message)
	}
	if gqlErr.Extensions["code"] != catalog.CodeInternal {
		t.Errorf("Extensions[code] = %v, want %q", gqlErr.Extensions["code"], catalog.CodeInternal)
	}
	// The cause must not leak into the outward message.
	if gqlErr.Message == cause.Error() {
		t.Error("presenter leaked the underlying cause")
	}
}

func TestErrorPresenterPassthrough(t *testing.T) {
	ctx := context.Background()

	err := errors.New("upstream PUT /books/1: some upstream failure")
	gqlErr := ErrorPresenter(ctx, err)

	if gqlErr.Message != err.Error() {
		t.Errorf("Message = %q, want original message preserved", gqlErr.Message)
	}
}
