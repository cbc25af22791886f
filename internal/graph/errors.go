package graph

import (
	"context"
	"errors"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/mnason/bookgraph/internal/catalog"
)

// ErrorPresenter maps catalog error kinds onto the outward GraphQL error
// format. User-input failures carry code BAD_USER_INPUT plus the violated
// field; infrastructure failures keep their fixed message so internal details
// never reach the caller. Anything else passes through unchanged.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	gqlErr := graphql.DefaultErrorPresenter(ctx, err)

	var userErr *catalog.UserInputError
	if errors.As(err, &userErr) {
		gqlErr.Message = userErr.Message
		gqlErr.Extensions = map[string]interface{}{
			"code":  catalog.CodeBadUserInput,
			"field": userErr.Field,
		}
		return gqlErr
	}

	var infraErr *catalog.InfrastructureError
	if errors.As(err, &infraErr) {
		gqlErr.Message = infraErr.Error()
		gqlErr.Extensions = map[string]interface{}{
			"code": catalog.CodeInternal,
		}
		return gqlErr
	}

	return gqlErr
}
