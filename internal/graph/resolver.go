package graph

import "github.com/mnason/bookgraph/internal/catalog"

//go:generate go tool gqlgen generate

// Resolver is the root resolver for the GraphQL schema.
// It holds the catalog store all field resolution runs against.
type Resolver struct {
	Store catalog.Store
}
