// Package evolutionchain stores raw evolution chain payloads keyed by their
// chain locator
package evolutionchain

//go:generate mockgen -destination=mock/mock_repository.go -package=evolutionchainmock github.com/KirkDiggler/pokedex-api/internal/repositories/evolution_chain Repository

import "context"

// GetInput identifies a cached chain
type GetInput struct {
	ChainRef string
}

// GetOutput holds a cached chain payload
type GetOutput struct {
	Payload []byte
}

// PutInput stores a chain payload under its locator
type PutInput struct {
	ChainRef string
	Payload  []byte
}

// PutOutput is empty for now
type PutOutput struct{}

// Repository is the evolution chain cache. Payloads are immutable, so a Put
// for an existing key simply replaces it.
type Repository interface {
	// Get returns NotFound when the chain is not cached
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Put(ctx context.Context, input PutInput) (*PutOutput, error)
}
