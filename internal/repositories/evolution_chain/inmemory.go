package evolutionchain

import (
	"context"
	"sync"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

const (
	errChainRefEmpty = "chain ref cannot be empty"
	errPayloadEmpty  = "payload cannot be empty"
)

type inMemoryRepository struct {
	mu     sync.RWMutex
	chains map[string][]byte
}

// NewInMemoryRepository creates an unbounded in-memory chain cache
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		chains: make(map[string][]byte),
	}
}

var _ Repository = (*inMemoryRepository)(nil)

func (r *inMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ChainRef == "" {
		return nil, errors.InvalidArgument(errChainRefEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.chains[input.ChainRef]
	if !ok {
		return nil, errors.NotFoundf("evolution chain %s not cached", input.ChainRef)
	}

	return &GetOutput{Payload: clonePayload(payload)}, nil
}

func (r *inMemoryRepository) Put(_ context.Context, input PutInput) (*PutOutput, error) {
	if input.ChainRef == "" {
		return nil, errors.InvalidArgument(errChainRefEmpty)
	}
	if len(input.Payload) == 0 {
		return nil, errors.InvalidArgument(errPayloadEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.chains[input.ChainRef] = clonePayload(input.Payload)

	return &PutOutput{}, nil
}

func clonePayload(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
