package viewersession

import (
	"context"
	"sync"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
)

type inMemoryRepository struct {
	mu       sync.RWMutex
	clock    clock.Clock
	sessions map[string]*pokedex.ViewerSession
}

// NewInMemoryRepository creates a session store that lives in the process.
// Expired sessions are dropped lazily on access.
func NewInMemoryRepository(c clock.Clock) Repository {
	if c == nil {
		c = clock.New()
	}
	return &inMemoryRepository{
		clock:    c,
		sessions: make(map[string]*pokedex.ViewerSession),
	}
}

var _ Repository = (*inMemoryRepository)(nil)

func (r *inMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	session, _ := stampNew(input, r.clock.Now())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.liveLocked(session.ID); ok {
		return nil, errors.Newf(errors.CodeInvalidArgument, "session %s already exists", session.ID)
	}
	r.sessions[session.ID] = session

	return &CreateOutput{Session: session.Clone()}, nil
}

func (r *inMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.liveLocked(input.ID)
	if !ok {
		return nil, errors.NotFoundf("viewer session %s not found", input.ID)
	}

	return &GetOutput{Session: session.Clone()}, nil
}

func (r *inMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.liveLocked(input.Session.ID)
	if !ok {
		return nil, errors.NotFoundf("viewer session %s not found", input.Session.ID)
	}

	session := input.Session.Clone()
	session.CreatedAt = existing.CreatedAt
	session.ExpiresAt = existing.ExpiresAt
	session.UpdatedAt = r.clock.Now()
	r.sessions[session.ID] = session

	return &UpdateOutput{Session: session.Clone()}, nil
}

func (r *inMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.liveLocked(input.ID)
	delete(r.sessions, input.ID)

	return &DeleteOutput{Deleted: ok}, nil
}

// liveLocked returns a non-expired session, evicting it if expired. Callers
// hold the write lock.
func (r *inMemoryRepository) liveLocked(id string) (*pokedex.ViewerSession, bool) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if !r.clock.Now().Before(session.ExpiresAt) {
		delete(r.sessions, id)
		return nil, false
	}
	return session, true
}
