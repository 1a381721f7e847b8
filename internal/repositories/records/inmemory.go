package records

import (
	"context"
	"sync"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

// InMemoryRepository implements Repository with an ordered slice plus
// lookup indexes
type InMemoryRepository struct {
	mu     sync.RWMutex
	items  []*pokedex.CatalogRecord
	byID   map[int]*pokedex.CatalogRecord
	byName map[string]*pokedex.CatalogRecord
}

// NewInMemory creates an empty record store
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[int]*pokedex.CatalogRecord),
		byName: make(map[string]*pokedex.CatalogRecord),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Append commits a batch of records at the end of the collection
func (r *InMemoryRepository) Append(_ context.Context, input *AppendInput) (*AppendOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	for i, record := range input.Records {
		if record == nil {
			return nil, errors.InvalidArgumentf("record %d is nil", i)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range input.Records {
		r.items = append(r.items, record)
		r.byID[record.ID] = record
		if _, taken := r.byName[record.Name]; !taken {
			r.byName[record.Name] = record
		}
	}

	return &AppendOutput{Count: len(r.items)}, nil
}

// List returns a snapshot of the collection; callers may reorder or trim
// the slice freely
func (r *InMemoryRepository) List(_ context.Context, _ *ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*pokedex.CatalogRecord, len(r.items))
	copy(out, r.items)

	return &ListOutput{Records: out}, nil
}

// GetByID retrieves a record by id
func (r *InMemoryRepository) GetByID(_ context.Context, input *GetByIDInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[input.ID]
	if !ok {
		return nil, errors.NotFoundf("record %d not found", input.ID)
	}

	return &GetOutput{Record: record}, nil
}

// GetByName retrieves the first committed record with exactly this name
func (r *InMemoryRepository) GetByName(_ context.Context, input *GetByNameInput) (*GetOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.InvalidArgument("name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byName[input.Name]
	if !ok {
		return nil, errors.NotFoundf("record %q not found", input.Name)
	}

	return &GetOutput{Record: record}, nil
}

// Count returns the number of committed records
func (r *InMemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

// Reset empties the store
func (r *InMemoryRepository) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = nil
	r.byID = make(map[int]*pokedex.CatalogRecord)
	r.byName = make(map[string]*pokedex.CatalogRecord)

	return nil
}
