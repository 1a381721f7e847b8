// Package records holds the loaded catalog in index order
package records

//go:generate mockgen -destination=mock/mock_repository.go -package=recordsmock github.com/KirkDiggler/pokedex-api/internal/repositories/records Repository

import (
	"context"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
)

// AppendInput is one committed batch
type AppendInput struct {
	Records []*pokedex.CatalogRecord
}

// AppendOutput reports the store size after the append
type AppendOutput struct {
	Count int
}

// ListInput is empty; the full collection is always returned
type ListInput struct{}

// ListOutput holds every record in commit order
type ListOutput struct {
	Records []*pokedex.CatalogRecord
}

// GetByIDInput looks a record up by its numeric id
type GetByIDInput struct {
	ID int
}

// GetByNameInput looks a record up by exact name
type GetByNameInput struct {
	Name string
}

// GetOutput holds a single record
type GetOutput struct {
	Record *pokedex.CatalogRecord
}

// Repository is the record store the loader commits to. Appends are atomic
// per batch; readers never observe half a batch.
type Repository interface {
	Append(ctx context.Context, input *AppendInput) (*AppendOutput, error)
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
	GetByID(ctx context.Context, input *GetByIDInput) (*GetOutput, error)
	GetByName(ctx context.Context, input *GetByNameInput) (*GetOutput, error)
	Count(ctx context.Context) (int, error)

	// Reset drops every record, used before a reload
	Reset(ctx context.Context) error
}
