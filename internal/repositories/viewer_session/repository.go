// Package viewersession provides storage for viewer sessions
package viewersession

//go:generate mockgen -destination=mock/mock_repository.go -package=viewersessionmock github.com/KirkDiggler/pokedex-api/internal/repositories/viewer_session Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
)

// DefaultTTL is used when a session is created without one
const DefaultTTL = time.Hour

// CreateInput contains parameters for creating a session. The repository
// stamps CreatedAt, UpdatedAt and ExpiresAt.
type CreateInput struct {
	Session *pokedex.ViewerSession
	TTL     time.Duration
}

// CreateOutput contains the stored session
type CreateOutput struct {
	Session *pokedex.ViewerSession
}

// GetInput identifies a session
type GetInput struct {
	ID string
}

// GetOutput contains the stored session
type GetOutput struct {
	Session *pokedex.ViewerSession
}

// UpdateInput replaces a session's state, keeping its expiry
type UpdateInput struct {
	Session *pokedex.ViewerSession
}

// UpdateOutput contains the stored session
type UpdateOutput struct {
	Session *pokedex.ViewerSession
}

// DeleteInput identifies a session
type DeleteInput struct {
	ID string
}

// DeleteOutput reports whether anything was removed
type DeleteOutput struct {
	Deleted bool
}

// Repository defines storage for viewer sessions. Expired sessions behave
// as missing.
type Repository interface {
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
