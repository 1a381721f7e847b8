package viewer

import (
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
	"github.com/KirkDiggler/pokedex-api/internal/services/filter"
)

// CreateSessionInput sets the initial toggle; the filter always starts
// unconstrained
type CreateSessionInput struct {
	Animated bool
}

// GetSessionInput identifies a session
type GetSessionInput struct {
	SessionID string
}

// PickTypeInput is one click on the type picker
type PickTypeInput struct {
	SessionID string
	Type      string
}

// SetSearchTermInput replaces the search term
type SetSearchTermInput struct {
	SessionID  string
	SearchTerm string
}

// ToggleAnimatedInput flips the animated-sprite mode
type ToggleAnimatedInput struct {
	SessionID string
}

// DeleteSessionInput identifies a session
type DeleteSessionInput struct {
	SessionID string
}

// DeleteSessionOutput reports whether a session was removed
type DeleteSessionOutput struct {
	Deleted bool
}

// SessionView is a session together with what it currently shows
type SessionView struct {
	Session *pokedex.ViewerSession
	Summary filter.Summary

	// Entries are the visible records, empty while Loading
	Entries []catalog.ListEntry
	Total   int
	Loading bool

	// CapacityWarning is set when a pick was refused because two types are
	// already selected
	CapacityWarning string
}
