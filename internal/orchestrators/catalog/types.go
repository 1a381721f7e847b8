package catalog

import (
	"time"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
)

// LoadState is the lifecycle of a dataset load
type LoadState string

// Load states. Ready means the first batch is committed and later batches
// are still loading.
const (
	LoadStateIdle     LoadState = "idle"
	LoadStateLoading  LoadState = "loading"
	LoadStateReady    LoadState = "ready"
	LoadStateComplete LoadState = "complete"
	LoadStateFailed   LoadState = "failed"
)

// EventType identifies a loader event
type EventType string

// Loader events
const (
	EventBatchLoaded   EventType = "batch_loaded"
	EventReady         EventType = "ready"
	EventLoadCompleted EventType = "load_completed"
	EventLoadFailed    EventType = "load_failed"
)

// Event is published to subscribers as the load progresses
type Event struct {
	Type       EventType
	RunID      string
	BatchIndex int
	Loaded     int
	Total      int
	Err        error
}

// LoadStatus is a snapshot of the current or last load
type LoadStatus struct {
	RunID      string
	State      LoadState
	Loaded     int
	Total      int
	Batches    int
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// LoadInput starts a full dataset load
type LoadInput struct{}

// LoadOutput reports a finished load
type LoadOutput struct {
	RunID  string
	Loaded int
	Total  int
}

// GetLoadStatusInput is empty
type GetLoadStatusInput struct{}

// GetLoadStatusOutput holds the status snapshot
type GetLoadStatusOutput struct {
	Status LoadStatus
}

// ListRecordsInput is a stateless filter request. Types holds zero to two
// concrete types; "all" is accepted and means no constraint.
type ListRecordsInput struct {
	SearchTerm string
	Types      []string
	Animated   bool
}

// ListEntry is a record with the image to show for it
type ListEntry struct {
	Record       *pokedex.CatalogRecord
	DisplayImage string
}

// ListRecordsOutput holds the filtered records in load order
type ListRecordsOutput struct {
	Entries []ListEntry
	Filter  pokedex.FilterState

	// Total is the number of loaded records before filtering
	Total int
}

// GetRecordInput identifies a record
type GetRecordInput struct {
	ID       int
	Animated bool
}

// GetRecordOutput holds a single record
type GetRecordOutput struct {
	Entry ListEntry
}

// GetEvolutionChainInput selects a chain either through a record or by its
// locator directly. RecordID wins when both are set.
type GetEvolutionChainInput struct {
	RecordID int
	ChainRef string
	Animated bool
}

// ChainEntry is one species of a resolved chain. Record is nil when the
// species is not among the loaded records; the entry is then a placeholder.
type ChainEntry struct {
	SpeciesName  string
	TriggerLabel string
	Record       *pokedex.CatalogRecord
	DisplayImage string
}

// ChainStage holds the entries sharing one depth
type ChainStage []ChainEntry

// GetEvolutionChainOutput holds the resolved stages, root first
type GetEvolutionChainOutput struct {
	ChainRef string
	Stages   []ChainStage
	CacheHit bool
}
