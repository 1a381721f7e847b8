// Package catalog loads the full creature dataset in batches and answers
// catalog, filter and evolution queries over it
package catalog

//go:generate mockgen -destination=mock/mock_service.go -package=catalogmock github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
	"github.com/KirkDiggler/pokedex-api/internal/repositories/records"
	"github.com/KirkDiggler/pokedex-api/internal/services/evolution"
	"github.com/KirkDiggler/pokedex-api/internal/services/filter"
)

// DefaultBatchSize is the number of records fetched and committed together
const DefaultBatchSize = 50

// Service defines the catalog operations
type Service interface {
	// Load fetches the whole dataset, committing it batch by batch. The first
	// failure aborts the load; committed batches stay visible.
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)
	GetLoadStatus(ctx context.Context, input *GetLoadStatusInput) (*GetLoadStatusOutput, error)

	// Subscribe registers fn for loader events. fn runs on the loader's
	// goroutine and must not block.
	Subscribe(fn func(Event)) (unsubscribe func())

	ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error)
	GetRecord(ctx context.Context, input *GetRecordInput) (*GetRecordOutput, error)
	GetEvolutionChain(ctx context.Context, input *GetEvolutionChainInput) (*GetEvolutionChainOutput, error)
}

// Config holds the dependencies for the catalog orchestrator
type Config struct {
	Client      pokeapi.Client
	Records     records.Repository
	Resolver    evolution.Service
	Clock       clock.Clock
	IDGenerator idgen.Generator

	// BatchSize defaults to DefaultBatchSize
	BatchSize int

	// Language of descriptions, defaults to pokeapi.DefaultLanguage
	Language string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Records == nil {
		vb.RequiredField("Records")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.BatchSize < 0 {
		vb.Field("BatchSize", "must be at least 1")
	}

	return vb.Build()
}

type orchestrator struct {
	client    pokeapi.Client
	records   records.Repository
	resolver  evolution.Service
	clock     clock.Clock
	idGen     idgen.Generator
	batchSize int
	language  string

	mu     sync.RWMutex
	status LoadStatus

	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSubID   int
}

// NewOrchestrator creates a new catalog orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	language := cfg.Language
	if language == "" {
		language = pokeapi.DefaultLanguage
	}

	return &orchestrator{
		client:      cfg.Client,
		records:     cfg.Records,
		resolver:    cfg.Resolver,
		clock:       cfg.Clock,
		idGen:       cfg.IDGenerator,
		batchSize:   batchSize,
		language:    language,
		status:      LoadStatus{State: LoadStateIdle},
		subscribers: make(map[int]func(Event)),
	}, nil
}

// Subscribe adds an event observer
func (o *orchestrator) Subscribe(fn func(Event)) func() {
	o.subMu.Lock()
	defer o.subMu.Unlock()

	id := o.nextSubID
	o.nextSubID++
	o.subscribers[id] = fn

	return func() {
		o.subMu.Lock()
		defer o.subMu.Unlock()
		delete(o.subscribers, id)
	}
}

func (o *orchestrator) publish(event Event) {
	o.subMu.Lock()
	fns := make([]func(Event), 0, len(o.subscribers))
	for _, fn := range o.subscribers {
		fns = append(fns, fn)
	}
	o.subMu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}

// GetLoadStatus returns a snapshot of the load
func (o *orchestrator) GetLoadStatus(_ context.Context, _ *GetLoadStatusInput) (*GetLoadStatusOutput, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return &GetLoadStatusOutput{Status: o.status}, nil
}

// servable reports whether queries can be answered: at least one batch is
// committed, or the load finished with an empty dataset
func (o *orchestrator) servable() error {
	o.mu.RLock()
	defer o.mu.RUnlock()

	switch {
	case o.status.State == LoadStateComplete:
		return nil
	case o.status.Loaded > 0:
		return nil
	case o.status.State == LoadStateFailed:
		return errors.Unavailable("catalog load failed").
			WithMeta("last_error", o.status.LastError)
	default:
		return errors.Unavailable("catalog is still loading")
	}
}

// ListRecords filters the loaded records
func (o *orchestrator) ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.servable(); err != nil {
		return nil, err
	}

	state, err := pokedex.FilterStateFromTypes(input.SearchTerm, input.Types...)
	if err != nil {
		if errors.IsResourceExhausted(err) {
			return nil, errors.InvalidArgumentf("at most %d types can be combined", pokedex.MaxSelectedTypes)
		}
		return nil, err
	}

	return o.filter(ctx, state, input.Animated)
}

func (o *orchestrator) filter(ctx context.Context, state pokedex.FilterState, animated bool) (*ListRecordsOutput, error) {
	all, err := o.records.List(ctx, &records.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list records")
	}

	visible := filter.Apply(all.Records, state)
	entries := make([]ListEntry, 0, len(visible))
	for _, record := range visible {
		entries = append(entries, ListEntry{
			Record:       record,
			DisplayImage: record.DisplayImage(animated),
		})
	}

	return &ListRecordsOutput{
		Entries: entries,
		Filter:  state,
		Total:   len(all.Records),
	}, nil
}

// GetRecord returns one loaded record
func (o *orchestrator) GetRecord(ctx context.Context, input *GetRecordInput) (*GetRecordOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID <= 0 {
		return nil, errors.InvalidArgument("record ID must be positive")
	}
	if err := o.servable(); err != nil {
		return nil, err
	}

	out, err := o.records.GetByID(ctx, &records.GetByIDInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	return &GetRecordOutput{
		Entry: ListEntry{
			Record:       out.Record,
			DisplayImage: out.Record.DisplayImage(input.Animated),
		},
	}, nil
}

// GetEvolutionChain resolves a chain and matches each species back to a
// loaded record by exact name
func (o *orchestrator) GetEvolutionChain(ctx context.Context, input *GetEvolutionChainInput) (*GetEvolutionChainOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.RecordID <= 0 && input.ChainRef == "" {
		return nil, errors.InvalidArgument("record ID or chain ref is required")
	}
	if err := o.servable(); err != nil {
		return nil, err
	}

	chainRef := input.ChainRef
	if input.RecordID > 0 {
		out, err := o.records.GetByID(ctx, &records.GetByIDInput{ID: input.RecordID})
		if err != nil {
			return nil, err
		}
		if out.Record.EvolutionChain == nil || *out.Record.EvolutionChain == "" {
			return nil, errors.FailedPreconditionf("record %d has no evolution chain", input.RecordID)
		}
		chainRef = *out.Record.EvolutionChain
	}

	resolved, err := o.resolver.Resolve(ctx, &evolution.ResolveInput{ChainRef: chainRef})
	if err != nil {
		return nil, err
	}

	stages := make([]ChainStage, 0, len(resolved.Stages))
	for _, stage := range resolved.Stages {
		entries := make(ChainStage, 0, len(stage))
		for _, species := range stage {
			entries = append(entries, o.matchSpecies(ctx, species, input.Animated))
		}
		stages = append(stages, entries)
	}

	return &GetEvolutionChainOutput{
		ChainRef: chainRef,
		Stages:   stages,
		CacheHit: resolved.CacheHit,
	}, nil
}

func (o *orchestrator) matchSpecies(ctx context.Context, species pokedex.StageEntry, animated bool) ChainEntry {
	entry := ChainEntry{
		SpeciesName:  species.SpeciesName,
		TriggerLabel: species.TriggerLabel,
	}
	if species.SpeciesName == "" {
		return entry
	}

	out, err := o.records.GetByName(ctx, &records.GetByNameInput{Name: species.SpeciesName})
	if err != nil {
		if !errors.IsNotFound(err) {
			slog.Warn("Record lookup failed, showing placeholder",
				"species", species.SpeciesName,
				"error", err)
		}
		return entry
	}

	entry.Record = out.Record
	entry.DisplayImage = out.Record.DisplayImage(animated)
	return entry
}
