package evolution

//go:generate mockgen -destination=mock/mock_service.go -package=evolutionmock github.com/KirkDiggler/pokedex-api/internal/services/evolution Service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	evolutionchain "github.com/KirkDiggler/pokedex-api/internal/repositories/evolution_chain"
)

// ResolveInput names the chain to resolve
type ResolveInput struct {
	ChainRef string
}

// ResolveOutput holds the parsed stages of a chain
type ResolveOutput struct {
	Stages []pokedex.EvolutionStage

	// CacheHit is true when no fetch was needed
	CacheHit bool
}

// Service resolves chain locators into stages
type Service interface {
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)
}

// Config holds the dependencies for the resolver
type Config struct {
	Client pokeapi.Client
	Cache  evolutionchain.Repository

	// Labels used for trigger labels; LabelsEN when left empty
	Labels Labels
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Cache == nil {
		vb.RequiredField("Cache")
	}

	return vb.Build()
}

type resolver struct {
	client pokeapi.Client
	cache  evolutionchain.Repository
	labels Labels
	group  singleflight.Group
}

// NewResolver creates a read-through chain resolver
func NewResolver(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	labels := cfg.Labels
	if labels == (Labels{}) {
		labels = LabelsEN
	}

	return &resolver{
		client: cfg.Client,
		cache:  cfg.Cache,
		labels: labels,
	}, nil
}

// Resolve returns the stages of a chain, fetching the payload only when the
// cache has no entry for the exact locator. Concurrent misses for the same
// locator share one fetch.
func (r *resolver) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil || input.ChainRef == "" {
		return nil, errors.InvalidArgument("chain ref is required")
	}
	chainRef := input.ChainRef

	cached, err := r.cache.Get(ctx, evolutionchain.GetInput{ChainRef: chainRef})
	switch {
	case err == nil:
		stages, err := ParseChain(cached.Payload, r.labels)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse cached chain %s", chainRef)
		}
		return &ResolveOutput{Stages: stages, CacheHit: true}, nil
	case !errors.IsNotFound(err):
		slog.Warn("Evolution chain cache read failed, fetching",
			"chain_ref", chainRef,
			"error", err)
	}

	v, err, shared := r.group.Do(chainRef, func() (interface{}, error) {
		return r.fetch(ctx, chainRef)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("Evolution chain fetch shared", "chain_ref", chainRef)
	}

	stages, err := ParseChain(v.([]byte), r.labels)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse chain %s", chainRef)
	}

	return &ResolveOutput{Stages: stages}, nil
}

func (r *resolver) fetch(ctx context.Context, chainRef string) ([]byte, error) {
	slog.Info("Fetching evolution chain", "chain_ref", chainRef)

	payload, err := r.client.GetEvolutionChain(ctx, chainRef)
	if err != nil {
		slog.Error("Failed to fetch evolution chain",
			"chain_ref", chainRef,
			"error", err)
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to fetch evolution chain %s", chainRef).
			WithMeta(errors.MetaChainRef, chainRef)
	}

	if _, err := r.cache.Put(ctx, evolutionchain.PutInput{ChainRef: chainRef, Payload: payload}); err != nil {
		slog.Warn("Failed to cache evolution chain",
			"chain_ref", chainRef,
			"error", err)
	}

	return payload, nil
}
