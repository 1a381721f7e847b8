package main

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/config"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/viewer"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/pokedex-api/internal/redis"
	evolutionchain "github.com/KirkDiggler/pokedex-api/internal/repositories/evolution_chain"
	"github.com/KirkDiggler/pokedex-api/internal/repositories/records"
	viewersession "github.com/KirkDiggler/pokedex-api/internal/repositories/viewer_session"
	"github.com/KirkDiggler/pokedex-api/internal/services/evolution"
)

// app holds the wired services of one server process
type app struct {
	Catalog catalog.Service
	Viewer  viewer.Service

	closers []func() error
}

// Close releases external connections
func (a *app) Close() {
	for _, c := range a.closers {
		_ = c()
	}
}

// buildApp wires repositories, the data source client and the orchestrators.
// Redis backs the chain cache and viewer sessions when configured; records
// always live in memory.
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}
	clk := clock.New()

	client, err := pokeapi.New(&pokeapi.Config{
		BaseURL:     cfg.PokeAPI.BaseURL,
		HTTPTimeout: cfg.GetPokeAPITimeout(),
		UserAgent:   cfg.PokeAPI.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pokeapi client: %w", err)
	}

	var (
		chainCache evolutionchain.Repository
		sessions   viewersession.Repository
	)
	if cfg.UseRedis() {
		rc, err := redisclient.NewClient(cfg.Redis.Addr, &redisclient.Options{
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			UseTLS:   cfg.Redis.UseTLS,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		a.closers = append(a.closers, rc.Close)

		if err := redisclient.Ping(ctx, rc); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}

		chainCache, err = evolutionchain.NewRedisRepository(&evolutionchain.Config{
			Client: rc,
			TTL:    cfg.GetChainTTL(),
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create chain cache: %w", err)
		}

		sessions, err = viewersession.NewRedisRepository(&viewersession.Config{
			Client: rc,
			Clock:  clk,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create session repository: %w", err)
		}
	} else {
		chainCache = evolutionchain.NewInMemoryRepository()
		sessions = viewersession.NewInMemoryRepository(clk)
	}

	resolver, err := evolution.NewResolver(&evolution.Config{
		Client: client,
		Cache:  chainCache,
		Labels: evolution.LabelsFor(cfg.PokeAPI.Language),
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create evolution resolver: %w", err)
	}

	a.Catalog, err = catalog.NewOrchestrator(&catalog.Config{
		Client:      client,
		Records:     records.NewInMemory(),
		Resolver:    resolver,
		Clock:       clk,
		IDGenerator: idgen.NewUUID("load"),
		BatchSize:   cfg.Loader.BatchSize,
		Language:    cfg.PokeAPI.Language,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create catalog orchestrator: %w", err)
	}

	a.Viewer, err = viewer.NewOrchestrator(&viewer.Config{
		Catalog:     a.Catalog,
		Sessions:    sessions,
		IDGenerator: idgen.NewULID(clk),
		SessionTTL:  cfg.GetSessionTTL(),
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create viewer orchestrator: %w", err)
	}

	return a, nil
}
