package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/repositories/records"
)

// Load runs one full load. Batches are strictly sequential; members of a
// batch are resolved concurrently and committed together.
func (o *orchestrator) Load(ctx context.Context, _ *LoadInput) (*LoadOutput, error) {
	runID, err := o.beginLoad()
	if err != nil {
		return nil, err
	}

	logger := slog.With("run_id", runID)
	logger.Info("Catalog load started", "batch_size", o.batchSize)

	if err := o.records.Reset(ctx); err != nil {
		return nil, o.failLoad(logger, runID, errors.Wrap(err, "failed to reset record store"))
	}

	countPage, err := o.client.GetIndexPage(ctx, 0, 1)
	if err != nil {
		return nil, o.failLoad(logger, runID, errors.Wrap(err, "failed to fetch record count"))
	}
	total := countPage.Count
	o.updateStatus(func(s *LoadStatus) {
		s.Total = total
	})

	batches := (total + o.batchSize - 1) / o.batchSize
	loaded := 0
	for i := 0; i < batches; i++ {
		batch, err := o.loadBatch(ctx, i)
		if err != nil {
			return nil, o.failLoad(logger, runID, errors.Wrapf(err, "batch %d failed", i).WithMeta("batch", i))
		}

		appended, err := o.records.Append(ctx, &records.AppendInput{Records: batch})
		if err != nil {
			return nil, o.failLoad(logger, runID, errors.Wrapf(err, "failed to commit batch %d", i))
		}
		loaded = appended.Count

		first := i == 0
		o.updateStatus(func(s *LoadStatus) {
			s.Loaded = loaded
			s.Batches = i + 1
			if first {
				s.State = LoadStateReady
			}
		})

		logger.Debug("Batch committed",
			"batch", i,
			"loaded", loaded,
			"total", total)

		o.publish(Event{Type: EventBatchLoaded, RunID: runID, BatchIndex: i, Loaded: loaded, Total: total})
		if first {
			o.publish(Event{Type: EventReady, RunID: runID, BatchIndex: i, Loaded: loaded, Total: total})
		}
	}

	o.updateStatus(func(s *LoadStatus) {
		s.State = LoadStateComplete
		s.FinishedAt = o.clock.Now()
	})
	logger.Info("Catalog load completed", "loaded", loaded, "total", total)
	o.publish(Event{Type: EventLoadCompleted, RunID: runID, Loaded: loaded, Total: total})

	return &LoadOutput{
		RunID:  runID,
		Loaded: loaded,
		Total:  total,
	}, nil
}

// beginLoad moves the status to loading and returns the new run ID
func (o *orchestrator) beginLoad() (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status.State == LoadStateLoading || o.status.State == LoadStateReady {
		return "", errors.FailedPreconditionf("load %s is already running", o.status.RunID)
	}

	runID := o.idGen.Generate()
	o.status = LoadStatus{
		RunID:     runID,
		State:     LoadStateLoading,
		StartedAt: o.clock.Now(),
	}

	return runID, nil
}

// failLoad records the failure, notifies subscribers and returns err
func (o *orchestrator) failLoad(logger *slog.Logger, runID string, err error) error {
	var loaded, total int
	o.updateStatus(func(s *LoadStatus) {
		s.State = LoadStateFailed
		s.LastError = err.Error()
		s.FinishedAt = o.clock.Now()
		loaded, total = s.Loaded, s.Total
	})

	logger.Error("Catalog load failed",
		"loaded", loaded,
		"total", total,
		"error", err)
	o.publish(Event{Type: EventLoadFailed, RunID: runID, Loaded: loaded, Total: total, Err: err})

	return err
}

func (o *orchestrator) updateStatus(fn func(s *LoadStatus)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(&o.status)
}

// loadBatch fetches one index page and resolves its members. Either every
// member resolves or the batch fails as a whole.
func (o *orchestrator) loadBatch(ctx context.Context, index int) ([]*pokedex.CatalogRecord, error) {
	page, err := o.client.GetIndexPage(ctx, index*o.batchSize, o.batchSize)
	if err != nil {
		return nil, err
	}

	batch := make([]*pokedex.CatalogRecord, len(page.Results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.batchSize)
	for i, member := range page.Results {
		i, member := i, member
		g.Go(func() error {
			record, err := o.resolveMember(gctx, member)
			if err != nil {
				return err
			}
			batch[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return batch, nil
}

// resolveMember joins the primary entity with its species and normalizes
// the pair. A missing species link is not an error.
func (o *orchestrator) resolveMember(ctx context.Context, member pokeapi.NamedResource) (*pokedex.CatalogRecord, error) {
	pokemon, err := o.client.GetPokemon(ctx, member.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", member.Name).WithMeta("member", member.Name)
	}
	if pokemon == nil {
		return nil, errors.Unavailablef("empty response for %s", member.Name).WithMeta("member", member.Name)
	}

	var species *pokeapi.Species
	if pokemon.Species != nil && pokemon.Species.URL != "" {
		species, err = o.client.GetSpecies(ctx, pokemon.Species.URL)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch species of %s", member.Name).WithMeta("member", member.Name)
		}
	}

	return pokeapi.ConvertToRecord(pokemon, species, o.language), nil
}
