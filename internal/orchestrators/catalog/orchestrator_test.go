package catalog_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	pokeapimock "github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi/mock"
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
	mockclock "github.com/KirkDiggler/pokedex-api/internal/pkg/clock/mock"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
	"github.com/KirkDiggler/pokedex-api/internal/repositories/records"
	"github.com/KirkDiggler/pokedex-api/internal/services/evolution"
	evolutionmock "github.com/KirkDiggler/pokedex-api/internal/services/evolution/mock"
	"github.com/KirkDiggler/pokedex-api/internal/testutils"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type member struct {
	id       int
	name     string
	types    []string
	chainRef string
}

func pokemonURL(id int) string {
	return fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", id)
}

func speciesURL(id int) string {
	return fmt.Sprintf("https://pokeapi.co/api/v2/pokemon-species/%d/", id)
}

func strPtr(s string) *string {
	return &s
}

func (m member) pokemon() *pokeapi.Pokemon {
	p := &pokeapi.Pokemon{
		ID:   m.id,
		Name: m.name,
		Sprites: &pokeapi.Sprites{
			FrontDefault: strPtr(fmt.Sprintf("https://img.example/%d.png", m.id)),
			Versions: map[string]map[string]*pokeapi.VersionSprites{
				"generation-v": {
					"black-white": {
						Animated: &pokeapi.SpriteSet{FrontDefault: strPtr(fmt.Sprintf("https://img.example/%d.gif", m.id))},
					},
				},
			},
		},
		Species: &pokeapi.NamedResource{Name: m.name, URL: speciesURL(m.id)},
	}
	for i, t := range m.types {
		p.Types = append(p.Types, pokeapi.PokemonType{Slot: i + 1, Type: &pokeapi.NamedResource{Name: t}})
	}
	return p
}

func (m member) species() *pokeapi.Species {
	s := &pokeapi.Species{
		ID:   m.id,
		Name: m.name,
		FlavorTextEntries: []pokeapi.FlavorText{
			{FlavorText: "A strange seed\fwas planted.", Language: &pokeapi.NamedResource{Name: "en"}},
		},
	}
	if m.chainRef != "" {
		s.EvolutionChain = &pokeapi.APIResource{URL: m.chainRef}
	}
	return s
}

var starters = []member{
	{id: 1, name: "bulbasaur", types: []string{pokedex.TypeGrass, pokedex.TypePoison}, chainRef: testutils.BulbasaurChainRef},
	{id: 2, name: "ivysaur", types: []string{pokedex.TypeGrass, pokedex.TypePoison}, chainRef: testutils.BulbasaurChainRef},
	{id: 4, name: "charmander", types: []string{pokedex.TypeFire}},
	{id: 6, name: "charizard", types: []string{pokedex.TypeFire, pokedex.TypeFlying}},
	{id: 7, name: "squirtle", types: []string{pokedex.TypeWater}},
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockClient   *pokeapimock.MockClient
	mockResolver *evolutionmock.MockService
	mockClock    *mockclock.MockClock
	store        *records.InMemoryRepository
	orchestrator catalog.Service
	ctx          context.Context
	now          time.Time
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClient = pokeapimock.NewMockClient(s.ctrl)
	s.mockResolver = evolutionmock.NewMockService(s.ctrl)
	s.mockClock = mockclock.NewMockClock(s.ctrl)
	s.store = records.NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().Return(s.now).AnyTimes()

	s.orchestrator = s.newOrchestrator(2)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) newOrchestrator(batchSize int) catalog.Service {
	orchestrator, err := catalog.NewOrchestrator(&catalog.Config{
		Client:      s.mockClient,
		Records:     s.store,
		Resolver:    s.mockResolver,
		Clock:       s.mockClock,
		IDGenerator: idgen.NewSequential("load"),
		BatchSize:   batchSize,
		Language:    "en",
	})
	s.Require().NoError(err)
	return orchestrator
}

func (s *OrchestratorTestSuite) indexPage(total int, members []member) *pokeapi.IndexPage {
	page := &pokeapi.IndexPage{Count: total}
	for _, m := range members {
		page.Results = append(page.Results, pokeapi.NamedResource{Name: m.name, URL: pokemonURL(m.id)})
	}
	return page
}

// expectLoad sets up a successful load of members with the given batch size
func (s *OrchestratorTestSuite) expectLoad(members []member, batchSize int) {
	s.mockClient.EXPECT().GetIndexPage(gomock.Any(), 0, 1).Return(s.indexPage(len(members), members[:min(1, len(members))]), nil)
	for offset := 0; offset < len(members); offset += batchSize {
		end := min(offset+batchSize, len(members))
		s.mockClient.EXPECT().GetIndexPage(gomock.Any(), offset, batchSize).Return(s.indexPage(len(members), members[offset:end]), nil)
	}
	for _, m := range members {
		s.expectMember(m)
	}
}

func (s *OrchestratorTestSuite) expectMember(m member) {
	s.mockClient.EXPECT().GetPokemon(gomock.Any(), pokemonURL(m.id)).Return(m.pokemon(), nil)
	s.mockClient.EXPECT().GetSpecies(gomock.Any(), speciesURL(m.id)).Return(m.species(), nil)
}

func (s *OrchestratorTestSuite) load() {
	s.expectLoad(starters, 2)
	_, err := s.orchestrator.Load(s.ctx, &catalog.LoadInput{})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestLoadCommitsEveryBatchInOrder() {
	s.expectLoad(starters, 2)

	var events []catalog.Event
	unsubscribe := s.orchestrator.Subscribe(func(e catalog.Event) {
		events = append(events, e)
	})
	defer unsubscribe()

	out, err := s.orchestrator.Load(s.ctx, &catalog.LoadInput{})
	s.Require().NoError(err)
	s.Equal("load_1", out.RunID)
	s.Equal(5, out.Loaded)
	s.Equal(5, out.Total)

	list, err := s.store.List(s.ctx, &records.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(list.Records, 5)
	for i, m := range starters {
		s.Equal(m.id, list.Records[i].ID)
	}

	var types []catalog.EventType
	for _, e := range events {
		types = append(types, e.Type)
	}
	s.Equal([]catalog.EventType{
		catalog.EventBatchLoaded,
		catalog.EventReady,
		catalog.EventBatchLoaded,
		catalog.EventBatchLoaded,
		catalog.EventLoadCompleted,
	}, types)
	s.Equal(2, events[0].Loaded)
	s.Equal(2, events[1].Loaded)
	s.Equal(4, events[2].Loaded)

	status, err := s.orchestrator.GetLoadStatus(s.ctx, &catalog.GetLoadStatusInput{})
	s.Require().NoError(err)
	s.Equal(catalog.LoadStateComplete, status.Status.State)
	s.Equal(5, status.Status.Loaded)
	s.Equal(3, status.Status.Batches)
	s.Empty(status.Status.LastError)
	s.True(s.now.Equal(status.Status.StartedAt))
	s.True(s.now.Equal(status.Status.FinishedAt))
}

func (s *OrchestratorTestSuite) TestLoadNormalizesRecords() {
	s.load()

	out, err := s.orchestrator.GetRecord(s.ctx, &catalog.GetRecordInput{ID: 1})
	s.Require().NoError(err)

	record := out.Entry.Record
	s.Equal("bulbasaur", record.Name)
	s.Equal([]string{pokedex.TypeGrass, pokedex.TypePoison}, record.Types)
	s.Equal("A strange seed was planted.", record.Description)
	s.Require().NotNil(record.EvolutionChain)
	s.Equal(testutils.BulbasaurChainRef, *record.EvolutionChain)
	s.Equal("https://img.example/1.png", out.Entry.DisplayImage)
}

func (s *OrchestratorTestSuite) TestLoadAbortsOnMemberFailure() {
	members := starters[:5]

	s.mockClient.EXPECT().GetIndexPage(gomock.Any(), 0, 1).Return(s.indexPage(5, members[:1]), nil)
	s.mockClient.EXPECT().GetIndexPage(gomock.Any(), 0, 2).Return(s.indexPage(5, members[0:2]), nil)
	s.expectMember(members[0])
	s.expectMember(members[1])

	// second batch: one member fails, its sibling may or may not run
	s.mockClient.EXPECT().GetIndexPage(gomock.Any(), 2, 2).Return(s.indexPage(5, members[2:4]), nil)
	s.mockClient.EXPECT().GetPokemon(gomock.Any(), pokemonURL(members[2].id)).
		Return(nil, errors.Unavailablef("status 503").WithMeta("url", pokemonURL(members[2].id)))
	s.mockClient.EXPECT().GetPokemon(gomock.Any(), pokemonURL(members[3].id)).Return(members[3].pokemon(), nil).AnyTimes()
	s.mockClient.EXPECT().GetSpecies(gomock.Any(), speciesURL(members[3].id)).Return(members[3].species(), nil).AnyTimes()

	var failed []catalog.Event
	s.orchestrator.Subscribe(func(e catalog.Event) {
		if e.Type == catalog.EventLoadFailed {
			failed = append(failed, e)
		}
	})

	out, err := s.orchestrator.Load(s.ctx, &catalog.LoadInput{})
	s.Require().Error(err)
	s.Nil(out)
	s.True(errors.IsUnavailable(err))
	s.Equal(1, errors.GetMeta(err)["batch"])

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count, "only the first batch is committed")

	s.Require().Len(failed, 1)
	s.Equal(2, failed[0].Loaded)

	status, err := s.orchestrator.GetLoadStatus(s.ctx, &catalog.GetLoadStatusInput{})
	s.Require().NoError(err)
	s.Equal(catalog.LoadStateFailed, status.Status.State)
	s.NotEmpty(status.Status.LastError)

	// committed records stay queryable
	list, err := s.orchestrator.ListRecords(s.ctx, &catalog.ListRecordsInput{})
	s.Require().NoError(err)
	s.Len(list.Entries, 2)
}

func (s *OrchestratorTestSuite) TestLoadFailsOnCountRequest() {
	s.mockClient.EXPECT().GetIndexPage(gomock.Any(), 0, 1).Return(nil, errors.Unavailable("connection refused"))

	_, err := s.orchestrator.Load(s.ctx, &catalog.LoadInput{})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))

	_, err = s.orchestrator.ListRecords(s.ctx, &catalog.ListRecordsInput{})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
	s.Contains(errors.GetMeta(err)["last_error"], "connection refused")
}

func (s *OrchestratorTestSuite) TestMissingSpeciesLinkIsNotAFault() {
	m := member{id: 132, name: "ditto", types: []string{pokedex.TypeNormal}}
	pokemon := m.pokemon()
	pokemon.Species = nil

	s.mockClient.EXPECT().GetIndexPage(gomock.Any(), 0, 1).Return(s.indexPage(1, []member{m}), nil)
	s.mockClient.EXPECT().GetIndexPage(gomock.Any(), 0, 2).Return(s.indexPage(1, []member{m}), nil)
	s.mockClient.EXPECT().GetPokemon(gomock.Any(), pokemonURL(m.id)).Return(pokemon, nil)

	_, err := s.orchestrator.Load(s.ctx, &catalog.LoadInput{})
	s.Require().NoError(err)

	out, err := s.orchestrator.GetRecord(s.ctx, &catalog.GetRecordInput{ID: 132})
	s.Require().NoError(err)
	s.Empty(out.Entry.Record.Description)
	s.Nil(out.Entry.Record.EvolutionChain)
}

func (s *OrchestratorTestSuite) TestEmptyDatasetCompletes() {
	s.mockClient.EXPECT().GetIndexPage(gomock.Any(), 0, 1).Return(&pokeapi.IndexPage{Count: 0}, nil)

	out, err := s.orchestrator.Load(s.ctx, &catalog.LoadInput{})
	s.Require().NoError(err)
	s.Zero(out.Loaded)

	list, err := s.orchestrator.ListRecords(s.ctx, &catalog.ListRecordsInput{})
	s.Require().NoError(err)
	s.Empty(list.Entries)
}

func (s *OrchestratorTestSuite) TestLoadWhileRunningIsRejected() {
	s.expectLoad(starters, 2)

	var nestedErr error
	s.orchestrator.Subscribe(func(e catalog.Event) {
		if e.Type == catalog.EventReady {
			_, nestedErr = s.orchestrator.Load(s.ctx, &catalog.LoadInput{})
		}
	})

	_, err := s.orchestrator.Load(s.ctx, &catalog.LoadInput{})
	s.Require().NoError(err)
	s.Require().Error(nestedErr)
	s.True(errors.IsFailedPrecondition(nestedErr))
}

func (s *OrchestratorTestSuite) TestReloadReplacesRecords() {
	s.load()
	s.load()

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(len(starters), count)

	status, err := s.orchestrator.GetLoadStatus(s.ctx, &catalog.GetLoadStatusInput{})
	s.Require().NoError(err)
	s.Equal("load_2", status.Status.RunID)
}

func (s *OrchestratorTestSuite) TestUnsubscribe() {
	calls := 0
	unsubscribe := s.orchestrator.Subscribe(func(catalog.Event) { calls++ })
	unsubscribe()

	s.load()
	s.Zero(calls)
}

func (s *OrchestratorTestSuite) TestConcurrentMembersWithinBatch() {
	// all members of one batch are in flight together
	orchestrator := s.newOrchestrator(len(starters))

	s.mockClient.EXPECT().GetIndexPage(gomock.Any(), 0, 1).Return(s.indexPage(5, starters[:1]), nil)
	s.mockClient.EXPECT().GetIndexPage(gomock.Any(), 0, 5).Return(s.indexPage(5, starters), nil)

	var started sync.WaitGroup
	started.Add(len(starters))
	for _, m := range starters {
		m := m
		s.mockClient.EXPECT().GetPokemon(gomock.Any(), pokemonURL(m.id)).
			DoAndReturn(func(context.Context, string) (*pokeapi.Pokemon, error) {
				started.Done()
				started.Wait()
				return m.pokemon(), nil
			})
		s.mockClient.EXPECT().GetSpecies(gomock.Any(), speciesURL(m.id)).Return(m.species(), nil)
	}

	out, err := orchestrator.Load(s.ctx, &catalog.LoadInput{})
	s.Require().NoError(err)
	s.Equal(5, out.Loaded)
}

func (s *OrchestratorTestSuite) TestQueriesUnavailableBeforeLoad() {
	_, err := s.orchestrator.ListRecords(s.ctx, &catalog.ListRecordsInput{})
	s.True(errors.IsUnavailable(err))

	_, err = s.orchestrator.GetRecord(s.ctx, &catalog.GetRecordInput{ID: 1})
	s.True(errors.IsUnavailable(err))

	_, err = s.orchestrator.GetEvolutionChain(s.ctx, &catalog.GetEvolutionChainInput{RecordID: 1})
	s.True(errors.IsUnavailable(err))

	status, err := s.orchestrator.GetLoadStatus(s.ctx, &catalog.GetLoadStatusInput{})
	s.Require().NoError(err)
	s.Equal(catalog.LoadStateIdle, status.Status.State)
}

func (s *OrchestratorTestSuite) TestListRecords() {
	s.load()

	testCases := []struct {
		name  string
		input *catalog.ListRecordsInput
		want  []string
	}{
		{
			name:  "no filter",
			input: &catalog.ListRecordsInput{},
			want:  []string{"bulbasaur", "ivysaur", "charmander", "charizard", "squirtle"},
		},
		{
			name:  "search by name is case-insensitive",
			input: &catalog.ListRecordsInput{SearchTerm: "CHAR"},
			want:  []string{"charmander", "charizard"},
		},
		{
			name:  "search by id",
			input: &catalog.ListRecordsInput{SearchTerm: "7"},
			want:  []string{"squirtle"},
		},
		{
			name:  "single type",
			input: &catalog.ListRecordsInput{Types: []string{pokedex.TypeFire}},
			want:  []string{"charmander", "charizard"},
		},
		{
			name:  "two types are a conjunction",
			input: &catalog.ListRecordsInput{Types: []string{pokedex.TypeFire, pokedex.TypeFlying}},
			want:  []string{"charizard"},
		},
		{
			name:  "all sentinel",
			input: &catalog.ListRecordsInput{Types: []string{pokedex.TypeAll}},
			want:  []string{"bulbasaur", "ivysaur", "charmander", "charizard", "squirtle"},
		},
		{
			name:  "search and type combine",
			input: &catalog.ListRecordsInput{SearchTerm: "saur", Types: []string{pokedex.TypePoison}},
			want:  []string{"bulbasaur", "ivysaur"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.orchestrator.ListRecords(s.ctx, tc.input)
			s.Require().NoError(err)

			var names []string
			for _, entry := range out.Entries {
				names = append(names, entry.Record.Name)
			}
			s.Equal(tc.want, names)
			s.Equal(5, out.Total)
		})
	}
}

func (s *OrchestratorTestSuite) TestListRecordsDisplayImages() {
	s.load()

	out, err := s.orchestrator.ListRecords(s.ctx, &catalog.ListRecordsInput{SearchTerm: "squirtle", Animated: true})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 1)
	s.Equal("https://img.example/7.gif", out.Entries[0].DisplayImage)
}

func (s *OrchestratorTestSuite) TestListRecordsRejectsBadTypes() {
	s.load()

	_, err := s.orchestrator.ListRecords(s.ctx, &catalog.ListRecordsInput{
		Types: []string{pokedex.TypeFire, pokedex.TypeWater, pokedex.TypeGrass},
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.ListRecords(s.ctx, &catalog.ListRecordsInput{Types: []string{"shadow"}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetRecordNotFound() {
	s.load()

	_, err := s.orchestrator.GetRecord(s.ctx, &catalog.GetRecordInput{ID: 999})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.GetRecord(s.ctx, &catalog.GetRecordInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetEvolutionChainMatchesLoadedRecords() {
	s.load()

	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), &evolution.ResolveInput{ChainRef: testutils.BulbasaurChainRef}).
		Return(&evolution.ResolveOutput{
			Stages: []pokedex.EvolutionStage{
				{{SpeciesName: "bulbasaur"}},
				{{SpeciesName: "ivysaur", TriggerLabel: "Level 16"}},
				{{SpeciesName: "venusaur", TriggerLabel: "Level 32"}},
			},
		}, nil)

	out, err := s.orchestrator.GetEvolutionChain(s.ctx, &catalog.GetEvolutionChainInput{RecordID: 2, Animated: true})
	s.Require().NoError(err)
	s.Equal(testutils.BulbasaurChainRef, out.ChainRef)
	s.Require().Len(out.Stages, 3)

	s.Require().NotNil(out.Stages[0][0].Record)
	s.Equal(1, out.Stages[0][0].Record.ID)
	s.Equal("https://img.example/1.gif", out.Stages[0][0].DisplayImage)
	s.Equal("Level 16", out.Stages[1][0].TriggerLabel)

	// venusaur is not loaded: placeholder, not an error
	s.Equal("venusaur", out.Stages[2][0].SpeciesName)
	s.Nil(out.Stages[2][0].Record)
	s.Empty(out.Stages[2][0].DisplayImage)
	s.Equal("Level 32", out.Stages[2][0].TriggerLabel)
}

func (s *OrchestratorTestSuite) TestGetEvolutionChainByRef() {
	s.load()

	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), &evolution.ResolveInput{ChainRef: testutils.TaurosChainRef}).
		Return(&evolution.ResolveOutput{
			Stages:   []pokedex.EvolutionStage{{{SpeciesName: "tauros"}}},
			CacheHit: true,
		}, nil)

	out, err := s.orchestrator.GetEvolutionChain(s.ctx, &catalog.GetEvolutionChainInput{ChainRef: testutils.TaurosChainRef})
	s.Require().NoError(err)
	s.True(out.CacheHit)
	s.Require().Len(out.Stages, 1)
	s.Nil(out.Stages[0][0].Record)
}

func (s *OrchestratorTestSuite) TestGetEvolutionChainWithoutChain() {
	s.load()

	_, err := s.orchestrator.GetEvolutionChain(s.ctx, &catalog.GetEvolutionChainInput{RecordID: 4})
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.orchestrator.GetEvolutionChain(s.ctx, &catalog.GetEvolutionChainInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetEvolutionChainFetchFailure() {
	s.load()

	fetchErr := errors.Unavailable("chain fetch failed").WithMeta(errors.MetaChainRef, testutils.BulbasaurChainRef)
	s.mockResolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, fetchErr)

	_, err := s.orchestrator.GetEvolutionChain(s.ctx, &catalog.GetEvolutionChainInput{RecordID: 1})
	s.True(errors.IsChainFetchFailure(err))

	// the rest of the catalog is unaffected
	list, err := s.orchestrator.ListRecords(s.ctx, &catalog.ListRecordsInput{})
	s.Require().NoError(err)
	s.Len(list.Entries, 5)
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := catalog.NewOrchestrator(&catalog.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = catalog.NewOrchestrator(&catalog.Config{
		Client:      s.mockClient,
		Records:     s.store,
		Resolver:    s.mockResolver,
		Clock:       s.mockClock,
		IDGenerator: idgen.NewSequential("load"),
		BatchSize:   -1,
	})
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
