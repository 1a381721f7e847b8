package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/catalog/v1alpha1"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
	catalogmock "github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog/mock"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/viewer"
	viewermock "github.com/KirkDiggler/pokedex-api/internal/orchestrators/viewer/mock"
	"github.com/KirkDiggler/pokedex-api/internal/services/filter"
	"github.com/KirkDiggler/pokedex-api/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockCatalog *catalogmock.MockService
	mockViewer  *viewermock.MockService
	handler     *v1alpha1.Handler
	ctx         context.Context
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCatalog = catalogmock.NewMockService(s.ctrl)
	s.mockViewer = viewermock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		Catalog: s.mockCatalog,
		Viewer:  s.mockViewer,
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(m map[string]interface{}) *structpb.Struct {
	req, err := structpb.NewStruct(m)
	s.Require().NoError(err)
	return req
}

func (s *HandlerTestSuite) sessionView(id string) *viewer.SessionView {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := testutils.CreateTestRecord(1, "bulbasaur", pokedex.TypeGrass, pokedex.TypePoison)
	return &viewer.SessionView{
		Session: &pokedex.ViewerSession{
			ID:        id,
			Filter:    pokedex.NewFilterState(),
			CreatedAt: created,
			UpdatedAt: created,
			ExpiresAt: created.Add(time.Hour),
		},
		Entries: []catalog.ListEntry{{Record: record, DisplayImage: record.StaticImage}},
		Total:   1,
	}
}

func (s *HandlerTestSuite) TestNewHandlerRequiresDependencies() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{Catalog: s.mockCatalog})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Viewer")

	_, err = v1alpha1.NewHandler(nil)
	s.Require().Error(err)
}

func (s *HandlerTestSuite) TestGetLoadStatus() {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.mockCatalog.EXPECT().
		GetLoadStatus(s.ctx, &catalog.GetLoadStatusInput{}).
		Return(&catalog.GetLoadStatusOutput{Status: catalog.LoadStatus{
			RunID:     "load_1",
			State:     catalog.LoadStateReady,
			Loaded:    50,
			Total:     151,
			Batches:   1,
			StartedAt: started,
		}}, nil)

	resp, err := s.handler.GetLoadStatus(s.ctx, &structpb.Struct{})
	s.Require().NoError(err)

	got := resp.AsMap()
	s.Equal("load_1", got["run_id"])
	s.Equal("ready", got["state"])
	s.Equal(float64(50), got["loaded"])
	s.Equal(float64(151), got["total"])
	s.Equal("2026-03-01T12:00:00Z", got["started_at"])
	s.Nil(got["finished_at"])
}

func (s *HandlerTestSuite) TestListRecords() {
	record := testutils.CreateTestRecordWithChain(1, "bulbasaur", testutils.BulbasaurChainRef,
		pokedex.TypeGrass, pokedex.TypePoison)
	filterState, err := pokedex.FilterStateFromTypes("bulb", pokedex.TypeGrass)
	s.Require().NoError(err)

	s.mockCatalog.EXPECT().
		ListRecords(s.ctx, &catalog.ListRecordsInput{
			SearchTerm: "bulb",
			Types:      []string{"grass"},
			Animated:   true,
		}).
		Return(&catalog.ListRecordsOutput{
			Entries: []catalog.ListEntry{{Record: record, DisplayImage: *record.AnimatedImage}},
			Filter:  filterState,
			Total:   3,
		}, nil)

	resp, err := s.handler.ListRecords(s.ctx, s.request(map[string]interface{}{
		"search_term": "bulb",
		"types":       []interface{}{"grass"},
		"animated":    true,
	}))
	s.Require().NoError(err)

	got := resp.AsMap()
	s.Equal(float64(1), got["count"])
	s.Equal(float64(3), got["total"])

	records := got["records"].([]interface{})
	s.Require().Len(records, 1)
	first := records[0].(map[string]interface{})
	s.Equal("bulbasaur", first["name"])
	s.Equal("https://img.example/animated/1.gif", first["display_image"])
	s.Equal(testutils.BulbasaurChainRef, first["evolution_chain"])
	s.Equal([]interface{}{"grass", "poison"}, first["types"])

	filterOut := got["filter"].(map[string]interface{})
	s.Equal("bulb", filterOut["search_term"])
	s.Equal([]interface{}{"grass"}, filterOut["selected_types"])
}

func (s *HandlerTestSuite) TestListRecordsRejectsMalformedTypes() {
	testCases := []struct {
		name  string
		types interface{}
	}{
		{name: "not a list", types: "grass"},
		{name: "list of numbers", types: []interface{}{1.0}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.ListRecords(s.ctx, s.request(map[string]interface{}{"types": tc.types}))
			s.Require().Error(err)
			s.Equal(codes.InvalidArgument, status.Code(err))
		})
	}
}

func (s *HandlerTestSuite) TestListRecordsPassesServiceErrors() {
	s.mockCatalog.EXPECT().
		ListRecords(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("catalog is still loading"))

	_, err := s.handler.ListRecords(s.ctx, &structpb.Struct{})
	s.Require().Error(err)
	s.Equal(codes.Unavailable, status.Code(err))
}

func (s *HandlerTestSuite) TestGetRecord() {
	record := testutils.CreateTestRecord(4, "charmander", pokedex.TypeFire)
	s.mockCatalog.EXPECT().
		GetRecord(s.ctx, &catalog.GetRecordInput{ID: 4}).
		Return(&catalog.GetRecordOutput{Entry: catalog.ListEntry{Record: record, DisplayImage: record.StaticImage}}, nil)

	resp, err := s.handler.GetRecord(s.ctx, s.request(map[string]interface{}{"id": 4}))
	s.Require().NoError(err)

	got := resp.AsMap()["record"].(map[string]interface{})
	s.Equal(float64(4), got["id"])
	s.Equal("charmander", got["name"])
	_, hasAnimated := got["animated_image"]
	s.False(hasAnimated)
}

func (s *HandlerTestSuite) TestGetRecordValidation() {
	testCases := []struct {
		name string
		req  map[string]interface{}
	}{
		{name: "missing id", req: map[string]interface{}{}},
		{name: "zero id", req: map[string]interface{}{"id": 0}},
		{name: "fractional id", req: map[string]interface{}{"id": 1.5}},
		{name: "string id", req: map[string]interface{}{"id": "1"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.GetRecord(s.ctx, s.request(tc.req))
			s.Require().Error(err)
			s.Equal(codes.InvalidArgument, status.Code(err))
		})
	}
}

func (s *HandlerTestSuite) TestGetRecordNotFound() {
	s.mockCatalog.EXPECT().
		GetRecord(s.ctx, &catalog.GetRecordInput{ID: 999}).
		Return(nil, errors.NotFound("record 999 not found"))

	_, err := s.handler.GetRecord(s.ctx, s.request(map[string]interface{}{"id": 999}))
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *HandlerTestSuite) TestGetEvolutionChain() {
	bulbasaur := testutils.CreateTestRecord(1, "bulbasaur", pokedex.TypeGrass)
	s.mockCatalog.EXPECT().
		GetEvolutionChain(s.ctx, &catalog.GetEvolutionChainInput{RecordID: 1}).
		Return(&catalog.GetEvolutionChainOutput{
			ChainRef: testutils.BulbasaurChainRef,
			CacheHit: true,
			Stages: []catalog.ChainStage{
				{{SpeciesName: "bulbasaur", Record: bulbasaur, DisplayImage: bulbasaur.StaticImage}},
				{{SpeciesName: "ivysaur", TriggerLabel: "Level 16"}},
			},
		}, nil)

	resp, err := s.handler.GetEvolutionChain(s.ctx, s.request(map[string]interface{}{"record_id": 1}))
	s.Require().NoError(err)

	got := resp.AsMap()
	s.Equal(testutils.BulbasaurChainRef, got["chain_ref"])
	s.Equal(true, got["cache_hit"])

	stages := got["stages"].([]interface{})
	s.Require().Len(stages, 2)

	root := stages[0].(map[string]interface{})["entries"].([]interface{})[0].(map[string]interface{})
	s.Equal("bulbasaur", root["species_name"])
	s.Equal("", root["trigger_label"])
	s.Equal(false, root["placeholder"])
	s.NotNil(root["record"])

	next := stages[1].(map[string]interface{})["entries"].([]interface{})[0].(map[string]interface{})
	s.Equal("Level 16", next["trigger_label"])
	s.Equal(true, next["placeholder"])
	_, hasRecord := next["record"]
	s.False(hasRecord)
}

func (s *HandlerTestSuite) TestGetEvolutionChainRequiresSelector() {
	_, err := s.handler.GetEvolutionChain(s.ctx, &structpb.Struct{})
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestGetEvolutionChainFetchFailure() {
	s.mockCatalog.EXPECT().
		GetEvolutionChain(s.ctx, &catalog.GetEvolutionChainInput{ChainRef: testutils.EeveeChainRef}).
		Return(nil, errors.Unavailable("failed to fetch evolution chain").
			WithMeta(errors.MetaChainRef, testutils.EeveeChainRef))

	_, err := s.handler.GetEvolutionChain(s.ctx, s.request(map[string]interface{}{
		"chain_ref": testutils.EeveeChainRef,
	}))
	s.Require().Error(err)
	s.Equal(codes.Unavailable, status.Code(err))
}

func (s *HandlerTestSuite) TestCreateSession() {
	view := s.sessionView("sess_1")
	view.Session.Animated = true
	s.mockViewer.EXPECT().
		CreateSession(s.ctx, &viewer.CreateSessionInput{Animated: true}).
		Return(view, nil)

	resp, err := s.handler.CreateSession(s.ctx, s.request(map[string]interface{}{"animated": true}))
	s.Require().NoError(err)

	got := resp.AsMap()
	session := got["session"].(map[string]interface{})
	s.Equal("sess_1", session["id"])
	s.Equal(true, session["animated"])
	s.Equal("2026-03-01T13:00:00Z", session["expires_at"])
	s.Equal([]interface{}{"all"}, session["filter"].(map[string]interface{})["selected_types"])
	s.Len(got["records"], 1)
	s.Equal(false, got["loading"])
}

func (s *HandlerTestSuite) TestSessionMethodsRequireSessionID() {
	testCases := []struct {
		name string
		call func(context.Context, *structpb.Struct) (*structpb.Struct, error)
	}{
		{name: "GetSession", call: s.handler.GetSession},
		{name: "PickType", call: s.handler.PickType},
		{name: "SetSearchTerm", call: s.handler.SetSearchTerm},
		{name: "ToggleAnimated", call: s.handler.ToggleAnimated},
		{name: "DeleteSession", call: s.handler.DeleteSession},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := tc.call(s.ctx, &structpb.Struct{})
			s.Require().Error(err)
			s.Equal(codes.InvalidArgument, status.Code(err))
		})
	}
}

func (s *HandlerTestSuite) TestPickType() {
	view := s.sessionView("sess_1")
	view.Session.Filter = pokedex.FilterState{SelectedTypes: []string{"grass", "poison"}}
	view.Summary = filter.Describe(view.Session.Filter)
	view.CapacityWarning = "at most 2 types can be selected"
	s.mockViewer.EXPECT().
		PickType(s.ctx, &viewer.PickTypeInput{SessionID: "sess_1", Type: "fire"}).
		Return(view, nil)

	resp, err := s.handler.PickType(s.ctx, s.request(map[string]interface{}{
		"session_id": "sess_1",
		"type":       "fire",
	}))
	s.Require().NoError(err)

	got := resp.AsMap()
	s.Equal("at most 2 types can be selected", got["capacity_warning"])
	summary := got["summary"].(map[string]interface{})
	s.Equal("Çimen + Zehir", summary["label"])
	s.Equal(true, summary["dual_type"])
}

func (s *HandlerTestSuite) TestPickTypeRequiresType() {
	_, err := s.handler.PickType(s.ctx, s.request(map[string]interface{}{"session_id": "sess_1"}))
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestSetSearchTermAllowsEmptyTerm() {
	s.mockViewer.EXPECT().
		SetSearchTerm(s.ctx, &viewer.SetSearchTermInput{SessionID: "sess_1"}).
		Return(s.sessionView("sess_1"), nil)

	_, err := s.handler.SetSearchTerm(s.ctx, s.request(map[string]interface{}{"session_id": "sess_1"}))
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TestToggleAnimatedSessionNotFound() {
	s.mockViewer.EXPECT().
		ToggleAnimated(s.ctx, &viewer.ToggleAnimatedInput{SessionID: "gone"}).
		Return(nil, errors.NotFound("session gone not found"))

	_, err := s.handler.ToggleAnimated(s.ctx, s.request(map[string]interface{}{"session_id": "gone"}))
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *HandlerTestSuite) TestDeleteSession() {
	s.mockViewer.EXPECT().
		DeleteSession(s.ctx, &viewer.DeleteSessionInput{SessionID: "sess_1"}).
		Return(&viewer.DeleteSessionOutput{Deleted: true}, nil)

	resp, err := s.handler.DeleteSession(s.ctx, s.request(map[string]interface{}{"session_id": "sess_1"}))
	s.Require().NoError(err)
	s.Equal(true, resp.AsMap()["deleted"])
}

// TestOverGRPC drives the handler through a real server and client
func (s *HandlerTestSuite) TestOverGRPC() {
	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	v1alpha1.RegisterCatalogServiceServer(server, s.handler)
	go func() {
		_ = server.Serve(lis)
	}()
	defer server.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()

	s.mockViewer.EXPECT().
		DeleteSession(gomock.Any(), &viewer.DeleteSessionInput{SessionID: "sess_1"}).
		Return(&viewer.DeleteSessionOutput{Deleted: false}, nil)

	client := v1alpha1.NewCatalogServiceClient(conn)
	resp, err := client.Invoke(s.ctx, v1alpha1.MethodDeleteSession, s.request(map[string]interface{}{
		"session_id": "sess_1",
	}))
	s.Require().NoError(err)
	s.Equal(false, resp.AsMap()["deleted"])

	_, err = client.Invoke(s.ctx, v1alpha1.MethodGetSession, nil)
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
}
