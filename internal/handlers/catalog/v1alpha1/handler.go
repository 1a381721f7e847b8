// Package v1alpha1 serves the catalog and viewer orchestrators over gRPC
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/viewer"
)

// HandlerConfig holds dependencies for the catalog handler
type HandlerConfig struct {
	Catalog catalog.Service
	Viewer  viewer.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Viewer == nil {
		vb.RequiredField("Viewer")
	}
	return vb.Build()
}

// Handler implements CatalogServiceServer
type Handler struct {
	UnimplementedCatalogServiceServer
	catalog catalog.Service
	viewer  viewer.Service
}

var _ CatalogServiceServer = (*Handler)(nil)

// NewHandler creates a new catalog handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		catalog: cfg.Catalog,
		viewer:  cfg.Viewer,
	}, nil
}

// GetLoadStatus reports the progress of the dataset load
func (h *Handler) GetLoadStatus(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.catalog.GetLoadStatus(ctx, &catalog.GetLoadStatusInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(loadStatusMap(out.Status))
	return resp, errors.ToGRPCError(err)
}

// ListRecords filters the loaded records without touching any session
func (h *Handler) ListRecords(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	types, err := stringListField(req, "types")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.catalog.ListRecords(ctx, &catalog.ListRecordsInput{
		SearchTerm: stringField(req, "search_term"),
		Types:      types,
		Animated:   boolField(req, "animated"),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(map[string]interface{}{
		"records": entryList(out.Entries),
		"filter":  filterMap(out.Filter),
		"count":   len(out.Entries),
		"total":   out.Total,
	})
	return resp, errors.ToGRPCError(err)
}

// GetRecord returns a single record by id
func (h *Handler) GetRecord(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, ok, err := intField(req, "id")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if !ok || id <= 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("id is required").WithMeta("fields", "id"))
	}

	out, err := h.catalog.GetRecord(ctx, &catalog.GetRecordInput{
		ID:       id,
		Animated: boolField(req, "animated"),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(map[string]interface{}{
		"record": recordMap(out.Entry.Record, out.Entry.DisplayImage),
	})
	return resp, errors.ToGRPCError(err)
}

// GetEvolutionChain resolves the chain of a record, or a chain by locator
func (h *Handler) GetEvolutionChain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	recordID, _, err := intField(req, "record_id")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	chainRef := stringField(req, "chain_ref")
	if recordID <= 0 && chainRef == "" {
		return nil, errors.ToGRPCError(
			errors.InvalidArgument("record_id or chain_ref is required").WithMeta("fields", "chain_ref,record_id"))
	}

	out, err := h.catalog.GetEvolutionChain(ctx, &catalog.GetEvolutionChainInput{
		RecordID: recordID,
		ChainRef: chainRef,
		Animated: boolField(req, "animated"),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(chainMap(out))
	return resp, errors.ToGRPCError(err)
}

// CreateSession starts a viewer session with an unconstrained filter
func (h *Handler) CreateSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	view, err := h.viewer.CreateSession(ctx, &viewer.CreateSessionInput{
		Animated: boolField(req, "animated"),
	})
	return h.sessionResponse(view, err)
}

// GetSession returns a session and its visible records
func (h *Handler) GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	view, err := h.viewer.GetSession(ctx, &viewer.GetSessionInput{SessionID: sessionID})
	return h.sessionResponse(view, err)
}

// PickType applies one type picker click to a session
func (h *Handler) PickType(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}
	t := stringField(req, "type")
	if t == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("type is required").WithMeta("fields", "type"))
	}

	view, err := h.viewer.PickType(ctx, &viewer.PickTypeInput{
		SessionID: sessionID,
		Type:      t,
	})
	return h.sessionResponse(view, err)
}

// SetSearchTerm replaces the search term of a session. An empty term
// clears the search.
func (h *Handler) SetSearchTerm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	view, err := h.viewer.SetSearchTerm(ctx, &viewer.SetSearchTermInput{
		SessionID:  sessionID,
		SearchTerm: stringField(req, "search_term"),
	})
	return h.sessionResponse(view, err)
}

// ToggleAnimated flips the sprite mode of a session
func (h *Handler) ToggleAnimated(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	view, err := h.viewer.ToggleAnimated(ctx, &viewer.ToggleAnimatedInput{SessionID: sessionID})
	return h.sessionResponse(view, err)
}

// DeleteSession removes a session
func (h *Handler) DeleteSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.viewer.DeleteSession(ctx, &viewer.DeleteSessionInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(map[string]interface{}{"deleted": out.Deleted})
	return resp, errors.ToGRPCError(err)
}

func requireSessionID(req *structpb.Struct) (string, error) {
	id := stringField(req, "session_id")
	if id == "" {
		return "", errors.ToGRPCError(errors.InvalidArgument("session_id is required").WithMeta("fields", "session_id"))
	}
	return id, nil
}

func (h *Handler) sessionResponse(view *viewer.SessionView, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(sessionViewMap(view))
	return resp, errors.ToGRPCError(err)
}
