// Package viewer keeps per-client browsing sessions: the type picker, the
// search box and the animated-sprite toggle
package viewer

//go:generate mockgen -destination=mock/mock_service.go -package=viewermock github.com/KirkDiggler/pokedex-api/internal/orchestrators/viewer Service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
	viewersession "github.com/KirkDiggler/pokedex-api/internal/repositories/viewer_session"
	"github.com/KirkDiggler/pokedex-api/internal/services/filter"
)

// Service defines viewer session operations. Every mutation returns the
// updated session and the records it now shows.
type Service interface {
	CreateSession(ctx context.Context, input *CreateSessionInput) (*SessionView, error)
	GetSession(ctx context.Context, input *GetSessionInput) (*SessionView, error)
	PickType(ctx context.Context, input *PickTypeInput) (*SessionView, error)
	SetSearchTerm(ctx context.Context, input *SetSearchTermInput) (*SessionView, error)
	ToggleAnimated(ctx context.Context, input *ToggleAnimatedInput) (*SessionView, error)
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)
}

// Config holds the dependencies for the viewer orchestrator
type Config struct {
	Catalog     catalog.Service
	Sessions    viewersession.Repository
	IDGenerator idgen.Generator

	// SessionTTL defaults to viewersession.DefaultTTL
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Sessions == nil {
		vb.RequiredField("Sessions")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SessionTTL < 0 {
		vb.Field("SessionTTL", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	catalog    catalog.Service
	sessions   viewersession.Repository
	idGen      idgen.Generator
	sessionTTL time.Duration
}

// NewOrchestrator creates a new viewer orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = viewersession.DefaultTTL
	}

	return &orchestrator{
		catalog:    cfg.Catalog,
		sessions:   cfg.Sessions,
		idGen:      cfg.IDGenerator,
		sessionTTL: ttl,
	}, nil
}

func (o *orchestrator) CreateSession(ctx context.Context, input *CreateSessionInput) (*SessionView, error) {
	if input == nil {
		input = &CreateSessionInput{}
	}

	out, err := o.sessions.Create(ctx, viewersession.CreateInput{
		Session: &pokedex.ViewerSession{
			ID:       o.idGen.Generate(),
			Filter:   pokedex.NewFilterState(),
			Animated: input.Animated,
		},
		TTL: o.sessionTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	slog.Info("Viewer session created", "session_id", out.Session.ID)

	return o.view(ctx, out.Session, "")
}

func (o *orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*SessionView, error) {
	session, err := o.load(ctx, sessionID(input))
	if err != nil {
		return nil, err
	}
	return o.view(ctx, session, "")
}

// PickType applies a picker click. A refused third type is not an error:
// the session is returned unchanged with CapacityWarning set.
func (o *orchestrator) PickType(ctx context.Context, input *PickTypeInput) (*SessionView, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Type == "" {
		return nil, errors.InvalidArgument("type is required")
	}

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	next, err := session.Filter.PickType(strings.ToLower(input.Type))
	if err != nil {
		if errors.IsResourceExhausted(err) {
			slog.Debug("Type pick refused",
				"session_id", session.ID,
				"type", input.Type,
				"selected", session.Filter.SelectedTypes)
			return o.view(ctx, session, errors.GetMessage(err))
		}
		return nil, err
	}

	session.Filter = next
	return o.save(ctx, session)
}

func (o *orchestrator) SetSearchTerm(ctx context.Context, input *SetSearchTermInput) (*SessionView, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	session.Filter = session.Filter.WithSearchTerm(input.SearchTerm)
	return o.save(ctx, session)
}

func (o *orchestrator) ToggleAnimated(ctx context.Context, input *ToggleAnimatedInput) (*SessionView, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	session.Animated = !session.Animated
	return o.save(ctx, session)
}

func (o *orchestrator) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.sessions.Delete(ctx, viewersession.DeleteInput{ID: input.SessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete session")
	}

	return &DeleteSessionOutput{Deleted: out.Deleted}, nil
}

func sessionID(input *GetSessionInput) string {
	if input == nil {
		return ""
	}
	return input.SessionID
}

func (o *orchestrator) load(ctx context.Context, id string) (*pokedex.ViewerSession, error) {
	if id == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.sessions.Get(ctx, viewersession.GetInput{ID: id})
	if err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (o *orchestrator) save(ctx context.Context, session *pokedex.ViewerSession) (*SessionView, error) {
	out, err := o.sessions.Update(ctx, viewersession.UpdateInput{Session: session})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update session")
	}
	return o.view(ctx, out.Session, "")
}

// view renders a session against the catalog. While the catalog has no
// committed batch the session is still returned, flagged as loading.
func (o *orchestrator) view(ctx context.Context, session *pokedex.ViewerSession, warning string) (*SessionView, error) {
	view := &SessionView{
		Session:         session,
		Summary:         filter.Describe(session.Filter),
		CapacityWarning: warning,
	}

	list, err := o.catalog.ListRecords(ctx, &catalog.ListRecordsInput{
		SearchTerm: session.Filter.SearchTerm,
		Types:      session.Filter.ConcreteTypes(),
		Animated:   session.Animated,
	})
	if err != nil {
		if errors.IsUnavailable(err) {
			view.Loading = true
			return view, nil
		}
		return nil, errors.Wrap(err, "failed to list records")
	}

	view.Entries = list.Entries
	view.Total = list.Total
	return view, nil
}
