package viewersession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/pokedex-api/internal/redis"
)

const (
	// Key pattern: viewer_session:{id}
	sessionKeyPrefix = "viewer_session:"

	// Error messages
	errSessionNil     = "session cannot be nil"
	errIDEmpty        = "session ID cannot be empty"
	errSessionExpired = "session has already expired"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for viewer sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores a new session with the requested TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	session, ttl := stampNew(input, r.clock.Now())

	exists, err := r.client.Exists(ctx, buildKey(session.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check session in Redis")
	}
	if exists > 0 {
		return nil, errors.Newf(errors.CodeInvalidArgument, "session %s already exists", session.ID)
	}

	if err := r.write(ctx, session, ttl); err != nil {
		return nil, err
	}

	return &CreateOutput{Session: session}, nil
}

// Get retrieves a session by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := buildKey(input.ID)

	sessionJSON, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("viewer session %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	var session pokedex.ViewerSession
	if err := json.Unmarshal(sessionJSON, &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	// Redis expiry and the clock can disagree by a few ms
	if !r.clock.Now().Before(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFoundf("viewer session %s has expired", input.ID)
	}

	return &GetOutput{Session: &session}, nil
}

// Update replaces the stored state, keeping the original expiry
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	existing, err := r.Get(ctx, GetInput{ID: input.Session.ID})
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	remainingTTL := existing.Session.ExpiresAt.Sub(now)
	if remainingTTL <= 0 {
		return nil, errors.InvalidArgument(errSessionExpired)
	}

	session := input.Session.Clone()
	session.CreatedAt = existing.Session.CreatedAt
	session.ExpiresAt = existing.Session.ExpiresAt
	session.UpdatedAt = now

	if err := r.write(ctx, session, remainingTTL); err != nil {
		return nil, err
	}

	return &UpdateOutput{Session: session}, nil
}

// Delete removes a session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	removed, err := r.client.Del(ctx, buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{Deleted: removed > 0}, nil
}

func (r *redisRepository) write(ctx context.Context, session *pokedex.ViewerSession, ttl time.Duration) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal session")
	}

	if err := r.client.Set(ctx, buildKey(session.ID), sessionJSON, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to store session in Redis")
	}

	return nil
}

// stampNew copies the session and fills its timestamps
func stampNew(input CreateInput, now time.Time) (*pokedex.ViewerSession, time.Duration) {
	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	session := input.Session.Clone()
	session.CreatedAt = now
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttl)

	return session, ttl
}

func buildKey(id string) string {
	return sessionKeyPrefix + id
}
