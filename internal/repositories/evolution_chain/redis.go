package evolutionchain

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	redisclient "github.com/KirkDiggler/pokedex-api/internal/redis"
)

// Key pattern: evolution_chain:{chain_ref}
const chainKeyPrefix = "evolution_chain:"

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client

	// TTL of cached chains; zero keeps them forever
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedisRepository creates a chain cache backed by Redis
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    cfg.TTL,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Get retrieves a cached chain payload
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ChainRef == "" {
		return nil, errors.InvalidArgument(errChainRefEmpty)
	}

	payload, err := r.client.Get(ctx, buildKey(input.ChainRef)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("evolution chain %s not cached", input.ChainRef)
		}
		return nil, errors.Wrapf(err, "failed to get evolution chain from Redis")
	}

	return &GetOutput{Payload: payload}, nil
}

// Put stores the raw payload as-is
func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.ChainRef == "" {
		return nil, errors.InvalidArgument(errChainRefEmpty)
	}
	if len(input.Payload) == 0 {
		return nil, errors.InvalidArgument(errPayloadEmpty)
	}

	if err := r.client.Set(ctx, buildKey(input.ChainRef), input.Payload, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store evolution chain in Redis")
	}

	return &PutOutput{}, nil
}

func buildKey(chainRef string) string {
	return chainKeyPrefix + chainRef
}
