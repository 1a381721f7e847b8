package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories are written against.
// Anything satisfying redis.UniversalClient works, including a client
// pointed at miniredis.
type Client interface {
	redis.UniversalClient
}
