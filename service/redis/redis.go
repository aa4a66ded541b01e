package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis key not found")
	// ErrNoTTL is returned by TTL for keys without expiry
	ErrNoTTL = errors.New("redis key has no ttl")
)

// Forever stores a key without expiry
const Forever = time.Duration(0)

// Service is the subset of redis commands the cache tier needs
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(c ctx.Ctx, keys ...string) (int, error)
	// TTL returns seconds left before the key expires
	TTL(c ctx.Ctx, key string) (int, error)
}
