package store

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const inflightPrefix = "inflight:"

// releaseScript deletes the key only while it still holds our token, so a
// request whose claim expired cannot free a later request's claim.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard claims in-flight keys with SET NX so that every gateway
// instance sharing the redis sees the same claims. The TTL frees keys left
// behind by a crashed instance.
type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{rdb: rdb, ttl: ttl}
}

// Acquire reports whether key was free and is now held. The returned token
// must be handed back to Release.
func (g *RedisGuard) Acquire(ctx context.Context, key string) (string, bool, error) {
	if g.ttl <= 0 {
		return "", false, errors.New("invalid in-flight ttl")
	}
	token := uuid.New().String()
	ok, err := g.rdb.SetNX(ctx, guardKey(key), token, g.ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

// Release frees key if token still owns it.
func (g *RedisGuard) Release(ctx context.Context, key, token string) error {
	return releaseScript.Run(ctx, g.rdb, []string{guardKey(key)}, token).Err()
}

func guardKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return inflightPrefix + base64.RawURLEncoding.EncodeToString(sum[:])
}

type claim struct {
	token   string
	expires time.Time
}

// LocalGuard is the single-instance fallback used when no redis is
// configured.
type LocalGuard struct {
	mu    sync.Mutex
	held  map[string]claim
	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

func NewLocalGuard(ttl time.Duration) *LocalGuard {
	return &LocalGuard{
		held:  make(map[string]claim),
		ttl:   ttl,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

func (g *LocalGuard) Acquire(_ context.Context, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	if c, ok := g.held[key]; ok && now.Before(c.expires) {
		return "", false, nil
	}
	token := g.newID()
	g.held[key] = claim{token: token, expires: now.Add(g.ttl)}
	return token, true, nil
}

func (g *LocalGuard) Release(_ context.Context, key, token string) error {
	g.mu.Lock()
	if c, ok := g.held[key]; ok && c.token == token {
		delete(g.held, key)
	}
	g.mu.Unlock()
	return nil
}
