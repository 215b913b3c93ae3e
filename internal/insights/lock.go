package insights

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/optimizer/internal/domain"
)

// releaseLuaScript deletes the lock only when it still holds our token, so
// an expired lock reclaimed by another generator is never released by us.
const releaseLuaScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`

// GenerationLock serializes regeneration per (account, source, source id)
// triple across processes. The database transaction already guarantees
// batch consistency; the lock exists to stop concurrent requests from both
// paying for a generation call.
type GenerationLock struct {
	redis         *redis.Client
	ttl           time.Duration
	releaseScript *redis.Script
}

func NewGenerationLock(client *redis.Client, ttl time.Duration) *GenerationLock {
	if ttl == 0 {
		ttl = 2 * time.Minute
	}
	return &GenerationLock{
		redis:         client,
		ttl:           ttl,
		releaseScript: redis.NewScript(releaseLuaScript),
	}
}

// Acquire takes the triple's lock. When acquired, the returned release
// function must be called; when not acquired another process is already
// generating. Redis being down fails open: generation proceeds unlocked.
func (l *GenerationLock) Acquire(ctx context.Context, accountID string, source domain.SourceType, sourceID string) (release func(), acquired bool) {
	key := fmt.Sprintf("optimizer:genlock:%s:%s:%s", accountID, source, sourceID)
	token := uuid.NewString()

	ok, err := l.redis.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		log.Printf("[insights] lock unavailable for %s: %v", key, err)
		return func() {}, true
	}
	if !ok {
		return func() {}, false
	}

	return func() {
		if _, err := l.releaseScript.Run(context.Background(), l.redis, []string{key}, token).Result(); err != nil && err != redis.Nil {
			log.Printf("[insights] lock release failed for %s: %v", key, err)
		}
	}, true
}
