package payroll

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyLocker guards one snapshot key across processes. release is never nil.
type KeyLocker interface {
	Acquire(ctx context.Context, key string) (release func(), acquired bool, err error)
}

const releaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	owner  string
	logger *zap.Logger
}

// NewRedisLocker builds a SET NX lock. owner identifies this process so a lock that
// expired and was taken over is never released by its previous holder.
func NewRedisLocker(client *redis.Client, ttl time.Duration, owner string) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		owner:  owner,
		logger: zap.L().Named("payroll.locker"),
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	ok, err := l.client.SetNX(ctx, key, l.owner, l.ttl).Result()
	if err != nil {
		return func() {}, false, err
	}
	if !ok {
		return func() {}, false, nil
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := l.client.Eval(releaseCtx, releaseLockScript, []string{key}, l.owner).Err(); err != nil {
			l.logger.Warn("release snapshot lock failed", zap.String("key", key), zap.Error(err))
		}
	}
	return release, true, nil
}

// NoopLocker always grants the lock. Used when Redis is not configured; the
// snapshot store's conflict handling still prevents duplicates.
type NoopLocker struct{}

func (NoopLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	return func() {}, true, nil
}
