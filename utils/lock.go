// File: utils/lock.go
package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// unlockScript releases a lock only if the caller still owns it, so a lock
// that expired and was re-acquired by someone else is never deleted.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements an advisory lock on SET NX with a TTL. Used to
// serialize the overlap-check-then-insert sequence per business.
type RedisLocker struct {
	Client *redis.Client
	Logger *zap.Logger
}

// Acquire polls until the lock is held or ctx is done, then returns the
// release func. The TTL bounds how long a crashed holder can wedge a
// business's bookings.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.New().String()
	for {
		ok, err := l.Client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				if err := unlockScript.Run(context.Background(), l.Client, []string{key}, token).Err(); err != nil && err != redis.Nil {
					l.Logger.Warn("lock release failed", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(25 * time.Millisecond):
		}
	}
}
