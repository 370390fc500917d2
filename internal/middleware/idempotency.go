package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"

	IdempotencyCacheKey = "idempotency_cache_key"
	IdempotencyLockKey  = "idempotency_lock_key"

	idempotencyLockTTL = 30 * time.Second
)

// Idempotency replays the cached result of a POST carrying the same Idempotency-Key
// and rejects a duplicate that arrives while the first one is still running.
// Handlers finish the exchange with StoreIdempotentResult.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s", c.FullPath(), idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached any
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			zap.L().Warn("idempotency lock unavailable, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Error(c, http.StatusConflict, apperror.CodeConflict, "Request with this idempotency key is still being processed", nil)
			c.Abort()
			return
		}

		c.Set(IdempotencyCacheKey, cacheKey)
		c.Set(IdempotencyLockKey, lockKey)

		c.Next()
	}
}

// StoreIdempotentResult caches a successful result under the request's idempotency
// key and releases the in-flight lock. Failed requests only release the lock.
func StoreIdempotentResult(c *gin.Context, rdb *redis.Client, result any, succeeded bool, ttl time.Duration) {
	if rdb == nil {
		return
	}
	ctx := c.Request.Context()

	if lockKey := c.GetString(IdempotencyLockKey); lockKey != "" {
		defer rdb.Del(ctx, lockKey)
	}

	cacheKey := c.GetString(IdempotencyCacheKey)
	if cacheKey == "" || !succeeded {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := rdb.Set(ctx, cacheKey, payload, ttl).Err(); err != nil {
		zap.L().Warn("failed to cache idempotent result", zap.String("key", cacheKey), zap.Error(err))
	}
}
