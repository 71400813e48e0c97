package middleware

import (
	"net/http"
	"sync"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kycflow/gateway/config"
	u "github.com/kycflow/gateway/utils"
	"github.com/kycflow/gateway/utils/logger"
)

var (
	limiter  gin.HandlerFunc
	initOnce sync.Once
)

// RateLimitMiddleware applies a per-IP request limit. With REDIS_URL set
// the counters live in Redis so multiple instances share one budget,
// otherwise an in-process store is used.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		initOnce.Do(func() {
			conf := config.ServerConfig()

			var store ratelimit.Store
			if conf.RedisURL != "" {
				opt, err := redis.ParseURL(conf.RedisURL)
				if err != nil {
					logger.Warnf("Invalid REDIS_URL, falling back to in-memory rate limiting: %v", err)
				} else {
					store = ratelimit.RedisStore(&ratelimit.RedisOptions{
						RedisClient: redis.NewClient(opt),
						Rate:        time.Second,
						Limit:       uint(conf.RateLimit),
					})
				}
			}
			if store == nil {
				store = ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
					Rate:  time.Second,
					Limit: uint(conf.RateLimit),
				})
			}

			limiter = ratelimit.RateLimiter(store, &ratelimit.Options{
				ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
					u.APIResponse(
						c,
						http.StatusTooManyRequests,
						"error",
						"Too many requests from this IP address",
						map[string]interface{}{
							"retry_after": time.Until(info.ResetTime).Seconds(),
							"limit":       info.Limit,
						},
					)
					c.Abort()
				},
				KeyFunc: func(c *gin.Context) string {
					return "ip:" + c.ClientIP()
				},
			})
		})

		limiter(c)
	}
}
