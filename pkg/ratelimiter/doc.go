// Package ratelimiter provides token bucket rate limiting with memory and Redis
// storage and an HTTP middleware.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: 10 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.ByClientIP)).Post("/api/send/test", h)
//
// A denied request consumes no tokens. The middleware answers it with
// 429 Too Many Requests, a Retry-After header and a JSON body:
//
//	{"error": "Too many requests. Please try again in 8 seconds."}
//
// RedisStore runs the same algorithm as a Lua script so several server instances
// share one limit.
package ratelimiter
