// Package redis connects to Redis with retries and exposes a health check.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	check := redis.Healthcheck(client)
//	if err := check(ctx); err != nil {
//	    // not ready
//	}
//
// Config is populated from REDIS_* environment variables; an empty REDIS_URL
// means Redis is not used.
package redis
