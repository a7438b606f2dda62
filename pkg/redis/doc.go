// Package redis opens [github.com/redis/go-redis/v9] clients from configuration.
//
// Open validates the URL scheme, applies pool settings, and pings the server
// with retries before returning. [Healthcheck] plugs into readiness probes and
// [Closer] into the server's shutdown sequence.
//
//	client, err := redis.Open(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	srv := balakanyna.NewServer(cfg.Server, router, balakanyna.WithCloser("redis", redis.Closer(client)))
package redis
