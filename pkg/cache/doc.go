// Package cache provides a generic Cache interface with in-memory and Redis
// implementations, plus a stampede-safe read-through helper.
//
//	tasks := cache.NewMemory[Task](5*time.Minute, 1000)
//	// or: cache.NewRedis[Task](client, nil, "task", 5*time.Minute)
//
//	t, err := cache.GetOrSet(ctx, tasks, hash, 0, func(ctx context.Context) (Task, error) {
//		return repo.TaskByHash(ctx, hash)
//	})
//
// TTL semantics for Set: positive expires after the duration, zero uses the
// cache default, negative never expires.
package cache
