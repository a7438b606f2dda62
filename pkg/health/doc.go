// Package health serves liveness and readiness probes.
//
// Liveness always answers 200. Readiness runs every registered check
// concurrently under a shared timeout and answers 503 when any fails:
//
//	checks := health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}
//	mux.Get("/health/live", health.LivenessHandler())
//	mux.Get("/health/ready", health.ReadinessHandler(checks, health.WithLogger(log)))
//
// Both respond with JSON:
//
//	{"status":"unhealthy","checks":{"postgres":{"status":"unhealthy","error":"..."}}}
package health
