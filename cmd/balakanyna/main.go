package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sashkashishka/balakanyna-sub000"
	"github.com/sashkashishka/balakanyna-sub000/handlers/auth"
	"github.com/sashkashishka/balakanyna-sub000/handlers/task"
	"github.com/sashkashishka/balakanyna-sub000/middlewares"
	"github.com/sashkashishka/balakanyna-sub000/migrations"
	"github.com/sashkashishka/balakanyna-sub000/pkg/cache"
	"github.com/sashkashishka/balakanyna-sub000/pkg/config"
	"github.com/sashkashishka/balakanyna-sub000/pkg/db"
	"github.com/sashkashishka/balakanyna-sub000/pkg/health"
	"github.com/sashkashishka/balakanyna-sub000/pkg/logger"
	"github.com/sashkashishka/balakanyna-sub000/pkg/metrics"
	"github.com/sashkashishka/balakanyna-sub000/pkg/redis"
	"github.com/sashkashishka/balakanyna-sub000/repository"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default $"+config.PathEnv+" or ./config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithSentry(cfg.Log, cfg.Sentry, logger.RequestIDExtractor())
	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		_ = logger.Flush(context.Background())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}

	if cfg.Database.Migrate {
		if err := db.Migrate(ctx, pool, migrations.FS, cfg.Database.MigrationsTable, log); err != nil {
			pool.Close()
			return err
		}
	}

	queries := repository.New(pool)
	if created, err := repository.EnsureAdmin(ctx, pool, cfg.Admin.Name, cfg.Admin.Password); err != nil {
		pool.Close()
		return err
	} else if created {
		log.Info("admin account created", slog.String("name", cfg.Admin.Name))
	}

	checks := health.Checks{"postgres": db.Healthcheck(pool)}
	serverOpts := []balakanyna.ServerOption{
		balakanyna.WithServerLogger(log),
		balakanyna.WithStore(pool),
		balakanyna.WithLoggerFlush(logger.Flush),
	}

	var taskCache cache.Cache[repository.Task]
	if cfg.Redis.Enabled() {
		rdb, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			pool.Close()
			return err
		}
		taskCache = cache.NewRedis[repository.Task](rdb, cache.JSON[repository.Task]{}, "balakanyna:", cfg.Cache.TTL)
		checks["redis"] = redis.Healthcheck(rdb)
		serverOpts = append(serverOpts, balakanyna.WithCloser("redis", redis.Closer(rdb)))
	} else {
		taskCache = cache.NewMemory[repository.Task](cfg.Cache.TTL, cfg.Cache.MaxEntries)
		serverOpts = append(serverOpts, balakanyna.WithCloser("cache", func(context.Context) error {
			return taskCache.Close()
		}))
	}
	serverOpts = append(serverOpts, balakanyna.WithHealthChecks(checks))

	m := metrics.New()
	if cfg.Metrics.Enabled {
		serverOpts = append(serverOpts, balakanyna.WithOpsHandler(cfg.Metrics.Path, m.Handler()))
	}

	router, err := balakanyna.NewRouter(balakanyna.Deps{
		Store:  pool,
		Logger: log,
		Config: cfg,
	})
	if err != nil {
		pool.Close()
		return err
	}

	router.Use(
		middlewares.Logging(),
		middlewares.Metrics(m),
		middlewares.Recover(),
		middlewares.CORS(
			middlewares.WithAllowOrigins(cfg.CORS.Origins...),
			middlewares.WithAllowCredentials(),
		),
	)
	router.Mount(
		auth.New(queries),
		task.New(queries, taskCache,
			task.WithCacheTTL(cfg.Cache.TTL),
			task.WithCacheRecorder(m),
		),
	)
	router.Use(middlewares.NotFound())
	router.HandleError(middlewares.ErrorHandler())

	srv := balakanyna.NewServer(cfg.Server, router, serverOpts...)
	return balakanyna.Run(ctx, srv)
}
