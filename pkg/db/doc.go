// Package db provides PostgreSQL utilities built on [github.com/jackc/pgx/v5/pgxpool].
//
// It covers connection pooling with startup retries, readiness checks,
// transactions and schema migrations with [github.com/pressly/goose/v3].
//
// # Usage
//
//	pool, err := db.Connect(ctx, cfg.Database)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg.Database.MigrationsTable, log); err != nil {
//		return err
//	}
//
//	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		_, err := tx.Exec(ctx, "UPDATE task SET name = $1 WHERE id = $2", name, id)
//		return err
//	})
//
// # Health Checks
//
// [Healthcheck] plugs into the health package:
//
//	checks := health.Checks{"postgres": db.Healthcheck(pool)}
package db
