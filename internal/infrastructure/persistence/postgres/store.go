// Package postgres implements the repositories and unit of work on
// PostgreSQL with PostGIS, reached through database/sql over a pgx pool.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/persistence/dbx"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/persistence/migrations"
)

// Open connects a pgx pool and wraps it as a *sql.DB for the repositories and goose.
func Open(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, *sql.DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, stdlib.OpenDBFromPool(pool), nil
}

// gooseUpContext is a seam for tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded schema migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Store runs each unit of work in its own transaction.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, txRepos{db: tx})
	})
}

type txRepos struct {
	db dbx.DBTX
}

func (t txRepos) Users() ports.UserRepository       { return NewUserRepository(t.db) }
func (t txRepos) Projects() ports.ProjectRepository { return NewProjectRepository(t.db) }
func (t txRepos) Sites() ports.SiteRepository       { return NewSiteRepository(t.db) }

// Ensure Store implements ports.UnitOfWork.
var _ ports.UnitOfWork = (*Store)(nil)
