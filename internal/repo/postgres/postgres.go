package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSchemaMismatch — схема saved_queries не соответствует ожиданиям репозитория (не применены миграции).
var ErrSchemaMismatch = errors.New("saved_queries schema mismatch")

// NewPool — пул соединений к хранилищу кэша по DSN.
// maxConns > 0 переопределяет размер пула; Ping в конце для fail-fast.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	// Запросы к кэшу короткие, держать соединения долго незачем.
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	if connErr := pool.Ping(ctx); connErr != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", connErr)
	}

	return pool, nil
}

// CheckSchema — saved_queries существует, а result имеет тип json.
// jsonb переупорядочивает ключи объектов, и записи теряли бы порядок полей.
func CheckSchema(ctx context.Context, pool *pgxpool.Pool) error {
	var dataType string
	err := pool.QueryRow(ctx, `
		SELECT data_type
		FROM information_schema.columns
		WHERE table_schema = current_schema()
		  AND table_name = 'saved_queries'
		  AND column_name = 'result'
	`).Scan(&dataType)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: table saved_queries not found (run migrations)", ErrSchemaMismatch)
	}
	if err != nil {
		return fmt.Errorf("inspect saved_queries schema: %w", err)
	}
	if dataType != "json" {
		return fmt.Errorf("%w: result column is %s, want json (run migrations)", ErrSchemaMismatch, dataType)
	}
	return nil
}
