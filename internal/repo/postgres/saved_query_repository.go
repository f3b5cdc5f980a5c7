package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
	"github.com/Gunvolt24/semfilms/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что SavedQueryRepository удовлетворяет интерфейсу ResultStore.
var _ ports.ResultStore = (*SavedQueryRepository)(nil)

const tier = "postgres"

// SavedQueryRepository — хранилище результатов запросов на Postgres (pgxpool).
// Одна строка на канонический ключ; result — JSON-массив упорядоченных объектов.
// Колонка result имеет тип json (не jsonb): порядок ключей объектов должен сохраняться.
type SavedQueryRepository struct {
	pool *pgxpool.Pool
}

// NewSavedQueryRepository - конструктор SavedQueryRepository.
func NewSavedQueryRepository(pool *pgxpool.Pool) *SavedQueryRepository {
	return &SavedQueryRepository{pool: pool}
}

// Lookup — записи по ключу; (nil, false, nil), если ключа нет.
func (r *SavedQueryRepository) Lookup(ctx context.Context, key string) ([]domain.Record, bool, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT result FROM saved_queries WHERE query_url = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.CacheOps.WithLabelValues(tier, "miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.CacheOps.WithLabelValues(tier, "read_error").Inc()
		return nil, false, fmt.Errorf("%w: select saved query: %v", domain.ErrCacheRead, err)
	}

	records, err := decodeRecords(raw)
	if err != nil {
		metrics.CacheOps.WithLabelValues(tier, "read_error").Inc()
		return nil, false, err
	}
	metrics.CacheOps.WithLabelValues(tier, "hit").Inc()
	return records, true, nil
}

// Store — идемпотентный upsert по query_url (last-write-wins).
func (r *SavedQueryRepository) Store(ctx context.Context, key string, records []domain.Record) error {
	entry := domain.NewCachedEntry(key, records)
	raw, err := json.Marshal(entry.Records)
	if err != nil {
		metrics.CacheOps.WithLabelValues(tier, "store_error").Inc()
		return fmt.Errorf("%w: marshal records: %v", domain.ErrCachePersist, err)
	}

	if _, err = r.pool.Exec(ctx, `
		INSERT INTO saved_queries (id, query_url, result, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (query_url) DO UPDATE SET
			result = EXCLUDED.result,
			created_at = EXCLUDED.created_at
	`, entry.ID, entry.CanonicalKey, raw, entry.CreatedAt); err != nil {
		metrics.CacheOps.WithLabelValues(tier, "store_error").Inc()
		return fmt.Errorf("%w: upsert saved query: %v", domain.ErrCachePersist, err)
	}

	metrics.CacheOps.WithLabelValues(tier, "store").Inc()
	return nil
}

// Get — полная запись кэша по ключу; (nil, nil), если ключа нет.
func (r *SavedQueryRepository) Get(ctx context.Context, key string) (*domain.CachedEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, query_url, result, created_at
		FROM saved_queries
		WHERE query_url = $1
	`, key)

	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return entry, err
}

// LastN — последние n записей по времени сохранения.
func (r *SavedQueryRepository) LastN(ctx context.Context, n int) ([]*domain.CachedEntry, error) {
	if n <= 0 {
		return []*domain.CachedEntry{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, query_url, result, created_at
		FROM saved_queries
		ORDER BY created_at DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("%w: select last saved queries: %v", domain.ErrCacheRead, err)
	}
	defer rows.Close()

	out := make([]*domain.CachedEntry, 0, n)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate saved queries: %v", domain.ErrCacheRead, err)
	}
	return out, nil
}

// ------вспомогательные функции------

func scanEntry(row pgx.Row) (*domain.CachedEntry, error) {
	var (
		entry domain.CachedEntry
		raw   []byte
	)
	if err := row.Scan(&entry.ID, &entry.CanonicalKey, &raw, &entry.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scan saved query: %v", domain.ErrCacheRead, err)
	}
	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}
	entry.Records = records
	return &entry, nil
}

func decodeRecords(raw []byte) ([]domain.Record, error) {
	records := []domain.Record{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: decode result: %v", domain.ErrCacheRead, err)
	}
	return records, nil
}
