package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
	"github.com/Gunvolt24/semfilms/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

// Проверка, что ResultStore удовлетворяет интерфейсу ResultStore.
var _ ports.ResultStore = (*ResultStore)(nil)

const (
	tier          = "redis"
	defaultPrefix = "catalog:"
	indexKey      = "index" // sorted set: score = created_at (unix ms), member = канонический ключ
)

// Config — параметры подключения.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	Prefix   string
}

// ResultStore — хранилище результатов в Redis: значение — JSON domain.CachedEntry, без TTL.
type ResultStore struct {
	client *redis.Client
	prefix string
}

// NewClient — клиент Redis с проверкой соединения (fail-fast).
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// NewResultStore — конструктор; пустой prefix заменяется "catalog:".
func NewResultStore(client *redis.Client, prefix string) *ResultStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &ResultStore{client: client, prefix: prefix}
}

// Lookup — записи по ключу; (nil, false, nil), если ключа нет.
func (s *ResultStore) Lookup(ctx context.Context, key string) ([]domain.Record, bool, error) {
	raw, err := s.client.Get(ctx, s.entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheOps.WithLabelValues(tier, "miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.CacheOps.WithLabelValues(tier, "read_error").Inc()
		return nil, false, fmt.Errorf("%w: redis get: %v", domain.ErrCacheRead, err)
	}

	entry, err := decodeEntry(raw)
	if err != nil {
		metrics.CacheOps.WithLabelValues(tier, "read_error").Inc()
		return nil, false, err
	}
	metrics.CacheOps.WithLabelValues(tier, "hit").Inc()
	return entry.Records, true, nil
}

// Store — перезапись значения и обновление индекса в одной транзакции (MULTI/EXEC).
func (s *ResultStore) Store(ctx context.Context, key string, records []domain.Record) error {
	entry := domain.NewCachedEntry(key, records)
	raw, err := json.Marshal(entry)
	if err != nil {
		metrics.CacheOps.WithLabelValues(tier, "store_error").Inc()
		return fmt.Errorf("%w: marshal entry: %v", domain.ErrCachePersist, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.entryKey(key), raw, 0)
		pipe.ZAdd(ctx, s.prefix+indexKey, redis.Z{
			Score:  float64(entry.CreatedAt.UnixMilli()),
			Member: key,
		})
		return nil
	})
	if err != nil {
		metrics.CacheOps.WithLabelValues(tier, "store_error").Inc()
		return fmt.Errorf("%w: redis store: %v", domain.ErrCachePersist, err)
	}

	metrics.CacheOps.WithLabelValues(tier, "store").Inc()
	return nil
}

// LastN — последние n записей по индексу (новые первыми); пропавшие значения пропускаются.
func (s *ResultStore) LastN(ctx context.Context, n int) ([]*domain.CachedEntry, error) {
	if n <= 0 {
		return []*domain.CachedEntry{}, nil
	}

	keys, err := s.client.ZRevRange(ctx, s.prefix+indexKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: redis zrevrange: %v", domain.ErrCacheRead, err)
	}
	if len(keys) == 0 {
		return []*domain.CachedEntry{}, nil
	}

	entryKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		entryKeys = append(entryKeys, s.entryKey(k))
	}
	values, err := s.client.MGet(ctx, entryKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: redis mget: %v", domain.ErrCacheRead, err)
	}

	out := make([]*domain.CachedEntry, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		entry, err := decodeEntry([]byte(str))
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// Close — закрывает клиент.
func (s *ResultStore) Close() error { return s.client.Close() }

func (s *ResultStore) entryKey(key string) string { return s.prefix + "q:" + key }

func decodeEntry(raw []byte) (*domain.CachedEntry, error) {
	var entry domain.CachedEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("%w: decode entry: %v", domain.ErrCacheRead, err)
	}
	if entry.Records == nil {
		entry.Records = []domain.Record{}
	}
	return &entry, nil
}
