package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
	"github.com/Gunvolt24/semfilms/pkg/metrics"
)

// Проверка, что LRUCacheTTL удовлетворяет интерфейсу ResultCache.
var _ ports.ResultCache = (*LRUCacheTTL)(nil)

const tier = "memory"

type entry struct {
	key       string
	records   []domain.Record
	expiresAt time.Time
}

// LRUCacheTTL — потокобезопасный LRU-кэш результатов в памяти процесса.
// ttl <= 0 — записи не истекают (вытесняются только по ёмкости).
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	cache map[string]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		cache:    make(map[string]*list.Element),
	}
}

// Lookup — копия записей по ключу; ошибок не возвращает.
func (c *LRUCacheTTL) Lookup(_ context.Context, key string) ([]domain.Record, bool, error) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[key]
	if !ok {
		metrics.CacheOps.WithLabelValues(tier, "miss").Inc()
		return nil, false, nil
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues(tier, "expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(c.ll.Len()))
		return nil, false, nil
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues(tier, "hit").Inc()
	return cloneRecords(ent.records), true, nil
}

// Store — upsert по ключу; при переполнении вытесняется наименее используемая запись.
func (c *LRUCacheTTL) Store(_ context.Context, key string, records []domain.Record) error {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	metrics.CacheOps.WithLabelValues(tier, "store").Inc()

	if elem, ok := c.cache[key]; ok {
		ent := elem.Value.(*entry)
		ent.records = cloneRecords(records)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		key:       key,
		records:   cloneRecords(records),
		expiresAt: c.expiryFrom(now),
	})
	c.cache[key] = elem
	metrics.CacheSize.Set(float64(c.ll.Len()))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// WarmUp — загрузить записи (например, последние из персистентного хранилища).
// Записи идут от новых к старым, поэтому кладём с конца: самая свежая окажется в голове списка.
func (c *LRUCacheTTL) WarmUp(ctx context.Context, entries []*domain.CachedEntry) error {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e == nil || e.CanonicalKey == "" {
			continue
		}
		if err := c.Store(ctx, e.CanonicalKey, e.Records); err != nil {
			return err
		}
	}
	return nil
}

// Len — текущее число записей.
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
