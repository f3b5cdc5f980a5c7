package memory

import (
	"context"
	"time"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
)

// Проверка, что Tiered удовлетворяет интерфейсу ResultCache.
var _ ports.ResultCache = (*Tiered)(nil)

// Tiered — двухуровневый кэш: LRU в памяти перед персистентным хранилищем.
// Источник истины — back; front только ускоряет повторные чтения.
type Tiered struct {
	front *LRUCacheTTL
	back  ports.ResultStore
	log   ports.Logger
}

// NewTiered — конструктор.
func NewTiered(front *LRUCacheTTL, back ports.ResultStore, log ports.Logger) *Tiered {
	return &Tiered{front: front, back: back, log: log}
}

// Lookup — сначала память, затем хранилище; попадание в хранилище поднимается в память.
func (t *Tiered) Lookup(ctx context.Context, key string) ([]domain.Record, bool, error) {
	if records, ok, _ := t.front.Lookup(ctx, key); ok {
		return records, true, nil
	}

	records, ok, err := t.back.Lookup(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = t.front.Store(ctx, key, records)
	return records, true, nil
}

// Store — запись в хранилище, затем в память.
// Ошибка хранилища возвращается, но запись всё равно попадает в память процесса.
func (t *Tiered) Store(ctx context.Context, key string, records []domain.Record) error {
	err := t.back.Store(ctx, key, records)
	_ = t.front.Store(ctx, key, records)
	return err
}

// WarmFront — прогрев памяти последними n записями хранилища.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (t *Tiered) WarmFront(ctx context.Context, n int) error {
	if n <= 0 {
		t.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	entries, err := t.back.LastN(ctx, n)
	if err != nil {
		t.log.Errorf(ctx, "store.LastN failed n=%d err=%v", n, err)
		return err
	}
	if warmErr := t.front.WarmUp(ctx, entries); warmErr != nil {
		t.log.Warnf(ctx, "front.WarmUp failed err=%v", warmErr)
	}
	t.log.Infof(ctx, "cache warmed with %d entries in %s", len(entries), time.Since(start))
	return nil
}
