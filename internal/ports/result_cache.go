package ports

import (
	"context"

	"github.com/Gunvolt24/semfilms/internal/domain"
)

// ResultCache — хранилище результатов запросов по каноническому ключу.
// Требования к реализации: потокобезопасность; Store — upsert (last-write-wins); записи не истекают.
type ResultCache interface {
	// Lookup — (records, true, nil) при попадании, (nil, false, nil) при промахе.
	// Ошибка чтения возвращается как есть, вызывающий трактует её как промах.
	Lookup(ctx context.Context, key string) ([]domain.Record, bool, error)

	// Store — сохранить/перезаписать записи под ключом.
	Store(ctx context.Context, key string, records []domain.Record) error
}

// ResultStore — персистентное хранилище результатов: кэш + выборка последних записей для прогрева.
type ResultStore interface {
	ResultCache

	// LastN — n последних сохранённых записей (новые первыми).
	LastN(ctx context.Context, n int) ([]*domain.CachedEntry, error)
}
