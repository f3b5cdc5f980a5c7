package ports

import (
	"context"

	"github.com/Gunvolt24/semfilms/internal/domain"
)

// Rows — однопроходный итератор строк результата.
// Close освобождает соединение и должен вызываться всегда (в т.ч. после ошибки).
type Rows interface {
	Next() bool
	Row() domain.Row
	Err() error
	Close() error
}

// QueryExecutor — выполнение текста запроса на удалённом endpoint.
type QueryExecutor interface {
	Execute(ctx context.Context, query string) (Rows, error)
}

// QueryBuilder — построение текста запроса по форме и фильтру.
type QueryBuilder interface {
	FilmQuery(f domain.FilmFilter) string
	GenreQuery(f domain.GenreFilter) string
}
