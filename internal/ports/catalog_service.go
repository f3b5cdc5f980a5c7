package ports

import (
	"context"

	"github.com/Gunvolt24/semfilms/internal/domain"
)

// CatalogReadService — сервис чтения каталога (фильмы, жанры).
type CatalogReadService interface {
	Films(ctx context.Context, key string, filter domain.FilmFilter) domain.Result
	Genres(ctx context.Context, key string, filter domain.GenreFilter) domain.Result
}
