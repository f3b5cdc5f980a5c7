package domain

import "time"

// DefaultLimit — лимит по умолчанию для обеих форм запроса.
const DefaultLimit = 50

// NormalizeLimit — неположительный limit заменяется на DefaultLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// FilmFilter — фильтр списка фильмов.
// Пустой Genres означает «без фильтра по жанрам».
type FilmFilter struct {
	Genres    []string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// HasDateRange — диапазон дат применяется, только если заданы обе границы и start < end.
func (f FilmFilter) HasDateRange() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Before(*f.EndDate)
}

// Filter — фильтр одной из форм каталога: FilmFilter или GenreFilter.
// Интерфейс закрыт: других реализаций вне пакета domain быть не может.
type Filter interface {
	Shape() Shape
	filter()
}

// Shape — форма запроса для фильтра фильмов.
func (FilmFilter) Shape() Shape { return ShapeFilms }
func (FilmFilter) filter()      {}

// Shape — форма запроса для фильтра жанров.
func (GenreFilter) Shape() Shape { return ShapeGenres }
func (GenreFilter) filter()      {}

// GenreFilter — постраничный фильтр списка жанров.
type GenreFilter struct {
	Offset int
	Limit  int
}
