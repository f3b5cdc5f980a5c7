package httpx

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/semfilms/internal/domain"
)

// MaxLimit — верхняя граница limit для обеих форм каталога.
const MaxLimit = 1000

// ClampInt — ограничение значения v в диапазоне [min, max].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseLimitOffset - читает limit/offset из query с дефолтами и границами.
// Нечисловые значения заменяются дефолтами, отрицательный offset игнорируется.
func ParseLimitOffset(q url.Values, defaultLimit, maxLimit int) (limit, offset int) {
	limit = ClampInt(defaultLimit, 1, maxLimit)
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return
}

// ParseFilmFilter — фильтр фильмов из query: limit, startDate, endDate, genres.
// Некорректные даты считаются отсутствующими; genres принимаются повторами и через запятую.
func ParseFilmFilter(q url.Values) domain.FilmFilter {
	limit, _ := ParseLimitOffset(q, domain.DefaultLimit, MaxLimit)
	return domain.FilmFilter{
		Genres:    splitList(q["genres"]),
		StartDate: parseInstant(q.Get("startDate")),
		EndDate:   parseInstant(q.Get("endDate")),
		Limit:     limit,
	}
}

// ParseGenreFilter — фильтр жанров из query: offset, limit.
func ParseGenreFilter(q url.Values) domain.GenreFilter {
	limit, offset := ParseLimitOffset(q, domain.DefaultLimit, MaxLimit)
	return domain.GenreFilter{Offset: offset, Limit: limit}
}

// CanonicalKey — ключ кэша: путь и query-строка в том виде, в каком пришли (без нормализации).
func CanonicalKey(u *url.URL) string {
	return u.Path + "?" + u.RawQuery
}

// ------вспомогательные функции------

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func parseInstant(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
