package domain

import (
	"time"

	"github.com/google/uuid"
)

// CachedEntry — сохранённый результат запроса под каноническим ключом.
type CachedEntry struct {
	ID           uuid.UUID `json:"id"`
	CanonicalKey string    `json:"query_url"`
	Records      []Record  `json:"result"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCachedEntry — новая запись кэша с сгенерированным ID.
func NewCachedEntry(key string, records []Record) *CachedEntry {
	if records == nil {
		records = []Record{}
	}
	return &CachedEntry{
		ID:           uuid.New(),
		CanonicalKey: key,
		Records:      records,
		CreatedAt:    time.Now().UTC(),
	}
}

// Source — откуда получен результат.
type Source string

const (
	SourceCache    Source = "cache"
	SourceUpstream Source = "upstream"
	SourceFallback Source = "fallback"
)

// Result — результат работы оркестратора каталога.
// При Source == SourceFallback Records пуст, а Err содержит причину отказа upstream.
type Result struct {
	Records []Record
	Source  Source
	Err     error
}

// Degraded — true, если вместо данных отдан пустой fallback.
func (r Result) Degraded() bool { return r.Source == SourceFallback }
