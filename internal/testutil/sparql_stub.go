package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
)

// FilmsBody — ответ эндпоинта на запрос фильмов: два фильма, у второго нет режиссёра.
const FilmsBody = `{
  "head": {"vars": ["film","filmLabel","directorLabel","latestDate","genres"]},
  "results": {"bindings": [
    {"film": {"type":"uri","value":"http://www.wikidata.org/entity/Q1"},
     "filmLabel": {"type":"literal","value":"Перший","xml:lang":"uk"},
     "directorLabel": {"type":"literal","value":"Режисер"},
     "latestDate": {"type":"literal","value":"2021-03-01T00:00:00Z"},
     "genres": {"type":"literal","value":"драма, комедія"}},
    {"film": {"type":"uri","value":"http://www.wikidata.org/entity/Q2"},
     "filmLabel": {"type":"literal","value":"Другий"},
     "latestDate": {"type":"literal","value":"2020-01-01T00:00:00Z"},
     "genres": {"type":"literal","value":"драма"}}
  ]}
}`

// GenresBody — ответ эндпоинта на запрос жанров.
const GenresBody = `{
  "head": {"vars": ["genre","genreLabel"]},
  "results": {"bindings": [
    {"genre": {"type":"uri","value":"http://www.wikidata.org/entity/Q130232"},
     "genreLabel": {"type":"literal","value":"драма","xml:lang":"uk"}},
    {"genre": {"type":"uri","value":"http://www.wikidata.org/entity/Q157443"},
     "genreLabel": {"type":"literal","value":"комедія","xml:lang":"uk"}}
  ]}
}`

// SPARQLStub — поддельный SPARQL-эндпоинт поверх httptest.Server.
// Отвечает FilmsBody или GenresBody по тексту запроса; SetStatus переводит его в режим отказа.
type SPARQLStub struct {
	Server *httptest.Server

	hits   atomic.Int64
	status atomic.Int64

	mu      sync.Mutex
	queries []string
}

// NewSPARQLStub — запущенная заглушка; закрывать через Close.
func NewSPARQLStub() *SPARQLStub {
	s := &SPARQLStub{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// URL — адрес эндпоинта.
func (s *SPARQLStub) URL() string { return s.Server.URL }

// Hits — число полученных запросов.
func (s *SPARQLStub) Hits() int { return int(s.hits.Load()) }

// SetStatus — отвечать этим HTTP-статусом вместо данных; 0 возвращает нормальный режим.
func (s *SPARQLStub) SetStatus(code int) { s.status.Store(int64(code)) }

// Queries — копия полученных текстов запросов.
func (s *SPARQLStub) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Close — останавливает сервер.
func (s *SPARQLStub) Close() { s.Server.Close() }

func (s *SPARQLStub) serve(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)
	_ = r.ParseForm()
	q := r.PostForm.Get("query")

	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()

	if code := int(s.status.Load()); code != 0 {
		http.Error(w, "upstream unavailable", code)
		return
	}

	w.Header().Set("Content-Type", "application/sparql-results+json")
	if strings.Contains(q, "?genreLabel") {
		_, _ = io.WriteString(w, GenresBody)
		return
	}
	_, _ = io.WriteString(w, FilmsBody)
}
