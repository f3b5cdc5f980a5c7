package sparql

import (
	"fmt"

	"github.com/Gunvolt24/semfilms/internal/domain"
)

// Константы словаря Wikidata.
const (
	classFilm      = "wd:Q11424"  // фильм
	classFilmGenre = "wd:Q188451" // жанр фильма

	propInstanceOf = "wdt:P31"
	propCountry    = "wdt:P495" // страна происхождения
	propGenre      = "wdt:P136"
	propDirector   = "wdt:P57"
	propPubDate    = "wdt:P577"

	defaultCountry  = "Q212" // Украина
	defaultLanguage = "uk"

	genresSeparator = ", "
)

var wikidataPrefixes = []Prefix{
	{Name: "wd", IRI: "http://www.wikidata.org/entity/"},
	{Name: "wdt", IRI: "http://www.wikidata.org/prop/direct/"},
	{Name: "rdfs", IRI: "http://www.w3.org/2000/01/rdf-schema#"},
	{Name: "wikibase", IRI: "http://wikiba.se/ontology#"},
	{Name: "bd", IRI: "http://www.bigdata.com/rdf#"},
	{Name: "xsd", IRI: "http://www.w3.org/2001/XMLSchema#"},
}

// QueryOptions — параметры словаря, не зависящие от запроса.
type QueryOptions struct {
	CountryID string // страна происхождения фильмов (Q-id)
	Language  string // язык меток
}

// QueryBuilder — построитель текста запросов для обеих форм каталога. Без I/O, не возвращает ошибок.
type QueryBuilder struct {
	country  string
	language string
}

// NewQueryBuilder — конструктор; пустые и невалидные опции заменяются значениями по умолчанию.
func NewQueryBuilder(opts QueryOptions) *QueryBuilder {
	country := opts.CountryID
	if !ValidEntityID(country) {
		country = defaultCountry
	}
	language := opts.Language
	if language == "" {
		language = defaultLanguage
	}
	return &QueryBuilder{country: country, language: language}
}

// Build — текст запроса для формы фильтра (filter.Shape()); nil-фильтр даёт пустую строку.
func (q *QueryBuilder) Build(filter domain.Filter) string {
	switch f := filter.(type) {
	case domain.FilmFilter:
		return q.FilmQuery(f)
	case domain.GenreFilter:
		return q.GenreQuery(f)
	default:
		return ""
	}
}

// FilmQuery — свежие фильмы страны с жанрами, режиссёром и последней датой выхода.
func (q *QueryBuilder) FilmQuery(f domain.FilmFilter) string {
	lang := LangLiteral(q.language, defaultLanguage)

	b := NewBuilder().
		Prefixes(wikidataPrefixes...).
		Distinct().
		Select(
			"?film", "?filmLabel", "?directorLabel",
			"(MAX(?date) AS ?latestDate)",
			fmt.Sprintf("(GROUP_CONCAT(DISTINCT ?gLabel; separator=%q) AS ?genres)", genresSeparator),
		).
		Where(fmt.Sprintf("?film %s %s; %s wd:%s; %s ?genre.",
			propInstanceOf, classFilm, propCountry, q.country, propGenre)).
		Values("?genre", EntityTerms(f.Genres)).
		Optional(fmt.Sprintf("?film %s ?director.", propDirector)).
		Optional(fmt.Sprintf("?film %s ?date.", propPubDate)).
		Optional(fmt.Sprintf("?film %s ?genre. OPTIONAL { ?genre rdfs:label ?gLabel. FILTER(LANG(?gLabel) = %s || LANG(?gLabel) = \"\") }",
			propGenre, lang))

	if f.HasDateRange() {
		b.Filter(fmt.Sprintf("?date >= %s && ?date <= %s",
			DateTimeLiteral(*f.StartDate), DateTimeLiteral(*f.EndDate)))
	}

	return b.
		Service("wikibase:label", fmt.Sprintf("bd:serviceParam wikibase:language %s.", lang)).
		GroupBy("?film", "?filmLabel", "?directorLabel").
		OrderBy("DESC(?latestDate)").
		Limit(domain.NormalizeLimit(f.Limit)).
		String()
}

// GenreQuery — жанры фильмов с меткой на целевом языке (или без языка), по алфавиту.
func (q *QueryBuilder) GenreQuery(f domain.GenreFilter) string {
	lang := LangLiteral(q.language, defaultLanguage)

	return NewBuilder().
		Prefixes(wikidataPrefixes[:4]...).
		Distinct().
		Select("?genre", "?genreLabel").
		Where(fmt.Sprintf("?genre %s %s; rdfs:label ?genreLabel.", propInstanceOf, classFilmGenre)).
		Filter(fmt.Sprintf("LANG(?genreLabel) = %s || LANG(?genreLabel) = \"\"", lang)).
		OrderBy("?genreLabel").
		Offset(f.Offset).
		Limit(domain.NormalizeLimit(f.Limit)).
		String()
}
