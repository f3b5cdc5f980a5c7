package testutil

import (
	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
)

// Проверка, что SliceRows удовлетворяет интерфейсу ports.Rows.
var _ ports.Rows = (*SliceRows)(nil)

// SliceRows — итератор по заранее заданным строкам; FailAfter >= 0 обрывает итерацию ошибкой Fail.
type SliceRows struct {
	rows      []domain.Row
	pos       int
	cur       domain.Row
	err       error
	failAfter int
	fail      error

	Closed bool
}

// NewRows — итератор без ошибок.
func NewRows(rows ...domain.Row) *SliceRows {
	return &SliceRows{rows: rows, failAfter: -1}
}

// NewFailingRows — итератор, который после n строк завершается ошибкой err.
func NewFailingRows(n int, err error, rows ...domain.Row) *SliceRows {
	return &SliceRows{rows: rows, failAfter: n, fail: err}
}

func (r *SliceRows) Next() bool {
	if r.err != nil || r.Closed {
		return false
	}
	if r.failAfter >= 0 && r.pos >= r.failAfter {
		r.err = r.fail
		r.cur = nil
		return false
	}
	if r.pos >= len(r.rows) {
		return false
	}
	r.cur = r.rows[r.pos]
	r.pos++
	return true
}

func (r *SliceRows) Row() domain.Row { return r.cur }
func (r *SliceRows) Err() error      { return r.err }

func (r *SliceRows) Close() error {
	r.Closed = true
	return nil
}

// FilmRow — строка результата запроса фильмов; пустой director означает отсутствие привязки.
func FilmRow(id, title, director, date, genres string) domain.Row {
	row := domain.Row{
		"film":       {Type: "uri", Value: "http://www.wikidata.org/entity/" + id},
		"filmLabel":  {Type: "literal", Value: title},
		"latestDate": {Type: "literal", Value: date},
		"genres":     {Type: "literal", Value: genres},
	}
	if director != "" {
		row["directorLabel"] = domain.Term{Type: "literal", Value: director}
	}
	return row
}

// GenreRow — строка результата запроса жанров.
func GenreRow(id, label string) domain.Row {
	return domain.Row{
		"genre":      {Type: "uri", Value: "http://www.wikidata.org/entity/" + id},
		"genreLabel": {Type: "literal", Value: label, Lang: "uk"},
	}
}
