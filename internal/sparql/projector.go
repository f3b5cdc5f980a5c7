package sparql

import (
	"context"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
)

// Project — строка результата → запись с фиксированным набором полей.
// Отсутствующие привязки дают пустую строку.
func Project(row domain.Row, spec domain.FieldSpec) domain.Record {
	rec := make(domain.Record, 0, len(spec))
	for _, f := range spec {
		v, _ := row.Value(f.Binding)
		rec = append(rec, domain.Pair{Key: f.Name, Value: v})
	}
	return rec
}

// Collect — выполняет запрос и проецирует строки в порядке поступления, не более limit штук
// (limit <= 0 — без ограничения). При ошибке на любом шаге частичный результат не возвращается.
func Collect(ctx context.Context, exec ports.QueryExecutor, query string, spec domain.FieldSpec, limit int) ([]domain.Record, error) {
	rows, err := exec.Execute(ctx, query)
	if err != nil {
		return nil, domain.NewUpstreamQueryError("execute", err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for (limit <= 0 || len(records) < limit) && rows.Next() {
		records = append(records, Project(rows.Row(), spec))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewUpstreamQueryError("iterate", err)
	}
	return records, nil
}
