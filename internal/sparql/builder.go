package sparql

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Prefix — объявление префикса пространства имён.
type Prefix struct {
	Name string
	IRI  string
}

// Builder — сборщик текста SELECT-запроса из типизированных фрагментов.
// Пустые фрагменты (VALUES без значений, пустой FILTER) не выводятся.
type Builder struct {
	prefixes []Prefix
	distinct bool
	selects  []string
	where    []string
	groupBy  []string
	orderBy  []string
	offset   int
	limit    int

	hasOffset bool
}

// NewBuilder — пустой сборщик.
func NewBuilder() *Builder { return &Builder{} }

// Prefixes — добавить объявления префиксов.
func (b *Builder) Prefixes(p ...Prefix) *Builder {
	b.prefixes = append(b.prefixes, p...)
	return b
}

// Distinct — SELECT DISTINCT.
func (b *Builder) Distinct() *Builder {
	b.distinct = true
	return b
}

// Select — проекции (переменные или выражения вида "(MAX(?d) AS ?x)").
func (b *Builder) Select(exprs ...string) *Builder {
	b.selects = append(b.selects, exprs...)
	return b
}

// Where — обязательный фрагмент графового шаблона.
func (b *Builder) Where(pattern string) *Builder {
	if p := strings.TrimSpace(pattern); p != "" {
		b.where = append(b.where, p)
	}
	return b
}

// Optional — фрагмент OPTIONAL { ... }.
func (b *Builder) Optional(pattern string) *Builder {
	if p := strings.TrimSpace(pattern); p != "" {
		b.where = append(b.where, "OPTIONAL { "+p+" }")
	}
	return b
}

// Values — VALUES ?v { ... }; при пустом списке ничего не добавляется.
func (b *Builder) Values(variable string, terms []string) *Builder {
	if len(terms) == 0 {
		return b
	}
	b.where = append(b.where, fmt.Sprintf("VALUES %s { %s }", variable, strings.Join(terms, " ")))
	return b
}

// Filter — FILTER(expr); пустое выражение пропускается.
func (b *Builder) Filter(expr string) *Builder {
	if e := strings.TrimSpace(expr); e != "" {
		b.where = append(b.where, "FILTER("+e+")")
	}
	return b
}

// Service — SERVICE <iri> { ... }.
func (b *Builder) Service(iri, pattern string) *Builder {
	b.where = append(b.where, fmt.Sprintf("SERVICE %s { %s }", iri, strings.TrimSpace(pattern)))
	return b
}

// GroupBy — переменные группировки.
func (b *Builder) GroupBy(vars ...string) *Builder {
	b.groupBy = append(b.groupBy, vars...)
	return b
}

// OrderBy — условия сортировки (например "DESC(?latestDate)").
func (b *Builder) OrderBy(conds ...string) *Builder {
	b.orderBy = append(b.orderBy, conds...)
	return b
}

// Offset — OFFSET n (отрицательное значение приводится к 0).
func (b *Builder) Offset(n int) *Builder {
	if n < 0 {
		n = 0
	}
	b.offset = n
	b.hasOffset = true
	return b
}

// Limit — LIMIT n (выводится при n > 0).
func (b *Builder) Limit(n int) *Builder {
	b.limit = n
	return b
}

// String — итоговый текст запроса.
func (b *Builder) String() string {
	var sb strings.Builder

	for _, p := range b.prefixes {
		fmt.Fprintf(&sb, "PREFIX %s: <%s>\n", p.Name, p.IRI)
	}
	if len(b.prefixes) > 0 {
		sb.WriteByte('\n')
	}

	sb.WriteString("SELECT ")
	if b.distinct {
		sb.WriteString("DISTINCT ")
	}
	if len(b.selects) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(b.selects, " "))
	}
	sb.WriteString("\nWHERE {\n")
	for _, w := range b.where {
		sb.WriteString("  ")
		sb.WriteString(w)
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n")

	if len(b.groupBy) > 0 {
		sb.WriteString("GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, " "))
		sb.WriteByte('\n')
	}
	if len(b.orderBy) > 0 {
		sb.WriteString("ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, " "))
		sb.WriteByte('\n')
	}
	if b.hasOffset {
		fmt.Fprintf(&sb, "OFFSET %d\n", b.offset)
	}
	if b.limit > 0 {
		fmt.Fprintf(&sb, "LIMIT %d\n", b.limit)
	}
	return sb.String()
}

// ------вспомогательные функции------

var (
	entityIDRe = regexp.MustCompile(`^Q[1-9][0-9]*$`)
	langTagRe  = regexp.MustCompile(`^[a-zA-Z]{1,8}(-[a-zA-Z0-9]{1,8})*$`)
)

// ValidEntityID — идентификатор сущности Wikidata вида Q123.
func ValidEntityID(id string) bool { return entityIDRe.MatchString(id) }

// EntityTerms — валидные идентификаторы с префиксом "wd:", без повторов, отсортированные.
// Невалидные идентификаторы отбрасываются, чтобы не попасть в текст запроса.
func EntityTerms(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if !ValidEntityID(id) {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, "wd:"+id)
	}
	sort.Strings(out)
	return out
}

// DateTimeLiteral — литерал xsd:dateTime в UTC.
func DateTimeLiteral(t time.Time) string {
	return fmt.Sprintf("%q^^xsd:dateTime", t.UTC().Format(time.RFC3339))
}

// LangLiteral — строковый литерал языкового тега; невалидный тег заменяется на fallback.
func LangLiteral(lang, fallback string) string {
	if !langTagRe.MatchString(lang) {
		lang = fallback
	}
	return fmt.Sprintf("%q", strings.ToLower(lang))
}
