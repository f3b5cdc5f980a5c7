package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/sparql"
	"github.com/Gunvolt24/semfilms/pkg/httpx"
	"github.com/joho/godotenv"
)

// CLI: печатает текст SPARQL-запроса каталога; с -exec выполняет его и печатает записи как JSON lines.
func main() {
	_ = godotenv.Load(".env.local")

	shape := flag.String("shape", "films", "query shape: films|genres")
	genres := flag.String("genres", "", "comma-separated genre ids (films), e.g. Q130232,Q157443")
	start := flag.String("start", "", "start date (films), RFC3339 or 2006-01-02")
	end := flag.String("end", "", "end date (films), RFC3339 or 2006-01-02")
	limit := flag.Int("limit", domain.DefaultLimit, "result limit")
	offset := flag.Int("offset", 0, "offset (genres)")
	exec := flag.Bool("exec", false, "execute the query and print projected records")
	endpoint := flag.String("endpoint", envOr("CATALOG_SPARQL_ENDPOINT", "https://query.wikidata.org/sparql"), "SPARQL endpoint")
	language := flag.String("lang", envOr("CATALOG_SPARQL_LANGUAGE", "uk"), "label language")
	country := flag.String("country", envOr("CATALOG_SPARQL_COUNTRY", "Q212"), "country of origin (Q-id)")
	timeout := flag.Duration("timeout", 20*time.Second, "query timeout")
	flag.Parse()

	builder := sparql.NewQueryBuilder(sparql.QueryOptions{CountryID: *country, Language: *language})

	var filter domain.Filter
	switch strings.ToLower(*shape) {
	case "films":
		q := map[string][]string{"genres": {*genres}, "startDate": {*start}, "endDate": {*end}}
		f := httpx.ParseFilmFilter(q)
		f.Limit = *limit
		filter = f
	case "genres":
		filter = domain.GenreFilter{Offset: *offset, Limit: *limit}
	default:
		fmt.Fprintf(os.Stderr, "unknown shape %q (want films|genres)\n", *shape)
		os.Exit(2)
	}
	query := builder.Build(filter)
	sh := filter.Shape()

	if !*exec {
		fmt.Println(query)
		return
	}

	client := sparql.NewClient(sparql.ClientConfig{Endpoint: *endpoint, Timeout: *timeout})
	records, err := sparql.Collect(context.Background(), client, query, sh.Fields(), domain.NormalizeLimit(*limit))
	if err != nil {
		fmt.Fprintf(os.Stderr, "query failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Fprintf(os.Stderr, "%d records\n", len(records))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
