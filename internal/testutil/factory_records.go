package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Gunvolt24/semfilms/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeFilmRecords — n записей фильмов в порядке полей domain.FilmFields; у нечётных нет режиссёра.
func MakeFilmRecords(n int) []domain.Record {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Record, 0, n)
	for i := 0; i < n; i++ {
		director := "Режисер " + UniqSuffix()
		if i%2 == 1 {
			director = ""
		}
		out = append(out, domain.Record{
			{Key: "film", Value: fmt.Sprintf("http://www.wikidata.org/entity/Q%d", 1000+i)},
			{Key: "title", Value: "Фільм " + UniqSuffix()},
			{Key: "director", Value: director},
			{Key: "date", Value: base.AddDate(0, 0, -i).Format(time.RFC3339)},
			{Key: "genres", Value: "драма, комедія"},
		})
	}
	return out
}

// MakeGenreRecords — n записей жанров (id, label).
func MakeGenreRecords(n int) []domain.Record {
	out := make([]domain.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Record{
			{Key: "id", Value: fmt.Sprintf("http://www.wikidata.org/entity/Q%d", 2000+i)},
			{Key: "label", Value: "жанр " + UniqSuffix()},
		})
	}
	return out
}
