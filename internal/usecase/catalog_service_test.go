package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
	"github.com/Gunvolt24/semfilms/internal/ports/mocks"
	"github.com/Gunvolt24/semfilms/internal/sparql"
	"github.com/Gunvolt24/semfilms/internal/testutil"
	"github.com/Gunvolt24/semfilms/internal/usecase"
	"github.com/Gunvolt24/semfilms/pkg/metrics"
	"github.com/Gunvolt24/semfilms/pkg/validate"
	"github.com/golang/mock/gomock"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

const filmsKey = "/films?limit=2"

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type deps struct {
	cache *mocks.MockResultCache
	exec  *mocks.MockQueryExecutor
}

func newService(t *testing.T, opts usecase.CatalogOptions) (*usecase.CatalogService, deps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := deps{
		cache: mocks.NewMockResultCache(ctrl),
		exec:  mocks.NewMockQueryExecutor(ctrl),
	}
	svc := usecase.NewCatalogService(
		d.cache,
		sparql.NewQueryBuilder(sparql.QueryOptions{}),
		d.exec,
		noopLogger{},
		validate.NewWarmUpValidator(),
		opts,
	)
	return svc, d
}

func twoFilmRows() *testutil.SliceRows {
	return testutil.NewRows(
		testutil.FilmRow("Q1", "Перший", "Режисер", "2021-03-01T00:00:00Z", "драма, комедія"),
		testutil.FilmRow("Q2", "Другий", "", "2020-01-01T00:00:00Z", "драма"),
	)
}

func TestFilms_CacheHit(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	cached := []domain.Record{{{Key: "film", Value: "Q9"}}}
	d.cache.EXPECT().Lookup(gomock.Any(), filmsKey).Return(cached, true, nil)
	d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)
	d.cache.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res := svc.Films(context.Background(), filmsKey, domain.FilmFilter{Limit: 2})
	if res.Source != domain.SourceCache || res.Err != nil || len(res.Records) != 1 {
		t.Fatalf("expected cache hit, got %+v", res)
	}
}

func TestFilms_CacheMiss_FetchAndStore(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	rows := twoFilmRows()
	var query string
	var stored []domain.Record

	gomock.InOrder(
		d.cache.EXPECT().Lookup(gomock.Any(), filmsKey).Return(nil, false, nil),
		d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q string) (ports.Rows, error) {
				query = q
				return rows, nil
			}),
		d.cache.EXPECT().Store(gomock.Any(), filmsKey, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, recs []domain.Record) error {
				stored = recs
				return nil
			}),
	)

	res := svc.Films(context.Background(), filmsKey, domain.FilmFilter{Limit: 2})
	if res.Source != domain.SourceUpstream || res.Err != nil {
		t.Fatalf("expected upstream result, got %+v", res)
	}
	if !strings.Contains(query, "LIMIT 2") || strings.Contains(query, "VALUES") {
		t.Fatalf("unexpected query:\n%s", query)
	}
	if !rows.Closed {
		t.Fatalf("rows must be closed")
	}

	if len(res.Records) != 2 || len(stored) != 2 {
		t.Fatalf("want 2 records returned and stored, got %d/%d", len(res.Records), len(stored))
	}
	if got := strings.Join(res.Records[0].Keys(), ","); got != "film,title,director,date,genres" {
		t.Fatalf("field order = %s", got)
	}
	if v, _ := res.Records[0].Get("title"); v != "Перший" {
		t.Fatalf("first title = %q", v)
	}
	if v, ok := res.Records[1].Get("director"); !ok || v != "" {
		t.Fatalf("missing director must be empty string, got %q ok=%v", v, ok)
	}
}

func TestFilms_UpstreamFailure_Fallback(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	before := promtest.ToFloat64(metrics.UpstreamQueries.WithLabelValues("films", "failed"))

	d.cache.EXPECT().Lookup(gomock.Any(), filmsKey).Return(nil, false, nil)
	d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(nil, domain.NewUpstreamQueryError("send", errors.New("connection refused")))
	d.cache.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res := svc.Films(context.Background(), filmsKey, domain.FilmFilter{Limit: 2})
	if !res.Degraded() || res.Records == nil || len(res.Records) != 0 {
		t.Fatalf("expected empty fallback, got %+v", res)
	}
	if !errors.Is(res.Err, domain.ErrUpstreamQuery) {
		t.Fatalf("fallback must carry upstream error, got %v", res.Err)
	}
	if after := promtest.ToFloat64(metrics.UpstreamQueries.WithLabelValues("films", "failed")); after != before+1 {
		t.Fatalf("failed counter: before=%v after=%v", before, after)
	}
}

func TestFilms_MidIterationFailure_NoPartialResult(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	rows := testutil.NewFailingRows(1, errors.New("connection reset"),
		testutil.FilmRow("Q1", "Перший", "Режисер", "2021-03-01T00:00:00Z", "драма"),
		testutil.FilmRow("Q2", "Другий", "", "2020-01-01T00:00:00Z", "драма"),
	)

	d.cache.EXPECT().Lookup(gomock.Any(), filmsKey).Return(nil, false, nil)
	d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(rows, nil)
	d.cache.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res := svc.Films(context.Background(), filmsKey, domain.FilmFilter{Limit: 2})
	if !res.Degraded() || len(res.Records) != 0 {
		t.Fatalf("partial result must not be returned, got %+v", res)
	}
	if !errors.Is(res.Err, domain.ErrUpstreamQuery) {
		t.Fatalf("want upstream error, got %v", res.Err)
	}
	if !rows.Closed {
		t.Fatalf("rows must be closed after failure")
	}
}

func TestFilms_StoreError_StillReturnsRecords(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	d.cache.EXPECT().Lookup(gomock.Any(), filmsKey).Return(nil, false, nil)
	d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(twoFilmRows(), nil)
	d.cache.EXPECT().Store(gomock.Any(), filmsKey, gomock.Any()).Return(domain.ErrCachePersist)

	res := svc.Films(context.Background(), filmsKey, domain.FilmFilter{Limit: 2})
	if res.Source != domain.SourceUpstream || res.Err != nil || len(res.Records) != 2 {
		t.Fatalf("store failure must not affect the response, got %+v", res)
	}
}

func TestFilms_LookupError_TreatedAsMiss(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	d.cache.EXPECT().Lookup(gomock.Any(), filmsKey).Return(nil, false, domain.ErrCacheRead)
	d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(twoFilmRows(), nil)
	d.cache.EXPECT().Store(gomock.Any(), filmsKey, gomock.Any()).Return(nil)

	res := svc.Films(context.Background(), filmsKey, domain.FilmFilter{Limit: 2})
	if res.Source != domain.SourceUpstream || len(res.Records) != 2 {
		t.Fatalf("expected upstream result, got %+v", res)
	}
}

func TestFilms_Idempotent_SecondCallFromCache(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	var stored []domain.Record
	gomock.InOrder(
		d.cache.EXPECT().Lookup(gomock.Any(), filmsKey).Return(nil, false, nil),
		d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(twoFilmRows(), nil),
		d.cache.EXPECT().Store(gomock.Any(), filmsKey, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, recs []domain.Record) error {
				stored = recs
				return nil
			}),
		d.cache.EXPECT().Lookup(gomock.Any(), filmsKey).
			DoAndReturn(func(context.Context, string) ([]domain.Record, bool, error) {
				return stored, true, nil
			}),
	)

	first := svc.Films(context.Background(), filmsKey, domain.FilmFilter{Limit: 2})
	second := svc.Films(context.Background(), filmsKey, domain.FilmFilter{Limit: 2})

	if first.Source != domain.SourceUpstream || second.Source != domain.SourceCache {
		t.Fatalf("sources: %s, %s", first.Source, second.Source)
	}
	if len(first.Records) != len(second.Records) {
		t.Fatalf("results differ: %d vs %d", len(first.Records), len(second.Records))
	}
	for i := range first.Records {
		for j := range first.Records[i] {
			if first.Records[i][j] != second.Records[i][j] {
				t.Fatalf("record %d differs: %v vs %v", i, first.Records[i], second.Records[i])
			}
		}
	}
}

func TestGenres_PaginationQuery(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	const key = "/genres?offset=10&limit=5"
	var query string

	d.cache.EXPECT().Lookup(gomock.Any(), key).Return(nil, false, nil)
	d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q string) (ports.Rows, error) {
			query = q
			return testutil.NewRows(testutil.GenreRow("Q130232", "драма")), nil
		})
	d.cache.EXPECT().Store(gomock.Any(), key, gomock.Len(1)).Return(nil)

	res := svc.Genres(context.Background(), key, domain.GenreFilter{Offset: 10, Limit: 5})
	if res.Err != nil || len(res.Records) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if v, _ := res.Records[0].Get("label"); v != "драма" {
		t.Fatalf("label = %q", v)
	}
	if !strings.Contains(query, "OFFSET 10") || !strings.Contains(query, "LIMIT 5") {
		t.Fatalf("pagination missing:\n%s", query)
	}
}

func TestFilms_GenreFilter_LimitCapsRows(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	const key = "/films?genres=Q188473&limit=2"
	var query string
	rows := testutil.NewRows(
		testutil.FilmRow("Q3", "Третій", "Режисер", "2023-05-01T00:00:00Z", "бойовик"),
		testutil.FilmRow("Q2", "Другий", "", "2022-01-01T00:00:00Z", "бойовик"),
		testutil.FilmRow("Q1", "Перший", "Режисер", "2019-07-01T00:00:00Z", "бойовик"),
	)

	d.cache.EXPECT().Lookup(gomock.Any(), key).Return(nil, false, nil)
	d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q string) (ports.Rows, error) {
			query = q
			return rows, nil
		})
	d.cache.EXPECT().Store(gomock.Any(), key, gomock.Len(2)).Return(nil)

	res := svc.Films(context.Background(), key, domain.FilmFilter{Genres: []string{"Q188473"}, Limit: 2})
	if res.Source != domain.SourceUpstream || res.Err != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Records) != 2 {
		t.Fatalf("want 2 records, got %d", len(res.Records))
	}
	// порядок поступления (DESC по дате) сохраняется
	for i, want := range []string{"2023-05-01T00:00:00Z", "2022-01-01T00:00:00Z"} {
		if v, _ := res.Records[i].Get("date"); v != want {
			t.Fatalf("record %d date = %q, want %q", i, v, want)
		}
	}
	if !strings.Contains(query, "VALUES ?genre { wd:Q188473 }") {
		t.Fatalf("genre clause missing:\n%s", query)
	}
	if !strings.Contains(query, "LIMIT 2") || !strings.Contains(query, "DESC(?latestDate)") {
		t.Fatalf("limit/order missing:\n%s", query)
	}
	if !rows.Closed {
		t.Fatalf("rows must be closed after early stop")
	}
}

func TestGenres_LimitCapsRows(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	const key = "/genres?offset=10&limit=5"
	genreRows := make([]domain.Row, 0, 7)
	for _, label := range []string{"а", "б", "в", "г", "ґ", "д", "е"} {
		genreRows = append(genreRows, testutil.GenreRow("Q1"+fmt.Sprint(len(genreRows)), label))
	}

	d.cache.EXPECT().Lookup(gomock.Any(), key).Return(nil, false, nil)
	d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(testutil.NewRows(genreRows...), nil)
	d.cache.EXPECT().Store(gomock.Any(), key, gomock.Len(5)).Return(nil)

	res := svc.Genres(context.Background(), key, domain.GenreFilter{Offset: 10, Limit: 5})
	if res.Err != nil || len(res.Records) != 5 {
		t.Fatalf("want 5 records, got %+v", res)
	}
	if v, _ := res.Records[4].Get("label"); v != "ґ" {
		t.Fatalf("last label = %q", v)
	}
}

func TestFilms_SingleFlight_CollapsesConcurrentMisses(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{SingleFlight: true})

	const callers = 5
	var lookups atomic.Int32
	release := make(chan struct{})

	d.cache.EXPECT().Lookup(gomock.Any(), filmsKey).
		DoAndReturn(func(context.Context, string) ([]domain.Record, bool, error) {
			lookups.Add(1)
			return nil, false, nil
		}).Times(callers)
	d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) (ports.Rows, error) {
			<-release
			return twoFilmRows(), nil
		}).Times(1)
	d.cache.EXPECT().Store(gomock.Any(), filmsKey, gomock.Any()).Return(nil).Times(1)

	var wg sync.WaitGroup
	results := make([]domain.Result, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Films(context.Background(), filmsKey, domain.FilmFilter{Limit: 2})
		}(i)
	}

	deadline := time.Now().Add(time.Second)
	for lookups.Load() < callers && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, r := range results {
		if r.Source != domain.SourceUpstream || len(r.Records) != 2 {
			t.Fatalf("caller %d: unexpected result %+v", i, r)
		}
	}
}

func TestWarmUp_RunsMatchingShape(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	const uri = "/genres?offset=10&limit=5"
	d.cache.EXPECT().Lookup(gomock.Any(), uri).Return(nil, false, nil)
	d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q string) (ports.Rows, error) {
			if !strings.Contains(q, "OFFSET 10") {
				t.Errorf("warm-up must parse filter from uri:\n%s", q)
			}
			return testutil.NewRows(), nil
		})
	d.cache.EXPECT().Store(gomock.Any(), uri, gomock.Any()).Return(nil)

	if err := svc.WarmUp(context.Background(), uri); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWarmUp_UpstreamFailure_ReturnsError(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	d.cache.EXPECT().Lookup(gomock.Any(), "/films?").Return(nil, false, nil)
	d.exec.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(nil, domain.NewUpstreamQueryError("status", errors.New("503")))

	err := svc.WarmUp(context.Background(), "/films")
	if !errors.Is(err, domain.ErrUpstreamQuery) {
		t.Fatalf("want upstream error, got %v", err)
	}
	if errors.Is(err, validate.ErrInvalidWarmUp) {
		t.Fatalf("upstream failure must not look like invalid input")
	}
}

func TestWarmUp_UnknownPath(t *testing.T) {
	svc, _ := newService(t, usecase.CatalogOptions{})

	if err := svc.WarmUp(context.Background(), "/orders?id=1"); !errors.Is(err, validate.ErrInvalidWarmUp) {
		t.Fatalf("want ErrInvalidWarmUp, got %v", err)
	}
}

func TestWarmUpFromMessage_InvalidJSON(t *testing.T) {
	svc, _ := newService(t, usecase.CatalogOptions{})

	for _, raw := range []string{"{", `{"request_uri":"/films","x":1}`, `{"request_uri":""}`} {
		err := svc.WarmUpFromMessage(context.Background(), []byte(raw))
		if !errors.Is(err, validate.ErrInvalidWarmUp) {
			t.Fatalf("%s: want wrapped ErrInvalidWarmUp, got %v", raw, err)
		}
	}
}

func TestWarmUpFromMessage_Success(t *testing.T) {
	svc, d := newService(t, usecase.CatalogOptions{})

	d.cache.EXPECT().Lookup(gomock.Any(), "/films?limit=1").Return([]domain.Record{}, true, nil)

	if err := svc.WarmUpFromMessage(context.Background(), []byte(`{"request_uri":"/films?limit=1"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
