package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports/mocks"
	rest "github.com/Gunvolt24/semfilms/internal/transport/http"
	"github.com/golang/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func newRouter(svc *mocks.MockCatalogReadService) http.Handler {
	h := rest.NewHandler(svc, noopLogger{}, 0)
	return rest.NewRouter(h, rest.RouterConfig{})
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func film(id, title string) domain.Record {
	return domain.Record{
		{Key: "film", Value: id},
		{Key: "title", Value: title},
		{Key: "director", Value: ""},
		{Key: "date", Value: "2021-03-01T00:00:00Z"},
		{Key: "genres", Value: "драма"},
	}
}

func TestListFilms_CacheHit_OrderedJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCatalogReadService(ctrl)

	svc.EXPECT().
		Films(gomock.Any(), "/films?genres=Q130232&limit=5", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, f domain.FilmFilter) domain.Result {
			if f.Limit != 5 || len(f.Genres) != 1 || f.Genres[0] != "Q130232" {
				t.Errorf("unexpected filter: %+v", f)
			}
			return domain.Result{Records: []domain.Record{film("Q1", "Перший")}, Source: domain.SourceCache}
		})

	w := serve(newRouter(svc), http.MethodGet, "/films?genres=Q130232&limit=5")

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get(rest.HeaderSource); got != "cache" {
		t.Fatalf("%s: want cache, got %q", rest.HeaderSource, got)
	}
	want := `[{"film":"Q1","title":"Перший","director":"","date":"2021-03-01T00:00:00Z","genres":"драма"}]`
	if w.Body.String() != want {
		t.Fatalf("body:\n got %s\nwant %s", w.Body.String(), want)
	}
}

func TestListFilms_DateFilterParsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCatalogReadService(ctrl)

	svc.EXPECT().
		Films(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, f domain.FilmFilter) domain.Result {
			if !f.HasDateRange() {
				t.Errorf("date range expected: %+v", f)
			}
			if f.Limit != domain.DefaultLimit {
				t.Errorf("default limit: got %d", f.Limit)
			}
			return domain.Result{Records: []domain.Record{}, Source: domain.SourceUpstream}
		})

	w := serve(newRouter(svc), http.MethodGet, "/films?startDate=2020-01-01&endDate=2021-01-01T00:00:00Z")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("want 200 [], got %d %s", w.Code, w.Body.String())
	}
}

func TestListFilms_UpstreamFallback_EmptyArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCatalogReadService(ctrl)

	svc.EXPECT().Films(gomock.Any(), "/films?", gomock.Any()).Return(domain.Result{
		Records: []domain.Record{},
		Source:  domain.SourceFallback,
		Err:     domain.NewUpstreamQueryError("send", errors.New("connection refused")),
	})

	w := serve(newRouter(svc), http.MethodGet, "/films")

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Fatalf("want [], got %s", w.Body.String())
	}
	if got := w.Header().Get(rest.HeaderSource); got != "fallback" {
		t.Fatalf("%s: want fallback, got %q", rest.HeaderSource, got)
	}
}

// nil Records от сервиса всё равно сериализуются в [].
func TestListGenres_NilRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCatalogReadService(ctrl)

	svc.EXPECT().
		Genres(gomock.Any(), "/genres?offset=10&limit=5", domain.GenreFilter{Offset: 10, Limit: 5}).
		Return(domain.Result{Source: domain.SourceUpstream})

	w := serve(newRouter(svc), http.MethodGet, "/genres?offset=10&limit=5")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("want 200 [], got %d %s", w.Code, w.Body.String())
	}
}

func TestListGenres_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCatalogReadService(ctrl)

	genres := []domain.Record{{{Key: "id", Value: "Q130232"}, {Key: "label", Value: "драма"}}}
	svc.EXPECT().
		Genres(gomock.Any(), "/genres?", domain.GenreFilter{Offset: 0, Limit: domain.DefaultLimit}).
		Return(domain.Result{Records: genres, Source: domain.SourceUpstream})

	w := serve(newRouter(svc), http.MethodGet, "/genres")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var got []map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0]["label"] != "драма" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestHandler_RequestTimeoutApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCatalogReadService(ctrl)

	svc.EXPECT().Genres(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ domain.GenreFilter) domain.Result {
			if _, ok := ctx.Deadline(); !ok {
				t.Errorf("handler context must have a deadline")
			}
			return domain.Result{Records: []domain.Record{}, Source: domain.SourceCache}
		})

	h := rest.NewHandler(svc, noopLogger{}, time.Second)
	w := serve(rest.NewRouter(h, rest.RouterConfig{}), http.MethodGet, "/genres")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}

func TestRequestID_EchoedOrGenerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCatalogReadService(ctrl)
	r := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("X-Request-ID", "rid-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "rid-42" {
		t.Fatalf("X-Request-ID: want rid-42, got %q", got)
	}

	w = serve(r, http.MethodGet, "/ping")
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("X-Request-ID must be generated")
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCatalogReadService(ctrl)
	r := newRouter(svc)

	req := httptest.NewRequest(http.MethodOptions, "/films", http.NoBody)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight: want 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Allow-Origin: got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("Allow-Credentials: got %q", got)
	}
}

func TestCORS_ForeignOriginRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCatalogReadService(ctrl)
	r := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("want 403, got %d", w.Code)
	}
}

func TestNoRoute_404(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := serve(newRouter(mocks.NewMockCatalogReadService(ctrl)), http.MethodGet, "/no-such-route")

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestMethodNotAllowed_405(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := serve(newRouter(mocks.NewMockCatalogReadService(ctrl)), http.MethodPost, "/films")

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d, body=%s", w.Code, w.Body.String())
	}
	if allow := w.Header().Get("Allow"); allow != "GET" {
		t.Fatalf("want Allow: GET, got %q", allow)
	}
}

func TestPing_200(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := serve(newRouter(mocks.NewMockCatalogReadService(ctrl)), http.MethodGet, "/ping")

	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("want 200 pong, got %d %s", w.Code, w.Body.String())
	}
}

func TestMetrics_200(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := serve(newRouter(mocks.NewMockCatalogReadService(ctrl)), http.MethodGet, "/metrics")

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	// Содержимое может меняться — достаточно проверить, что не пусто.
	if w.Body.Len() == 0 {
		t.Fatal("metrics body is empty")
	}
}
