package usecase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
	"github.com/Gunvolt24/semfilms/internal/sparql"
	"github.com/Gunvolt24/semfilms/pkg/ctxmeta"
	"github.com/Gunvolt24/semfilms/pkg/httpx"
	"github.com/Gunvolt24/semfilms/pkg/metrics"
	"github.com/Gunvolt24/semfilms/pkg/telemetry"
	"github.com/Gunvolt24/semfilms/pkg/validate"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// Проверка, что CatalogService удовлетворяет интерфейсу CatalogReadService.
var _ ports.CatalogReadService = (*CatalogService)(nil)

var tracer = telemetry.Tracer("internal/usecase")

// CatalogOptions — параметры оркестратора.
type CatalogOptions struct {
	UpstreamTimeout time.Duration // 0 → только таймаут исполнителя
	SingleFlight    bool          // схлопывать одновременные промахи по одному ключу
}

// CatalogService — прикладная логика каталога: кэш → запрос к графу знаний → кэш (без знаний о транспорте).
type CatalogService struct {
	cache     ports.ResultCache
	builder   ports.QueryBuilder
	exec      ports.QueryExecutor
	log       ports.Logger
	validator ports.WarmUpValidator
	opts      CatalogOptions

	group singleflight.Group
}

// NewCatalogService — DI-конструктор.
func NewCatalogService(
	cache ports.ResultCache,
	builder ports.QueryBuilder,
	exec ports.QueryExecutor,
	log ports.Logger,
	validator ports.WarmUpValidator,
	opts CatalogOptions,
) *CatalogService {
	return &CatalogService{
		cache:     cache,
		builder:   builder,
		exec:      exec,
		log:       log,
		validator: validator,
		opts:      opts,
	}
}

// Films — список фильмов по фильтру; key — канонический ключ запроса.
func (s *CatalogService) Films(ctx context.Context, key string, filter domain.FilmFilter) domain.Result {
	return s.fetch(ctx, domain.ShapeFilms, key, domain.NormalizeLimit(filter.Limit), func() string { return s.builder.FilmQuery(filter) })
}

// Genres — страница списка жанров; key — канонический ключ запроса.
func (s *CatalogService) Genres(ctx context.Context, key string, filter domain.GenreFilter) domain.Result {
	return s.fetch(ctx, domain.ShapeGenres, key, domain.NormalizeLimit(filter.Limit), func() string { return s.builder.GenreQuery(filter) })
}

// WarmUp — выполнить запрос каталога по request URI (путь + query), чтобы результат попал в кэш.
// Ошибка: некорректный URI (validate.ErrInvalidWarmUp) или отказ upstream.
func (s *CatalogService) WarmUp(ctx context.Context, requestURI string) error {
	u, err := url.ParseRequestURI(requestURI)
	if err != nil {
		return fmt.Errorf("%w: %v", validate.ErrInvalidWarmUp, err)
	}
	shape, ok := domain.ShapeFromPath(u.Path)
	if !ok {
		return fmt.Errorf("%w: unsupported path %q", validate.ErrInvalidWarmUp, u.Path)
	}

	key := httpx.CanonicalKey(u)
	var res domain.Result
	switch shape {
	case domain.ShapeGenres:
		res = s.Genres(ctx, key, httpx.ParseGenreFilter(u.Query()))
	default:
		res = s.Films(ctx, key, httpx.ParseFilmFilter(u.Query()))
	}
	if res.Err != nil {
		return fmt.Errorf("warm-up %s: %w", key, res.Err)
	}

	s.log.Infof(ctx, "warm-up key=%s source=%s records=%d", key, res.Source, len(res.Records))
	return nil
}

// WarmUpFromMessage — прогрев по сообщению из Kafka (raw JSON {"request_uri": "..."}).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields, без хвоста);
//  2. доменная валидация (вернёт validate.ErrInvalidWarmUp при проблемах);
//  3. WarmUp: ошибка upstream возвращается как есть — сообщение будет обработано повторно.
func (s *CatalogService) WarmUpFromMessage(ctx context.Context, raw []byte) error {
	req, err := validate.WarmUpFromJSON(ctx, s.validator, raw)
	if err != nil {
		s.log.Warnf(ctx, "invalid warm-up message err=%v", err)
		return fmt.Errorf("validation failed: %w", err)
	}
	return s.WarmUp(ctx, req.RequestURI)
}

// fetch — общий алгоритм для обеих форм:
//  1. lookup в кэше (ошибка чтения = промах);
//  2. при промахе — построение, выполнение и проекция запроса (не больше limit записей, даже если endpoint вернул больше);
//  3. успешный результат сохраняется, при отказе upstream — пустой fallback без записи в кэш.
func (s *CatalogService) fetch(ctx context.Context, shape domain.Shape, key string, limit int, build func() string) domain.Result {
	ctx = ctxmeta.WithQueryKey(ctx, key)
	ctx, span := tracer.Start(ctx, "catalog.fetch", trace.WithAttributes(
		attribute.String("catalog.shape", string(shape)),
		attribute.String("catalog.key", key),
	))
	defer span.End()

	res := s.resolve(ctx, shape, key, limit, build)
	span.SetAttributes(
		attribute.String("catalog.source", string(res.Source)),
		attribute.Int("catalog.records", len(res.Records)),
	)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, "upstream fallback")
	}
	return res
}

func (s *CatalogService) resolve(ctx context.Context, shape domain.Shape, key string, limit int, build func() string) domain.Result {
	records, found, err := s.cache.Lookup(ctx, key)
	switch {
	case err != nil:
		s.log.Warnf(ctx, "cache lookup failed key=%s err=%v (treated as miss)", key, err)
	case found:
		s.log.Infof(ctx, "cache hit key=%s records=%d", key, len(records))
		return domain.Result{Records: records, Source: domain.SourceCache}
	default:
		s.log.Infof(ctx, "cache miss key=%s", key)
	}

	if !s.opts.SingleFlight {
		return s.load(ctx, shape, key, limit, build)
	}

	// Общий вызов не должен зависеть от отмены контекста первого запросившего.
	v, _, shared := s.group.Do(key, func() (any, error) {
		return s.load(context.WithoutCancel(ctx), shape, key, limit, build), nil
	})
	res := v.(domain.Result)
	if shared {
		res.Records = domain.CloneRecords(res.Records)
	}
	return res
}

// load — запрос к upstream и запись результата в кэш.
func (s *CatalogService) load(ctx context.Context, shape domain.Shape, key string, limit int, build func() string) domain.Result {
	queryCtx := ctx
	if s.opts.UpstreamTimeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, s.opts.UpstreamTimeout)
		defer cancel()
	}

	start := time.Now()
	records, err := sparql.Collect(queryCtx, s.exec, build(), shape.Fields(), limit)
	metrics.UpstreamQueryDuration.WithLabelValues(string(shape)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamQueries.WithLabelValues(string(shape), "failed").Inc()
		s.log.Errorf(ctx, "upstream query failed shape=%s key=%s took=%s err=%v", shape, key, time.Since(start), err)
		return domain.Result{Records: []domain.Record{}, Source: domain.SourceFallback, Err: err}
	}
	metrics.UpstreamQueries.WithLabelValues(string(shape), "ok").Inc()
	metrics.UpstreamRows.WithLabelValues(string(shape)).Add(float64(len(records)))

	if storeErr := s.cache.Store(ctx, key, records); storeErr != nil {
		s.log.Warnf(ctx, "cache store failed key=%s err=%v", key, storeErr)
	}

	s.log.Infof(ctx, "upstream fetch shape=%s key=%s records=%d took=%s", shape, key, len(records), time.Since(start))
	return domain.Result{Records: records, Source: domain.SourceUpstream}
}
