package sparql

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
	"github.com/Gunvolt24/semfilms/pkg/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Проверка, что Client удовлетворяет интерфейсу ports.QueryExecutor.
var _ ports.QueryExecutor = (*Client)(nil)

const (
	resultsMediaType = "application/sparql-results+json"
	defaultUserAgent = "semfilms/1.0 (catalog service)"
	maxErrorBody     = 512
)

// ClientConfig — настройки клиента протокола SPARQL 1.1 поверх HTTP.
type ClientConfig struct {
	Endpoint  string
	Timeout   time.Duration // таймаут одного запроса вместе с чтением результата
	UserAgent string
	Transport http.RoundTripper // nil → http.DefaultTransport
}

// Client — исполнитель запросов к удалённому endpoint.
type Client struct {
	endpoint   string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewClient — конструктор; транспорт оборачивается otelhttp.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		timeout:    timeout,
		userAgent:  ua,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(base)},
		tracer:     telemetry.Tracer("internal/sparql"),
	}
}

// Execute — отправляет запрос (POST form, query=...) и возвращает однопроходный итератор строк.
// Соединение удерживается до Rows.Close; таймаут действует до конца итерации.
// Любая ошибка транспорта/протокола возвращается как *domain.UpstreamQueryError.
func (c *Client) Execute(ctx context.Context, query string) (ports.Rows, error) {
	ctx, span := c.tracer.Start(ctx, "sparql.execute",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("sparql.endpoint", c.endpoint)),
	)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)

	finish := func(err error) {
		cancel()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}

	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		err = domain.NewUpstreamQueryError("new request", err)
		finish(err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", resultsMediaType)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = domain.NewUpstreamQueryError("send", err)
		finish(err)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		err = domain.NewUpstreamQueryError("status",
			fmt.Errorf("endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))))
		finish(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	return newJSONRows(ctx, resp.Body, finish), nil
}
