package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
	"github.com/Gunvolt24/semfilms/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// HeaderSource — заголовок ответа с источником данных: cache | upstream | fallback.
const HeaderSource = "X-Catalog-Source"

// Handler — HTTP-адаптер над сервисом каталога.
type Handler struct {
	service    ports.CatalogReadService
	log        ports.Logger
	reqTimeout time.Duration
}

// NewHandler — reqTimeout <= 0 означает «без собственного таймаута» (действует только таймаут upstream).
func NewHandler(service ports.CatalogReadService, log ports.Logger, reqTimeout time.Duration) *Handler {
	return &Handler{service: service, log: log, reqTimeout: reqTimeout}
}

// listFilms — GET /films?genres=Q1,Q2&startDate=...&endDate=...&limit=N
func (h *Handler) listFilms(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	filter := httpx.ParseFilmFilter(c.Request.URL.Query())
	res := h.service.Films(ctx, httpx.CanonicalKey(c.Request.URL), filter)
	h.respond(c, res)
}

// listGenres — GET /genres?offset=N&limit=M
func (h *Handler) listGenres(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	filter := httpx.ParseGenreFilter(c.Request.URL.Query())
	res := h.service.Genres(ctx, httpx.CanonicalKey(c.Request.URL), filter)
	h.respond(c, res)
}

// respond — отказ upstream не превращается в 5xx: клиент получает 200 и пустой массив,
// источник виден в заголовке.
func (h *Handler) respond(c *gin.Context, res domain.Result) {
	records := res.Records
	if records == nil {
		records = []domain.Record{}
	}
	if res.Degraded() {
		h.log.Warnf(c.Request.Context(), "serving empty fallback path=%s err=%v", c.Request.URL.Path, res.Err)
	}
	c.Header(HeaderSource, string(res.Source))
	c.JSON(http.StatusOK, records)
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.reqTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.reqTimeout)
}
