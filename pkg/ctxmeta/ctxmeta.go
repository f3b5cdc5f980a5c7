// Пакет ctxmeta — метаданные запроса, которые прокидываются через context.Context:
// request_id, канонический ключ запроса каталога, trace/span.
// HTTP-слой, консюмер и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyQueryKey  ctxKey = "query_key" // канонический ключ запроса каталога (path?query)
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithQueryKey кладёт канонический ключ запроса в контекст.
func WithQueryKey(ctx context.Context, key string) context.Context {
	return withString(ctx, KeyQueryKey, key)
}

// QueryKeyFromContext достаёт канонический ключ запроса.
func QueryKeyFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyQueryKey)
}

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

// Пустое значение считаем отсутствующим.
func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
