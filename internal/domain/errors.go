package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamQuery — удалённый endpoint недоступен, вернул ошибку протокола или таймаут.
	ErrUpstreamQuery = errors.New("upstream query failed")
	// ErrCachePersist — не удалось записать результат в хранилище кэша.
	ErrCachePersist = errors.New("cache persist failed")
	// ErrCacheRead — не удалось прочитать запись из хранилища кэша.
	ErrCacheRead = errors.New("cache read failed")
)

// UpstreamQueryError — ошибка выполнения запроса к удалённому endpoint.
type UpstreamQueryError struct {
	Op    string
	Cause error
}

// NewUpstreamQueryError — оборачивает причину; повторно не оборачивает UpstreamQueryError.
func NewUpstreamQueryError(op string, cause error) error {
	var uqe *UpstreamQueryError
	if errors.As(cause, &uqe) {
		return cause
	}
	return &UpstreamQueryError{Op: op, Cause: cause}
}

func (e *UpstreamQueryError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: %v", ErrUpstreamQuery, e.Cause)
	}
	return fmt.Sprintf("%v: %s: %v", ErrUpstreamQuery, e.Op, e.Cause)
}

func (e *UpstreamQueryError) Unwrap() []error { return []error{ErrUpstreamQuery, e.Cause} }
