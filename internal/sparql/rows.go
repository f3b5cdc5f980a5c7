package sparql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports"
)

// Проверка, что jsonRows удовлетворяет интерфейсу ports.Rows.
var _ ports.Rows = (*jsonRows)(nil)

// jsonRows — потоковый разбор application/sparql-results+json:
// строки массива results.bindings декодируются по одной, без чтения всего тела в память.
type jsonRows struct {
	ctx     context.Context
	body    io.ReadCloser
	dec     *json.Decoder
	onClose func(err error)

	vars    []string
	cur     domain.Row
	err     error
	started bool
	done    bool

	closeOnce sync.Once
}

func newJSONRows(ctx context.Context, body io.ReadCloser, onClose func(err error)) *jsonRows {
	return &jsonRows{
		ctx:     ctx,
		body:    body,
		dec:     json.NewDecoder(body),
		onClose: onClose,
	}
}

// Next — переходит к следующей строке; false по окончании результата или при ошибке.
func (r *jsonRows) Next() bool {
	if r.done || r.err != nil {
		return false
	}
	if !r.started {
		r.started = true
		if err := r.seekBindings(); err != nil {
			r.fail(err)
			return false
		}
	}

	if !r.dec.More() {
		// закрывающая ']' массива bindings
		if _, err := r.dec.Token(); err != nil {
			r.fail(fmt.Errorf("read bindings end: %w", err))
			return false
		}
		r.done = true
		_ = r.Close()
		return false
	}

	var row domain.Row
	if err := r.dec.Decode(&row); err != nil {
		r.fail(fmt.Errorf("decode row: %w", err))
		return false
	}
	r.cur = row
	return true
}

// Row — текущая строка.
func (r *jsonRows) Row() domain.Row { return r.cur }

// Err — ошибка итерации (обёрнута в UpstreamQueryError).
func (r *jsonRows) Err() error { return r.err }

// Vars — переменные из head.vars (если заголовок пришёл до bindings).
func (r *jsonRows) Vars() []string { return r.vars }

// Close — закрывает тело ответа; безопасно вызывать повторно.
func (r *jsonRows) Close() error {
	var closeErr error
	r.closeOnce.Do(func() {
		closeErr = r.body.Close()
		if r.onClose != nil {
			r.onClose(r.err)
		}
	})
	return closeErr
}

func (r *jsonRows) fail(err error) {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	// таймаут/отмена запроса важнее ошибки чтения тела
	if cErr := r.ctx.Err(); cErr != nil {
		err = fmt.Errorf("%w: %w", cErr, err)
	}
	r.err = domain.NewUpstreamQueryError("read results", err)
	r.cur = nil
	_ = r.Close()
}

// seekBindings — позиционирует декодер на первом элементе results.bindings.
func (r *jsonRows) seekBindings() error {
	if err := expectDelim(r.dec, '{'); err != nil {
		return err
	}
	for r.dec.More() {
		key, err := stringToken(r.dec)
		if err != nil {
			return err
		}
		switch key {
		case "head":
			var head struct {
				Vars []string `json:"vars"`
			}
			if err := r.dec.Decode(&head); err != nil {
				return fmt.Errorf("decode head: %w", err)
			}
			r.vars = head.Vars
		case "results":
			if err := expectDelim(r.dec, '{'); err != nil {
				return err
			}
			for r.dec.More() {
				rkey, err := stringToken(r.dec)
				if err != nil {
					return err
				}
				if rkey == "bindings" {
					return expectDelim(r.dec, '[')
				}
				if err := skipValue(r.dec); err != nil {
					return err
				}
			}
			return errors.New("results object has no bindings")
		default:
			if err := skipValue(r.dec); err != nil {
				return err
			}
		}
	}
	return errors.New("response has no results object")
}

// ------вспомогательные функции------

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("unexpected token %v, want %q", tok, want)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("unexpected token %v, want object key", tok)
	}
	return s, nil
}

func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	return dec.Decode(&raw)
}
