package validate

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWarmUpFromJSON_OK(t *testing.T) {
	ctx := context.Background()
	validator := NewWarmUpValidator()

	req, err := WarmUpFromJSON(ctx, validator, []byte(warmUpJSON("/genres?limit=5")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.RequestURI != "/genres?limit=5" {
		t.Fatalf("unexpected request_uri: %s", req.RequestURI)
	}
}

func TestWarmUpFromJSON_UnknownField(t *testing.T) {
	ctx := context.Background()
	validator := NewWarmUpValidator()

	_, err := WarmUpFromJSON(ctx, validator, []byte(`{"unknown":"x","request_uri":"/films"}`))
	if err == nil || !strings.Contains(err.Error(), "invalid json") {
		t.Fatalf("expected invalid json error, got: %v", err)
	}
	if !errors.Is(err, ErrInvalidWarmUp) {
		t.Fatalf("decode errors must wrap ErrInvalidWarmUp: %v", err)
	}
}

func TestWarmUpFromJSON_TrailingData(t *testing.T) {
	ctx := context.Background()
	validator := NewWarmUpValidator()

	raw := warmUpJSON("/films") + "{}"
	_, err := WarmUpFromJSON(ctx, validator, []byte(raw))
	if err == nil || !strings.Contains(err.Error(), "trailing data") {
		t.Fatalf("expected trailing data error, got: %v", err)
	}
}

func TestWarmUpFromJSON_DomainError(t *testing.T) {
	ctx := context.Background()
	validator := NewWarmUpValidator()

	_, err := WarmUpFromJSON(ctx, validator, []byte(warmUpJSON("/unknown")))
	if !errors.Is(err, ErrInvalidWarmUp) {
		t.Fatalf("expected domain validation error, got %v", err)
	}
}

// ---- helpers ----

func warmUpJSON(uri string) string {
	return `{
  "request_uri": "` + uri + `"
}`
}
