package logger_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/semfilms/pkg/ctxmeta"
	"github.com/Gunvolt24/semfilms/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_AddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := logger.NewFromZap(zap.New(core))

	ctx := ctxmeta.WithRequestID(context.Background(), "req-7")
	ctx = ctxmeta.WithQueryKey(ctx, "/genres?offset=0")
	l.Warnf(ctx, "upstream failed shape=%s", "films")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Message != "upstream failed shape=films" || e.Level != zapcore.WarnLevel {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if got := e.ContextMap()["request_id"]; got != "req-7" {
		t.Fatalf("request_id: want req-7, got %v", got)
	}
	if got := e.ContextMap()["query_key"]; got != "/genres?offset=0" {
		t.Fatalf("query_key: want /genres?offset=0, got %v", got)
	}
}

func TestZapLogger_NoRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := logger.NewFromZap(zap.New(core))

	l.Infof(context.Background(), "hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	if _, ok := entries[0].ContextMap()["request_id"]; ok {
		t.Fatalf("request_id must be absent")
	}
}
