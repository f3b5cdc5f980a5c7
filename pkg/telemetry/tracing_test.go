package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/semfilms/pkg/telemetry"
	"go.opentelemetry.io/otel"
)

func TestClampRatio(t *testing.T) {
	cases := map[float64]float64{-0.5: 0, 0: 0, 0.25: 0.25, 1: 1, 3: 1}
	for in, want := range cases {
		if got := telemetry.ClampRatio(in); got != want {
			t.Fatalf("ClampRatio(%v) = %v, want %v", in, got, want)
		}
	}
}

// Экспортёр не подключается к коллектору при создании; без спанов Shutdown проходит сразу.
func TestSetupTracing_InstallsGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := telemetry.SetupTracing(context.Background(), telemetry.Config{
		ServiceName: "semfilms-test",
		Endpoint:    "127.0.0.1:1",
		SampleRatio: 0,
	})
	if err != nil {
		t.Fatalf("SetupTracing: %v", err)
	}
	if otel.GetTracerProvider() == prev {
		t.Fatalf("global tracer provider was not replaced")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestTracer_Named(t *testing.T) {
	if telemetry.Tracer("sparql") == nil {
		t.Fatal("nil tracer")
	}
}
