package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/semfilms/internal/cache/memory"
	"github.com/Gunvolt24/semfilms/internal/domain"
	"github.com/Gunvolt24/semfilms/internal/ports/mocks"
	"github.com/Gunvolt24/semfilms/internal/testutil"
	"github.com/golang/mock/gomock"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func TestTiered_BackHitPromotedToFront(t *testing.T) {
	ctrl := gomock.NewController(t)
	back := mocks.NewMockResultStore(ctrl)
	front := memory.NewLRUCacheTTL(10, 0)
	c := memory.NewTiered(front, back, nopLogger{})
	ctx := context.Background()

	records := testutil.MakeGenreRecords(2)
	back.EXPECT().Lookup(gomock.Any(), "/genres?").Return(records, true, nil).Times(1)

	for i := 0; i < 3; i++ {
		got, ok, err := c.Lookup(ctx, "/genres?")
		if err != nil || !ok || len(got) != 2 {
			t.Fatalf("call %d: ok=%v err=%v len=%d", i, ok, err, len(got))
		}
	}
}

func TestTiered_MissAndBackError(t *testing.T) {
	ctrl := gomock.NewController(t)
	back := mocks.NewMockResultStore(ctrl)
	c := memory.NewTiered(memory.NewLRUCacheTTL(10, 0), back, nopLogger{})
	ctx := context.Background()

	back.EXPECT().Lookup(gomock.Any(), "a").Return(nil, false, nil)
	if _, ok, err := c.Lookup(ctx, "a"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	back.EXPECT().Lookup(gomock.Any(), "b").Return(nil, false, domain.ErrCacheRead)
	if _, ok, err := c.Lookup(ctx, "b"); ok || !errors.Is(err, domain.ErrCacheRead) {
		t.Fatalf("expected read error, got ok=%v err=%v", ok, err)
	}
}

func TestTiered_StoreWritesBoth(t *testing.T) {
	ctrl := gomock.NewController(t)
	back := mocks.NewMockResultStore(ctrl)
	front := memory.NewLRUCacheTTL(10, 0)
	c := memory.NewTiered(front, back, nopLogger{})
	ctx := context.Background()

	records := testutil.MakeFilmRecords(1)
	back.EXPECT().Store(gomock.Any(), "k", records).Return(nil)
	if err := c.Store(ctx, "k", records); err != nil {
		t.Fatalf("store: %v", err)
	}
	if _, ok, _ := front.Lookup(ctx, "k"); !ok {
		t.Fatalf("front must contain stored entry")
	}
}

func TestTiered_StoreBackFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	back := mocks.NewMockResultStore(ctrl)
	front := memory.NewLRUCacheTTL(10, 0)
	c := memory.NewTiered(front, back, nopLogger{})
	ctx := context.Background()

	back.EXPECT().Store(gomock.Any(), "k", gomock.Any()).Return(domain.ErrCachePersist)
	if err := c.Store(ctx, "k", testutil.MakeGenreRecords(1)); !errors.Is(err, domain.ErrCachePersist) {
		t.Fatalf("want persist error, got %v", err)
	}
	if _, ok, _ := front.Lookup(ctx, "k"); !ok {
		t.Fatalf("front keeps the entry even if back failed")
	}
}

func TestTiered_WarmFront(t *testing.T) {
	ctrl := gomock.NewController(t)
	back := mocks.NewMockResultStore(ctrl)
	front := memory.NewLRUCacheTTL(10, 0)
	c := memory.NewTiered(front, back, nopLogger{})
	ctx := context.Background()

	back.EXPECT().LastN(gomock.Any(), 2).Return([]*domain.CachedEntry{
		domain.NewCachedEntry("/films?", testutil.MakeFilmRecords(1)),
		domain.NewCachedEntry("/genres?", testutil.MakeGenreRecords(1)),
	}, nil)

	if err := c.WarmFront(ctx, 2); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if front.Len() != 2 {
		t.Fatalf("front len = %d", front.Len())
	}

	// n <= 0 — ничего не делаем
	if err := c.WarmFront(ctx, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back.EXPECT().LastN(gomock.Any(), 5).Return(nil, domain.ErrCacheRead)
	if err := c.WarmFront(ctx, 5); !errors.Is(err, domain.ErrCacheRead) {
		t.Fatalf("want read error, got %v", err)
	}
}
