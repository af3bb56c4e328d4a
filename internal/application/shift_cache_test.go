package application

import (
	"context"
	"testing"
	"time"

	"github.com/mes-platform/labor-service/pkg/metrics"

	"github.com/mes-platform/labor-service/internal/domain"
)

func TestShiftCache_CachesLookups(t *testing.T) {
	calls := 0
	repo := &stubShiftRepo{
		FindByCodeFn: func(_ context.Context, _, _ string) (*domain.ShiftDefinition, error) {
			calls++
			return &domain.ShiftDefinition{ShiftCode: "shift-a"}, nil
		},
	}
	cache := NewShiftCache(repo, time.Minute, metrics.New(metrics.DefaultConfig("test")))

	for i := 0; i < 3; i++ {
		shift, err := cache.FindByCode(context.Background(), "stage-1", "shift-a")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if shift == nil || shift.ShiftCode != "shift-a" {
			t.Fatalf("unexpected shift: %#v", shift)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one repository call, got %d", calls)
	}
}

func TestShiftCache_MissIsNotCached(t *testing.T) {
	calls := 0
	repo := &stubShiftRepo{
		FindByCodeFn: func(_ context.Context, _, _ string) (*domain.ShiftDefinition, error) {
			calls++
			return nil, nil
		},
	}
	cache := NewShiftCache(repo, time.Minute, nil)

	for i := 0; i < 2; i++ {
		shift, err := cache.FindByCode(context.Background(), "stage-1", "missing")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if shift != nil {
			t.Fatalf("unexpected shift: %#v", shift)
		}
	}
	if calls != 2 {
		t.Fatalf("expected two repository calls, got %d", calls)
	}
}

func TestShiftCache_InvalidateForcesReload(t *testing.T) {
	calls := 0
	repo := &stubShiftRepo{
		FindByCodeFn: func(_ context.Context, _, _ string) (*domain.ShiftDefinition, error) {
			calls++
			return &domain.ShiftDefinition{ShiftCode: "shift-a"}, nil
		},
	}
	cache := NewShiftCache(repo, time.Minute, nil)

	if _, err := cache.FindByCode(context.Background(), "stage-1", "shift-a"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	cache.Invalidate("stage-1", "shift-a")
	if _, err := cache.FindByCode(context.Background(), "stage-1", "shift-a"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected two repository calls, got %d", calls)
	}
}
