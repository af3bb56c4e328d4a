package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfiguredHolidays_MergesWithStored(t *testing.T) {
	stored := []time.Time{
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}
	repo := &stubRateRepo{
		HolidaysInFn: func(_ context.Context, year int) ([]time.Time, error) {
			if year != 2026 {
				t.Fatalf("unexpected year %d", year)
			}
			return stored, nil
		},
	}
	// One duplicate of a stored date, one new, one from another year.
	overlay := NewConfiguredHolidays(repo, []time.Time{
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
	})

	holidays, err := overlay.HolidaysIn(context.Background(), 2026)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(holidays) != 2 {
		t.Fatalf("expected 2 holidays, got %d: %v", len(holidays), holidays)
	}
	if !holidays[0].Equal(stored[0]) {
		t.Errorf("expected stored holiday first, got %v", holidays[0])
	}
	if holidays[1].Day() != 17 {
		t.Errorf("expected configured holiday merged in, got %v", holidays[1])
	}
}

func TestConfiguredHolidays_NoConfiguredDates(t *testing.T) {
	repo := &stubRateRepo{
		HolidaysInFn: func(_ context.Context, _ int) ([]time.Time, error) {
			return []time.Time{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
		},
	}
	overlay := NewConfiguredHolidays(repo, nil)

	holidays, err := overlay.HolidaysIn(context.Background(), 2026)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(holidays) != 1 {
		t.Fatalf("expected 1 holiday, got %d", len(holidays))
	}
}

func TestConfiguredHolidays_RepoError(t *testing.T) {
	repo := &stubRateRepo{
		HolidaysInFn: func(_ context.Context, _ int) ([]time.Time, error) {
			return nil, errors.New("holidays unavailable")
		},
	}
	overlay := NewConfiguredHolidays(repo, []time.Time{time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)})

	if _, err := overlay.HolidaysIn(context.Background(), 2026); err == nil {
		t.Fatal("expected error, got nil")
	}
}
