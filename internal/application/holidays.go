package application

import (
	"context"
	"time"

	"github.com/mes-platform/labor-service/internal/domain"
)

// ConfiguredHolidays layers statically configured holiday dates over a rate
// repository, so deployments without a populated holiday collection still
// count working days correctly. Stored and configured dates are merged per
// calendar day.
type ConfiguredHolidays struct {
	domain.RateRepository
	dates []time.Time
}

// NewConfiguredHolidays wraps repo with the given extra holiday dates.
func NewConfiguredHolidays(repo domain.RateRepository, dates []time.Time) *ConfiguredHolidays {
	return &ConfiguredHolidays{RateRepository: repo, dates: dates}
}

// HolidaysIn returns the stored holidays for the year merged with the
// configured ones.
func (c *ConfiguredHolidays) HolidaysIn(ctx context.Context, year int) ([]time.Time, error) {
	stored, err := c.RateRepository.HolidaysIn(ctx, year)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stored))
	merged := make([]time.Time, 0, len(stored)+len(c.dates))
	for _, d := range stored {
		key := d.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			merged = append(merged, d)
		}
	}
	for _, d := range c.dates {
		if d.Year() != year {
			continue
		}
		key := d.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			merged = append(merged, d)
		}
	}
	return merged, nil
}
