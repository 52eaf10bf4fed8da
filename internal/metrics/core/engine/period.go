package engine

import (
	"fmt"
	"time"

	"shop-analytics-service/internal/metrics/core/domain"
)

// truncate returns the UTC start of the period containing t.
func truncate(t time.Time, g domain.Granularity) (time.Time, error) {
	t = t.UTC()
	y, m, d := t.Date()

	switch g {
	case domain.GranularityDay:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case domain.GranularityWeek:
		// ISO weeks start on Monday
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, time.UTC), nil
	case domain.GranularityMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), nil
	case domain.GranularityQuarter:
		first := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, first, 1, 0, 0, 0, 0, time.UTC), nil
	case domain.GranularityYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown granularity %q", ErrInvalidInput, g)
	}
}

// periodKey labels a period start produced by truncate.
func periodKey(start time.Time, g domain.Granularity) string {
	switch g {
	case domain.GranularityWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case domain.GranularityMonth:
		return start.Format("2006-01")
	case domain.GranularityQuarter:
		return fmt.Sprintf("%04d-Q%d", start.Year(), (int(start.Month())-1)/3+1)
	case domain.GranularityYear:
		return start.Format("2006")
	default:
		return start.Format("2006-01-02")
	}
}

func validGranularity(g domain.Granularity) error {
	_, err := truncate(time.Time{}, g)
	return err
}
