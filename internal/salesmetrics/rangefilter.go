package salesmetrics

import (
	"time"

	"github.com/lucasmoreno/pharmadash-backend/pkg/enums"
	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

// FilterByRange returns the orders whose date falls inside the named
// reporting window, evaluated against the provided clock instant. The
// filter is stable, never mutates its input, and treats any unrecognized
// range key as the permissive fromBeginning default.
func FilterByRange(orders []types.Order, rng enums.RangeKey, now time.Time) []types.Order {
	cutoff, unbounded := rangeCutoff(rng, now)
	if unbounded {
		out := make([]types.Order, len(orders))
		copy(out, orders)
		return out
	}

	out := make([]types.Order, 0, len(orders))
	if rng == enums.RangeKeyToday {
		for _, order := range orders {
			if sameCalendarDay(order.Date, now) {
				out = append(out, order)
			}
		}
		return out
	}

	for _, order := range orders {
		if !order.Date.Before(cutoff) {
			out = append(out, order)
		}
	}
	return out
}

// rangeCutoff resolves the inclusive lower bound for a window. The boolean
// result marks windows with no bound at all.
func rangeCutoff(rng enums.RangeKey, now time.Time) (time.Time, bool) {
	today := startOfDay(now)
	switch rng {
	case enums.RangeKeyToday:
		return today, false
	case enums.RangeKeyThisWeek:
		// Week starts on Sunday, matching the upstream weekday-index math.
		return today.AddDate(0, 0, -int(now.Weekday())), false
	case enums.RangeKeyPastTwoWeeks:
		return today.AddDate(0, 0, -14), false
	case enums.RangeKeyThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), false
	default:
		return time.Time{}, true
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
