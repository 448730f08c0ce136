package matching

import (
	"sort"
	"time"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// urgencyWindowDays is the calendar-day threshold at or below which an open
// opportunity is flagged urgent in listings.
const urgencyWindowDays = 7

// DaysUntil returns the whole calendar-day difference between now and
// deadline, ignoring the time-of-day component of both.
func DaysUntil(deadline, now time.Time) int {
	d := truncate(deadline)
	n := truncate(now)
	return int(d.Sub(n).Hours() / 24)
}

func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsUrgent reports whether an opportunity deadline falls within the urgency
// window: at most 7 calendar days away and not already past. A deadline
// exactly 7 days out is urgent; 8 days out is not. This is a display
// derivation only and is never stored.
func IsUrgent(deadline, now time.Time) bool {
	days := DaysUntil(deadline, now)
	return days >= 0 && days <= urgencyWindowDays
}

// SortNewestFirst orders opportunities by created_at descending. Ties are
// broken by id descending so the order is deterministic across fetches.
func SortNewestFirst(opps []*domain.Opportunity) {
	sort.SliceStable(opps, func(i, j int) bool {
		if !opps[i].CreatedAt.Equal(opps[j].CreatedAt) {
			return opps[i].CreatedAt.After(opps[j].CreatedAt)
		}
		return opps[i].ID > opps[j].ID
	})
}
