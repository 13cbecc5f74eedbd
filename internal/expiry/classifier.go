package expiry

import "time"

// State is a product freshness bucket derived from days until expiry.
type State string

const (
	StateExpired  State = "expired"
	StateDueToday State = "due_today"
	StateImminent State = "imminent"
	StateSoon     State = "soon"
	StateFresh    State = "fresh"
)

// Classification is the derived freshness of one expiry date.
type Classification struct {
	State         State `json:"state"`
	DaysRemaining int   `json:"days_remaining"`
	UrgencyRank   int   `json:"urgency_rank"`
}

// DaysUntil returns the calendar-day difference between expiry and now.
// Both instants are truncated to their own calendar date first, so
// time-of-day never changes the answer. The subtraction runs on Unix
// seconds rather than a time.Duration, which keeps the count exact for
// arbitrarily distant dates.
func DaysUntil(expiry, now time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC).Unix()
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Unix()
	// Both instants are UTC midnights, so the difference is an exact
	// multiple of 86400 and the division is safe for negatives.
	return int((e - n) / 86400)
}

// Classify buckets an expiry date against now. It is total for any pair of
// dates; the caller validates dates before calling.
func Classify(expiry, now time.Time) Classification {
	days := DaysUntil(expiry, now)
	c := Classification{DaysRemaining: days}
	switch {
	case days < 0:
		c.State, c.UrgencyRank = StateExpired, 100
	case days == 0:
		c.State, c.UrgencyRank = StateDueToday, 90
	case days <= 3:
		c.State, c.UrgencyRank = StateImminent, 70
	case days <= 7:
		c.State, c.UrgencyRank = StateSoon, 50
	default:
		c.State, c.UrgencyRank = StateFresh, 20
	}
	return c
}
