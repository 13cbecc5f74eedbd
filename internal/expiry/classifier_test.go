package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyBoundaries(t *testing.T) {
	now := date(2025, time.March, 10)

	tests := []struct {
		name     string
		expiry   time.Time
		wantDays int
		wantSt   State
		wantRank int
	}{
		{"yesterday", date(2025, time.March, 9), -1, StateExpired, 100},
		{"today", date(2025, time.March, 10), 0, StateDueToday, 90},
		{"tomorrow", date(2025, time.March, 11), 1, StateImminent, 70},
		{"three days", date(2025, time.March, 13), 3, StateImminent, 70},
		{"four days", date(2025, time.March, 14), 4, StateSoon, 50},
		{"seven days", date(2025, time.March, 17), 7, StateSoon, 50},
		{"eight days", date(2025, time.March, 18), 8, StateFresh, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.expiry, now)
			assert.Equal(t, tt.wantDays, got.DaysRemaining)
			assert.Equal(t, tt.wantSt, got.State)
			assert.Equal(t, tt.wantRank, got.UrgencyRank)
		})
	}
}

func TestClassifyDistantDates(t *testing.T) {
	now := date(2025, time.March, 10)

	past := Classify(date(1990, time.January, 1), now)
	assert.Equal(t, StateExpired, past.State)
	assert.Negative(t, past.DaysRemaining)

	future := Classify(date(2100, time.January, 1), now)
	assert.Equal(t, StateFresh, future.State)
	assert.Greater(t, future.DaysRemaining, 7)
}

func TestDaysUntilExactForVeryDistantDates(t *testing.T) {
	now := date(2025, time.March, 10)

	// Well past the ~292-year range a time.Duration can represent.
	assert.Equal(t, 200000, DaysUntil(now.AddDate(0, 0, 200000), now))
	assert.Equal(t, -200000, DaysUntil(now.AddDate(0, 0, -200000), now))
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	expiry := time.Date(2025, time.March, 12, 23, 59, 59, 0, time.UTC)

	morning := time.Date(2025, time.March, 10, 0, 0, 1, 0, time.UTC)
	evening := time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, Classify(expiry, morning).DaysRemaining)
	assert.Equal(t, 2, Classify(expiry, evening).DaysRemaining)
	assert.Equal(t, Classify(expiry, morning), Classify(expiry, evening))
}

func TestClassifyPartitionHasNoGaps(t *testing.T) {
	now := date(2025, time.June, 1)
	seen := map[State]bool{}
	for days := -10; days <= 10; days++ {
		c := Classify(now.AddDate(0, 0, days), now)
		assert.Equal(t, days, c.DaysRemaining)
		assert.NotEmpty(t, c.State)
		assert.Greater(t, c.UrgencyRank, 0)
		seen[c.State] = true
	}
	assert.Len(t, seen, 5)
}
