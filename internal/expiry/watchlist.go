package expiry

import (
	"sort"
	"time"

	"github.com/gleviosaa/expireTrack/internal/models"
)

// Alert pairs a product with its freshness classification.
type Alert struct {
	Product        models.Product `json:"product"`
	Classification `json:"classification"`
}

// Watchlist returns the products that are expired or expiring within seven
// days, most urgent first. Fresh products are excluded. Ties on days
// remaining are broken by product id so the order is stable across reads.
// The list is derived on every call; nothing is cached or acknowledged.
func Watchlist(products []models.Product, now time.Time) []Alert {
	alerts := make([]Alert, 0, len(products))
	for _, p := range products {
		c := Classify(p.ExpiryDate, now)
		if c.State == StateFresh {
			continue
		}
		alerts = append(alerts, Alert{Product: p, Classification: c})
	}
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].DaysRemaining != alerts[j].DaysRemaining {
			return alerts[i].DaysRemaining < alerts[j].DaysRemaining
		}
		return alerts[i].Product.ID.String() < alerts[j].Product.ID.String()
	})
	return alerts
}
