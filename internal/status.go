package internal

import "time"

type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusExpired  SubscriptionStatus = "expired"
	StatusInactive SubscriptionStatus = "inactive"

	// StatusNone is reported for standalone and upgrade sales, which have no
	// running period.
	StatusNone SubscriptionStatus = "none"
)

// DetermineStatus reports whether a subscription sale is still running at
// now. A subscription without an expiration never lapses. Other sale kinds
// get StatusNone.
func DetermineStatus(s *Sale, now time.Time) SubscriptionStatus {
	if s.Kind() != SaleSubscription {
		return StatusNone
	}
	if s.Date().After(now) {
		// sold in the future relative to the reference date
		return StatusExpired
	}
	exp, ok := s.Expiration()
	if !ok || exp.After(now) {
		return StatusActive
	}
	return StatusExpired
}

// ActiveSubscriptions returns the customer's subscription sales that are
// running now.
func (c *Customer) ActiveSubscriptions() []*Sale {
	now := c.now()
	var result []*Sale
	for _, s := range c.sales {
		if DetermineStatus(s, now) == StatusActive {
			result = append(result, s)
		}
	}
	return result
}

// Status is active when the customer bought something in the last year or
// still holds a running subscription.
func (c *Customer) Status() SubscriptionStatus {
	if len(c.RecentSales()) > 0 || len(c.ActiveSubscriptions()) > 0 {
		return StatusActive
	}
	return StatusInactive
}
