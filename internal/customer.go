package internal

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Customer is one account and the sales it owns, in insertion order.
type Customer struct {
	kind     CustomerKind
	name     string
	acquired time.Time
	sales    []*Sale
	clock    Clock
}

// NewCustomer returns an empty customer of the given kind. acquired is a
// time.Time or an ISO-8601 string.
func NewCustomer(kind CustomerKind, name string, acquired any) (*Customer, error) {
	return newCustomer(kind, name, acquired, NewRealClock())
}

func newCustomer(kind CustomerKind, name string, acquired any, clock Clock) (*Customer, error) {
	if !kind.Valid() {
		return nil, failf(ErrTypeMismatch, "cannot construct a customer of kind %s", kind)
	}
	date, err := ParseDate(acquired)
	if err != nil {
		return nil, wrap(err, "customer %q acquisition date", name)
	}
	return &Customer{
		kind:     kind,
		name:     name,
		acquired: date,
		clock:    clock,
	}, nil
}

func (c *Customer) Kind() CustomerKind  { return c.kind }
func (c *Customer) Name() string        { return c.name }
func (c *Customer) Acquired() time.Time { return c.acquired }
func (c *Customer) SaleCount() int      { return len(c.sales) }

// Sales returns a copy of the owned sales in insertion order.
func (c *Customer) Sales() []*Sale {
	return append([]*Sale(nil), c.sales...)
}

func (c *Customer) now() time.Time {
	return c.clock.Now()
}

// AddSale appends a sale. Cash customers only take non-subscription sales.
func (c *Customer) AddSale(sale *Sale) error {
	if sale == nil {
		return failf(ErrTypeMismatch, "customer %q: sale is nil", c.name)
	}
	if c.kind == CustomerCash && sale.Kind() == SaleSubscription {
		return failf(ErrInvariantViolation, "customer %q: cash customers cannot hold subscription sale %q", c.name, sale.Item())
	}
	c.sales = append(c.sales, sale)
	return nil
}

// Age returns the whole days elapsed since acquisition.
func (c *Customer) Age() int {
	return int(math.Floor(c.now().Sub(c.acquired).Hours() / 24))
}

// FindSales returns the sales dated within [from, to], both inclusive, in
// insertion order. A zero from means the Unix epoch; a zero to means now.
func (c *Customer) FindSales(from, to time.Time) []*Sale {
	if from.IsZero() {
		from = time.Unix(0, 0).UTC()
	}
	if to.IsZero() {
		to = c.now()
	}

	var result []*Sale
	for _, s := range c.sales {
		if !s.Date().Before(from) && !s.Date().After(to) {
			result = append(result, s)
		}
	}
	return result
}

// RecentSales returns the sales from the last calendar year.
func (c *Customer) RecentSales() []*Sale {
	now := c.now()
	return c.FindSales(oneYearBefore(now), now)
}

// SummaryLine renders the customer's report entry without a trailing newline:
//
//	Acme, Inc [R], Duration: 3.0 years, Purchases in the last year:
//	    8x Anvil [S]
func (c *Customer) SummaryLine() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s], Duration: %.1f years, Purchases in the last year:",
		c.name, c.kind.Code(), float64(c.Age())/365)

	recent := c.RecentSales()
	if len(recent) == 0 {
		b.WriteString("\n    (none)")
		return b.String()
	}
	for _, s := range recent {
		b.WriteString("\n    ")
		b.WriteString(s.String())
	}
	return b.String()
}
