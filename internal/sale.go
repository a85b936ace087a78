package internal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one transaction. It is immutable once constructed.
type Sale struct {
	id       string
	kind     SaleKind
	item     string
	date     time.Time
	price    decimal.Decimal
	quantity int

	// subscription only
	expiration *time.Time
	// upgrade only; borrowed, the referenced sale is owned elsewhere
	prev *Sale
}

type saleParams struct {
	id         string
	quantity   int
	expiration any
	prev       *Sale
	hasPrev    bool
}

// SaleOption customizes NewSale.
type SaleOption func(*saleParams)

// WithQuantity sets the quantity (default 1).
func WithQuantity(n int) SaleOption {
	return func(p *saleParams) { p.quantity = n }
}

// WithExpiration sets the expiration of a subscription sale. Accepts a
// time.Time or an ISO-8601 string.
func WithExpiration(date any) SaleOption {
	return func(p *saleParams) { p.expiration = date }
}

// WithPrevSale links an upgrade sale to the sale it upgrades.
func WithPrevSale(prev *Sale) SaleOption {
	return func(p *saleParams) {
		p.prev = prev
		p.hasPrev = true
	}
}

// WithSaleID overrides the generated sale id.
func WithSaleID(id string) SaleOption {
	return func(p *saleParams) { p.id = id }
}

// NewSale validates its inputs and returns a sale of the given kind.
func NewSale(kind SaleKind, item string, date any, price decimal.Decimal, opts ...SaleOption) (*Sale, error) {
	if !kind.Valid() {
		return nil, failf(ErrTypeMismatch, "cannot construct a sale of kind %s", kind)
	}

	p := saleParams{quantity: 1}
	for _, opt := range opts {
		opt(&p)
	}

	d, err := ParseDate(date)
	if err != nil {
		return nil, wrap(err, "sale %q date", item)
	}
	if p.quantity < 1 {
		return nil, failf(ErrInvariantViolation, "sale %q: quantity must be at least 1, got %d", item, p.quantity)
	}
	if price.IsNegative() {
		return nil, failf(ErrInvariantViolation, "sale %q: price must not be negative, got %s", item, price)
	}

	s := &Sale{
		id:       p.id,
		kind:     kind,
		item:     item,
		date:     d,
		price:    price,
		quantity: p.quantity,
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}

	if p.expiration != nil {
		if kind != SaleSubscription {
			return nil, failf(ErrTypeMismatch, "sale %q: expiration only applies to subscription sales", item)
		}
		exp, err := ParseDate(p.expiration)
		if err != nil {
			return nil, wrap(err, "sale %q expiration", item)
		}
		s.expiration = &exp
	}

	if p.hasPrev {
		if kind != SaleUpgrade {
			return nil, failf(ErrTypeMismatch, "sale %q: previous sale only applies to upgrade sales", item)
		}
		s.prev = p.prev
	}

	return s, nil
}

// NewStandaloneSale constructs a standalone product sale.
func NewStandaloneSale(item string, date any, price decimal.Decimal, opts ...SaleOption) (*Sale, error) {
	return NewSale(SaleStandalone, item, date, price, opts...)
}

// NewSubscriptionSale constructs a subscription sale. expiration may be nil.
func NewSubscriptionSale(item string, date any, price decimal.Decimal, expiration any, opts ...SaleOption) (*Sale, error) {
	if expiration != nil {
		opts = append(opts, WithExpiration(expiration))
	}
	return NewSale(SaleSubscription, item, date, price, opts...)
}

// NewUpgradeSale constructs an upgrade sale. prev may be nil.
func NewUpgradeSale(item string, date any, price decimal.Decimal, prev *Sale, opts ...SaleOption) (*Sale, error) {
	if prev != nil {
		opts = append(opts, WithPrevSale(prev))
	}
	return NewSale(SaleUpgrade, item, date, price, opts...)
}

func (s *Sale) ID() string             { return s.id }
func (s *Sale) Kind() SaleKind         { return s.kind }
func (s *Sale) Item() string           { return s.item }
func (s *Sale) Date() time.Time        { return s.date }
func (s *Sale) Price() decimal.Decimal { return s.price }
func (s *Sale) Quantity() int          { return s.quantity }

// Expiration returns the subscription expiration, if any.
func (s *Sale) Expiration() (time.Time, bool) {
	if s.expiration == nil {
		return time.Time{}, false
	}
	return *s.expiration, true
}

// PrevSale returns the sale an upgrade refers to, or nil.
func (s *Sale) PrevSale() *Sale {
	return s.prev
}

// String renders the report form, e.g. "8x Anvil [S]" or
// "Dynamite [R] (exp: 2025-03-20)".
func (s *Sale) String() string {
	out := fmt.Sprintf("%s [%s]", s.item, s.kind.Code())
	if s.quantity > 1 {
		out = fmt.Sprintf("%dx %s", s.quantity, out)
	}
	if s.kind == SaleSubscription && s.expiration != nil {
		out += fmt.Sprintf(" (exp: %s)", s.expiration.Format("2006-01-02"))
	}
	return out
}
