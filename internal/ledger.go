package internal

import (
	"time"

	"go.uber.org/zap"
)

// Ledger owns the customers, keyed by id and kept in insertion order.
// It is not safe for concurrent use.
type Ledger struct {
	customers map[string]*Customer
	order     []string
	clock     Clock
	logger    *zap.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the reference clock for ages and the last-year window.
func WithClock(c Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// NewLedger returns an empty ledger.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		customers: make(map[string]*Customer),
		clock:     NewRealClock(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddCustomer registers a new customer and returns its id. An empty id
// defaults to name. Existing ids are rejected and leave the ledger untouched.
func (l *Ledger) AddCustomer(name string, acquired any, kind CustomerKind, id string) (string, error) {
	if !kind.Valid() {
		return "", failf(ErrTypeMismatch, "customer %q: kind %s is not a valid customer kind", name, kind)
	}
	if id == "" {
		id = name
	}
	if _, exists := l.customers[id]; exists {
		return "", failf(ErrDuplicateKey, "customer with id %q already exists", id)
	}

	customer, err := newCustomer(kind, name, acquired, l.clock)
	if err != nil {
		return "", err
	}

	l.customers[id] = customer
	l.order = append(l.order, id)
	l.logger.Debug("customer added",
		zap.String("id", id),
		zap.String("name", name),
		zap.Stringer("kind", kind))
	return id, nil
}

// AddSale appends a sale to the customer with the given id.
func (l *Ledger) AddSale(id string, sale *Sale) error {
	customer, ok := l.customers[id]
	if !ok {
		return failf(ErrKeyNotFound, "no customer with id %q", id)
	}
	return customer.AddSale(sale)
}

// Customer returns the customer registered under id.
func (l *Ledger) Customer(id string) (*Customer, bool) {
	c, ok := l.customers[id]
	return c, ok
}

// Customers returns the customers in insertion order.
func (l *Ledger) Customers() []*Customer {
	result := make([]*Customer, 0, len(l.order))
	for _, id := range l.order {
		result = append(result, l.customers[id])
	}
	return result
}

// IDs returns the customer ids in insertion order.
func (l *Ledger) IDs() []string {
	return append([]string(nil), l.order...)
}

func (l *Ledger) Len() int {
	return len(l.order)
}

func (l *Ledger) has(id string) bool {
	_, ok := l.customers[id]
	return ok
}

// Entry pairs a customer with its ledger id.
type Entry struct {
	ID       string
	Customer *Customer
}

// Entries returns id/customer pairs in insertion order.
func (l *Ledger) Entries() []Entry {
	result := make([]Entry, 0, len(l.order))
	for _, id := range l.order {
		result = append(result, Entry{ID: id, Customer: l.customers[id]})
	}
	return result
}

// Now returns the ledger's reference time.
func (l *Ledger) Now() time.Time {
	return l.clock.Now()
}
