package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSale_Defaults(t *testing.T) {
	s, err := NewStandaloneSale("Anvil", "2019-04-01", price("29.99"))
	require.NoError(t, err)

	assert.Equal(t, SaleStandalone, s.Kind())
	assert.Equal(t, "Anvil", s.Item())
	assert.Equal(t, date("2019-04-01"), s.Date())
	assert.Equal(t, 1, s.Quantity())
	assert.True(t, price("29.99").Equal(s.Price()))
	assert.NotEmpty(t, s.ID())
	assert.Nil(t, s.PrevSale())
	_, hasExp := s.Expiration()
	assert.False(t, hasExp)
}

func TestNewSale_AcceptsTimeValues(t *testing.T) {
	when := time.Date(2019, 4, 1, 13, 30, 0, 0, time.UTC)
	s, err := NewSubscriptionSale("Dynamite", when, price("1.21"), when.AddDate(6, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, when, s.Date())
	exp, ok := s.Expiration()
	require.True(t, ok)
	assert.Equal(t, 2025, exp.Year())
}

func TestNewSale_UpgradeReferencesPriorSale(t *testing.T) {
	base, err := NewStandaloneSale("Anvil", "2019-04-01", price("29.99"), WithSaleID("anvil-1"))
	require.NoError(t, err)

	up, err := NewUpgradeSale("Heavier Anvil", "2019-05-01", price("5"), base)
	require.NoError(t, err)

	assert.Equal(t, SaleUpgrade, up.Kind())
	assert.Same(t, base, up.PrevSale())
	assert.Equal(t, "anvil-1", up.PrevSale().ID())

	noPrev, err := NewUpgradeSale("Fuse", "2019-05-01", price("0.01"), nil)
	require.NoError(t, err)
	assert.Nil(t, noPrev.PrevSale())
}

func TestNewSale_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Sale, error)
		errIs error
	}{
		{
			name: "unknown kind",
			build: func() (*Sale, error) {
				return NewSale(SaleUnknown, "x", "2019-01-01", price("1"))
			},
			errIs: ErrTypeMismatch,
		},
		{
			name: "out of range kind",
			build: func() (*Sale, error) {
				return NewSale(SaleKind(42), "x", "2019-01-01", price("1"))
			},
			errIs: ErrTypeMismatch,
		},
		{
			name: "date of wrong type",
			build: func() (*Sale, error) {
				return NewStandaloneSale("x", 20190101, price("1"))
			},
			errIs: ErrTypeMismatch,
		},
		{
			name: "unparseable date",
			build: func() (*Sale, error) {
				return NewStandaloneSale("x", "01/02/2019", price("1"))
			},
			errIs: ErrFormat,
		},
		{
			name: "unparseable expiration",
			build: func() (*Sale, error) {
				return NewSubscriptionSale("x", "2019-01-01", price("1"), "never")
			},
			errIs: ErrFormat,
		},
		{
			name: "expiration on standalone sale",
			build: func() (*Sale, error) {
				return NewStandaloneSale("x", "2019-01-01", price("1"), WithExpiration("2020-01-01"))
			},
			errIs: ErrTypeMismatch,
		},
		{
			name: "previous sale on subscription",
			build: func() (*Sale, error) {
				return NewSale(SaleSubscription, "x", "2019-01-01", price("1"), WithPrevSale(nil))
			},
			errIs: ErrTypeMismatch,
		},
		{
			name: "zero quantity",
			build: func() (*Sale, error) {
				return NewStandaloneSale("x", "2019-01-01", price("1"), WithQuantity(0))
			},
			errIs: ErrInvariantViolation,
		},
		{
			name: "negative price",
			build: func() (*Sale, error) {
				return NewStandaloneSale("x", "2019-01-01", price("-0.01"))
			},
			errIs: ErrInvariantViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.build()
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestSale_String(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Sale, error)
		want  string
	}{
		{
			name: "single standalone",
			build: func() (*Sale, error) {
				return NewStandaloneSale("Anvil", "2019-04-01", price("29.99"))
			},
			want: "Anvil [S]",
		},
		{
			name: "quantity prefix",
			build: func() (*Sale, error) {
				return NewStandaloneSale("Anvil", "2019-04-01", price("29.99"), WithQuantity(8))
			},
			want: "8x Anvil [S]",
		},
		{
			name: "subscription with expiration",
			build: func() (*Sale, error) {
				return NewSubscriptionSale("Dynamite", "2019-03-20", price("1.21"), "2025-03-20")
			},
			want: "Dynamite [R] (exp: 2025-03-20)",
		},
		{
			name: "subscription without expiration",
			build: func() (*Sale, error) {
				return NewSubscriptionSale("Dynamite", "2019-03-20", price("1.21"), nil, WithQuantity(2))
			},
			want: "2x Dynamite [R]",
		},
		{
			name: "upgrade",
			build: func() (*Sale, error) {
				return NewUpgradeSale("Longer Fuse", "2019-03-20", price("0.01"), nil)
			},
			want: "Longer Fuse [U]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.build()
			require.NoError(t, err)
			if got := s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSale_GeneratedIDsAreUnique(t *testing.T) {
	a, err := NewStandaloneSale("x", "2019-01-01", price("1"))
	require.NoError(t, err)
	b, err := NewStandaloneSale("x", "2019-01-01", price("1"))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
}
