package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      any
		want    time.Time
		wantErr error
	}{
		{"2019-04-01", date("2019-04-01"), nil},
		{" 2019-04-01 ", date("2019-04-01"), nil},
		{"2019-04-01T13:30:00", time.Date(2019, 4, 1, 13, 30, 0, 0, time.UTC), nil},
		{"2019-04-01 13:30", time.Date(2019, 4, 1, 13, 30, 0, 0, time.UTC), nil},
		{"2019-04-01T13:30:00Z", time.Date(2019, 4, 1, 13, 30, 0, 0, time.UTC), nil},
		{date("2019-04-01"), date("2019-04-01"), nil},
		{"2019-13-01", time.Time{}, ErrFormat},
		{"April 1st", time.Time{}, ErrFormat},
		{"", time.Time{}, ErrFormat},
		{42, time.Time{}, ErrTypeMismatch},
		{nil, time.Time{}, ErrTypeMismatch},
		{(*time.Time)(nil), time.Time{}, ErrTypeMismatch},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "ParseDate(%v)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseDate(%v)", tt.in)
		assert.True(t, got.Equal(tt.want), "ParseDate(%v) = %v, want %v", tt.in, got, tt.want)
	}
}

func TestParseDate_KeepsOffset(t *testing.T) {
	got, err := ParseDate("2019-04-01T13:30:00+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2019, 4, 1, 11, 30, 0, 0, time.UTC)))
}

func TestParsePrice(t *testing.T) {
	got, err := ParsePrice("8001.00")
	require.NoError(t, err)
	assert.Equal(t, "8001", got.String())
	assert.Equal(t, "8001.00", got.StringFixed(2))

	got, err = ParsePrice("0.1")
	require.NoError(t, err)
	assert.True(t, got.Add(price("0.2")).Equal(price("0.3")))

	_, err = ParsePrice("twelve")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestOneYearBefore(t *testing.T) {
	tests := []struct {
		now, want time.Time
	}{
		{date("2020-01-02"), date("2019-01-02")},
		{date("2020-02-29"), date("2019-02-28")},
		{date("2021-03-01"), date("2020-03-01")},
		{date("2020-02-28"), date("2019-02-28")},
	}
	for _, tt := range tests {
		if got := oneYearBefore(tt.now); !got.Equal(tt.want) {
			t.Errorf("oneYearBefore(%s) = %s, want %s", tt.now.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestKindCodes(t *testing.T) {
	saleTests := []struct {
		kind SaleKind
		code string
	}{
		{SaleStandalone, "S"},
		{SaleUpgrade, "U"},
		{SaleSubscription, "R"},
		{SaleUnknown, "X"},
		{SaleKind(99), "X"},
	}
	for _, tt := range saleTests {
		assert.Equal(t, tt.code, tt.kind.Code(), "sale kind %d", tt.kind)
	}

	customerTests := []struct {
		kind CustomerKind
		code string
	}{
		{CustomerCash, "C"},
		{CustomerAccount, "A"},
		{CustomerSubscription, "R"},
		{CustomerUnknown, "X"},
	}
	for _, tt := range customerTests {
		assert.Equal(t, tt.code, tt.kind.Code(), "customer kind %d", tt.kind)
	}
}

func TestParseKinds(t *testing.T) {
	k, err := ParseSaleKind("U")
	require.NoError(t, err)
	assert.Equal(t, SaleUpgrade, k)

	c, err := ParseCustomerKind("C")
	require.NoError(t, err)
	assert.Equal(t, CustomerCash, c)

	for _, code := range []string{"X", "", "s", "Q"} {
		_, err := ParseSaleKind(code)
		assert.ErrorIs(t, err, ErrInvalidEnumValue, "sale code %q", code)
		_, err = ParseCustomerKind(code)
		assert.ErrorIs(t, err, ErrInvalidEnumValue, "customer code %q", code)
	}
}
