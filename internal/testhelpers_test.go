package internal

import (
	"time"

	"github.com/shopspring/decimal"
)

// referenceNow is the "now" the expected reports were written against.
var referenceNow = date("2020-01-02")

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestLedger(opts ...Option) *Ledger {
	return NewLedger(append([]Option{WithClock(NewFixedClock(referenceNow))}, opts...)...)
}

const acmeRecord = `
{
  "name": "Acme, Inc",
  "aquisition_date": "2017-01-02",
  "cust_type": "R",
  "sales": [
    {
      "sale_type": "S",
      "item": "Anvil",
      "date": "2019-04-01",
      "price": "29.99",
      "quantity": 8
    },
    {
      "sale_type": "R",
      "item": "Dynamite",
      "date": "2019-03-20",
      "price": "1.21",
      "quantity": 1,
      "expiration": "2025-03-20"
    },
    {
      "sale_type": "U",
      "item": "Longer Fuse",
      "date": "2019-03-20",
      "price": "0.01",
      "quantity": 1
    }
  ]
}`

const pyriteRecord = `
{
  "name": "Cash 4 Pyrite",
  "aquisition_date": "1972-01-02",
  "cust_type": "A",
  "sales": [
    {
      "sale_type": "S",
      "item": "Authentic Gold Bricks",
      "date": "2019-04-01",
      "price": "8001.00",
      "quantity": 3
    },
    {
      "sale_type": "U",
      "item": "Software Unlock to Actual Gold",
      "date": "2020-01-01",
      "price": "37.99",
      "quantity": 3
    }
  ]
}`

const acmeExpected = "Acme, Inc [R], Duration: 3.0 years, Purchases in the last year:\n" +
	"    8x Anvil [S]\n" +
	"    Dynamite [R] (exp: 2025-03-20)\n" +
	"    Longer Fuse [U]\n"

const pyriteExpected = "Cash 4 Pyrite [A], Duration: 48.0 years, Purchases in the last year:\n" +
	"    3x Authentic Gold Bricks [S]\n" +
	"    3x Software Unlock to Actual Gold [U]\n"
