package internal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dormantRecord = `
{
  "name": "Dormant LLC",
  "aquisition_date": "2001-05-05",
  "cust_type": "C",
  "sales": [
    {"sale_type": "S", "item": "Rope", "date": "2012-02-02", "price": "3.50"}
  ]
}`

func loadedLedger(t *testing.T) *Ledger {
	t.Helper()
	l := newTestLedger()
	require.NoError(t, l.ImportJSON([]byte("["+acmeRecord+","+pyriteRecord+","+dormantRecord+"]")))
	return l
}

func entryIDs(entries []Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestSortEntries(t *testing.T) {
	l := loadedLedger(t)

	tests := []struct {
		field, dir string
		want       []string
	}{
		{"", "asc", []string{"Acme, Inc", "Cash 4 Pyrite", "Dormant LLC"}},
		{"", "desc", []string{"Dormant LLC", "Cash 4 Pyrite", "Acme, Inc"}},
		{"name", "desc", []string{"Dormant LLC", "Cash 4 Pyrite", "Acme, Inc"}},
		{"acquired", "asc", []string{"Cash 4 Pyrite", "Dormant LLC", "Acme, Inc"}},
		{"sales", "desc", []string{"Acme, Inc", "Cash 4 Pyrite", "Dormant LLC"}},
	}
	for _, tt := range tests {
		entries := l.Entries()
		SortEntries(entries, tt.field, tt.dir)
		assert.Equal(t, tt.want, entryIDs(entries), "sort %q %q", tt.field, tt.dir)
	}
}

func TestFilters(t *testing.T) {
	l := loadedLedger(t)
	cfg, err := ParseConfig([]byte(`
tags:
  "Acme, Inc": [Wholesale]
  "Dormant LLC": [retail]
exclude:
  - "^Cash "
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Acme, Inc", "Cash 4 Pyrite"}, entryIDs(FilterByStatus(l.Entries(), "active")))
	assert.Equal(t, []string{"Dormant LLC"}, entryIDs(FilterByStatus(l.Entries(), "inactive")))
	assert.Len(t, FilterByStatus(l.Entries(), "all"), 3)

	assert.Equal(t, []string{"Acme, Inc"}, entryIDs(FilterByTags(l.Entries(), []string{"wholesale"}, cfg)))
	assert.Len(t, FilterByTags(l.Entries(), nil, cfg), 3)

	assert.Equal(t, []string{"Acme, Inc", "Dormant LLC"}, entryIDs(FilterByExclusions(l.Entries(), cfg)))
	assert.Len(t, FilterByExclusions(l.Entries(), nil), 3)
}

func TestPrintLedgerTable(t *testing.T) {
	l := loadedLedger(t)
	cfg, err := ParseConfig([]byte(`
descriptions:
  "Acme, Inc": Explosives
`))
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := OutputOptions{ShowFilter: "all", SortField: "name", SortDir: "asc", Currency: GetCurrency("USD")}
	PrintLedgerTable(&buf, l.Entries(), l.Entries(), opts, cfg)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Found 3 customers (2 active, 1 inactive)\nShowing: all\n"))
	for _, want := range []string{"Acme, Inc", "Explosives", "Description", "8x Anvil [S]", "$29.99", "$37.99", "$3.50", "INACTIVE"} {
		assert.Contains(t, out, want)
	}
}

func TestPrintLedgerJSON(t *testing.T) {
	l := loadedLedger(t)

	var buf bytes.Buffer
	require.NoError(t, PrintLedgerJSON(&buf, l.Entries(), nil, l, GetCurrency("EUR")))

	var got JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, JSONSummary{
		Count:         3,
		Active:        2,
		Inactive:      1,
		Sales:         6,
		ReferenceDate: "2020-01-02",
		Currency:      "EUR",
	}, got.Summary)

	require.Len(t, got.Customers, 3)
	acme := got.Customers[0]
	assert.Equal(t, "Acme, Inc", acme.ID)
	assert.Equal(t, "subscription", acme.Kind)
	assert.Equal(t, "R", acme.Code)
	assert.Equal(t, 1095, acme.AgeDays)
	assert.Equal(t, []string{"8x Anvil [S]", "Dynamite [R] (exp: 2025-03-20)", "Longer Fuse [U]"}, acme.LastYear)

	require.Len(t, acme.Sales, 3)
	assert.Equal(t, "29.99", acme.Sales[0].Price)
	assert.Equal(t, "active", acme.Sales[1].Status)
	assert.Equal(t, "2025-03-20", acme.Sales[1].Expiration)

	dormant := got.Customers[2]
	assert.Equal(t, "inactive", dormant.Status)
	assert.Empty(t, dormant.LastYear)
	assert.Equal(t, "3.5", dormant.Sales[0].Price)
}
