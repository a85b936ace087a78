package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// OutputOptions controls how customers are displayed
type OutputOptions struct {
	ShowFilter string // all, active, inactive
	TagFilter  []string
	SortField  string // ledger (insertion order), name, acquired, sales
	SortDir    string
	Currency   Currency
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Customers []JSONCustomer `json:"customers"`
	Summary   JSONSummary    `json:"summary"`
}

// JSONSummary contains counts over the displayed customers
type JSONSummary struct {
	Count         int    `json:"count"`
	Active        int    `json:"active"`
	Inactive      int    `json:"inactive"`
	Sales         int    `json:"sales"`
	ReferenceDate string `json:"reference_date"`
	Currency      string `json:"currency"`
}

// JSONCustomer is the JSON output format for a customer
type JSONCustomer struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Kind         string     `json:"kind"`
	Code         string     `json:"code"`
	Status       string     `json:"status"`
	AcquiredDate string     `json:"acquired_date"`
	AgeDays      int        `json:"age_days"`
	Sales        []JSONSale `json:"sales"`
	LastYear     []string   `json:"last_year"`
}

// JSONSale is the JSON output format for a sale. Prices keep their exact
// decimal text.
type JSONSale struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Item       string `json:"item"`
	Date       string `json:"date"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
	Expiration string `json:"expiration,omitempty"`
	PrevSale   string `json:"prev_sale,omitempty"`
	Status     string `json:"status,omitempty"`
}

// BuildJSONOutput converts displayed entries into the JSON output model
func BuildJSONOutput(entries []Entry, cfg *Config, l *Ledger, currency Currency) JSONOutput {
	now := l.Now()
	customers := make([]JSONCustomer, 0, len(entries))
	summary := JSONSummary{
		ReferenceDate: now.Format("2006-01-02"),
		Currency:      currency.Code,
	}

	for _, e := range entries {
		c := e.Customer
		status := c.Status()
		if status == StatusActive {
			summary.Active++
		} else {
			summary.Inactive++
		}
		summary.Sales += c.SaleCount()

		sales := make([]JSONSale, 0, c.SaleCount())
		for _, s := range c.Sales() {
			js := JSONSale{
				ID:       s.ID(),
				Kind:     s.Kind().String(),
				Item:     s.Item(),
				Date:     s.Date().Format("2006-01-02"),
				Price:    s.Price().String(),
				Quantity: s.Quantity(),
			}
			if exp, ok := s.Expiration(); ok {
				js.Expiration = exp.Format("2006-01-02")
			}
			if prev := s.PrevSale(); prev != nil {
				js.PrevSale = prev.ID()
			}
			if s.Kind() == SaleSubscription {
				js.Status = string(DetermineStatus(s, now))
			}
			sales = append(sales, js)
		}

		lastYear := []string{}
		for _, s := range c.RecentSales() {
			lastYear = append(lastYear, s.String())
		}

		customers = append(customers, JSONCustomer{
			ID:           e.ID,
			Name:         c.Name(),
			Description:  cfg.GetDescription(e.ID),
			Tags:         cfg.GetTags(e.ID),
			Kind:         c.Kind().String(),
			Code:         c.Kind().Code(),
			Status:       string(status),
			AcquiredDate: c.Acquired().Format("2006-01-02"),
			AgeDays:      c.Age(),
			Sales:        sales,
			LastYear:     lastYear,
		})
	}
	summary.Count = len(customers)

	return JSONOutput{Customers: customers, Summary: summary}
}

// PrintLedgerJSON outputs customers in JSON format
func PrintLedgerJSON(w io.Writer, entries []Entry, cfg *Config, l *Ledger, currency Currency) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSONOutput(entries, cfg, l, currency))
}

// PrintLedgerTable outputs customers as a formatted table
func PrintLedgerTable(w io.Writer, all []Entry, display []Entry, opts OutputOptions, cfg *Config) {
	activeCount := 0
	for _, e := range all {
		if e.Customer.Status() == StatusActive {
			activeCount++
		}
	}

	fmt.Fprintf(w, "Found %d customers (%d active, %d inactive)\n",
		len(all), activeCount, len(all)-activeCount)
	showingStr := opts.ShowFilter
	if len(opts.TagFilter) > 0 {
		showingStr += fmt.Sprintf(", tags: %s", strings.Join(opts.TagFilter, ", "))
	}
	fmt.Fprintf(w, "Showing: %s\n\n", showingStr)

	SortEntries(display, opts.SortField, opts.SortDir)

	t := table.NewWriter()
	t.SetOutputMirror(w)

	// Check which optional columns to show
	hasDescriptions := false
	hasTags := false
	for _, e := range display {
		if cfg.GetDescription(e.ID) != "" {
			hasDescriptions = true
		}
		if len(cfg.GetTags(e.ID)) > 0 {
			hasTags = true
		}
	}

	header := table.Row{"ID", "Name"}
	if hasDescriptions {
		header = append(header, "Description")
	}
	if hasTags {
		header = append(header, "Tags")
	}
	header = append(header, "Kind", "Status", "Acquired", "Years", "Sales", "Subs", "Last Year", "Latest Price")
	t.AppendHeader(header)

	totalSales := 0
	for _, e := range display {
		c := e.Customer
		totalSales += c.SaleCount()

		status := text.FgGreen.Sprint("ACTIVE")
		if c.Status() != StatusActive {
			status = text.FgHiBlack.Sprint("INACTIVE")
		}

		var recent []string
		for _, s := range c.RecentSales() {
			recent = append(recent, s.String())
		}
		recentStr := strings.Join(recent, "\n")
		if recentStr == "" {
			recentStr = text.FgHiBlack.Sprint("-")
		}

		latestStr := text.FgHiBlack.Sprint("-")
		if latest := latestSale(c); latest != nil {
			latestStr = opts.Currency.Format(latest.Price())
		}

		row := table.Row{e.ID, c.Name()}
		if hasDescriptions {
			row = append(row, cfg.GetDescription(e.ID))
		}
		if hasTags {
			row = append(row, strings.Join(cfg.GetTags(e.ID), ", "))
		}
		row = append(row,
			c.Kind().String(),
			status,
			c.Acquired().Format("2006-01-02"),
			fmt.Sprintf("%.1f", float64(c.Age())/365),
			c.SaleCount(),
			len(c.ActiveSubscriptions()),
			recentStr,
			latestStr,
		)
		t.AppendRow(row)
	}

	t.AppendSeparator()

	footer := table.Row{"", ""}
	if hasDescriptions {
		footer = append(footer, "")
	}
	if hasTags {
		footer = append(footer, "")
	}
	footer = append(footer, "", "", "", text.Bold.Sprint("Total"), text.Bold.Sprint(totalSales), "", "", "")
	t.AppendFooter(footer)

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	// Right-align the numeric columns and the price
	colCount := len(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: colCount - 4, Align: text.AlignRight},
		{Number: colCount - 3, Align: text.AlignRight},
		{Number: colCount - 2, Align: text.AlignRight},
		{Number: colCount, Align: text.AlignRight},
	})

	t.Render()
}

// latestSale returns the sale with the latest date, or nil
func latestSale(c *Customer) *Sale {
	var latest *Sale
	for _, s := range c.Sales() {
		if latest == nil || s.Date().After(latest.Date()) {
			latest = s
		}
	}
	return latest
}

// SortEntries sorts entries in place. The default keeps ledger order.
func SortEntries(entries []Entry, field, dir string) {
	var less func(i, j int) bool
	switch field {
	case "name":
		less = func(i, j int) bool {
			return strings.ToLower(entries[i].Customer.Name()) < strings.ToLower(entries[j].Customer.Name())
		}
	case "acquired":
		less = func(i, j int) bool {
			return entries[i].Customer.Acquired().Before(entries[j].Customer.Acquired())
		}
	case "sales":
		less = func(i, j int) bool {
			return entries[i].Customer.SaleCount() < entries[j].Customer.SaleCount()
		}
	default:
		if dir == "desc" {
			for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
		return
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if dir == "desc" {
			return less(j, i)
		}
		return less(i, j)
	})
}

// FilterByStatus filters customers by status (all/active/inactive)
func FilterByStatus(entries []Entry, show string) []Entry {
	if show == "" || show == "all" {
		return entries
	}
	var result []Entry
	for _, e := range entries {
		status := e.Customer.Status()
		if show == "active" && status == StatusActive {
			result = append(result, e)
		} else if show == "inactive" && status == StatusInactive {
			result = append(result, e)
		}
	}
	return result
}

// FilterByTags filters customers to only those with matching tags
func FilterByTags(entries []Entry, tags []string, cfg *Config) []Entry {
	if cfg == nil || len(tags) == 0 {
		return entries
	}
	var result []Entry
	for _, e := range entries {
		if hasAnyTag(cfg.GetTags(e.ID), tags) {
			result = append(result, e)
		}
	}
	return result
}

func hasAnyTag(customerTags []string, filterTags []string) bool {
	for _, ft := range filterTags {
		for _, ct := range customerTags {
			if strings.EqualFold(ct, ft) {
				return true
			}
		}
	}
	return false
}

// FilterByExclusions removes customers matching exclusion rules
func FilterByExclusions(entries []Entry, cfg *Config) []Entry {
	if cfg == nil {
		return entries
	}
	var result []Entry
	for _, e := range entries {
		if !cfg.ShouldExclude(e.Customer) {
			result = append(result, e)
		}
	}
	return result
}
