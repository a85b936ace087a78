package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxColumns are the recognized header cells (case-insensitive).
var xlsxColumns = []string{
	"name", "aquisition_date", "cust_type",
	"sale_type", "item", "date", "price", "quantity", "expiration", "prev_sale", "sale_id",
}

// LoadXLSXFile reads customer records from the first sheet of an Excel
// workbook and imports them.
//
// The header row names the columns. A row with a name starts a new customer;
// following rows with an empty name add sales to it. A customer row without
// a sale_type carries no sale:
//
//	name       | aquisition_date | cust_type | sale_type | item   | date       | price | quantity
//	Acme, Inc  | 2017-01-02      | R         | S         | Anvil  | 2019-04-01 | 29.99 | 8
//	           |                 |           | U         | Fuse   | 2019-03-20 | 0.01  |
func LoadXLSXFile(l *Ledger, path string) error {
	records, err := ParseXLSX(path)
	if err != nil {
		return err
	}
	return l.ImportRecords(records)
}

// ParseXLSX reads customer records from an Excel workbook without importing
// them.
func ParseXLSX(path string) ([]CustomerRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	// Raw values keep dates as serial numbers and prices as typed.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	cols := map[string]int{}
	dataStartRow := -1
	for i, row := range rows {
		for j, cell := range row {
			key := strings.ToLower(strings.TrimSpace(cell))
			for _, name := range xlsxColumns {
				if key == name {
					cols[name] = j
				}
			}
		}
		if _, ok := cols["name"]; ok {
			dataStartRow = i + 1
			break
		}
		cols = map[string]int{}
	}
	for _, required := range []string{"name", "aquisition_date", "cust_type"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("could not find required columns (name, aquisition_date, cust_type)")
		}
	}

	get := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []CustomerRecord
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1 // 1-based, as shown in Excel

		name := get(row, "name")
		if name != "" {
			acquired, err := xlsxDate(get(row, "aquisition_date"))
			if err != nil {
				return nil, wrap(err, "row %d", rowNum)
			}
			records = append(records, CustomerRecord{
				Name:            name,
				AcquisitionDate: acquired,
				CustType:        get(row, "cust_type"),
			})
		}

		if get(row, "sale_type") == "" {
			continue
		}
		if len(records) == 0 {
			return nil, failf(ErrTypeMismatch, "row %d: sale without a customer", rowNum)
		}

		sale, err := xlsxSale(row, get)
		if err != nil {
			return nil, wrap(err, "row %d", rowNum)
		}
		last := &records[len(records)-1]
		last.Sales = append(last.Sales, sale)
	}

	return records, nil
}

func xlsxSale(row []string, get func([]string, string) string) (SaleRecord, error) {
	sr := SaleRecord{
		ID:       get(row, "sale_id"),
		SaleType: get(row, "sale_type"),
		Item:     get(row, "item"),
		Price:    get(row, "price"),
		PrevSale: get(row, "prev_sale"),
	}

	var err error
	if sr.Date, err = xlsxDate(get(row, "date")); err != nil {
		return sr, err
	}
	if sr.Expiration, err = xlsxDate(get(row, "expiration")); err != nil {
		return sr, err
	}

	if q := get(row, "quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return sr, wrapf(ErrTypeMismatch, err, "quantity %q must be an integer", q)
		}
		sr.Quantity = &n
	}
	return sr, nil
}

// xlsxDate normalizes a date cell to ISO-8601 text. Cells hold either text
// or an Excel serial date number.
func xlsxDate(cell string) (string, error) {
	if cell == "" {
		return "", nil
	}
	if _, err := parseISODate(cell); err == nil {
		return cell, nil
	}
	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return "", failf(ErrFormat, "invalid date cell %q", cell)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", wrapf(ErrFormat, err, "invalid date cell %q", cell)
	}
	return t.Format("2006-01-02T15:04:05"), nil
}
