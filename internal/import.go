package internal

import (
	"bytes"
	"encoding/json"
	"io"

	"go.uber.org/zap"
)

// altSuffix is appended to an imported customer's name until its id is free.
const altSuffix = ".alt"

// CustomerRecord is one customer as read from an import source, before any
// validation. Field names follow the external payload.
type CustomerRecord struct {
	Name            string
	AcquisitionDate string // "aquisition_date" in payloads
	CustType        string
	Sales           []SaleRecord
}

// SaleRecord is one sale entry of a CustomerRecord.
type SaleRecord struct {
	ID         string
	SaleType   string
	Item       string
	Date       string
	Price      string
	Quantity   *int
	Expiration string // subscription only
	PrevSale   string // upgrade only; id of an earlier sale of the same customer
}

// ImportJSON loads customers from a JSON array of customer objects:
//
//	[{"name": "Acme, Inc", "aquisition_date": "2017-01-02", "cust_type": "R",
//	  "sales": [{"sale_type": "S", "item": "Anvil", "date": "2019-04-01",
//	             "price": "29.99", "quantity": 8}]}]
//
// Records are applied in order. The first failure aborts the import;
// customers and sales added before it stay in the ledger.
func (l *Ledger) ImportJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return wrapf(ErrParse, err, "parsing JSON")
	}
	// Anything but whitespace after the top-level value, including a stray
	// closing bracket, makes the text malformed.
	if _, err := dec.Token(); err != io.EOF {
		return failf(ErrParse, "parsing JSON: unexpected data after top-level value")
	}

	items, ok := payload.([]any)
	if !ok {
		return failf(ErrTypeMismatch, "import payload must be a JSON array, got %s", jsonTypeName(payload))
	}

	for i, item := range items {
		if err := l.importJSONRecord(item); err != nil {
			l.logger.Error("import aborted", zap.Int("record", i), zap.Error(err))
			return wrap(err, "record %d", i)
		}
	}

	l.logger.Debug("import finished", zap.Int("records", len(items)), zap.Int("customers", l.Len()))
	return nil
}

func (l *Ledger) importJSONRecord(item any) error {
	obj, ok := item.(map[string]any)
	if !ok {
		return failf(ErrTypeMismatch, "customer record must be an object, got %s", jsonTypeName(item))
	}

	rec, err := decodeCustomerFields(obj)
	if err != nil {
		return err
	}
	id, err := l.importCustomer(rec)
	if err != nil {
		return err
	}

	rawSales, err := optionalArray(obj, "sales")
	if err != nil {
		return err
	}
	prior := make(map[string]*Sale)
	for j, raw := range rawSales {
		sr, err := decodeSaleRecord(raw)
		if err != nil {
			return wrap(err, "sale %d", j)
		}
		if err := l.importSale(id, sr, prior); err != nil {
			return wrap(err, "sale %d", j)
		}
	}
	return nil
}

// ImportRecords applies already-decoded records with the same rules as
// ImportJSON.
func (l *Ledger) ImportRecords(records []CustomerRecord) error {
	for i, rec := range records {
		if err := l.importRecord(rec); err != nil {
			l.logger.Error("import aborted", zap.Int("record", i), zap.Error(err))
			return wrap(err, "record %d", i)
		}
	}
	l.logger.Debug("import finished", zap.Int("records", len(records)), zap.Int("customers", l.Len()))
	return nil
}

func (l *Ledger) importRecord(rec CustomerRecord) error {
	id, err := l.importCustomer(rec)
	if err != nil {
		return err
	}
	prior := make(map[string]*Sale)
	for j, sr := range rec.Sales {
		if err := l.importSale(id, sr, prior); err != nil {
			return wrap(err, "sale %d", j)
		}
	}
	return nil
}

// importCustomer adds rec under its name, appending altSuffix until the id
// is unused. A name that already ends in altSuffix just gets another one.
func (l *Ledger) importCustomer(rec CustomerRecord) (string, error) {
	kind, err := ParseCustomerKind(rec.CustType)
	if err != nil {
		return "", wrap(err, "customer %q", rec.Name)
	}

	id := rec.Name
	for l.has(id) {
		id += altSuffix
	}
	if id != rec.Name {
		l.logger.Warn("customer id already taken, renamed",
			zap.String("name", rec.Name),
			zap.String("id", id))
	}

	return l.AddCustomer(rec.Name, rec.AcquisitionDate, kind, id)
}

func (l *Ledger) importSale(customerID string, sr SaleRecord, prior map[string]*Sale) error {
	kind, err := ParseSaleKind(sr.SaleType)
	if err != nil {
		return err
	}
	price, err := ParsePrice(sr.Price)
	if err != nil {
		return wrap(err, "sale %q", sr.Item)
	}

	var opts []SaleOption
	if sr.ID != "" {
		if _, dup := prior[sr.ID]; dup {
			return failf(ErrDuplicateKey, "sale id %q used twice for customer %q", sr.ID, customerID)
		}
		opts = append(opts, WithSaleID(sr.ID))
	}
	if sr.Quantity != nil {
		opts = append(opts, WithQuantity(*sr.Quantity))
	}
	switch kind {
	case SaleSubscription:
		if sr.Expiration != "" {
			opts = append(opts, WithExpiration(sr.Expiration))
		}
	case SaleUpgrade:
		if sr.PrevSale != "" {
			prev, ok := prior[sr.PrevSale]
			if !ok {
				return failf(ErrKeyNotFound, "sale %q: previous sale %q not found for customer %q", sr.Item, sr.PrevSale, customerID)
			}
			opts = append(opts, WithPrevSale(prev))
		}
	}

	sale, err := NewSale(kind, sr.Item, sr.Date, price, opts...)
	if err != nil {
		return err
	}
	if err := l.AddSale(customerID, sale); err != nil {
		return err
	}
	prior[sale.ID()] = sale
	return nil
}

func decodeCustomerFields(obj map[string]any) (CustomerRecord, error) {
	var rec CustomerRecord
	var err error
	if rec.Name, err = requiredString(obj, "name"); err != nil {
		return rec, err
	}
	if rec.AcquisitionDate, err = requiredString(obj, "aquisition_date"); err != nil {
		return rec, wrap(err, "customer %q", rec.Name)
	}
	if rec.CustType, err = requiredString(obj, "cust_type"); err != nil {
		return rec, wrap(err, "customer %q", rec.Name)
	}
	return rec, nil
}

func decodeSaleRecord(raw any) (SaleRecord, error) {
	var sr SaleRecord
	obj, ok := raw.(map[string]any)
	if !ok {
		return sr, failf(ErrTypeMismatch, "sale entry must be an object, got %s", jsonTypeName(raw))
	}

	var err error
	if sr.SaleType, err = requiredString(obj, "sale_type"); err != nil {
		return sr, err
	}
	if sr.Item, err = requiredString(obj, "item"); err != nil {
		return sr, err
	}
	if sr.Date, err = requiredString(obj, "date"); err != nil {
		return sr, err
	}
	if sr.Price, err = requiredDecimalText(obj, "price"); err != nil {
		return sr, err
	}
	if sr.Quantity, err = optionalInt(obj, "quantity"); err != nil {
		return sr, err
	}
	if sr.Expiration, err = optionalString(obj, "expiration"); err != nil {
		return sr, err
	}
	if sr.PrevSale, err = optionalString(obj, "prev_sale"); err != nil {
		return sr, err
	}
	if sr.ID, err = optionalString(obj, "id"); err != nil {
		return sr, err
	}
	return sr, nil
}

func requiredString(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", failf(ErrTypeMismatch, "missing field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", failf(ErrTypeMismatch, "field %q must be a string, got %s", key, jsonTypeName(v))
	}
	return s, nil
}

func optionalString(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", failf(ErrTypeMismatch, "field %q must be a string, got %s", key, jsonTypeName(v))
	}
	return s, nil
}

// requiredDecimalText accepts a decimal string or a bare JSON number. The
// decoder keeps numbers as their literal text, so neither passes through a
// float.
func requiredDecimalText(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", failf(ErrTypeMismatch, "missing field %q", key)
	}
	switch p := v.(type) {
	case string:
		return p, nil
	case json.Number:
		return p.String(), nil
	default:
		return "", failf(ErrTypeMismatch, "field %q must be a decimal string, got %s", key, jsonTypeName(v))
	}
}

func optionalInt(obj map[string]any, key string) (*int, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, nil
	}
	num, ok := v.(json.Number)
	if !ok {
		return nil, failf(ErrTypeMismatch, "field %q must be an integer, got %s", key, jsonTypeName(v))
	}
	n, err := num.Int64()
	if err != nil {
		return nil, wrapf(ErrTypeMismatch, err, "field %q must be an integer", key)
	}
	i := int(n)
	return &i, nil
}

func optionalArray(obj map[string]any, key string) ([]any, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, failf(ErrTypeMismatch, "field %q must be an array, got %s", key, jsonTypeName(v))
	}
	return arr, nil
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
