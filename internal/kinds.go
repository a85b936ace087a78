package internal

// SaleKind is the closed set of sale variants.
type SaleKind int

const (
	SaleUnknown SaleKind = iota
	SaleStandalone
	SaleUpgrade
	SaleSubscription
)

// CustomerKind is the closed set of customer variants.
type CustomerKind int

const (
	CustomerUnknown CustomerKind = iota
	CustomerCash
	CustomerAccount
	CustomerSubscription
)

// Single-character codes used in reports and import payloads. The unknown
// code "X" is rendered but never accepted as input.
var (
	saleCodes = map[SaleKind]string{
		SaleUnknown:      "X",
		SaleStandalone:   "S",
		SaleUpgrade:      "U",
		SaleSubscription: "R",
	}
	customerCodes = map[CustomerKind]string{
		CustomerUnknown:      "X",
		CustomerCash:         "C",
		CustomerAccount:      "A",
		CustomerSubscription: "R",
	}

	saleKindsByCode = map[string]SaleKind{
		"S": SaleStandalone,
		"U": SaleUpgrade,
		"R": SaleSubscription,
	}
	customerKindsByCode = map[string]CustomerKind{
		"C": CustomerCash,
		"A": CustomerAccount,
		"R": CustomerSubscription,
	}
)

func (k SaleKind) Code() string {
	if c, ok := saleCodes[k]; ok {
		return c
	}
	return saleCodes[SaleUnknown]
}

func (k SaleKind) String() string {
	switch k {
	case SaleStandalone:
		return "standalone"
	case SaleUpgrade:
		return "upgrade"
	case SaleSubscription:
		return "subscription"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a constructible sale kind.
func (k SaleKind) Valid() bool {
	_, ok := saleKindsByCode[k.Code()]
	return ok
}

func (k CustomerKind) Code() string {
	if c, ok := customerCodes[k]; ok {
		return c
	}
	return customerCodes[CustomerUnknown]
}

func (k CustomerKind) String() string {
	switch k {
	case CustomerCash:
		return "cash"
	case CustomerAccount:
		return "account"
	case CustomerSubscription:
		return "subscription"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a constructible customer kind.
func (k CustomerKind) Valid() bool {
	_, ok := customerKindsByCode[k.Code()]
	return ok
}

// ParseSaleKind maps an import code (S, U, R) to a SaleKind.
func ParseSaleKind(code string) (SaleKind, error) {
	k, ok := saleKindsByCode[code]
	if !ok {
		return SaleUnknown, failf(ErrInvalidEnumValue, "unknown sale type %q", code)
	}
	return k, nil
}

// ParseCustomerKind maps an import code (C, A, R) to a CustomerKind.
func ParseCustomerKind(code string) (CustomerKind, error) {
	k, ok := customerKindsByCode[code]
	if !ok {
		return CustomerUnknown, failf(ErrInvalidEnumValue, "unknown customer type %q", code)
	}
	return k, nil
}
