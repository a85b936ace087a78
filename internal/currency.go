package internal

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is used when neither flag nor config names one.
const DefaultCurrency = "USD"

// Currency formats prices for display
type Currency struct {
	Code    string // "USD", "EUR", "SEK"
	unit    currency.Unit
	known   bool
	printer *message.Printer
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
}

// defaultLocaleForCurrency picks the locale whose separators are used for a currency
var defaultLocaleForCurrency = map[string]language.Tag{
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"SEK": language.Swedish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"CHF": language.German,
	"JPY": language.Japanese,
	"CAD": language.CanadianFrench,
	"AUD": language.MustParse("en-AU"),
}

// GetCurrency returns the Currency for a given code. Unknown codes are
// formatted with English separators and the code as symbol.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))

	unit, err := currency.ParseISO(code)
	known := err == nil
	if !known {
		unit = currency.USD // fallback unit for number formatting only
	}

	tag, ok := defaultLocaleForCurrency[code]
	if !ok {
		tag = language.English
	}

	return Currency{
		Code:    code,
		unit:    unit,
		known:   known,
		printer: message.NewPrinter(tag),
	}
}

func (c Currency) symbol() string {
	if sym, ok := symbolOverrides[c.Code]; ok {
		return sym
	}
	if !c.known {
		return c.Code
	}
	return c.printer.Sprint(currency.NarrowSymbol(c.unit))
}

// isPrefix returns true if this currency symbol should be placed before the amount.
// x/text does not expose CLDR symbol positioning, so the prefix currencies are listed here.
func (c Currency) isPrefix() bool {
	switch c.Code {
	case "USD", "GBP", "JPY", "CAD", "AUD":
		return true
	default:
		return false
	}
}

// Format renders a price with two fraction digits and the currency symbol.
// The float conversion is for display only; prices stay decimal everywhere else.
func (c Currency) Format(amount decimal.Decimal) string {
	formatted := c.printer.Sprint(number.Decimal(amount.Round(2).InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	sym := c.symbol()

	if c.isPrefix() {
		return sym + formatted
	}
	return formatted + " " + sym
}

// DetectSystemCurrency returns the currency of the user's locale region, or
// "" when the locale is unset or names no region.
func DetectSystemCurrency() string {
	return CurrencyFromLocale(detectSystemLocale())
}

// CurrencyFromLocale maps a POSIX or BCP 47 locale to its region's currency:
// "sv_SE.UTF-8" gives "SEK", "en-GB" gives "GBP".
func CurrencyFromLocale(locale string) string {
	base, _, _ := strings.Cut(locale, ".")
	base, _, _ = strings.Cut(base, "@")
	if base == "" {
		return ""
	}

	tag, err := language.Parse(strings.ReplaceAll(base, "_", "-"))
	if err != nil {
		return ""
	}
	_, _, region := tag.Raw()
	if region.String() == "ZZ" {
		return ""
	}
	unit, ok := currency.FromRegion(region)
	if !ok {
		return ""
	}
	return unit.String()
}
