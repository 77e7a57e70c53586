package dashboard

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts for one locale with grouping and at most two fraction digits.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter parses a BCP 47 locale such as "ar-IQ" or "en".
func NewFormatter(locale, currency string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{printer: message.NewPrinter(tag), currency: currency}, nil
}

// Number formats d like 1,234.5 in the configured locale.
func (f *Formatter) Number(d decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MinFractionDigits(0), number.MaxFractionDigits(2)))
}

// Int formats a count with locale digits and grouping.
func (f *Formatter) Int(n int) string {
	return f.printer.Sprint(number.Decimal(n))
}

// Money is Number followed by the currency label, if one is configured.
func (f *Formatter) Money(d decimal.Decimal) string {
	if f.currency == "" {
		return f.Number(d)
	}
	return f.Number(d) + " " + f.currency
}

// Currency returns the configured currency label.
func (f *Formatter) Currency() string { return f.currency }
