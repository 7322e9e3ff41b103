package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/novanode/client-portal/internal/marketing"
)

// Formatter prints counts, money and rates for the dashboard cards and tables.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter constructs a Formatter using the given currency symbol.
func NewFormatter(currency string) Formatter {
	return Formatter{printer: message.NewPrinter(language.English), currency: currency}
}

// Count prints n with thousands separators.
func (f Formatter) Count(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Money prints n prefixed by the currency symbol. Negative values keep the sign in front.
func (f Formatter) Money(n int64) string {
	if n < 0 {
		return "-" + f.currency + f.printer.Sprintf("%d", -n)
	}
	return f.currency + f.printer.Sprintf("%d", n)
}

// Percent prints a conversion rate such as "4.57%".
func (f Formatter) Percent(rate float64) string {
	return marketing.FormatRate(rate) + "%"
}

// Currency returns the configured currency symbol.
func (f Formatter) Currency() string {
	return f.currency
}
