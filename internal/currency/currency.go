// Package currency renders rupee amounts for receipts and reports, matching
// the "₹ 1,234.56" display convention used across the store.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

func Format(d decimal.Decimal) string {
	f, _ := d.Float64()
	return "₹ " + printer.Sprintf(
		"%v",
		number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)),
	)
}
