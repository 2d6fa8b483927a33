package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var inr = accounting.Accounting{Symbol: "₹", Precision: 2, Thousand: ",", Decimal: "."}

// FormatINR renders a price as a display string, e.g. "₹2,999.00".
func FormatINR(amount decimal.Decimal) string {
	return inr.FormatMoneyDecimal(amount)
}
