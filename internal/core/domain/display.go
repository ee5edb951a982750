package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with two decimals behind the currency label.
func FormatMoney(currency string, amount decimal.Decimal) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return currency + " " + amount.StringFixed(2)
}

// ItemCountText renders the cart item count ("1 item", "3 items").
func ItemCountText(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
