// Package money formats amounts for display.
package money

import "fmt"

// Format renders an amount as a display currency string with two decimals,
// e.g. 12.5 -> "$12.50".
func Format(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
