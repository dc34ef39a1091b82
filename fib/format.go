package fib

import "strconv"

// PricePrecision is the number of decimals prices are displayed and
// exported with. Journal exports rely on it staying fixed.
const PricePrecision = 8

// FormatPrice renders x with PricePrecision decimals.
func FormatPrice(x float64) string {
	return strconv.FormatFloat(x, 'f', PricePrecision, 64)
}

// PercentLabel renders a ratio as a percentage with one decimal, e.g. 0.618 -> "61.8%".
func PercentLabel(ratio float64) string {
	return strconv.FormatFloat(ratio*100, 'f', 1, 64) + "%"
}
