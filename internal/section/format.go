package section

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is shown for NaN and infinite metric values.
const NotAvailable = "n/a"

var printer = message.NewPrinter(language.English)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func fixed(decimals int) func(float64) string {
	return func(v float64) string {
		if !finite(v) {
			return NotAvailable
		}
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}
}

func percent(decimals int) func(float64) string {
	return func(v float64) string {
		if !finite(v) {
			return NotAvailable
		}
		return strconv.FormatFloat(v, 'f', decimals, 64) + "%"
	}
}

// currency renders whole dollars with thousands separators.
func currency(v float64) string {
	if !finite(v) {
		return NotAvailable
	}
	return printer.Sprintf("$%.0f", v)
}

func hours(v float64) string {
	if !finite(v) {
		return NotAvailable
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + " hrs"
}
