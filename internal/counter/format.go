package counter

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders v with exactly decimals fractional digits and comma-grouped
// thousands in the integer part.
func Format(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return printer.Sprintf("%."+strconv.Itoa(decimals)+"f", v)
}
