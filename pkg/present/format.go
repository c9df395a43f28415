package present

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Currency renders a monetary amount compactly: $1.2M, $45K, $150
func Currency(v float64) string {
	switch {
	case math.Abs(v) >= 1_000_000:
		return "$" + trimZero(fmt.Sprintf("%.1f", v/1_000_000)) + "M"
	case math.Abs(v) >= 1_000:
		return "$" + trimZero(fmt.Sprintf("%.1f", v/1_000)) + "K"
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// Number renders a count compactly: 1.2M, 45K, 150
func Number(v float64) string {
	switch {
	case math.Abs(v) >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", v/1_000_000)) + "M"
	case math.Abs(v) >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", v/1_000)) + "K"
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// Percent renders a signed growth rate: +12.5%, -3.1%
func Percent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// CategoryLabel turns a raw snake_case category into a display label, e.g.
// "home_appliances" becomes "Home Appliances"
func CategoryLabel(raw string) string {
	return titleCaser.String(strings.ReplaceAll(raw, "_", " "))
}

// Stars renders a whole-star rating out of five, e.g. "★★★★☆"
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
