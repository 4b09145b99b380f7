package billing

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// toWords renders a non-negative integer on the Indian numbering scale
// (crore, lakh, thousand, hundred) by recursive descent.
func toWords(n int) string {
	switch {
	case n < 20:
		return onesWords[n]
	case n < 100:
		return strings.TrimSpace(tensWords[n/10] + " " + onesWords[n%10])
	case n < 1000:
		return strings.TrimSpace(onesWords[n/100] + " Hundred " + toWords(n%100))
	case n < 100000:
		return strings.TrimSpace(toWords(n/1000) + " Thousand " + toWords(n%1000))
	case n < 10000000:
		return strings.TrimSpace(toWords(n/100000) + " Lakh " + toWords(n%100000))
	default:
		return strings.TrimSpace(toWords(n/10000000) + " Crore " + toWords(n%10000000))
	}
}

// AmountInWords renders a currency amount as the legal bill text, e.g.
// "One Lakh Rupees and Fifty Paise Only". Fractional rupees are rounded to
// the nearest paisa. Negative amounts never appear on a valid bill but are
// rendered with a "Minus" prefix rather than crashing the renderer.
func AmountInWords(amount float64) string {
	var prefix string
	if amount < 0 {
		prefix = "Minus "
		amount = -amount
	}
	rupees := int(math.Floor(amount))
	paise := int(math.Round((amount - math.Floor(amount)) * 100))
	if paise == 100 {
		rupees++
		paise = 0
	}

	words := toWords(rupees)
	if words == "" {
		words = "Zero"
	}
	words += " Rupees"

	if paise > 0 {
		words += " and " + toWords(paise) + " Paise"
	}
	words += " Only"

	return strings.Join(strings.Fields(prefix+words), " ")
}
