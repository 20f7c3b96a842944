package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	onesWords = []string{
		"", "one", "two", "three", "four", "five", "six", "seven", "eight",
		"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
		"sixteen", "seventeen", "eighteen", "nineteen",
	}
	tensWords = []string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
		"eighty", "ninety",
	}

	titleCaser = cases.Title(language.English)
)

// AmountInWords spells out a rupee amount using the Indian numbering
// system (crore, lakh, thousand). Paise are spelled when the amount has
// a fractional part; negative amounts are prefixed with "Minus".
//
//	1327    -> "One Thousand Three Hundred Twenty Seven Rupees Only"
//	100000  -> "One Lakh Rupees Only"
//	12.50   -> "Twelve Rupees and Fifty Paise Only"
//	0       -> "Zero Rupees Only"
func AmountInWords(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	if negative {
		amount = amount.Abs()
	}

	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	whole := rupees.IntPart()

	var sb strings.Builder
	if negative {
		sb.WriteString("minus ")
	}

	if whole == 0 {
		sb.WriteString("zero rupees")
	} else {
		sb.WriteString(integerWords(whole))
		sb.WriteString(" rupees")
	}

	if paise > 0 {
		sb.WriteString(" and ")
		sb.WriteString(integerWords(paise))
		sb.WriteString(" paise")
	}
	sb.WriteString(" only")

	return titleCaser.String(sb.String())
}

// integerWords converts a positive integer to lowercase words using
// Indian digit grouping
func integerWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string
	if crores := n / 10000000; crores > 0 {
		parts = append(parts, integerWords(crores), "crore")
		n %= 10000000
	}
	if lakhs := n / 100000; lakhs > 0 {
		parts = append(parts, belowThousand(lakhs), "lakh")
		n %= 100000
	}
	if thousands := n / 1000; thousands > 0 {
		parts = append(parts, belowThousand(thousands), "thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	var parts []string
	if hundreds := n / 100; hundreds > 0 {
		parts = append(parts, onesWords[hundreds], "hundred")
		n %= 100
	}
	if n >= 20 {
		word := tensWords[n/10]
		if units := n % 10; units > 0 {
			word += " " + onesWords[units]
		}
		parts = append(parts, word)
	} else if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
