package format

import (
	"strings"
	"time"
	"unicode"
)

// Phone groups a ten-digit Mexican number as "AAA BBB CCCC".
// Example: Phone("3222440506") => "322 244 0506"
// A leading country code 52 is dropped. Other inputs are returned trimmed.
func Phone(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) == 12 && strings.HasPrefix(digits, "52") {
		digits = digits[2:]
	}
	if len(digits) != 10 {
		return strings.TrimSpace(raw)
	}
	return digits[:3] + " " + digits[3:6] + " " + digits[6:]
}

// WhatsAppURL builds a wa.me link for a ten-digit Mexican number.
func WhatsAppURL(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) == 10 {
		digits = "52" + digits
	}
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Year returns the four-digit year of t in the site's time zone.
func Year(t time.Time, loc *time.Location) int {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Year()
}
