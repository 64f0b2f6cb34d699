package validate

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// +<10..15 digits> or 123-456-7890
	rePhone = regexp.MustCompile(`^(\+\d{10,15}|\d{3}-\d{3}-\d{4})$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// Phone accepts an empty value (phone is optional) or one of the two formats,
// matched exactly as given.
func Phone(s string) (string, bool) {
	if s == "" {
		return "", true
	}
	return s, rePhone.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Price must be strictly positive; it is rounded to cents.
func Price(d decimal.Decimal) (decimal.Decimal, bool) {
	if !d.IsPositive() {
		return decimal.Zero, false
	}
	return d.Round(2), true
}

func Stock(n int) bool { return n >= 0 }

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp parses an ISO-8601 timestamp into UTC.
func Timestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// OrderDate parses an optional order date. Absent or unparseable input yields now.
func OrderDate(s string, now time.Time) time.Time {
	if t, ok := Timestamp(s); ok {
		return t
	}
	return now
}
