// Package validate provides the field validators for candidate input.
package validate

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
)

// Email reports whether s looks like a local@domain.tld address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Phone reports whether s is an optional leading + followed by 10-15 digits.
// Callers are expected to pass the country code and number already joined.
func Phone(s string) bool {
	return phonePattern.MatchString(s)
}

// LocationName reports whether s is a plausible city or area name: at least
// two characters after trimming and not purely numeric.
func LocationName(s string) bool {
	t := strings.TrimSpace(s)
	if len(t) < 2 {
		return false
	}
	return !allDigits(t)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
