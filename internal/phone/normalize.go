// Package phone canonicalizes Israeli phone numbers into E.164.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const region = "IL"

// ErrNotAPhone marks input that matches none of the accepted shapes.
// Malformed numbers are a frequent, expected case, not an exception.
var ErrNotAPhone = errors.New("phone: not a dialable number")

var cleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "", "\t", "")

// Normalize converts a raw phone string into canonical +972 E.164 form.
//
// Accepted shapes:
//   - "+972501234567"  already canonical
//   - "972501234567"   international form missing the leading plus
//   - "0501234567"     local form with trunk prefix
//   - "501234567"      bare mobile subscriber number
//
// Normalize is pure and idempotent: feeding its own output back in returns
// the same string.
func Normalize(raw string) (string, error) {
	s := cleaner.Replace(strings.TrimSpace(raw))
	if s == "" {
		return "", ErrNotAPhone
	}

	var candidate string
	switch {
	case strings.HasPrefix(s, "+972"):
		candidate = s
	case strings.HasPrefix(s, "972"):
		candidate = "+" + s
	case strings.HasPrefix(s, "0") && len(s) >= 9:
		candidate = "+972" + s[1:]
	case strings.HasPrefix(s, "5") && len(s) == 9:
		// Bare mobile subscriber number in the 05x range.
		candidate = "+972" + s
	default:
		return "", ErrNotAPhone
	}

	num, err := phonenumbers.Parse(candidate, region)
	if err != nil {
		return "", ErrNotAPhone
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrNotAPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
