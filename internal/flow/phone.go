package flow

import (
	"errors"
	"strings"
	"unicode"
)

// ErrBadPhoneFormat marks input that must be re-prompted, never forwarded
// to the verification gateway.
var ErrBadPhoneFormat = errors.New("unrecognized phone number format")

// NormalizePhone applies the exact normalization policy: whitespace is
// stripped; a bare 10-digit number is assumed domestic and gets the
// default country code; anything else must already carry a leading "+".
func NormalizePhone(raw, countryCode string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	phone := b.String()
	if phone == "" {
		return "", ErrBadPhoneFormat
	}

	if len(phone) == 10 && allDigits(phone) {
		return countryCode + phone, nil
	}
	if strings.HasPrefix(phone, "+") && len(phone) > 1 && allDigits(phone[1:]) {
		return phone, nil
	}
	return "", ErrBadPhoneFormat
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
