package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// WhatsAppSuffix is the messaging-network address suffix appended to every
// normalized number (Evolution API JID format).
const WhatsAppSuffix = "@s.whatsapp.net"

const countryPrefix = "55"

// NormalizeWhatsAppPhone converts an arbitrary Brazilian phone string into
// the canonical WhatsApp JID.
//
// Rules: keep digits only; drop a leading 55 country prefix when present;
// the remainder must be a 2-digit DDD (11-99) plus the local number. DDDs
// below 31 use 9-digit local numbers (an 8-digit input gains a leading 9);
// DDDs from 31 up use 8-digit local numbers (a 9-digit input starting with
// 9 loses it). Anything else is a validation failure.
func NormalizeWhatsAppPhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	// Only treat 55 as a country prefix when the number is long enough to
	// carry one, so DDD 55 numbers are not mangled.
	if len(digits) >= 12 && strings.HasPrefix(digits, countryPrefix) {
		digits = digits[len(countryPrefix):]
	}

	if len(digits) < 10 || len(digits) > 11 {
		return "", fmt.Errorf("%w: %q has %d digits after cleanup", ErrInvalidPhone, raw, len(digits))
	}

	ddd, err := strconv.Atoi(digits[:2])
	if err != nil || ddd < 11 || ddd > 99 {
		return "", fmt.Errorf("%w: invalid area code %q", ErrInvalidPhone, digits[:2])
	}

	local := digits[2:]
	if ddd < 31 {
		if len(local) == 8 {
			local = "9" + local
		}
		if len(local) != 9 {
			return "", fmt.Errorf("%w: area code %d requires a 9-digit number", ErrInvalidPhone, ddd)
		}
	} else {
		if len(local) == 9 && local[0] == '9' {
			local = local[1:]
		}
		if len(local) != 8 {
			return "", fmt.Errorf("%w: area code %d requires an 8-digit number", ErrInvalidPhone, ddd)
		}
	}

	return countryPrefix + digits[:2] + local + WhatsAppSuffix, nil
}
