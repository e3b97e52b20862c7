// Package mask provides the display-only obfuscation applied to phone numbers
// shown to unauthenticated viewers. It is a formatting transform, not a
// security control: the full number stays retrievable from the profile store.
package mask

import "strings"

// placeholder is returned for numbers too short to mask meaningfully.
const placeholder = "XXXXXXXXXX"

// Number hides the middle digits of a phone number, keeping the first two and
// last two characters. Inputs shorter than four characters collapse to a
// fixed placeholder. Output length equals input length otherwise.
func Number(phone string) string {
	if len(phone) < 4 {
		return placeholder
	}
	return phone[:2] + strings.Repeat("X", len(phone)-4) + phone[len(phone)-2:]
}
