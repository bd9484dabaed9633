package helpers

import "strings"

// MaskEmail hides the local part of an address except its first two
// characters, e.g. "someone@example.com" becomes "so*****@example.com".
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}

	local := email[:at]
	visible := 2
	if len(local) <= visible {
		visible = 1
	}
	if len(local) <= visible {
		return email
	}

	return local[:visible] + strings.Repeat("*", len(local)-visible) + email[at:]
}
