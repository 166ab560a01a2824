package redis

import "strings"

// isAuthError matches the replies Redis sends for missing or wrong credentials.
func isAuthError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "NOAUTH") ||
		strings.HasPrefix(msg, "WRONGPASS") ||
		strings.Contains(msg, "invalid password") ||
		strings.Contains(msg, "invalid username-password pair")
}
