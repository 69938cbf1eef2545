package httpapi

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func normalizeUsername(s string) string {
	return strings.TrimSpace(s)
}

func validUsername(s string) bool {
	return len(s) >= 3 && len(s) <= 30
}

func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}
