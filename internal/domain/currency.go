package domain

import "regexp"

var codeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidCurrencyCode reports whether s looks like an ISO 4217 code.
func ValidCurrencyCode(s string) bool {
	return codeRe.MatchString(s)
}

// PairLabel renders the display pair. The service quotes against RUB only.
func PairLabel(code string) string {
	return code + "/RUB"
}
