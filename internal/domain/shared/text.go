package shared

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText trims surrounding whitespace and folds the value into
// Unicode NFC so equal names compare and search equally.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ValidateText checks presence and maximum length (in characters) of a text
// attribute, returning a DomainError carrying code.
func ValidateText(code, label, value string, maxLen int, required bool) error {
	if required && value == "" {
		return NewDomainError(code, fmt.Sprintf("%s cannot be empty", label))
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return NewDomainError(code, fmt.Sprintf("%s cannot exceed %d characters", label, maxLen))
	}
	return nil
}
