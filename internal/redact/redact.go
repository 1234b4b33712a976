// Package redact provides utilities for redacting sensitive information
// from strings before they are logged or returned in error responses.
// In a wallet the dangerous leaks are financial identifiers: full card
// numbers, CVUs and credentials must never reach a log line or an error
// payload.
package redact

import "regexp"

// Redaction placeholders
const (
	CardPlaceholder       = "[REDACTED_CARD]"
	CVUPlaceholder        = "[REDACTED_CVU]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	JWTPlaceholder        = "[REDACTED_JWT]"
)

// Precompiled regex patterns, ordered: the CVU pattern must run before
// the card pattern so a 22-digit CVU is not half-matched as a PAN.
var (
	// 22-digit CVU
	cvuRegex = regexp.MustCompile(`\b\d{22}\b`)

	// Card numbers: 13-19 digits, optionally space- or dash-grouped
	cardRegex = regexp.MustCompile(`\b\d(?:[ -]?\d){12,18}\b`)

	// Credentials in key=value or key: value form
	credentialRegex = regexp.MustCompile(`(?i)(password|passwd|secret|api[_-]?key|internal[_-]?key|token)([=:]\s*['"]?)\S{3,}`)

	// Database connection strings
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Standard three-part base64url JWT
	jwtRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

type replacement struct {
	pattern     *regexp.Regexp
	placeholder string
}

var replacements = []replacement{
	{jwtRegex, JWTPlaceholder},
	{dbConnRegex, CredentialPlaceholder},
	{credentialRegex, "$1$2" + CredentialPlaceholder},
	{emailRegex, EmailPlaceholder},
	{cvuRegex, CVUPlaceholder},
	{cardRegex, CardPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
