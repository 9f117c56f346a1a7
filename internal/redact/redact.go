// Package redact strips sensitive material from strings before they are
// logged. Error chains in this service can carry connection strings,
// tokens, password hashes and email addresses; none of those belong in
// log output.
package redact

import "regexp"

const (
	redactedCredential = "[REDACTED_CREDENTIAL]"
	redactedEmail      = "[REDACTED_EMAIL]"
	redactedToken      = "[REDACTED_TOKEN]"
	redactedHash       = "[REDACTED_HASH]"
)

var (
	// Database connection strings with inline credentials.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// password=..., pwd: '...' and friends.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Standard three-part base64url JWT.
	jwtRegex = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	// bcrypt hashes as stored on users.
	bcryptRegex = regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{20,}`)

	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String returns s with all recognized sensitive fragments replaced by
// placeholders.
func String(s string) string {
	s = dbConnRegex.ReplaceAllString(s, redactedCredential+"@")
	s = passwordRegex.ReplaceAllString(s, "$1$2"+redactedCredential)
	s = jwtRegex.ReplaceAllString(s, redactedToken)
	s = bcryptRegex.ReplaceAllString(s, redactedHash)
	s = emailRegex.ReplaceAllString(s, redactedEmail)
	return s
}

// Error redacts err's message. A nil error yields the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
