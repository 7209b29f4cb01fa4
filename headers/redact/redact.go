// headers/redact/redact.go
package redact

import "net/http"

// sensitiveKeys are the canonical header names whose values never reach a log line when redaction is on.
var sensitiveKeys = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
	"Set-Cookie":    true,
	"Accesstoken":   true,
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && sensitiveKeys[http.CanonicalHeaderKey(key)] {
		return "REDACTED"
	}
	return value
}

// Header returns a copy of h with every sensitive value redacted.
func Header(hideSensitiveData bool, h http.Header) http.Header {
	redacted := make(http.Header, len(h))
	for name, values := range h {
		copied := make([]string, len(values))
		for i, v := range values {
			copied[i] = RedactSensitiveHeaderData(hideSensitiveData, name, v)
		}
		redacted[name] = copied
	}
	return redacted
}
