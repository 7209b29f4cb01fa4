// jamfpro_api_token.go
package jamfpro

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// TokenResponse is the body of a successful BearerTokenEndpoint call.
type TokenResponse struct {
	Token   string `json:"token"`
	Expires string `json:"expires"`
}

// ParseTokenResponse decodes a token body. The token must be non-empty and expires must be RFC 3339.
func ParseTokenResponse(body []byte) (token string, expires time.Time, err error) {
	var tr TokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", time.Time{}, err
	}
	if strings.TrimSpace(tr.Token) == "" {
		return "", time.Time{}, errors.New("token response has no token")
	}
	expires, err = ParseISO8601Date(tr.Expires)
	if err != nil {
		return "", time.Time{}, err
	}
	return tr.Token, expires, nil
}

// ParseISO8601Date attempts to parse a string date in ISO 8601 format.
func ParseISO8601Date(dateStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(dateStr))
}
