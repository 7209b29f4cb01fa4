// authenticationhandler/validation.go

package authenticationhandler

import (
	"regexp"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apiintegrations/jamfpro"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_\-\+=\[\]{\}\\|;:'",<.>/?]+$`)

// IsValidUsername checks if the provided username meets password safe validation criteria.
// Returns true if valid, along with an empty error message; otherwise, returns false with an error message.
func IsValidUsername(username string) (bool, string) {
	if usernameRegex.MatchString(username) {
		return true, ""
	}
	return false, "Username must contain only alphanumeric characters and password safe special characters (!@#$%^&*()_-+=[{]}\\|;:'\",<.>/?)."
}

// IsValidPassword checks that a password was given.
// Returns true if valid, along with an empty error message; otherwise, returns false with an error message.
func IsValidPassword(password string) (bool, string) {
	if password != "" {
		return true, ""
	}
	return false, "Password must not be empty."
}

// IsValidBaseURL checks that the server URL is an absolute http(s) URL with a host.
func IsValidBaseURL(baseURL string) (bool, string) {
	if _, err := jamfpro.ParseBaseURL(baseURL); err != nil {
		return false, err.Error()
	}
	return true, ""
}
