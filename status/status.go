// status/status.go
// Package status translates HTTP status codes returned by a Jamf Pro server into
// operator-facing text and classifies redirect codes for the redirect policy.
package status

import (
	"fmt"
	"net/http"
)

var messages = map[int]string{
	http.StatusOK:                   "Request successful.",
	http.StatusCreated:              "Request to create or update resource successful.",
	http.StatusAccepted:             "The request was accepted for processing, but the processing has not completed.",
	http.StatusNoContent:            "Request successful. Resource successfully deleted.",
	http.StatusBadRequest:           "Bad request. Verify the syntax of the request.",
	http.StatusUnauthorized:         "Authentication failed. Verify the credentials being used for the request.",
	http.StatusForbidden:            "Invalid permissions. Verify the account has the proper permissions for the resource.",
	http.StatusNotFound:             "Resource not found. Verify the URL path is correct.",
	http.StatusMethodNotAllowed:     "Method not allowed. The method specified is not allowed for the resource.",
	http.StatusNotAcceptable:        "Not acceptable. The server cannot produce a response matching the list of acceptable values.",
	http.StatusRequestTimeout:       "Request timeout. The server timed out waiting for the request.",
	http.StatusConflict:             "Conflict. The request could not be processed because of conflict in the request.",
	http.StatusUnsupportedMediaType: "Unsupported media type. The request entity has a media type which the server or resource does not support.",
	http.StatusTooManyRequests:      "Too many requests. The user has sent too many requests in a given amount of time.",
	http.StatusInternalServerError:  "Internal server error. The server encountered an unexpected condition that prevented it from fulfilling the request.",
	http.StatusBadGateway:           "Bad gateway. The server received an invalid response from the upstream server while trying to fulfill the request.",
	http.StatusServiceUnavailable:   "Service unavailable. The server is currently unable to handle the request due to temporary overloading or maintenance.",
	http.StatusGatewayTimeout:       "Gateway timeout. The server did not receive a timely response from the upstream server.",
}

// TranslateStatusCode provides a human-readable message for an HTTP status code.
func TranslateStatusCode(statusCode int) string {
	if message, exists := messages[statusCode]; exists {
		return message
	}
	if text := http.StatusText(statusCode); text != "" {
		return text + "."
	}
	return fmt.Sprintf("Unknown status code: %d", statusCode)
}

// IsRedirectStatusCode checks if the provided HTTP status code is one of the redirect codes.
//
// - 301 Moved Permanently and 308 Permanent Redirect: the resource has a new permanent URI.
// - 302 Found and 307 Temporary Redirect: the resource temporarily resides under a different URI.
// - 303 See Other: the response can be retrieved with a GET on a different URI.
func IsRedirectStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// IsPermanentRedirect checks if the provided HTTP status code is one of the permanent redirect codes.
func IsPermanentRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}
