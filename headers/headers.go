// headers/headers.go
package headers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/headers/redact"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/version"
	"go.uber.org/zap"
)

// HeaderHandler is responsible for managing and setting headers on HTTP requests.
type HeaderHandler struct {
	req *http.Request // The http.Request for which headers are being managed
	log logger.Logger // The logger to use for logging headers
}

// NewHeaderHandler creates a new instance of HeaderHandler for a given http.Request and logger.
func NewHeaderHandler(req *http.Request, log logger.Logger) *HeaderHandler {
	return &HeaderHandler{
		req: req,
		log: log,
	}
}

// SetAuthorization sets a bearer Authorization header for the request.
func (h *HeaderHandler) SetAuthorization(token string) {
	// Ensure the token is prefixed with "Bearer " only once
	if !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}
	h.req.Header.Set("Authorization", token)
}

// SetBasicAuthorization sets the Authorization header to Basic base64(username:password).
func (h *HeaderHandler) SetBasicAuthorization(username, password string) {
	h.req.Header.Set("Authorization", "Basic "+BasicCredentials(username, password))
}

// SetContentType sets the Content-Type header for the request.
func (h *HeaderHandler) SetContentType(contentType string) {
	h.req.Header.Set("Content-Type", contentType)
}

// SetAccept sets the Accept header for the request.
func (h *HeaderHandler) SetAccept(acceptHeader string) {
	h.req.Header.Set("Accept", acceptHeader)
}

// SetUserAgent sets the User-Agent header for the request.
func (h *HeaderHandler) SetUserAgent(userAgent string) {
	h.req.Header.Set("User-Agent", userAgent)
}

// SetRequestHeaders applies the headers every Jamf request carries: Accept and User-Agent,
// plus the bearer token when one is given.
func (h *HeaderHandler) SetRequestHeaders(accept, token string) {
	h.SetAccept(accept)
	h.SetUserAgent(version.GetUserAgentHeader())
	if token != "" {
		h.SetAuthorization(token)
	}
}

// RedactedHeaders returns the request headers with sensitive values masked.
func (h *HeaderHandler) RedactedHeaders(hideSensitiveData bool) map[string][]string {
	return redact.Header(hideSensitiveData, h.req.Header)
}

// LogHeaders prints all the current headers in the http.Request using the zap logger.
// Sensitive values are masked when hideSensitiveData is set.
func (h *HeaderHandler) LogHeaders(hideSensitiveData bool) {
	if h.log.GetLogLevel() <= logger.LogLevelDebug {
		headersStr := HeadersToString(h.RedactedHeaders(hideSensitiveData))
		h.log.Debug("HTTP Request Headers", zap.String("Headers", headersStr))
	}
}

// BasicCredentials encodes username:password for the Basic scheme.
func BasicCredentials(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// HeadersToString converts a http.Header to a string for logging,
// with each header on a new line, sorted by name.
func HeadersToString(headers http.Header) string {
	headerStrings := make([]string, 0, len(headers))
	for name, values := range headers {
		headerStrings = append(headerStrings, fmt.Sprintf("%s: %s", name, strings.Join(values, ", ")))
	}
	sort.Strings(headerStrings)
	return strings.Join(headerStrings, "\n")
}

// CheckDeprecationHeader checks the response headers for the Deprecation header and logs a warning if present.
func CheckDeprecationHeader(resp *http.Response, log logger.Logger) {
	deprecationHeader := resp.Header.Get("Deprecation")
	if deprecationHeader != "" {
		endpoint := ""
		if resp.Request != nil {
			endpoint = resp.Request.URL.String()
		}
		log.Warn("API endpoint is deprecated",
			zap.String("Date", deprecationHeader),
			zap.String("Endpoint", endpoint),
		)
	}
}
